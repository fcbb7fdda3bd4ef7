// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package story turns an account's posts into game rounds and tallies the
commands players leave in the replies.

# Stories

A story starts at a marker post and runs until the next one:

	marker := story.Marker{Tag: "newstory", TitlePrefix: "New Story"}
	stories := story.GetStories(posts, marker)

A post is a marker when its json_metadata tags contain Tag or its title
starts with TitlePrefix (case-insensitive). Posts before the first marker
belong to no story. Story numbers are 1-based and follow creation order.

GetStoryPosts clamps the requested number: above the story count means the
latest story, zero or below means the first.

# Commands

One command per reply, taken from the first line that matches:

	!bid <amount>   bid; malformed or negative amounts count as 0
	!join           join the round
	!submit <text>  submit the next part of the story

Replies without a command are ignored. GetCommands fetches replies in
parallel (bounded) but returns commands in post order, then reply order.

# Aggregation

	contributors := story.GetContributors(commands)  // per user, first-appearance order
	pot, err := story.GetPot(ctx, fetcher, storyPosts, limit)
	subs, err := story.GetSubmissions(ctx, fetcher, story.LatestPost(posts))
*/
package story
