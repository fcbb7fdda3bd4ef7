// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package story

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/danielhkuo/magic-frog/models"
	"github.com/danielhkuo/magic-frog/testutil"
)

var testMarker = Marker{Tag: "newstory", TitlePrefix: "New Story"}

// fakeFetcher serves replies from memory, optionally delaying some posts
type fakeFetcher struct {
	mu      sync.Mutex
	replies map[string][]models.Comment
	delay   map[string]time.Duration
	err     error
	calls   int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		replies: make(map[string][]models.Comment),
		delay:   make(map[string]time.Duration),
	}
}

func (f *fakeFetcher) add(permlink string, bodies ...string) {
	for i, body := range bodies {
		user := fmt.Sprintf("user-%s-%d", permlink, i)
		f.replies[permlink] = append(f.replies[permlink], testutil.MakeComment(user, "re-"+user, body))
	}
}

func (f *fakeFetcher) GetReplies(ctx context.Context, author, permlink string) ([]models.Comment, error) {
	f.mu.Lock()
	f.calls++
	d := f.delay[permlink]
	f.mu.Unlock()

	if d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.replies[permlink], nil
}

func permlinks(posts []models.Post) []string {
	out := []string{}
	for _, p := range posts {
		out = append(out, p.Permlink)
	}
	return out
}

func TestIsStoryStart(t *testing.T) {
	now := time.Date(2018, 3, 1, 0, 0, 0, 0, time.UTC)
	bad := testutil.MakePost("frog", "p", "Chapter", now)
	bad.JSONMetadata = "{not json"

	tests := []struct {
		name string
		post models.Post
		want bool
	}{
		{"tagged", testutil.MakePost("frog", "p", "Chapter", now, "frog", "newstory"), true},
		{"tag case", testutil.MakePost("frog", "p", "Chapter", now, "NewStory"), true},
		{"title prefix", testutil.MakePost("frog", "p", "New Story: The Pond", now), true},
		{"title prefix case", testutil.MakePost("frog", "p", "  new story begins", now), true},
		{"plain post", testutil.MakePost("frog", "p", "Day 3 of the story", now, "frog"), false},
		{"prefix elsewhere", testutil.MakePost("frog", "p", "A New Story", now), false},
		{"short title", testutil.MakePost("frog", "p", "New", now), false},
		{"broken metadata", bad, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStoryStart(tt.post, testMarker))
		})
	}
}

func TestIsStoryStart_UnicodeTitlePrefix(t *testing.T) {
	now := time.Date(2018, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		prefix string
		title  string
		want   bool
	}{
		{"accented upper", "Été", "ÉTÉ au marais", true},
		{"kelvin sign folds to k", "Kapitel", "\u212Aapitel 1", true},
		{"multibyte title shorter than prefix", "Neue", "Né", false},
		{"multibyte mismatch", "ab", "aé", false},
		{"german", "Neue Geschichte", "NEUE GESCHICHTE: Der Teich", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			marker := Marker{TitlePrefix: tt.prefix}
			post := testutil.MakePost("frog", "p", tt.title, now)
			assert.Equal(t, tt.want, IsStoryStart(post, marker))
		})
	}
}

func TestGetStories_OneStoryPerMarker(t *testing.T) {
	posts := testutil.MakeStoryPosts("frog", true, false, false, true, false, true)

	stories := GetStories(posts, testMarker)

	assert.Equal(t, 3, len(stories))
	assert.Equal(t, 1, stories[0].Number)
	assert.Equal(t, []string{"post-1", "post-2", "post-3"}, permlinks(stories[0].Posts))
	assert.Equal(t, 2, stories[1].Number)
	assert.Equal(t, []string{"post-4", "post-5"}, permlinks(stories[1].Posts))
	assert.Equal(t, 3, stories[2].Number)
	assert.Equal(t, []string{"post-6"}, permlinks(stories[2].Posts))
}

func TestGetStories_DropsPostsBeforeFirstMarker(t *testing.T) {
	posts := testutil.MakeStoryPosts("frog", false, false, true, false)

	stories := GetStories(posts, testMarker)

	assert.Equal(t, 1, len(stories))
	assert.Equal(t, []string{"post-3", "post-4"}, permlinks(stories[0].Posts))
}

func TestGetStories_NoMarkers(t *testing.T) {
	assert.Equal(t, 0, len(GetStories(testutil.MakeStoryPosts("frog", false, false), testMarker)))
	assert.Equal(t, 0, len(GetStories(nil, testMarker)))
}

func TestClampStoryNumber(t *testing.T) {
	tests := []struct {
		n, count, want int
	}{
		{1, 3, 1},
		{2, 3, 2},
		{3, 3, 3},
		{4, 3, 3},
		{100, 3, 3},
		{0, 3, 1},
		{-2, 3, 1},
		{1, 0, 0},
		{0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d of %d", tt.n, tt.count), func(t *testing.T) {
			assert.Equal(t, tt.want, ClampStoryNumber(tt.n, tt.count))
		})
	}
}

func TestGetStoryPosts(t *testing.T) {
	posts := testutil.MakeStoryPosts("frog", true, false, true, false, false)
	last := []string{"post-3", "post-4", "post-5"}

	assert.Equal(t, []string{"post-1", "post-2"}, permlinks(GetStoryPosts(posts, testMarker, 1)))
	assert.Equal(t, last, permlinks(GetStoryPosts(posts, testMarker, 2)))
	assert.Equal(t, permlinks(GetStoryPosts(posts, testMarker, 2)), permlinks(GetStoryPosts(posts, testMarker, 9)))
	assert.Equal(t, permlinks(GetStoryPosts(posts, testMarker, 1)), permlinks(GetStoryPosts(posts, testMarker, 0)))
	assert.Equal(t, permlinks(GetStoryPosts(posts, testMarker, 1)), permlinks(GetStoryPosts(posts, testMarker, -5)))
	assert.Equal(t, 0, len(GetStoryPosts(nil, testMarker, 1)))
}

func TestLatestPostAndNewestFirst(t *testing.T) {
	posts := testutil.MakeStoryPosts("frog", true, false, false)

	assert.Equal(t, "post-3", LatestPost(posts).Permlink)
	assert.Equal(t, true, LatestPost(nil) == nil)
	assert.Equal(t, []string{"post-3", "post-2", "post-1"}, permlinks(NewestFirst(posts)))
	assert.Equal(t, []string{"post-1", "post-2", "post-3"}, permlinks(posts))
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		ok     bool
		typ    string
		amount float64
		text   string
	}{
		{"bid", "!bid 5", true, models.CommandBid, 5, ""},
		{"bid decimal", "!bid 0.25 SBD", true, models.CommandBid, 0.25, ""},
		{"bid uppercase", "!BID 3", true, models.CommandBid, 3, ""},
		{"bid leading space", "   !bid 2", true, models.CommandBid, 2, ""},
		{"bid malformed", "!bid lots", true, models.CommandBid, 0, ""},
		{"bid missing", "!bid", true, models.CommandBid, 0, ""},
		{"bid negative", "!bid -4", true, models.CommandBid, 0, ""},
		{"bid nan", "!bid NaN", true, models.CommandBid, 0, ""},
		{"join", "!join", true, models.CommandJoin, 0, ""},
		{"submit", "!submit The frog leaps. ", true, models.CommandSubmit, 0, "The frog leaps."},
		{"second line", "Great chapter!\n!bid 7", true, models.CommandBid, 7, ""},
		{"first line wins", "!join\n!bid 7", true, models.CommandJoin, 0, ""},
		{"plain", "hello", false, "", 0, ""},
		{"unknown keyword", "!dance 3", false, "", 0, ""},
		{"glued keyword", "!bidding 3", false, "", 0, ""},
		{"not leading", "I will !bid 3", false, "", 0, ""},
		{"empty", "", false, "", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, ok := ParseCommand(testutil.MakeComment("alice", "re-1", tt.body))
			assert.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, "alice", cmd.User)
			assert.Equal(t, "re-1", cmd.Permlink)
			assert.Equal(t, tt.typ, cmd.Type)
			assert.Equal(t, tt.amount, cmd.Amount)
			assert.Equal(t, tt.text, cmd.Text)
		})
	}
}

func TestGetCommands_PreservesOrder(t *testing.T) {
	posts := testutil.MakeStoryPosts("frog", true, false, false)
	fetcher := newFakeFetcher()
	fetcher.add("post-1", "!bid 1", "!bid 2")
	fetcher.add("post-2", "!bid 3")
	fetcher.add("post-3", "!bid 4")
	// The first post answers last
	fetcher.delay["post-1"] = 30 * time.Millisecond

	cmds, err := GetCommands(context.Background(), fetcher, posts, 3)

	assert.Equal(t, nil, err)
	var amounts []float64
	for _, c := range cmds {
		amounts = append(amounts, c.Amount)
	}
	assert.Equal(t, []float64{1, 2, 3, 4}, amounts)
	assert.Equal(t, "post-1", cmds[0].PostPermlink)
	assert.Equal(t, "post-3", cmds[3].PostPermlink)
}

func TestGetCommands_Error(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.err = errors.New("node down")

	_, err := GetCommands(context.Background(), fetcher, testutil.MakeStoryPosts("frog", true), 2)

	assert.Equal(t, fetcher.err, err)
}

func TestGetCommands_EmptyIsNotNil(t *testing.T) {
	cmds, err := GetCommands(context.Background(), newFakeFetcher(), nil, 2)

	assert.Equal(t, nil, err)
	assert.Equal(t, true, cmds != nil)
	assert.Equal(t, 0, len(cmds))
}

func TestGetContributors(t *testing.T) {
	cmds := []models.Command{
		{User: "bob", Type: models.CommandJoin},
		{User: "alice", Type: models.CommandBid, Amount: 5},
		{User: "bob", Type: models.CommandBid, Amount: 1.5},
		{User: "alice", Type: models.CommandBid, Amount: 3},
		{User: "carol", Type: models.CommandSubmit, Text: "more frog"},
	}

	contributors := GetContributors(cmds)

	assert.Equal(t, []string{"bob", "alice", "carol"}, contributors.Users())
	bob, _ := contributors.Get("bob")
	assert.Equal(t, models.Contribution{Commands: 2, Bids: 1, Amount: 1.5}, bob)
	alice, _ := contributors.Get("alice")
	assert.Equal(t, models.Contribution{Commands: 2, Bids: 2, Amount: 8}, alice)
	carol, _ := contributors.Get("carol")
	assert.Equal(t, models.Contribution{Commands: 1}, carol)
}

func TestGetSubmissions(t *testing.T) {
	posts := testutil.MakeStoryPosts("frog", true, false)
	fetcher := newFakeFetcher()
	fetcher.add("post-1", "!submit old round")
	fetcher.add("post-2", "!submit next line", "nice", "!bid 2")

	subs, err := GetSubmissions(context.Background(), fetcher, LatestPost(posts))

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(subs))
	assert.Equal(t, "next line", subs[0].Text)
	assert.Equal(t, models.CommandBid, subs[1].Type)

	subs, err = GetSubmissions(context.Background(), fetcher, nil)
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(subs))
}

func TestGetPot_NoBids(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.add("post-1", "hello", "!join")

	pot, err := GetPot(context.Background(), fetcher, testutil.MakeStoryPosts("frog", true), 2)
	assert.Equal(t, nil, err)
	assert.Equal(t, float64(0), pot)

	pot, err = GetPot(context.Background(), fetcher, nil, 2)
	assert.Equal(t, nil, err)
	assert.Equal(t, float64(0), pot)
	assert.Equal(t, 1, fetcher.calls)
}

// Two marker posts; the second story collects "!bid 5", "!bid 3" and "hello"
func TestEndToEnd_TwoStoriesPot(t *testing.T) {
	posts := testutil.MakeStoryPosts("frog", true, true)
	fetcher := newFakeFetcher()
	fetcher.add("post-2", "!bid 5", "!bid 3", "hello")

	stories := GetStories(posts, testMarker)
	assert.Equal(t, 2, len(stories))

	cmds, err := GetAllCommands(context.Background(), fetcher, stories, 4)
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(cmds))
	assert.Equal(t, float64(5), cmds[0].Amount)
	assert.Equal(t, float64(3), cmds[1].Amount)

	pot, err := GetPot(context.Background(), fetcher, GetStoryPosts(posts, testMarker, 2), 4)
	assert.Equal(t, nil, err)
	assert.Equal(t, float64(8), pot)
}
