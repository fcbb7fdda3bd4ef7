// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package story

import (
	"context"

	"github.com/danielhkuo/magic-frog/models"
)

// GetContributors tallies commands per user in order of first appearance
func GetContributors(commands []models.Command) *models.Contributors {
	contributors := models.NewContributors()
	for _, cmd := range commands {
		e := contributors.Entry(cmd.User)
		e.Commands++
		if cmd.Type == models.CommandBid {
			e.Bids++
			e.Amount += cmd.Amount
		}
	}
	return contributors
}

// GetSubmissions returns the commands found in the replies of the latest post
func GetSubmissions(ctx context.Context, fetcher ReplyFetcher, latest *models.Post) ([]models.Command, error) {
	if latest == nil {
		return []models.Command{}, nil
	}
	return GetCommands(ctx, fetcher, []models.Post{*latest}, 1)
}

// SumBids adds up the amounts of bid commands
func SumBids(commands []models.Command) float64 {
	var pot float64
	for _, cmd := range commands {
		if cmd.Type == models.CommandBid {
			pot += cmd.Amount
		}
	}
	return pot
}

// GetPot sums the bids placed in replies to the given story posts
func GetPot(ctx context.Context, fetcher ReplyFetcher, storyPosts []models.Post, limit int) (float64, error) {
	if len(storyPosts) == 0 {
		return 0, nil
	}
	cmds, err := GetCommands(ctx, fetcher, storyPosts, limit)
	if err != nil {
		return 0, err
	}
	return SumBids(cmds), nil
}
