// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package story

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/magic-frog/models"
)

// commandPattern matches one line of a reply, e.g. "!bid 5" or "!submit The frog jumps."
var commandPattern = regexp.MustCompile(`(?i)^\s*!(bid|join|submit)\b[ \t]*(.*)$`)

// ReplyFetcher loads the direct replies to a post
type ReplyFetcher interface {
	GetReplies(ctx context.Context, author, permlink string) ([]models.Comment, error)
}

// ParseCommand extracts the command of a reply. The first matching line
// wins; replies without one return false.
func ParseCommand(comment models.Comment) (models.Command, bool) {
	for _, line := range strings.Split(comment.Body, "\n") {
		m := commandPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		cmd := models.Command{
			User:     comment.Author,
			Type:     strings.ToLower(m[1]),
			Permlink: comment.Permlink,
		}
		arg := strings.TrimSpace(m[2])
		switch cmd.Type {
		case models.CommandBid:
			cmd.Amount = parseAmount(arg)
		case models.CommandSubmit:
			cmd.Text = arg
		}
		return cmd, true
	}
	return models.Command{}, false
}

// parseAmount reads the first token of arg as a bid amount.
// Anything that is not a finite, non-negative number counts as 0.
func parseAmount(arg string) float64 {
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// commandsOf parses every reply of post
func commandsOf(post models.Post, replies []models.Comment) []models.Command {
	var cmds []models.Command
	for _, reply := range replies {
		cmd, ok := ParseCommand(reply)
		if !ok {
			continue
		}
		cmd.PostPermlink = post.Permlink
		cmds = append(cmds, cmd)
	}
	return cmds
}

// GetCommands fetches the replies of every post and returns their commands
// in post order, then reply order. Replies are fetched with at most limit
// requests in flight; the first failure cancels the rest.
func GetCommands(ctx context.Context, fetcher ReplyFetcher, posts []models.Post, limit int) ([]models.Command, error) {
	perPost := make([][]models.Command, len(posts))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, post := range posts {
		g.Go(func() error {
			replies, err := fetcher.GetReplies(ctx, post.Author, post.Permlink)
			if err != nil {
				return err
			}
			perPost[i] = commandsOf(post, replies)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cmds := []models.Command{}
	for _, c := range perPost {
		cmds = append(cmds, c...)
	}
	return cmds, nil
}

// GetAllCommands returns the commands of every story, in story order
func GetAllCommands(ctx context.Context, fetcher ReplyFetcher, stories []models.Story, limit int) ([]models.Command, error) {
	var posts []models.Post
	for _, s := range stories {
		posts = append(posts, s.Posts...)
	}
	return GetCommands(ctx, fetcher, posts, limit)
}
