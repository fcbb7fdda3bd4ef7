// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"math"
	"net/http"
	"regexp"
	"strconv"

	"github.com/danielhkuo/magic-frog/auth"
	"github.com/danielhkuo/magic-frog/cliparse"
	"github.com/danielhkuo/magic-frog/middleware"
	"github.com/danielhkuo/magic-frog/models"
	"github.com/danielhkuo/magic-frog/story"
)

// leadingInt matches the integer a storyNumber starts with, e.g. "2" in "2.5"
var leadingInt = regexp.MustCompile(`^\s*([+-]?\d+)`)

// StoryHandler serves the endpoints derived from an account's story posts
type StoryHandler struct {
	source   PostSource
	accounts auth.AllowList
	marker   story.Marker
	limit    int
}

// NewStoryHandler creates a StoryHandler using cfg's story marker and fetch concurrency
func NewStoryHandler(source PostSource, accounts auth.AllowList, cfg cliparse.Config) *StoryHandler {
	return &StoryHandler{
		source:   source,
		accounts: accounts,
		marker:   markerFromConfig(cfg),
		limit:    cfg.FetchConcurrency,
	}
}

// GetContributors handles GET /contributors?account=
// Tallies the commands of every story per user
func (h *StoryHandler) GetContributors(w http.ResponseWriter, r *http.Request) {
	account, ok := accountOrFallback(w, r, h.accounts)
	if !ok {
		return
	}

	posts, err := h.source.GetAllPosts(r.Context(), account)
	if err != nil {
		upstreamFailure(w, r, "failed to fetch posts", account, err)
		return
	}

	stories := story.GetStories(posts, h.marker)
	commands, err := story.GetAllCommands(r.Context(), h.source, stories, h.limit)
	if err != nil {
		upstreamFailure(w, r, "failed to fetch replies", account, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, story.GetContributors(commands))
}

// GetStories handles GET /stories?account=
// Returns one summary per story, represented by its latest post
func (h *StoryHandler) GetStories(w http.ResponseWriter, r *http.Request) {
	account, ok := accountOrFallback(w, r, h.accounts)
	if !ok {
		return
	}

	posts, err := h.source.GetAllPosts(r.Context(), account)
	if err != nil {
		upstreamFailure(w, r, "failed to fetch posts", account, err)
		return
	}

	stories := story.GetStories(posts, h.marker)
	if stories == nil {
		stories = []models.Story{}
	}

	middleware.JSONResponse(w, http.StatusOK, stories)
}

// GetSubmissions handles GET /submissions?account=
// Returns the commands left on the latest post
func (h *StoryHandler) GetSubmissions(w http.ResponseWriter, r *http.Request) {
	account, ok := accountOrFallback(w, r, h.accounts)
	if !ok {
		return
	}

	posts, err := h.source.GetAllPosts(r.Context(), account)
	if err != nil {
		upstreamFailure(w, r, "failed to fetch posts", account, err)
		return
	}

	submissions, err := story.GetSubmissions(r.Context(), h.source, story.LatestPost(posts))
	if err != nil {
		upstreamFailure(w, r, "failed to fetch replies", account, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, submissions)
}

// GetStoryPosts handles GET /storyposts?account=
// Returns every post of the account verbatim, newest first
func (h *StoryHandler) GetStoryPosts(w http.ResponseWriter, r *http.Request) {
	account, ok := accountOrFallback(w, r, h.accounts)
	if !ok {
		return
	}

	posts, err := h.source.GetAllPosts(r.Context(), account)
	if err != nil {
		upstreamFailure(w, r, "failed to fetch posts", account, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, story.NewestFirst(posts))
}

// GetPot handles GET /pot?account=&storyNumber=
// Missing or unparsable storyNumber means the latest story; numbers are
// clamped to the existing stories.
func (h *StoryHandler) GetPot(w http.ResponseWriter, r *http.Request) {
	account, ok := accountOrFallback(w, r, h.accounts)
	if !ok {
		return
	}

	posts, err := h.source.GetAllPosts(r.Context(), account)
	if err != nil {
		upstreamFailure(w, r, "failed to fetch posts", account, err)
		return
	}

	stories := story.GetStories(posts, h.marker)
	storyNumber, ok := parseStoryNumber(r.URL.Query().Get("storyNumber"))
	if !ok {
		storyNumber = len(stories)
	}
	storyNumber = story.ClampStoryNumber(storyNumber, len(stories))

	var storyPosts []models.Post
	if storyNumber > 0 {
		storyPosts = stories[storyNumber-1].Posts
	}

	pot, err := story.GetPot(r.Context(), h.source, storyPosts, h.limit)
	if err != nil {
		upstreamFailure(w, r, "failed to fetch replies", account, err)
		return
	}

	slog.Debug("pot computed", "account", account, "story", storyNumber, "pot", pot)
	middleware.JSONResponse(w, http.StatusOK, models.PotResponse{
		StoryNumber: storyNumber,
		Pot:         pot,
	})
}

// parseStoryNumber reads the leading integer of s, ignoring any trailing
// text. It reports false when s does not start with one.
func parseStoryNumber(s string) (int, bool) {
	m := leadingInt.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		// Too many digits; past either end of the story list
		if m[1][0] == '-' {
			return 0, true
		}
		return math.MaxInt, true
	}
	return n, true
}
