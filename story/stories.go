// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package story

import (
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"github.com/danielhkuo/magic-frog/models"
)

// Marker describes how the first post of a story is recognised
type Marker struct {
	Tag         string
	TitlePrefix string
}

// IsStoryStart reports whether post opens a new story: its json_metadata
// tags contain the marker tag, or its title starts with the marker prefix
// (case-insensitive).
func IsStoryStart(post models.Post, marker Marker) bool {
	if marker.Tag != "" && gjson.Valid(post.JSONMetadata) {
		for _, tag := range gjson.Get(post.JSONMetadata, "tags").Array() {
			if strings.EqualFold(tag.String(), marker.Tag) {
				return true
			}
		}
	}
	if marker.TitlePrefix != "" {
		if hasPrefixFold(strings.TrimSpace(post.Title), marker.TitlePrefix) {
			return true
		}
	}
	return false
}

// hasPrefixFold reports whether s starts with prefix under Unicode case
// folding, comparing rune by rune since folded runes may differ in width.
func hasPrefixFold(s, prefix string) bool {
	for _, want := range prefix {
		got, size := utf8.DecodeRuneInString(s)
		if size == 0 {
			return false
		}
		if got != want && !strings.EqualFold(string(got), string(want)) {
			return false
		}
		s = s[size:]
	}
	return true
}

// GetStories splits posts (oldest first) into stories. Every marker post
// opens a story that runs until the next marker post. Posts before the
// first marker belong to no story and are dropped.
func GetStories(posts []models.Post, marker Marker) []models.Story {
	var stories []models.Story
	for _, post := range posts {
		if IsStoryStart(post, marker) {
			stories = append(stories, models.Story{Number: len(stories) + 1})
		}
		if len(stories) == 0 {
			continue
		}
		cur := &stories[len(stories)-1]
		cur.Posts = append(cur.Posts, post)
	}
	return stories
}

// ClampStoryNumber maps n onto 1..count: n <= 0 becomes 1 and n > count
// becomes count. It returns 0 when there are no stories.
func ClampStoryNumber(n, count int) int {
	if count == 0 {
		return 0
	}
	if n <= 0 {
		return 1
	}
	if n > count {
		return count
	}
	return n
}

// GetStoryPosts returns the posts of story n (1-based, clamped)
func GetStoryPosts(posts []models.Post, marker Marker, n int) []models.Post {
	stories := GetStories(posts, marker)
	n = ClampStoryNumber(n, len(stories))
	if n == 0 {
		return []models.Post{}
	}
	return stories[n-1].Posts
}

// LatestPost returns the newest post, or nil when there is none
func LatestPost(posts []models.Post) *models.Post {
	if len(posts) == 0 {
		return nil
	}
	return &posts[len(posts)-1]
}

// NewestFirst returns a reversed copy of posts
func NewestFirst(posts []models.Post) []models.Post {
	out := make([]models.Post, len(posts))
	for i, p := range posts {
		out[len(posts)-1-i] = p
	}
	return out
}
