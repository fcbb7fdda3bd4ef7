// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/magic-frog/auth"
	"github.com/danielhkuo/magic-frog/cliparse"
	"github.com/danielhkuo/magic-frog/middleware"
	"github.com/danielhkuo/magic-frog/models"
	"github.com/danielhkuo/magic-frog/story"
)

// PostSource is the read side of the Steem API the handlers need
type PostSource interface {
	story.ReplyFetcher
	GetAllPosts(ctx context.Context, account string) ([]models.Post, error)
	GetAccount(ctx context.Context, account string) (json.RawMessage, error)
}

// DelegatorSource lists the delegators of an account
type DelegatorSource interface {
	GetDelegators(ctx context.Context, account string) ([]models.Delegator, error)
}

// accountOrFallback returns the requested account, or answers with the
// fallback and returns false when it is not allow-listed
func accountOrFallback(w http.ResponseWriter, r *http.Request, accounts auth.AllowList) (string, bool) {
	account, err := accounts.AccountFromRequest(r)
	if err != nil {
		middleware.NotFound(w, r)
		return "", false
	}
	return account, true
}

// upstreamFailure logs err and answers with the fallback
func upstreamFailure(w http.ResponseWriter, r *http.Request, msg, account string, err error) {
	slog.Error(msg, "account", account, "path", r.URL.Path, "error", err)
	middleware.NotFound(w, r)
}

func markerFromConfig(cfg cliparse.Config) story.Marker {
	return story.Marker{Tag: cfg.StoryTag, TitlePrefix: cfg.StoryTitlePrefix}
}
