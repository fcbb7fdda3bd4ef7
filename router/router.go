// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/magic-frog/auth"
	"github.com/danielhkuo/magic-frog/cliparse"
	"github.com/danielhkuo/magic-frog/handlers"
	"github.com/danielhkuo/magic-frog/middleware"
)

func NewRouter(posts handlers.PostSource, delegators handlers.DelegatorSource, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()
	accounts := auth.NewAllowList(cfg.Accounts)

	// Initialize handlers
	delegatorHandler := handlers.NewDelegatorHandler(delegators, accounts)
	storyHandler := handlers.NewStoryHandler(posts, accounts, cfg)
	accountHandler := handlers.NewAccountHandler(posts, accounts)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /delegators", middleware.WithLogging(delegatorHandler.GetDelegators))

	// Story data
	mux.HandleFunc("GET /contributors", middleware.WithLogging(storyHandler.GetContributors))
	mux.HandleFunc("GET /stories", middleware.WithLogging(storyHandler.GetStories))
	mux.HandleFunc("GET /submissions", middleware.WithLogging(storyHandler.GetSubmissions))
	mux.HandleFunc("GET /storyposts", middleware.WithLogging(storyHandler.GetStoryPosts))
	mux.HandleFunc("GET /pot", middleware.WithLogging(storyHandler.GetPot))

	mux.HandleFunc("GET /account", middleware.WithLogging(accountHandler.GetAccount))

	// Everything else, any method
	mux.HandleFunc("/", middleware.WithLogging(middleware.NotFound))

	return middleware.CORS(mux)
}
