// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Magic Frog API.

# Route Registration

NewRouter creates the CORS-wrapped http.ServeMux with all endpoints:

	handler := router.NewRouter(steemClient, delegationClient, cfg)

# Endpoints

Health:

	GET /health

Every other endpoint requires ?account= from the allow-list:

	GET /delegators   - Delegators, largest SP first
	GET /contributors - Commands per user across all stories
	GET /stories      - One summary per story
	GET /submissions  - Commands on the latest post
	GET /storyposts   - All posts, newest first
	GET /account      - Upstream account record
	GET /pot          - Bid total of a story (?storyNumber=, default latest)

Any other path or method, an unknown account, and upstream failures all
answer through middleware.NotFound.

# Handler Initialization

The allow-list is built once from cfg.Accounts and shared by all handlers:

	delegatorHandler := handlers.NewDelegatorHandler(delegators, accounts)
	storyHandler := handlers.NewStoryHandler(posts, accounts, cfg)
	accountHandler := handlers.NewAccountHandler(posts, accounts)
*/
package router
