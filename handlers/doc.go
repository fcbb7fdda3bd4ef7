// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Magic Frog API.

# Handler Types

Each handler is a struct with its upstream source and the account allow-list:

  - DelegatorHandler: GET /delegators
  - StoryHandler: GET /contributors, /stories, /submissions, /storyposts, /pot
  - AccountHandler: GET /account

Sources are interfaces so tests can swap in fakes:

	storyHandler := handlers.NewStoryHandler(steemClient, accounts, cfg)

PostSource is satisfied by *steem.Client, DelegatorSource by
*delegation.Client.

# Request Flow

Every handler first checks ?account= against the allow-list, then fetches
from upstream with the request context, then shapes the result with the
story package. Each step that fails ends in middleware.NotFound; upstream
errors are logged before that.

# Pot

	GET /pot?account=the-magic-frog&storyNumber=2

A missing or unparsable storyNumber selects the latest story. Numbers above
the story count select the latest story, zero or below the first.
*/
package handlers
