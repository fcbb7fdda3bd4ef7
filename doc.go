// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Magic Frog API server.

The Magic Frog is a story game played on Steem: the frog accounts publish a
story post by post, and players steer it with commands in the replies
(!bid, !join, !submit). This server is a read-only facade that turns the
public chain data into what the game frontend shows: delegators, stories,
contributors, current submissions and the pot.

# Starting the Server

	DELEGATORS_API_KEY=... go run .

Or with flags:

	go run . -p 3333 -delegators-key ...

A .env file in the working directory is loaded first.

# Configuration

Required settings:

  - DELEGATORS_API_KEY (-delegators-key): Key for the delegator API

Optional settings:

  - PORT (-p): Server port (default: 3333)
  - ACCOUNTS (-accounts): Allow-list (default: the-magic-frog, der-zauberfrosch, grenouille)
  - STEEM_API_URL, DELEGATORS_API_URL: Upstream endpoints

See package cliparse for the full list.

# Architecture

  - router: Route definitions using Go 1.22+ routing
  - handlers: HTTP request handlers (delegators, stories, account)
  - story: Story segmentation, command parsing, aggregation
  - steem: Steem condenser API client (JSON-RPC)
  - delegation: Delegator API client
  - auth: Account allow-list
  - middleware: CORS, logging, JSON helpers, not-found fallback
  - models: Upstream, domain and response types
  - cliparse: Configuration parsing

Nothing is stored: every request refetches from upstream.
*/
package main
