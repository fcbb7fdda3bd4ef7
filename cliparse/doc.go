// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3333)
  - DelegatorsAPIKey: Key for the delegator API (required)
  - DelegatorsURL: Delegator API endpoint
  - SteemURL: Steem condenser API endpoint (default: https://api.steemit.com)
  - Accounts: Account allow-list (default: the three frog accounts)
  - StoryTag, StoryTitlePrefix: How the first post of a story is recognised
  - FetchConcurrency: Parallel reply fetches per request (default: 8)
  - UpstreamTimeout: Per-call upstream timeout (default: none)

# CLI Flags

	-p               Server port
	-delegators-key  Delegator API key
	-delegators-url  Delegator API URL
	-steem-url       Steem API URL
	-accounts        Comma separated allow-list
	-story-tag       Story start tag
	-story-prefix    Story start title prefix
	-concurrency     Parallel reply fetches
	-timeout         Upstream timeout (e.g. 10s)

# Environment Variables

Flags fall back to environment variables:

	PORT               → -p
	DELEGATORS_API_KEY → -delegators-key
	DELEGATORS_API_URL → -delegators-url
	STEEM_API_URL      → -steem-url
	ACCOUNTS           → -accounts
	STORY_TAG          → -story-tag
	STORY_TITLE_PREFIX → -story-prefix
	FETCH_CONCURRENCY  → -concurrency
	UPSTREAM_TIMEOUT   → -timeout

CLI flags take precedence over environment variables. main loads a .env
file first, so these may also live there.

# Validation

ParseFlags returns an error if DELEGATORS_API_KEY is missing or a numeric
value does not parse. main treats any error as fatal.
*/
package cliparse
