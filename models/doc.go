// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines upstream, domain, and response types for the API.

# Upstream Types

Records fetched from the Steem condenser API and the delegator API:

  - Post: root post (author, permlink, title, body, created, json_metadata)
  - Comment: reply to a post (author, permlink, body, created)
  - Delegator: delegator, sp, vests, time

A Post decoded from JSON keeps the verbatim upstream record in Raw and
encodes back to it, so /storyposts is a pass-through.

# Domain Types

  - Story: 1-indexed round of the game and its posts, encoded as a summary
    (number, post_count, first_permlink, latest_post)
  - Command: directive parsed from a reply (user, type, amount, text)
  - Contribution: commands, bids and bid amount of one user
  - Contributors: user → Contribution, encoded in first-appearance order

# Response Types

  - PotResponse: story_number, pot
  - ErrorResponse: error, message

# Constants

Command types:

	CommandBid    = "bid"
	CommandJoin   = "join"
	CommandSubmit = "submit"

Timestamps use SteemTimeLayout ("2006-01-02T15:04:05", UTC).
*/
package models
