// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package steem is a minimal JSON-RPC client for the read-only Steem
// condenser API: an account's root posts, the replies to a post, and the
// account record.
package steem
