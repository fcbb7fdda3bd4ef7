// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the account gateway.

# Allow-List

Every endpoint is scoped to a fixed set of accounts, built once at startup
from configuration and never modified:

	accounts := auth.NewAllowList(cfg.Accounts)
	if accounts.Allows("the-magic-frog") { ... }

Membership is exact. There is no case folding, wildcard, or prefix match.

# Requests

Handlers read the account from the "account" query parameter:

	account, err := accounts.AccountFromRequest(r)
	if err != nil {
		// ErrAccountNotAllowed: hand over to the not-found fallback
	}

A missing parameter is treated the same as an unknown account.
*/
package auth
