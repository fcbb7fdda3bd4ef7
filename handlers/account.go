// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/magic-frog/auth"
	"github.com/danielhkuo/magic-frog/middleware"
)

// AccountHandler serves GET /account
type AccountHandler struct {
	source   PostSource
	accounts auth.AllowList
}

// NewAccountHandler creates an AccountHandler
func NewAccountHandler(source PostSource, accounts auth.AllowList) *AccountHandler {
	return &AccountHandler{source: source, accounts: accounts}
}

// GetAccount handles GET /account?account=
// Passes the upstream account record through untouched
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	account, ok := accountOrFallback(w, r, h.accounts)
	if !ok {
		return
	}

	record, err := h.source.GetAccount(r.Context(), account)
	if err != nil {
		upstreamFailure(w, r, "failed to fetch account", account, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, record)
}
