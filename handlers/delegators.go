// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/magic-frog/auth"
	"github.com/danielhkuo/magic-frog/middleware"
	"github.com/danielhkuo/magic-frog/models"
)

// DelegatorHandler serves GET /delegators
type DelegatorHandler struct {
	source   DelegatorSource
	accounts auth.AllowList
}

// NewDelegatorHandler creates a DelegatorHandler
func NewDelegatorHandler(source DelegatorSource, accounts auth.AllowList) *DelegatorHandler {
	return &DelegatorHandler{source: source, accounts: accounts}
}

// GetDelegators handles GET /delegators?account=
// Returns the delegators of the account, largest SP first
func (h *DelegatorHandler) GetDelegators(w http.ResponseWriter, r *http.Request) {
	account, ok := accountOrFallback(w, r, h.accounts)
	if !ok {
		return
	}

	delegators, err := h.source.GetDelegators(r.Context(), account)
	if err != nil {
		upstreamFailure(w, r, "failed to fetch delegators", account, err)
		return
	}
	if delegators == nil {
		delegators = []models.Delegator{}
	}

	middleware.JSONResponse(w, http.StatusOK, delegators)
}
