// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /stories", middleware.WithLogging(handler))

Each request gets a UUID (returned in X-Request-ID). Start is logged with
method, path, account and remote; completion with status, size and
duration_ms.

# CORS Middleware

Cross-origin requests are allowed from any origin:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Preflight requests are answered with 204 before routing.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusNotFound, "")

# Fallback

NotFound is the single failure path of the API. Unmatched routes, accounts
outside the allow-list and upstream errors all end there as a bare 404.

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Handles X-Forwarded-For and X-Real-IP; used in request logs.
*/
package middleware
