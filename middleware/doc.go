// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs one line per request with status and duration_ms. Request count and
latency are recorded per route pattern in the metrics registry.

# CORS Middleware

Enable cross-origin requests for the thank-you page:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

A named Origin is echoed back with credentials allowed; requests without one
get a wildcard. Preflight requests are answered with 204 and never reach the
wrapped handler.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Bodies are encoded and decoded with goccy/go-json. ParseJSONBody reads at
most MaxBodyBytes:

	var req models.RecordCallRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
