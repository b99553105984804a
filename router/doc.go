// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the callcampaign API.

	mux := router.NewRouter(db, cfg)

# Endpoints

	GET  /health               - Liveness
	GET  /metrics              - Prometheus metrics
	GET  /calls/thank-you      - Confirmation screen
	POST /sessions             - Start a call history
	POST /sessions/{id}/calls  - Record a call
	GET  /sessions/{id}/calls  - Read a call history

NewRouter builds the campaign API client and its cached directory once, so
every request shares them.
*/
package router
