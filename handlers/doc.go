// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the callcampaign API.

# Handler Types

  - ConfirmationHandler: The post-call confirmation screen
  - SessionHandler: Session creation and call recording

	sessions := handlers.NewSessionHandler(callhistory.NewStore(db), cfg)
	confirm := handlers.NewConfirmationHandler(service, sessions)

# Confirmation

	GET /calls/thank-you?state=CA&district=12&d=5&t=...&c=...&scope=district

state and district name the district just called. d is the caller's home
district number; t and c are tracking values echoed back. scope picks the
initially active chart and defaults to district.

An unknown called district is 404 and an unreachable directory is 502. A
stats failure still returns 200 with eligible targets, a null stats field
and stats_error set.

# Sessions

	POST /sessions            → CreateSession (returns session_key)
	POST /sessions/{id}/calls → RecordCall
	GET  /sessions/{id}/calls → GetCalls

Session operations require the X-Session-Key header. The confirmation
endpoint reads X-Session-ID and X-Session-Key when present to mark recently
called districts.
*/
package handlers
