// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - District: a directory entry (id, state, number, status)
  - EligibilityCandidate: a District plus already_called
  - CallStats: calls_by_month keyed by "YYYY-MM"
  - Chart, ChartSegment: a rendered thermometer

# Request and Response Types

  - RecordCallRequest: district_id
  - CreateSessionResponse: session_id, session_key
  - RecordCallResponse: district_id, called_at
  - CallHistoryResponse: session_id, calls
  - ConfirmationResponse: the confirmation screen
  - ErrorResponse: error, message

Timestamps on the wire are epoch milliseconds.
*/
package models
