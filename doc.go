// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the callcampaign API server.

callcampaign backs the confirmation screen a caller sees after finishing a
call to a congressional district. It suggests the next districts to call
and marks the ones called within the last hour. Monthly call totals for the
called district and for the whole campaign are rendered as thermometer
charts.

# Starting the Server

The only required settings are the campaign API and the session key salt:

	UPSTREAM_URL=https://api.example.org SESSION_KEY_SALT=... go run main.go

Or with flags:

	go run main.go -p 3318 -u https://api.example.org -session-salt ...

A .env file in the working directory is loaded when present.

# Configuration

Required settings:

  - UPSTREAM_URL (-u): Campaign API base URL
  - SESSION_KEY_SALT (-session-salt): Secret for session key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string (default: file:callcampaign.db)
  - DIRECTORY_TTL (-directory-ttl): District directory cache lifetime (default: 10m)
  - UPSTREAM_TIMEOUT (-upstream-timeout): Campaign API request timeout (default: 5s)

# Architecture

  - eligibility: Next-call target selection and cooldown
  - thermometer: Monthly call chart and scope toggle
  - upstream: Campaign API client and cached district directory
  - confirmation: Orchestrates one confirmation screen
  - callhistory: Per-session call records
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - metrics: Prometheus collectors
  - models: Request/response and domain types
  - auth: Session id and key generation
  - db: Connection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
