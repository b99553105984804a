// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the call history database and creates its schema.

	conn, err := db.Open(db.TypeSQLite, "file:callcampaign.db")
	err = db.CreateSchema(conn)

sqlite (modernc.org/sqlite) is the default; postgres uses lib/pq. Queries
use $N placeholders, which both drivers accept.

# Tables

  - call_session: one row per session
  - call_record: latest call per (session, district), called_at in epoch ms

	call_session 1──* call_record
*/
package db
