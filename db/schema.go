// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported DATABASE_TYPE values
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// Open connects to the call history database and verifies the connection.
func Open(dbType, url string) (*sql.DB, error) {
	var driver string
	switch dbType {
	case TypeSQLite:
		driver = "sqlite"
	case TypePostgres:
		driver = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// In-memory sqlite databases are per connection
	if dbType == TypeSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Timestamps are epoch milliseconds so both sqlite and postgres store them
// the same way.
const schema = `
-- Caller sessions
CREATE TABLE IF NOT EXISTS call_session (
    id TEXT PRIMARY KEY,
    created_at BIGINT NOT NULL
);

-- Most recent call per session and district
CREATE TABLE IF NOT EXISTS call_record (
    session_id TEXT NOT NULL REFERENCES call_session(id) ON DELETE CASCADE,
    district_id TEXT NOT NULL,
    called_at BIGINT NOT NULL,
    PRIMARY KEY (session_id, district_id)
);

CREATE INDEX IF NOT EXISTS idx_call_record_session_id ON call_record(session_id);
`
