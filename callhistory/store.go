// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package callhistory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/callcampaign/eligibility"
)

var ErrSessionNotFound = errors.New("session not found")

// Store keeps the most recent call per district for each caller session.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateSession registers a new, empty call history.
func (s *Store) CreateSession(ctx context.Context, sessionID string, createdAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO call_session (id, created_at)
		VALUES ($1, $2)
	`, sessionID, createdAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// SessionExists reports whether sessionID was created.
func (s *Store) SessionExists(ctx context.Context, sessionID string) (bool, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM call_session WHERE id = $1
	`, sessionID).Scan(&id)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query session: %w", err)
	}
	return true, nil
}

// RecordCall stores a completed call. An older timestamp never replaces a
// newer one for the same district.
func (s *Store) RecordCall(ctx context.Context, sessionID, districtID string, calledAt time.Time) error {
	exists, err := s.SessionExists(ctx, sessionID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrSessionNotFound
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO call_record (session_id, district_id, called_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id, district_id)
		DO UPDATE SET called_at = excluded.called_at
		WHERE excluded.called_at > call_record.called_at
	`, sessionID, districtID, calledAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to record call: %w", err)
	}
	return nil
}

// History returns the session's calls keyed by district ID.
func (s *Store) History(ctx context.Context, sessionID string) (eligibility.CallHistory, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT district_id, called_at
		FROM call_record
		WHERE session_id = $1
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query call history: %w", err)
	}
	defer rows.Close()

	history := eligibility.CallHistory{}
	for rows.Next() {
		var districtID string
		var calledAt int64
		if err := rows.Scan(&districtID, &calledAt); err != nil {
			return nil, fmt.Errorf("failed to scan call record: %w", err)
		}
		history[districtID] = calledAt
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read call history: %w", err)
	}
	return history, nil
}
