// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package callhistory

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/callcampaign/db"
	"github.com/danielhkuo/callcampaign/eligibility"
)

func setupSQLite(t *testing.T) *Store {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.CreateSchema(conn))
	return NewStore(conn)
}

func TestStore_RecordAndHistory(t *testing.T) {
	store := setupSQLite(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.CreateSession(ctx, "session-1", base))
	require.NoError(t, store.CreateSession(ctx, "session-2", base))

	exists, err := store.SessionExists(ctx, "session-1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.SessionExists(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.RecordCall(ctx, "session-1", "101", base))
	require.NoError(t, store.RecordCall(ctx, "session-1", "105", base.Add(time.Minute)))
	require.NoError(t, store.RecordCall(ctx, "session-2", "101", base.Add(2*time.Minute)))

	// A newer call supersedes, an older one is ignored.
	require.NoError(t, store.RecordCall(ctx, "session-1", "101", base.Add(10*time.Minute)))
	require.NoError(t, store.RecordCall(ctx, "session-1", "105", base))

	history, err := store.History(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, eligibility.CallHistory{
		"101": base.Add(10 * time.Minute).UnixMilli(),
		"105": base.Add(time.Minute).UnixMilli(),
	}, history)

	empty, err := store.History(ctx, "nope")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestStore_RecordCallUnknownSession(t *testing.T) {
	store := setupSQLite(t)

	err := store.RecordCall(context.Background(), "missing", "101", time.Now())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_DuplicateSession(t *testing.T) {
	store := setupSQLite(t)
	ctx := context.Background()

	require.NoError(t, store.CreateSession(ctx, "dup", time.Now()))
	assert.Error(t, store.CreateSession(ctx, "dup", time.Now()))
}

func TestStore_HistoryQueryError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	store := NewStore(conn)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT district_id, called_at FROM call_record WHERE session_id = $1")).
		WithArgs("session-1").
		WillReturnError(errors.New("connection reset"))

	history, err := store.History(context.Background(), "session-1")
	assert.Nil(t, history)
	assert.ErrorContains(t, err, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_HistoryRows(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	store := NewStore(conn)
	rows := sqlmock.NewRows([]string{"district_id", "called_at"}).
		AddRow("101", int64(1710500000000)).
		AddRow("102", int64(1710503600000))
	mock.ExpectQuery(regexp.QuoteMeta("FROM call_record")).
		WithArgs("session-1").
		WillReturnRows(rows)

	history, err := store.History(context.Background(), "session-1")
	require.NoError(t, err)
	assert.Equal(t, eligibility.CallHistory{"101": 1710500000000, "102": 1710503600000}, history)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_RecordCallWrites(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	store := NewStore(conn)
	calledAt := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM call_session WHERE id = $1")).
		WithArgs("session-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("session-1"))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO call_record")).
		WithArgs("session-1", "101", calledAt.UnixMilli()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.RecordCall(context.Background(), "session-1", "101", calledAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}
