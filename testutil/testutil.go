// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danielhkuo/callcampaign/auth"
	"github.com/danielhkuo/callcampaign/cliparse"
	"github.com/danielhkuo/callcampaign/db"
)

// SetupTestDB creates a fresh in-memory sqlite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration pointing at upstreamURL
func GetTestConfig(upstreamURL string) cliparse.Config {
	return cliparse.Config{
		Port:            3318,
		DatabaseURL:     ":memory:",
		DatabaseType:    db.TypeSQLite,
		UpstreamURL:     upstreamURL,
		SessionKeySalt:  "test-session-salt",
		DirectoryTTL:    time.Minute,
		UpstreamTimeout: time.Second,
	}
}

// DefaultDistricts is the directory served by NewUpstream, in the campaign
// API's wire format
const DefaultDistricts = `[
	{"districtId": 101, "state": "CA", "number": -1, "status": "active"},
	{"districtId": 102, "state": "CA", "number": -2, "status": "active"},
	{"districtId": 112, "state": "CA", "number": "12", "status": "active"},
	{"districtId": 105, "state": "CA", "number": 5, "status": "active"},
	{"districtId": 107, "state": "CA", "number": 7, "status": "covid_paused"}
]`

// Upstream is a fake campaign API
type Upstream struct {
	*httptest.Server
	Routes map[string]string
	Fail   map[string]int
	Hits   atomic.Int32
}

// NewUpstream starts a fake campaign API serving DefaultDistricts, stats for
// district 112 and overall stats. Routes and Fail may be changed before use.
func NewUpstream(t *testing.T) *Upstream {
	t.Helper()

	u := &Upstream{
		Routes: map[string]string{
			"/districts": DefaultDistricts,
			"/stats/112": `{"callsByMonth": {"2024-01": 10, "2024-02": 0, "2024-03": 25}}`,
			"/stats":     `{"callsByMonth": {"2024-01": 1200, "2024-02": 800, "2024-03": 1500}}`,
		},
		Fail: map[string]int{},
	}
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.Hits.Add(1)
		if status, ok := u.Fail[r.URL.Path]; ok {
			w.WriteHeader(status)
			return
		}
		body, ok := u.Routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(strings.TrimSpace(body)))
	}))
	t.Cleanup(u.Close)

	return u
}

// CreateTestSession inserts a session and returns its id and key
func CreateTestSession(t *testing.T, conn *sql.DB, cfg cliparse.Config) (sessionID, sessionKey string) {
	t.Helper()

	sessionID, err := auth.GenerateSessionID()
	if err != nil {
		t.Fatalf("Failed to generate session id: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO call_session (id, created_at)
		VALUES ($1, $2)
	`, sessionID, time.Now().UnixMilli())
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	return sessionID, auth.GenerateSessionKey(sessionID, cfg.SessionKeySalt)
}

// AddTestCall records a call to districtID at calledAt
func AddTestCall(t *testing.T, conn *sql.DB, sessionID, districtID string, calledAt time.Time) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO call_record (session_id, district_id, called_at)
		VALUES ($1, $2, $3)
	`, sessionID, districtID, calledAt.UnixMilli())
	if err != nil {
		t.Fatalf("Failed to create test call: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
