// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/callcampaign/auth"
	"github.com/danielhkuo/callcampaign/callhistory"
	"github.com/danielhkuo/callcampaign/cliparse"
	"github.com/danielhkuo/callcampaign/eligibility"
	"github.com/danielhkuo/callcampaign/metrics"
	"github.com/danielhkuo/callcampaign/middleware"
	"github.com/danielhkuo/callcampaign/models"
)

type SessionHandler struct {
	store *callhistory.Store
	cfg   cliparse.Config
	now   func() time.Time
}

func NewSessionHandler(store *callhistory.Store, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{store: store, cfg: cfg, now: time.Now}
}

// CreateSession handles POST /sessions
// Starts an empty call history and returns its id and key
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := auth.GenerateSessionID()
	if err != nil {
		slog.Error("failed to generate session ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	if err := h.store.CreateSession(r.Context(), sessionID, h.now()); err != nil {
		slog.Error("failed to create session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("session created", "session_id", sessionID)
	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{
		SessionID:  sessionID,
		SessionKey: auth.GenerateSessionKey(sessionID, h.cfg.SessionKeySalt),
	})
}

// RecordCall handles POST /sessions/{id}/calls
// Records a completed call, superseding any earlier call to the same district
func (h *SessionHandler) RecordCall(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.authorize(w, r, r.PathValue("id"))
	if !ok {
		return
	}

	var req models.RecordCallRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	req.DistrictID = strings.TrimSpace(req.DistrictID)
	if req.DistrictID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "district_id is required")
		return
	}

	calledAt := h.now()
	err := h.store.RecordCall(r.Context(), sessionID, req.DistrictID, calledAt)
	if errors.Is(err, callhistory.ErrSessionNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		slog.Error("failed to record call", "session_id", sessionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	metrics.CallsRecordedTotal.Inc()

	middleware.JSONResponse(w, http.StatusCreated, models.RecordCallResponse{
		DistrictID: req.DistrictID,
		CalledAt:   calledAt.UnixMilli(),
	})
}

// GetCalls handles GET /sessions/{id}/calls
func (h *SessionHandler) GetCalls(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.authorize(w, r, r.PathValue("id"))
	if !ok {
		return
	}

	exists, err := h.store.SessionExists(r.Context(), sessionID)
	if err != nil {
		slog.Error("failed to query session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}

	history, err := h.store.History(r.Context(), sessionID)
	if err != nil {
		slog.Error("failed to load call history", "session_id", sessionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CallHistoryResponse{
		SessionID: sessionID,
		Calls:     history,
	})
}

// History loads the call history named by the X-Session-ID header.
// It returns nil history when the header is absent.
func (h *SessionHandler) History(w http.ResponseWriter, r *http.Request) (eligibility.CallHistory, bool) {
	sessionID := r.Header.Get("X-Session-ID")
	if sessionID == "" {
		return nil, true
	}

	sessionID, ok := h.authorize(w, r, sessionID)
	if !ok {
		return nil, false
	}

	history, err := h.store.History(r.Context(), sessionID)
	if err != nil {
		slog.Error("failed to load call history", "session_id", sessionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return nil, false
	}
	return history, true
}

// authorize validates the session id and its X-Session-Key header, writing
// the error response itself when either is wrong.
func (h *SessionHandler) authorize(w http.ResponseWriter, r *http.Request, sessionID string) (string, bool) {
	if err := auth.ValidateSessionID(sessionID); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid session id")
		return "", false
	}

	sessionKey := r.Header.Get("X-Session-Key")
	if sessionKey == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Session-Key header required")
		return "", false
	}
	if err := auth.ValidateSessionKey(sessionID, sessionKey, h.cfg.SessionKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid session key")
		return "", false
	}
	return sessionID, true
}
