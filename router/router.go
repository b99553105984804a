// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/callcampaign/callhistory"
	"github.com/danielhkuo/callcampaign/cliparse"
	"github.com/danielhkuo/callcampaign/confirmation"
	"github.com/danielhkuo/callcampaign/handlers"
	"github.com/danielhkuo/callcampaign/metrics"
	"github.com/danielhkuo/callcampaign/middleware"
	"github.com/danielhkuo/callcampaign/upstream"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Campaign API collaborators
	client := upstream.NewClient(cfg.UpstreamURL, cfg.UpstreamTimeout)
	directory := upstream.NewDirectory(client, cfg.DirectoryTTL)
	service := confirmation.NewService(directory, client)

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(callhistory.NewStore(db), cfg)
	confirmationHandler := handlers.NewConfirmationHandler(service, sessionHandler)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", metrics.Handler())

	// Confirmation screen
	mux.HandleFunc("GET /calls/thank-you", middleware.WithLogging(confirmationHandler.GetThankYou))

	// Session call history
	mux.HandleFunc("POST /sessions", middleware.WithLogging(sessionHandler.CreateSession))
	mux.HandleFunc("POST /sessions/{id}/calls", middleware.WithLogging(sessionHandler.RecordCall))
	mux.HandleFunc("GET /sessions/{id}/calls", middleware.WithLogging(sessionHandler.GetCalls))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("callcampaign API v1"))
	})

	return mux
}
