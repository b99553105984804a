// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/callcampaign/confirmation"
	"github.com/danielhkuo/callcampaign/eligibility"
	"github.com/danielhkuo/callcampaign/middleware"
	"github.com/danielhkuo/callcampaign/models"
	"github.com/danielhkuo/callcampaign/upstream"
)

type ConfirmationHandler struct {
	service  *confirmation.Service
	sessions *SessionHandler
}

func NewConfirmationHandler(service *confirmation.Service, sessions *SessionHandler) *ConfirmationHandler {
	return &ConfirmationHandler{service: service, sessions: sessions}
}

// GetThankYou handles GET /calls/thank-you
// Query: state, district (required), d (home district), t (tracking token),
// c (caller id), scope (district or overall)
func (h *ConfirmationHandler) GetThankYou(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := confirmation.Params{
		CalledState:        q.Get("state"),
		CalledNumber:       q.Get("district"),
		HomeDistrictNumber: q.Get("d"),
		TrackingToken:      q.Get("t"),
		CallerID:           q.Get("c"),
		Scope:              q.Get("scope"),
	}

	if params.CalledState == "" || params.CalledNumber == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "state and district are required")
		return
	}
	if params.Scope != "" && params.Scope != models.ScopeDistrict && params.Scope != models.ScopeOverall {
		middleware.ErrorResponse(w, http.StatusBadRequest, "scope must be one of: district, overall")
		return
	}

	history, ok := h.sessions.History(w, r)
	if !ok {
		return
	}

	result, err := h.service.Confirm(r.Context(), params, history)
	if err != nil {
		var resErr *eligibility.ResolutionError
		var fetchErr *upstream.FetchError
		switch {
		case errors.As(err, &resErr):
			slog.Warn("called district not found", "state", resErr.State, "number", resErr.Number)
			middleware.ErrorResponse(w, http.StatusNotFound, "No district found")
		case errors.As(err, &fetchErr):
			slog.Error("failed to fetch districts", "error", err)
			middleware.ErrorResponse(w, http.StatusBadGateway, "District directory unavailable")
		default:
			slog.Error("failed to build confirmation", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to build confirmation")
		}
		return
	}

	response := models.ConfirmationResponse{
		District:            result.District,
		HomeDistrictNumber:  params.HomeDistrictNumber,
		TrackingToken:       params.TrackingToken,
		CallerID:            params.CallerID,
		EligibleCallTargets: result.EligibleCallTargets,
		Stats:               result.StatsView(),
	}
	if result.StatsErr != nil {
		response.StatsError = "Call stats unavailable"
	}

	middleware.JSONResponse(w, http.StatusOK, response)
}
