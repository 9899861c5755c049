// Copyright (c) 2026 Societly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/societly/server/middleware"
	"github.com/societly/server/voting"
)

type ResultsHandler struct {
	svc *voting.Service
}

func NewResultsHandler(svc *voting.Service) *ResultsHandler {
	return &ResultsHandler{svc: svc}
}

// GetResults handles GET /polls/:id/results
// Available regardless of poll status; closed polls keep serving results.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	results, err := h.svc.GetResults(r.Context(), principal, pollID)
	if err != nil {
		writeVotingError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}
