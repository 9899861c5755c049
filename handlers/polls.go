// Copyright (c) 2026 Societly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/societly/server/middleware"
	"github.com/societly/server/models"
	"github.com/societly/server/voting"
)

type PollHandler struct {
	svc *voting.Service
}

func NewPollHandler(svc *voting.Service) *PollHandler {
	return &PollHandler{svc: svc}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	created, err := h.svc.CreatePoll(r.Context(), principal, req)
	if err != nil {
		writeVotingError(w, err)
		return
	}

	slog.Info("poll created",
		"poll_id", created.Poll.ID,
		"society_id", created.Poll.SocietyID,
		"creator_id", principal.ID,
	)

	middleware.JSONResponse(w, http.StatusCreated, created)
}

// ListPolls handles GET /polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	items, err := h.svc.ListPolls(r.Context(), principal)
	if err != nil {
		writeVotingError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, items)
}

// SetStatus handles POST /polls/:id/status
func (h *PollHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
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

	var req models.SetStatusRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Status == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "status is required")
		return
	}

	poll, err := h.svc.SetStatus(r.Context(), principal, pollID, req.Status)
	if err != nil {
		writeVotingError(w, err)
		return
	}

	slog.Info("poll status changed", "poll_id", pollID, "status", req.Status)

	middleware.JSONResponse(w, http.StatusOK, poll)
}
