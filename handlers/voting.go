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

type VotingHandler struct {
	svc *voting.Service
}

func NewVotingHandler(svc *voting.Service) *VotingHandler {
	return &VotingHandler{svc: svc}
}

// CastVote handles POST /polls/:id/votes
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
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

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	vote, err := h.svc.CastVote(r.Context(), principal, pollID, req.OptionIDs)
	if err != nil {
		writeVotingError(w, err)
		return
	}

	slog.Info("vote cast", "poll_id", pollID, "vote_id", vote.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		Vote:    vote,
		Message: "Vote recorded",
	})
}

// GetMyVote handles GET /polls/:id/my-vote
func (h *VotingHandler) GetMyVote(w http.ResponseWriter, r *http.Request) {
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

	vote, err := h.svc.GetMyVote(r.Context(), principal, pollID)
	if err != nil {
		writeVotingError(w, err)
		return
	}
	if vote == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "You have not voted on this poll")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, vote)
}
