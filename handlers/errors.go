// Copyright (c) 2026 Societly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/societly/server/middleware"
	"github.com/societly/server/voting"
)

// writeVotingError maps the voting core's typed errors to HTTP responses.
// ErrTenantMismatch deliberately answers 404: a caller outside the poll's
// society must not learn that the poll exists.
func writeVotingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, voting.ErrForbidden):
		middleware.ErrorResponse(w, http.StatusForbidden, "Not allowed for your role")
	case errors.Is(err, voting.ErrPollNotFound), errors.Is(err, voting.ErrTenantMismatch):
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
	case errors.Is(err, voting.ErrPollNotActive):
		middleware.ErrorResponse(w, http.StatusConflict, "Poll is not open for voting")
	case errors.Is(err, voting.ErrPollEnded):
		middleware.ErrorResponse(w, http.StatusConflict, "Poll has ended")
	case errors.Is(err, voting.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusConflict, "You have already voted on this poll")
	case errors.Is(err, voting.ErrInvalidTransition):
		middleware.ErrorResponse(w, http.StatusConflict, "Invalid status change")
	case errors.Is(err, voting.ErrInvalidOptions):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, voting.ErrInvalidInput):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("voting operation failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}
