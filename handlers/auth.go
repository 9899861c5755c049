// Copyright (c) 2026 Societly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/societly/server/auth"
	"github.com/societly/server/cliparse"
	"github.com/societly/server/middleware"
	"github.com/societly/server/models"
)

type AuthHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAuthHandler(db *sql.DB, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

// Login handles POST /auth/login
// Verifies resident credentials and issues a principal token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email and password are required")
		return
	}

	var (
		principal    models.Principal
		societyID    sql.NullString
		passwordHash string
	)
	err := h.db.QueryRowContext(r.Context(), `
		SELECT id, society_id, role, password_hash
		FROM resident
		WHERE email = $1
	`, email).Scan(&principal.ID, &societyID, &principal.Role, &passwordHash)

	if err == sql.ErrNoRows {
		// Same response as a wrong password; don't reveal which accounts exist
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		slog.Error("failed to query resident", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := auth.CheckPassword(passwordHash, req.Password); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	principal.SocietyID = societyID.String

	token, err := auth.IssueToken(principal, h.cfg.TokenSecret, time.Duration(h.cfg.TokenTTLMin)*time.Minute)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("resident logged in", "resident_id", principal.ID, "role", principal.Role)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Token:     token,
		Principal: principal,
	})
}
