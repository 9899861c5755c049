// Copyright (c) 2026 Societly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/societly/server/cliparse"
	"github.com/societly/server/handlers"
	"github.com/societly/server/middleware"
	"github.com/societly/server/voting"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, svc *voting.Service) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	pollHandler := handlers.NewPollHandler(svc)
	votingHandler := handlers.NewVotingHandler(svc)
	resultsHandler := handlers.NewResultsHandler(svc)

	secret := cfg.TokenSecret
	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.WithPrincipal(secret, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Authentication
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(authHandler.Login))

	// Poll management (admin roles checked by the service)
	mux.HandleFunc("POST /polls", authed(pollHandler.CreatePoll))
	mux.HandleFunc("GET /polls", authed(pollHandler.ListPolls))
	mux.HandleFunc("POST /polls/{id}/status", authed(pollHandler.SetStatus))

	// Voting operations
	mux.HandleFunc("POST /polls/{id}/votes", authed(votingHandler.CastVote))
	mux.HandleFunc("GET /polls/{id}/my-vote", authed(votingHandler.GetMyVote))

	// Results retrieval
	mux.HandleFunc("GET /polls/{id}/results", authed(resultsHandler.GetResults))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("societly API v1"))
	})

	return mux
}
