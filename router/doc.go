// Copyright (c) 2026 Societly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Societly poll API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, svc)

# Endpoints

Health:

	GET /health

Authentication:

	POST /auth/login

Poll management (bearer token; admin role enforced by the voting service):

	POST /polls             - Create poll with options
	POST /polls/{id}/status - Lifecycle transition

Voting and results (bearer token):

	GET  /polls                 - List society polls with own vote state
	POST /polls/{id}/votes      - Cast a ballot
	GET  /polls/{id}/my-vote    - Caller's own ballot
	GET  /polls/{id}/results    - Tabulated results (any status)

# Handler Initialization

The router creates handler instances with dependency injection:

	authHandler := handlers.NewAuthHandler(db, cfg)
	pollHandler := handlers.NewPollHandler(svc)
	votingHandler := handlers.NewVotingHandler(svc)
	resultsHandler := handlers.NewResultsHandler(svc)

All poll routes are wrapped in middleware.WithPrincipal, so handlers always
see an authenticated principal.
*/
package router
