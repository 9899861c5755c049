// Copyright (c) 2026 Societly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Societly poll API.

# Handler Types

Each handler is a struct with its dependencies injected via constructor:

  - AuthHandler: resident login and token issuance (*sql.DB, Config)
  - PollHandler: poll creation, listing, status changes (*voting.Service)
  - VotingHandler: vote casting and own-ballot lookup (*voting.Service)
  - ResultsHandler: tabulated results (*voting.Service)

# Poll Lifecycle

Polls progress through three states: draft → active → closed
(draft → closed withdraws an unopened poll).

	POST /polls             → CreatePoll (admin, returns poll with options)
	POST /polls/{id}/status → SetStatus (admin, transition check)

# Voting Flow

	POST /polls/{id}/votes   → CastVote (eligibility + one ballot per voter)
	GET  /polls/{id}/my-vote → GetMyVote (caller's own ballot only)
	GET  /polls/{id}/results → GetResults (any status)
	GET  /polls              → ListPolls (society-scoped, vote state annotated)

All poll routes require a bearer principal token; middleware.WithPrincipal
rejects unauthenticated requests before these handlers run.

# Error Mapping

Handlers translate the voting core's typed errors in errors.go:
404 for unknown polls and cross-society access (existence is not disclosed),
403 for role violations, 409 for closed/ended/already-voted/illegal
transitions, 400 for invalid input, 500 for storage faults.
*/
package handlers
