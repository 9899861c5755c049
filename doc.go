// Copyright (c) 2026 Societly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Societly poll API server.

Societly is a residential-society management platform; this server hosts its
poll and voting subsystem: society-scoped polls with a bounded voting window
and a one-ballot-per-resident guarantee enforced at the storage layer.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... TOKEN_SECRET=... go run main.go

Or with flags:

	go run main.go -p 4270 -d "postgres://..." -token-secret "..."

# Configuration

Required settings:

  - DATABASE_URL (-d): Connection string
  - TOKEN_SECRET (-token-secret): Secret for principal token signing

Optional settings:

  - PORT (-p): Server port (default: 4270)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - REDIS_ADDR (-redis): Redis address for poll lifecycle events
  - TOKEN_TTL_MINUTES (-token-ttl): Token lifetime (default: 480)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - voting: The core - vote ledger, aggregator, lifecycle rules, service
  - handlers: HTTP request handlers (auth, polls, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Principal injection, CORS, logging, JSON helpers
  - models: Domain and request/response types
  - auth: Password hashing and principal tokens
  - notify: Fire-and-forget poll lifecycle events (redis pub/sub)
  - db: Driver selection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
