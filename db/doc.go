// Copyright (c) 2026 Societly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Opening a Connection

Open selects the driver by database type ("postgres" or "sqlite"):

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

Postgres uses github.com/lib/pq; sqlite uses modernc.org/sqlite (cgo-free).
Queries throughout the codebase use $1-style placeholders, which both
drivers accept.

# Schema Creation

CreateSchema initializes all required tables for the selected dialect:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - society: Tenants (societies)
  - resident: Principals with role and bcrypt password hash
  - poll: Poll metadata and lifecycle state
  - poll_option: Voting options per poll with display order
  - vote: One ballot per voter per poll
  - vote_selection: Chosen options per ballot

# Relationships

	society 1──* resident
	society 1──* poll
	poll 1──* poll_option
	poll 1──* vote
	vote 1──* vote_selection

# Constraints

The uniqueness constraints that carry invariants:

  - resident.email (unique)
  - poll_option.(poll_id, order_index) (unique)
  - vote.(poll_id, voter_id) (unique) - at most one ballot per voter per
    poll, enforced here rather than by application-level checks so that
    concurrent casts cannot race
*/
package db
