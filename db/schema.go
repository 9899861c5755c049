// Copyright (c) 2026 Societly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the configured database. dbType is "postgres" or "sqlite".
func Open(dbType, url string) (*sql.DB, error) {
	switch dbType {
	case "postgres":
		return sql.Open("postgres", url)
	case "sqlite":
		conn, err := sql.Open("sqlite", url)
		if err != nil {
			return nil, err
		}
		// sqlite allows a single writer; serialize through one connection
		// so concurrent casts surface as constraint violations, not SQLITE_BUSY.
		conn.SetMaxOpenConns(1)
		return conn, nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dbType string) error {
	schema := schemaPostgres
	if dbType == "sqlite" {
		schema = schemaSQLite
	}

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schemaPostgres = `
-- Societies (tenants)
CREATE TABLE IF NOT EXISTS society (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

-- Residents (principals)
CREATE TABLE IF NOT EXISTS resident (
    id TEXT PRIMARY KEY,
    society_id TEXT REFERENCES society(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'resident' CHECK (role IN ('super_admin', 'admin', 'resident')),
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_resident_society_id ON resident(society_id);

-- Polls
CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    society_id TEXT NOT NULL REFERENCES society(id) ON DELETE CASCADE,
    creator_id TEXT NOT NULL REFERENCES resident(id),
    title TEXT NOT NULL,
    description TEXT,
    poll_type TEXT NOT NULL DEFAULT 'single_choice' CHECK (poll_type IN ('single_choice', 'multiple_choice', 'yes_no')),
    status TEXT NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'active', 'closed')),
    is_anonymous BOOLEAN NOT NULL DEFAULT FALSE,
    start_date TIMESTAMP NOT NULL,
    end_date TIMESTAMP NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_poll_society_id ON poll(society_id);
CREATE INDEX IF NOT EXISTS idx_poll_status ON poll(status);

-- Options
CREATE TABLE IF NOT EXISTS poll_option (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    option_text TEXT NOT NULL,
    order_index INTEGER NOT NULL,
    UNIQUE (poll_id, order_index)
);

CREATE INDEX IF NOT EXISTS idx_poll_option_poll_id ON poll_option(poll_id);

-- Votes (one ballot per voter per poll)
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    voter_id TEXT NOT NULL REFERENCES resident(id),
    cast_at TIMESTAMP NOT NULL DEFAULT NOW(),
    UNIQUE (poll_id, voter_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_poll_id ON vote(poll_id);

-- Vote selections (chosen options per ballot)
CREATE TABLE IF NOT EXISTS vote_selection (
    vote_id TEXT NOT NULL REFERENCES vote(id) ON DELETE CASCADE,
    option_id TEXT NOT NULL REFERENCES poll_option(id) ON DELETE CASCADE,
    PRIMARY KEY (vote_id, option_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_selection_option_id ON vote_selection(option_id);
`

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS society (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS resident (
    id TEXT PRIMARY KEY,
    society_id TEXT REFERENCES society(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'resident' CHECK (role IN ('super_admin', 'admin', 'resident')),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_resident_society_id ON resident(society_id);

CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    society_id TEXT NOT NULL REFERENCES society(id) ON DELETE CASCADE,
    creator_id TEXT NOT NULL REFERENCES resident(id),
    title TEXT NOT NULL,
    description TEXT,
    poll_type TEXT NOT NULL DEFAULT 'single_choice' CHECK (poll_type IN ('single_choice', 'multiple_choice', 'yes_no')),
    status TEXT NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'active', 'closed')),
    is_anonymous BOOLEAN NOT NULL DEFAULT FALSE,
    start_date TIMESTAMP NOT NULL,
    end_date TIMESTAMP NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_poll_society_id ON poll(society_id);
CREATE INDEX IF NOT EXISTS idx_poll_status ON poll(status);

CREATE TABLE IF NOT EXISTS poll_option (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    option_text TEXT NOT NULL,
    order_index INTEGER NOT NULL,
    UNIQUE (poll_id, order_index)
);

CREATE INDEX IF NOT EXISTS idx_poll_option_poll_id ON poll_option(poll_id);

CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    voter_id TEXT NOT NULL REFERENCES resident(id),
    cast_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (poll_id, voter_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_poll_id ON vote(poll_id);

CREATE TABLE IF NOT EXISTS vote_selection (
    vote_id TEXT NOT NULL REFERENCES vote(id) ON DELETE CASCADE,
    option_id TEXT NOT NULL REFERENCES poll_option(id) ON DELETE CASCADE,
    PRIMARY KEY (vote_id, option_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_selection_option_id ON vote_selection(option_id);
`
