// Copyright (c) 2026 Societly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/societly/server/models"
)

// Ledger is the durable record of cast ballots. The at-most-one-ballot
// invariant per (poll, voter) lives in the vote table's UNIQUE constraint,
// not in application-level checks, so concurrent casts cannot race.
type Ledger struct {
	db *sql.DB
}

func NewLedger(db *sql.DB) *Ledger {
	return &Ledger{db: db}
}

// Cast records a ballot for the voter with the given option selections.
// Callers are expected to have verified eligibility and that every option
// belongs to the poll; Cast only guards the uniqueness invariant. Returns
// ErrAlreadyVoted when a ballot for (pollID, voterID) already exists.
func (l *Ledger) Cast(ctx context.Context, pollID, voterID string, optionIDs []string) (models.Vote, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Vote{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	vote := models.Vote{
		ID:         uuid.NewString(),
		PollID:     pollID,
		VoterID:    voterID,
		Selections: optionIDs,
		CastAt:     time.Now().UTC(),
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO vote (id, poll_id, voter_id, cast_at)
		VALUES ($1, $2, $3, $4)
	`, vote.ID, vote.PollID, vote.VoterID, vote.CastAt)

	if err != nil {
		if isUniqueViolation(err) {
			return models.Vote{}, ErrAlreadyVoted
		}
		return models.Vote{}, fmt.Errorf("failed to insert vote: %w", err)
	}

	for _, optionID := range optionIDs {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO vote_selection (vote_id, option_id)
			VALUES ($1, $2)
		`, vote.ID, optionID)

		if err != nil {
			return models.Vote{}, fmt.Errorf("failed to insert vote selection: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Vote{}, fmt.Errorf("failed to commit vote: %w", err)
	}

	return vote, nil
}

// HasVoted reports whether the voter already has a ballot for the poll.
func (l *Ledger) HasVoted(ctx context.Context, pollID, voterID string) (bool, error) {
	var exists bool
	err := l.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM vote
			WHERE poll_id = $1 AND voter_id = $2
		)
	`, pollID, voterID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query vote existence: %w", err)
	}
	return exists, nil
}

// GetVote returns the voter's ballot with its selections, or nil when the
// voter has not voted.
func (l *Ledger) GetVote(ctx context.Context, pollID, voterID string) (*models.Vote, error) {
	var vote models.Vote
	err := l.db.QueryRowContext(ctx, `
		SELECT id, poll_id, voter_id, cast_at
		FROM vote
		WHERE poll_id = $1 AND voter_id = $2
	`, pollID, voterID).Scan(&vote.ID, &vote.PollID, &vote.VoterID, &vote.CastAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query vote: %w", err)
	}

	rows, err := l.db.QueryContext(ctx, `
		SELECT vs.option_id
		FROM vote_selection vs
		JOIN poll_option o ON o.id = vs.option_id
		WHERE vs.vote_id = $1
		ORDER BY o.order_index
	`, vote.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query vote selections: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var optionID string
		if err := rows.Scan(&optionID); err != nil {
			return nil, fmt.Errorf("failed to scan vote selection: %w", err)
		}
		vote.Selections = append(vote.Selections, optionID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vote selections: %w", err)
	}

	return &vote, nil
}

// isUniqueViolation recognizes a unique-constraint failure from either
// driver: postgres reports SQLSTATE 23505, modernc sqlite a constraint
// message.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
