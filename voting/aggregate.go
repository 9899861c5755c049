// Copyright (c) 2026 Societly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/societly/server/models"
)

// Aggregator computes read-time tallies from the vote ledger. It never
// mutates state.
type Aggregator struct {
	db *sql.DB
}

func NewAggregator(db *sql.DB) *Aggregator {
	return &Aggregator{db: db}
}

// ResultsFor returns one row per option of the poll, in display order,
// with its selection count. Options nobody picked appear with a count of 0.
func (a *Aggregator) ResultsFor(ctx context.Context, pollID string) ([]models.OptionCount, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT o.id, o.option_text, o.order_index, COUNT(vs.option_id)
		FROM poll_option o
		LEFT JOIN vote_selection vs ON vs.option_id = o.id
		WHERE o.poll_id = $1
		GROUP BY o.id, o.option_text, o.order_index
		ORDER BY o.order_index
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	counts := []models.OptionCount{}
	for rows.Next() {
		var c models.OptionCount
		if err := rows.Scan(&c.OptionID, &c.OptionText, &c.OrderIndex, &c.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read result rows: %w", err)
	}

	return counts, nil
}

// TotalVotes returns the number of ballots cast for the poll. Each voter
// contributes exactly one ballot regardless of poll type.
func (a *Aggregator) TotalVotes(ctx context.Context, pollID string) (int, error) {
	var total int
	err := a.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM vote WHERE poll_id = $1
	`, pollID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return total, nil
}

// LeadingOption returns the option ID with the highest count. Ties break to
// the lowest order index; counts must already be in order-index order, so the
// first maximum wins. Returns "" when no votes have been cast.
func LeadingOption(counts []models.OptionCount) string {
	leading := ""
	best := 0
	for _, c := range counts {
		if c.VoteCount > best {
			best = c.VoteCount
			leading = c.OptionID
		}
	}
	return leading
}
