// Copyright (c) 2026 Societly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"time"

	"github.com/societly/server/models"
)

// transitions lists the legal status changes. Status is monotonic:
// draft → active → closed, with draft → closed as a withdrawal path.
var transitions = map[string][]string{
	models.StatusDraft:  {models.StatusActive, models.StatusClosed},
	models.StatusActive: {models.StatusClosed},
	models.StatusClosed: {},
}

// ValidTransition reports whether from → to is a legal status change.
func ValidTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTransition returns ErrInvalidTransition when from → to is not legal.
func CheckTransition(from, to string) error {
	if !ValidTransition(from, to) {
		return ErrInvalidTransition
	}
	return nil
}

// IsVotingOpen reports whether votes may be cast at the given instant. The
// derived condition is authoritative: a poll past its end date stays active
// in storage (there is no background closer), so the stored status alone is
// not enough.
func IsVotingOpen(poll models.Poll, now time.Time) bool {
	return poll.Status == models.StatusActive && !now.After(poll.EndDate)
}

// AssertEligibleToVote checks that the principal may vote on the poll right
// now. Error precedence: ErrPollNotFound, ErrTenantMismatch,
// ErrPollNotActive, ErrPollEnded.
func AssertEligibleToVote(poll *models.Poll, principal models.Principal, now time.Time) error {
	if poll == nil {
		return ErrPollNotFound
	}
	if principal.SocietyID != poll.SocietyID {
		return ErrTenantMismatch
	}
	if poll.Status != models.StatusActive {
		return ErrPollNotActive
	}
	if now.After(poll.EndDate) {
		return ErrPollEnded
	}
	return nil
}
