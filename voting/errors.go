// Copyright (c) 2026 Societly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import "errors"

// Typed errors returned by the voting core. Handlers map these to HTTP
// statuses with errors.Is; anything else is an opaque storage failure.
var (
	// ErrForbidden: the principal's role does not allow the mutation.
	ErrForbidden = errors.New("forbidden")

	// ErrTenantMismatch: the principal does not belong to the poll's society.
	// Surfaced to clients as not-found so poll existence never leaks across
	// societies.
	ErrTenantMismatch = errors.New("society mismatch")

	// ErrPollNotFound: the referenced poll does not exist.
	ErrPollNotFound = errors.New("poll not found")

	// ErrPollNotActive: voting attempted while the poll is draft or closed.
	ErrPollNotActive = errors.New("poll is not active")

	// ErrPollEnded: voting attempted after the poll's end date, even if the
	// stored status is still active.
	ErrPollEnded = errors.New("poll has ended")

	// ErrInvalidOptions: option set rejected (fewer than 2 usable options at
	// creation, or a ballot whose selections don't fit the poll type).
	ErrInvalidOptions = errors.New("invalid options")

	// ErrInvalidTransition: illegal status change requested.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrAlreadyVoted: the voter already has a ballot for this poll. An
	// expected user-facing outcome, detected at the storage constraint, never
	// a server fault.
	ErrAlreadyVoted = errors.New("already voted")

	// ErrInvalidInput: malformed creation parameters (empty title, end date
	// not after start date, unknown poll type).
	ErrInvalidInput = errors.New("invalid input")
)
