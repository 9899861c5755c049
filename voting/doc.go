// Copyright (c) 2026 Societly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting implements the poll and voting core: the vote ledger, the
result aggregator, the poll lifecycle rules and the orchestrating service.

# Components

  - Ledger: durable, race-safe ballot recording. One ballot per
    (poll, voter), enforced by the vote table's UNIQUE constraint rather
    than application-level checks.
  - Aggregator: read-time tallies. Per-option counts (zero included) and
    ballot totals; never mutates state.
  - Lifecycle: the draft → active → closed state machine (draft → closed as
    withdrawal), the derived voting-window check, and voter eligibility.
  - Service: the public operations - CreatePoll, ListPolls, CastVote,
    GetResults, GetMyVote, SetStatus - with poll-specific role and tenant
    checks.

# Principals

Every operation takes an immutable models.Principal value supplied by the
caller. The core performs no credential verification and keeps no ambient
session state.

# Errors

Expected outcomes are sentinel errors (ErrAlreadyVoted, ErrPollEnded,
ErrForbidden, ...) that callers classify with errors.Is. Storage faults are
wrapped and opaque. ErrAlreadyVoted is detected at the storage constraint,
not prevented by a prior read, because only the constraint makes the check
atomic under concurrent requests.

# Ballots

A ballot is one vote row plus one vote_selection row per chosen option.
single_choice and yes_no ballots carry exactly one selection,
multiple_choice one or more. The at-most-one-ballot invariant is identical
for all poll types.

# Lifecycle and Time

There is no background job closing past-due polls. A poll past its end date
may remain active in storage; IsVotingOpen derives the authoritative
eligibility from status and end date together, and CastVote rejects late
ballots with ErrPollEnded.
*/
package voting
