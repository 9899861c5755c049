// Copyright (c) 2026 Societly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - LoginRequest: email, password
  - CreatePollRequest: title, description, poll_type, end_date, options, ...
  - CastVoteRequest: option_ids
  - SetStatusRequest: status

# Response Types

Types for JSON responses:

  - LoginResponse: token, principal
  - CastVoteResponse: vote, message
  - PollListItem: poll, options, has_voted, my_vote, voting_open, ends_in
  - PollResults: poll, counts, total_votes, leading_option_id
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Principal: authenticated actor with role and society scope
  - Poll: poll metadata and lifecycle state
  - PollOption: voting option with display order
  - Vote: one ballot with its selected option IDs
  - OptionCount: per-option tally

# Constants

Status values:

	StatusDraft  = "draft"
	StatusActive = "active"
	StatusClosed = "closed"

Poll types:

	TypeSingleChoice   = "single_choice"
	TypeMultipleChoice = "multiple_choice"
	TypeYesNo          = "yes_no"

Roles:

	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleResident   = "resident"
*/
package models
