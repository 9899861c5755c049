package models

import "time"

// Poll status constants
const (
	StatusDraft  = "draft"
	StatusActive = "active"
	StatusClosed = "closed"
)

// Poll type constants
const (
	TypeSingleChoice   = "single_choice"
	TypeMultipleChoice = "multiple_choice"
	TypeYesNo          = "yes_no"
)

// Principal role constants
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleResident   = "resident"
)

// Principal is the authenticated actor attached to each request.
// SocietyID is empty for super admins.
type Principal struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	SocietyID string `json:"society_id,omitempty"`
}

// IsAdmin reports whether the principal may perform poll mutations.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin || p.Role == RoleSuperAdmin
}

// Request types

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreatePollRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	SocietyID   string     `json:"society_id,omitempty"` // super_admin only
	PollType    string     `json:"poll_type"`
	IsAnonymous bool       `json:"is_anonymous"`
	Status      string     `json:"status,omitempty"` // draft (default) or active
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     time.Time  `json:"end_date"`
	Options     []string   `json:"options"`
}

type CastVoteRequest struct {
	OptionIDs []string `json:"option_ids"`
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

// Response types

type LoginResponse struct {
	Token     string    `json:"token"`
	Principal Principal `json:"principal"`
}

type CastVoteResponse struct {
	Vote    Vote   `json:"vote"`
	Message string `json:"message"`
}

// Domain types

type Poll struct {
	ID          string    `json:"id"`
	SocietyID   string    `json:"society_id"`
	CreatorID   string    `json:"creator_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PollType    string    `json:"poll_type"`
	Status      string    `json:"status"`
	IsAnonymous bool      `json:"is_anonymous"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	CreatedAt   time.Time `json:"created_at"`
}

type PollOption struct {
	ID         string `json:"id"`
	PollID     string `json:"poll_id"`
	OptionText string `json:"option_text"`
	OrderIndex int    `json:"order_index"`
}

type PollWithOptions struct {
	Poll    Poll         `json:"poll"`
	Options []PollOption `json:"options"`
}

// Vote is one ballot. Selections holds the chosen option IDs: exactly one
// for single_choice and yes_no polls, one or more for multiple_choice.
type Vote struct {
	ID         string    `json:"id"`
	PollID     string    `json:"poll_id"`
	VoterID    string    `json:"voter_id"`
	Selections []string  `json:"selections"`
	CastAt     time.Time `json:"cast_at"`
}

// PollListItem annotates a poll with the viewing principal's own vote state.
type PollListItem struct {
	Poll       Poll         `json:"poll"`
	Options    []PollOption `json:"options"`
	HasVoted   bool         `json:"has_voted"`
	MyVote     *Vote        `json:"my_vote,omitempty"`
	VotingOpen bool         `json:"voting_open"`
	EndsIn     string       `json:"ends_in,omitempty"`
}

// OptionCount is one row of tabulated results.
type OptionCount struct {
	OptionID   string `json:"option_id"`
	OptionText string `json:"option_text"`
	OrderIndex int    `json:"order_index"`
	VoteCount  int    `json:"vote_count"`
}

// PollResults is the aggregate view of a poll. LeadingOptionID is the option
// with the highest count, ties broken by lowest order index; empty when the
// poll has no votes.
type PollResults struct {
	Poll            Poll          `json:"poll"`
	Counts          []OptionCount `json:"counts"`
	TotalVotes      int           `json:"total_votes"`
	LeadingOptionID string        `json:"leading_option_id,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
