// Copyright (c) 2026 Societly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/societly/server/models"
	"github.com/societly/server/notify"
)

// Service composes the ledger, aggregator and lifecycle rules behind the
// public poll operations. It owns the poll-specific role and tenant checks;
// authentication itself happens upstream and arrives as a Principal value.
type Service struct {
	db       *sql.DB
	ledger   *Ledger
	agg      *Aggregator
	notifier notify.Dispatcher
}

// NewService wires a Service. A nil notifier falls back to notify.Noop.
func NewService(db *sql.DB, notifier notify.Dispatcher) *Service {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &Service{
		db:       db,
		ledger:   NewLedger(db),
		agg:      NewAggregator(db),
		notifier: notifier,
	}
}

// Ledger exposes the vote ledger for direct existence/lookup queries.
func (s *Service) Ledger() *Ledger {
	return s.ledger
}

// CreatePoll creates a poll with its options in one transaction. Residents
// may not create polls. An admin creates in their own society; a super admin
// must name the target society in the request. The initial status may be
// draft (default) or active.
func (s *Service) CreatePoll(ctx context.Context, principal models.Principal, req models.CreatePollRequest) (models.PollWithOptions, error) {
	if !principal.IsAdmin() {
		return models.PollWithOptions{}, ErrForbidden
	}

	societyID := principal.SocietyID
	if principal.Role == models.RoleSuperAdmin {
		societyID = req.SocietyID
	}
	if societyID == "" {
		return models.PollWithOptions{}, fmt.Errorf("%w: society_id required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Title) == "" {
		return models.PollWithOptions{}, fmt.Errorf("%w: title required", ErrInvalidInput)
	}

	pollType := req.PollType
	if pollType == "" {
		pollType = models.TypeSingleChoice
	}
	switch pollType {
	case models.TypeSingleChoice, models.TypeMultipleChoice, models.TypeYesNo:
	default:
		return models.PollWithOptions{}, fmt.Errorf("%w: unknown poll type %q", ErrInvalidInput, pollType)
	}

	status := req.Status
	if status == "" {
		status = models.StatusDraft
	}
	if status != models.StatusDraft && status != models.StatusActive {
		return models.PollWithOptions{}, ErrInvalidTransition
	}

	now := time.Now().UTC()
	start := now
	if req.StartDate != nil {
		start = req.StartDate.UTC()
	}
	if !req.EndDate.After(start) {
		return models.PollWithOptions{}, fmt.Errorf("%w: end date must be after start date", ErrInvalidInput)
	}

	// Trim options, drop empties, reject duplicates
	optionTexts := []string{}
	seen := map[string]bool{}
	for _, text := range req.Options {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			continue
		}
		if seen[trimmed] {
			return models.PollWithOptions{}, fmt.Errorf("%w: duplicate option %q", ErrInvalidOptions, trimmed)
		}
		seen[trimmed] = true
		optionTexts = append(optionTexts, trimmed)
	}
	if len(optionTexts) < 2 {
		return models.PollWithOptions{}, fmt.Errorf("%w: at least 2 options required", ErrInvalidOptions)
	}

	poll := models.Poll{
		ID:          uuid.NewString(),
		SocietyID:   societyID,
		CreatorID:   principal.ID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		PollType:    pollType,
		Status:      status,
		IsAnonymous: req.IsAnonymous,
		StartDate:   start,
		EndDate:     req.EndDate.UTC(),
		CreatedAt:   now,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.PollWithOptions{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO poll (id, society_id, creator_id, title, description, poll_type, status, is_anonymous, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, poll.ID, poll.SocietyID, poll.CreatorID, poll.Title, poll.Description,
		poll.PollType, poll.Status, poll.IsAnonymous, poll.StartDate, poll.EndDate, poll.CreatedAt)
	if err != nil {
		return models.PollWithOptions{}, fmt.Errorf("failed to insert poll: %w", err)
	}

	options := make([]models.PollOption, 0, len(optionTexts))
	for i, text := range optionTexts {
		opt := models.PollOption{
			ID:         uuid.NewString(),
			PollID:     poll.ID,
			OptionText: text,
			OrderIndex: i,
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO poll_option (id, poll_id, option_text, order_index)
			VALUES ($1, $2, $3, $4)
		`, opt.ID, opt.PollID, opt.OptionText, opt.OrderIndex)
		if err != nil {
			return models.PollWithOptions{}, fmt.Errorf("failed to insert option: %w", err)
		}
		options = append(options, opt)
	}

	if err := tx.Commit(); err != nil {
		return models.PollWithOptions{}, fmt.Errorf("failed to commit poll: %w", err)
	}

	s.notifier.PollCreated(notify.PollEvent{
		PollID:    poll.ID,
		SocietyID: poll.SocietyID,
		Title:     poll.Title,
		EndDate:   poll.EndDate,
	})

	return models.PollWithOptions{Poll: poll, Options: options}, nil
}

// ListPolls returns the polls of the principal's society, newest first, each
// annotated with the caller's own vote state. A super admin sees all polls.
// Only the caller's ballot is ever resolved to a voter identity, so for
// anonymous polls no other voter's choice can appear here regardless of role.
func (s *Service) ListPolls(ctx context.Context, principal models.Principal) ([]models.PollListItem, error) {
	query := `
		SELECT id, society_id, creator_id, title, description, poll_type, status, is_anonymous, start_date, end_date, created_at
		FROM poll
		WHERE society_id = $1
		ORDER BY created_at DESC
	`
	args := []any{principal.SocietyID}
	if principal.Role == models.RoleSuperAdmin {
		query = `
			SELECT id, society_id, creator_id, title, description, poll_type, status, is_anonymous, start_date, end_date, created_at
			FROM poll
			ORDER BY created_at DESC
		`
		args = nil
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	polls := []models.Poll{}
	for rows.Next() {
		var p models.Poll
		if err := scanPoll(rows.Scan, &p); err != nil {
			return nil, err
		}
		polls = append(polls, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read poll rows: %w", err)
	}

	now := time.Now().UTC()
	items := make([]models.PollListItem, 0, len(polls))
	for _, p := range polls {
		options, err := s.getOptions(ctx, p.ID)
		if err != nil {
			return nil, err
		}

		myVote, err := s.ledger.GetVote(ctx, p.ID, principal.ID)
		if err != nil {
			return nil, err
		}

		item := models.PollListItem{
			Poll:       p,
			Options:    options,
			HasVoted:   myVote != nil,
			MyVote:     myVote,
			VotingOpen: IsVotingOpen(p, now),
		}
		if item.VotingOpen {
			item.EndsIn = humanize.Time(p.EndDate)
		}
		items = append(items, item)
	}

	return items, nil
}

// CastVote validates eligibility and the selected option set, then records
// the ballot through the ledger. single_choice and yes_no polls take exactly
// one option; multiple_choice takes one or more distinct options.
func (s *Service) CastVote(ctx context.Context, principal models.Principal, pollID string, optionIDs []string) (models.Vote, error) {
	poll, err := s.getPoll(ctx, pollID)
	if err != nil {
		return models.Vote{}, err
	}

	if err := AssertEligibleToVote(poll, principal, time.Now().UTC()); err != nil {
		return models.Vote{}, err
	}

	if len(optionIDs) == 0 {
		return models.Vote{}, fmt.Errorf("%w: no option selected", ErrInvalidOptions)
	}
	if poll.PollType != models.TypeMultipleChoice && len(optionIDs) != 1 {
		return models.Vote{}, fmt.Errorf("%w: poll type %s takes exactly one option", ErrInvalidOptions, poll.PollType)
	}

	seen := map[string]bool{}
	for _, id := range optionIDs {
		if seen[id] {
			return models.Vote{}, fmt.Errorf("%w: duplicate option %s", ErrInvalidOptions, id)
		}
		seen[id] = true
	}

	options, err := s.getOptions(ctx, pollID)
	if err != nil {
		return models.Vote{}, err
	}
	valid := map[string]bool{}
	for _, opt := range options {
		valid[opt.ID] = true
	}
	for _, id := range optionIDs {
		if !valid[id] {
			return models.Vote{}, fmt.Errorf("%w: option %s does not belong to poll", ErrInvalidOptions, id)
		}
	}

	return s.ledger.Cast(ctx, pollID, principal.ID, optionIDs)
}

// GetResults returns the poll with its tabulated counts. Available for any
// status; residents may inspect results of closed polls.
func (s *Service) GetResults(ctx context.Context, principal models.Principal, pollID string) (models.PollResults, error) {
	poll, err := s.getPoll(ctx, pollID)
	if err != nil {
		return models.PollResults{}, err
	}
	if err := s.checkTenantRead(principal, poll); err != nil {
		return models.PollResults{}, err
	}

	counts, err := s.agg.ResultsFor(ctx, pollID)
	if err != nil {
		return models.PollResults{}, err
	}
	total, err := s.agg.TotalVotes(ctx, pollID)
	if err != nil {
		return models.PollResults{}, err
	}

	return models.PollResults{
		Poll:            *poll,
		Counts:          counts,
		TotalVotes:      total,
		LeadingOptionID: LeadingOption(counts),
	}, nil
}

// GetMyVote returns the caller's own ballot for the poll, or nil when the
// caller has not voted.
func (s *Service) GetMyVote(ctx context.Context, principal models.Principal, pollID string) (*models.Vote, error) {
	poll, err := s.getPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if err := s.checkTenantRead(principal, poll); err != nil {
		return nil, err
	}
	return s.ledger.GetVote(ctx, pollID, principal.ID)
}

// SetStatus applies a lifecycle transition. Residents may not change status.
// The update is guarded on the previous status so a concurrent transition
// cannot bend the state machine.
func (s *Service) SetStatus(ctx context.Context, principal models.Principal, pollID, newStatus string) (models.Poll, error) {
	if !principal.IsAdmin() {
		return models.Poll{}, ErrForbidden
	}

	poll, err := s.getPoll(ctx, pollID)
	if err != nil {
		return models.Poll{}, err
	}
	if err := s.checkTenantRead(principal, poll); err != nil {
		return models.Poll{}, err
	}

	if err := CheckTransition(poll.Status, newStatus); err != nil {
		return models.Poll{}, err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE poll
		SET status = $1
		WHERE id = $2 AND status = $3
	`, newStatus, pollID, poll.Status)
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to update poll status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		// Status moved under us; the requested transition no longer applies
		return models.Poll{}, ErrInvalidTransition
	}

	poll.Status = newStatus

	if newStatus == models.StatusClosed {
		s.notifier.PollClosed(notify.PollEvent{
			PollID:    poll.ID,
			SocietyID: poll.SocietyID,
			Title:     poll.Title,
			EndDate:   poll.EndDate,
		})
	}

	return *poll, nil
}

// checkTenantRead gates poll reads and admin mutations by society. Super
// admins pass; everyone else must belong to the poll's society.
func (s *Service) checkTenantRead(principal models.Principal, poll *models.Poll) error {
	if principal.Role == models.RoleSuperAdmin {
		return nil
	}
	if principal.SocietyID != poll.SocietyID {
		return ErrTenantMismatch
	}
	return nil
}

func (s *Service) getPoll(ctx context.Context, pollID string) (*models.Poll, error) {
	var p models.Poll
	row := s.db.QueryRowContext(ctx, `
		SELECT id, society_id, creator_id, title, description, poll_type, status, is_anonymous, start_date, end_date, created_at
		FROM poll
		WHERE id = $1
	`, pollID)
	err := scanPoll(row.Scan, &p)
	if err == sql.ErrNoRows {
		return nil, ErrPollNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) getOptions(ctx context.Context, pollID string) ([]models.PollOption, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, poll_id, option_text, order_index
		FROM poll_option
		WHERE poll_id = $1
		ORDER BY order_index
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	options := []models.PollOption{}
	for rows.Next() {
		var opt models.PollOption
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.OptionText, &opt.OrderIndex); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read option rows: %w", err)
	}

	return options, nil
}

func scanPoll(scan func(...any) error, p *models.Poll) error {
	err := scan(&p.ID, &p.SocietyID, &p.CreatorID, &p.Title, &p.Description,
		&p.PollType, &p.Status, &p.IsAnonymous, &p.StartDate, &p.EndDate, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to scan poll: %w", err)
	}
	return nil
}
