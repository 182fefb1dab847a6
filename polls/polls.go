// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/gradebook/apperrors"
	"github.com/danielhkuo/gradebook/auth"
	"github.com/danielhkuo/gradebook/db"
	"github.com/danielhkuo/gradebook/models"
	"github.com/danielhkuo/gradebook/validation"
)

type Service struct {
	db *sql.DB
}

func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

func requireAdmin(p auth.Principal) error {
	if p.UserID == "" {
		return apperrors.Unauthenticated("authentication required")
	}
	if !p.IsAdmin() {
		return apperrors.Forbidden("admin access required")
	}
	return nil
}

// Create persists an active poll and its options in input order.
// Blank options are dropped before counting.
func (s *Service) Create(ctx context.Context, p auth.Principal, req models.CreatePollRequest) (string, error) {
	if err := requireAdmin(p); err != nil {
		return "", err
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	options := make([]string, 0, len(req.Options))
	for _, o := range req.Options {
		if o = strings.TrimSpace(o); o != "" {
			options = append(options, o)
		}
	}
	req.Options = options

	if err := validation.Struct(req); err != nil {
		return "", err
	}

	pollID := auth.NewID()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", apperrors.Storage("failed to begin transaction", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO polls (id, title, description, is_active, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, pollID, req.Title, req.Description, true, p.UserID, time.Now().UTC())
	if err != nil {
		return "", apperrors.Storage("failed to insert poll", err)
	}

	for i, text := range options {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO poll_options (id, poll_id, option_text, position)
			VALUES ($1, $2, $3, $4)
		`, auth.NewID(), pollID, text, i)
		if err != nil {
			return "", apperrors.Storage("failed to insert poll option", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", apperrors.Storage("failed to commit poll", err)
	}

	slog.Info("poll created", "poll_id", pollID, "options", len(options), "creator", p.Username)
	return pollID, nil
}

// SetActive sets the poll's active flag. Setting the current value again
// succeeds.
func (s *Service) SetActive(ctx context.Context, p auth.Principal, pollID string, active bool) error {
	if err := requireAdmin(p); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `UPDATE polls SET is_active = $1 WHERE id = $2`, active, pollID)
	if err != nil {
		return apperrors.Storage("failed to update poll", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.Storage("failed to update poll", err)
	}
	if n == 0 {
		return apperrors.NotFound("poll not found")
	}

	slog.Info("poll status updated", "poll_id", pollID, "is_active", active)
	return nil
}

// Vote records the caller's choice, replacing any earlier vote in the
// same poll. The checks and the write share one transaction.
func (s *Service) Vote(ctx context.Context, p auth.Principal, pollID, optionID string) error {
	if p.UserID == "" {
		return apperrors.Unauthenticated("authentication required")
	}
	if !p.IsStudent() {
		return apperrors.Forbidden("only students can vote")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.Storage("failed to begin transaction", err)
	}
	defer tx.Rollback()

	var active bool
	err = tx.QueryRowContext(ctx, `SELECT is_active FROM polls WHERE id = $1`, pollID).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !active) {
		return apperrors.NotFound("poll not found or inactive")
	}
	if err != nil {
		return apperrors.Storage("failed to query poll", err)
	}

	var optionOK, studentOK bool
	err = tx.QueryRowContext(ctx, `
		SELECT
			EXISTS(SELECT 1 FROM poll_options WHERE id = $1 AND poll_id = $2),
			EXISTS(SELECT 1 FROM students WHERE id = $3)
	`, optionID, pollID, p.StudentID).Scan(&optionOK, &studentOK)
	if err != nil {
		return apperrors.Storage("failed to query poll option", err)
	}
	if !optionOK {
		return apperrors.NotFound("option not found")
	}
	if !studentOK {
		return apperrors.NotFound("student not found")
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO poll_responses (id, poll_id, student_id, option_id, voted_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (poll_id, student_id)
		DO UPDATE SET option_id = excluded.option_id, voted_at = excluded.voted_at
	`, auth.NewID(), pollID, p.StudentID, optionID, time.Now().UTC())
	if db.IsForeignKeyViolation(err) {
		return apperrors.NotFound("poll, option or student no longer exists")
	}
	if err != nil {
		return apperrors.Storage("failed to record vote", err)
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Storage("failed to commit vote", err)
	}

	slog.Info("vote recorded", "poll_id", pollID, "student_id", p.StudentID)
	return nil
}

// Delete removes the poll with its responses and options. Either all of
// them go or none do.
func (s *Service) Delete(ctx context.Context, p auth.Principal, pollID string) error {
	if err := requireAdmin(p); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.Storage("failed to begin transaction", err)
	}
	defer tx.Rollback()

	responses, err := tx.ExecContext(ctx, `DELETE FROM poll_responses WHERE poll_id = $1`, pollID)
	if err != nil {
		return apperrors.Storage("failed to delete poll responses", err)
	}

	options, err := tx.ExecContext(ctx, `DELETE FROM poll_options WHERE poll_id = $1`, pollID)
	if err != nil {
		return apperrors.Storage("failed to delete poll options", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM polls WHERE id = $1`, pollID)
	if err != nil {
		return apperrors.Storage("failed to delete poll", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.Storage("failed to delete poll", err)
	}
	if n == 0 {
		return apperrors.NotFound("poll not found")
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Storage("failed to commit poll deletion", err)
	}

	nResponses, _ := responses.RowsAffected()
	nOptions, _ := options.RowsAffected()
	slog.Info("poll deleted", "poll_id", pollID, "responses", nResponses, "options", nOptions)
	return nil
}

// List returns every poll for admins and only active polls for students,
// newest first.
func (s *Service) List(ctx context.Context, p auth.Principal) ([]models.PollSummary, error) {
	if p.UserID == "" {
		return nil, apperrors.Unauthenticated("authentication required")
	}

	query := `
		SELECT p.id, p.title, p.description, p.is_active, p.created_by, p.created_at,
		       COUNT(DISTINCT pr.student_id),
		       (SELECT COUNT(*) FROM students)
		FROM polls p
		LEFT JOIN poll_responses pr ON pr.poll_id = p.id
	`
	var args []interface{}
	if !p.IsAdmin() {
		query += ` WHERE p.is_active = $1`
		args = append(args, true)
	}
	query += `
		GROUP BY p.id, p.title, p.description, p.is_active, p.created_by, p.created_at
		ORDER BY p.created_at DESC, p.id
	`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Storage("failed to query polls", err)
	}
	defer rows.Close()

	polls := []models.PollSummary{}
	for rows.Next() {
		var ps models.PollSummary
		if err := rows.Scan(
			&ps.ID, &ps.Title, &ps.Description, &ps.IsActive, &ps.CreatedBy, &ps.CreatedAt,
			&ps.ResponseCount, &ps.TotalStudents,
		); err != nil {
			return nil, apperrors.Storage("failed to scan poll", err)
		}
		ps.CreatedAgo = humanize.Time(ps.CreatedAt)
		polls = append(polls, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage("failed to read polls", err)
	}

	return polls, nil
}

// Get returns a poll with per-option vote counts. Students only see active
// polls and get their own current choice in UserVote.
func (s *Service) Get(ctx context.Context, p auth.Principal, pollID string) (models.PollDetail, error) {
	if p.UserID == "" {
		return models.PollDetail{}, apperrors.Unauthenticated("authentication required")
	}

	var detail models.PollDetail
	poll := &detail.Poll
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, is_active, created_by, created_at
		FROM polls
		WHERE id = $1
	`, pollID).Scan(&poll.ID, &poll.Title, &poll.Description, &poll.IsActive, &poll.CreatedBy, &poll.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PollDetail{}, apperrors.NotFound("poll not found")
	}
	if err != nil {
		return models.PollDetail{}, apperrors.Storage("failed to query poll", err)
	}
	if !p.IsAdmin() && !poll.IsActive {
		return models.PollDetail{}, apperrors.NotFound("poll not found")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT o.id, o.poll_id, o.option_text, o.position, COUNT(pr.id)
		FROM poll_options o
		LEFT JOIN poll_responses pr ON pr.option_id = o.id
		WHERE o.poll_id = $1
		GROUP BY o.id, o.poll_id, o.option_text, o.position
		ORDER BY o.position
	`, pollID)
	if err != nil {
		return models.PollDetail{}, apperrors.Storage("failed to query poll options", err)
	}
	defer rows.Close()

	detail.Options = []models.PollOption{}
	for rows.Next() {
		var opt models.PollOption
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.OptionText, &opt.Position, &opt.VoteCount); err != nil {
			return models.PollDetail{}, apperrors.Storage("failed to scan poll option", err)
		}
		detail.Options = append(detail.Options, opt)
	}
	if err := rows.Err(); err != nil {
		return models.PollDetail{}, apperrors.Storage("failed to read poll options", err)
	}
	rows.Close()

	if p.IsStudent() {
		var optionID string
		err := s.db.QueryRowContext(ctx, `
			SELECT option_id FROM poll_responses WHERE poll_id = $1 AND student_id = $2
		`, pollID, p.StudentID).Scan(&optionID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
		case err != nil:
			return models.PollDetail{}, apperrors.Storage("failed to query vote", err)
		default:
			detail.UserVote = &optionID
		}
	}

	return detail, nil
}

// Results lists every vote with its option and voter, ordered by option
// then voter name.
func (s *Service) Results(ctx context.Context, p auth.Principal, pollID string) ([]models.PollResult, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}

	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM polls WHERE id = $1)`, pollID).Scan(&exists)
	if err != nil {
		return nil, apperrors.Storage("failed to query poll", err)
	}
	if !exists {
		return nil, apperrors.NotFound("poll not found")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT o.id, o.option_text, st.id, st.name, st.student_number, pr.voted_at
		FROM poll_responses pr
		JOIN poll_options o ON pr.option_id = o.id
		JOIN students st ON pr.student_id = st.id
		WHERE pr.poll_id = $1
		ORDER BY o.position, st.name, st.student_number
	`, pollID)
	if err != nil {
		return nil, apperrors.Storage("failed to query poll results", err)
	}
	defer rows.Close()

	results := []models.PollResult{}
	for rows.Next() {
		var r models.PollResult
		if err := rows.Scan(&r.OptionID, &r.OptionText, &r.StudentID, &r.StudentName, &r.StudentNumber, &r.VotedAt); err != nil {
			return nil, apperrors.Storage("failed to scan poll result", err)
		}
		r.VotedAgo = humanize.Time(r.VotedAt)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage("failed to read poll results", err)
	}

	return results, nil
}
