// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package records

import (
	"context"
	"log/slog"
	"time"

	"github.com/danielhkuo/gradebook/apperrors"
	"github.com/danielhkuo/gradebook/auth"
	"github.com/danielhkuo/gradebook/db"
	"github.com/danielhkuo/gradebook/models"
	"github.com/danielhkuo/gradebook/validation"
)

// ListSubjects is open to any signed-in user.
func (s *Service) ListSubjects(ctx context.Context, p auth.Principal) ([]models.Subject, error) {
	if err := requireAuth(p); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, code, credit_hours, department, created_at
		FROM subjects
		ORDER BY name, code
	`)
	if err != nil {
		return nil, apperrors.Storage("failed to query subjects", err)
	}
	defer rows.Close()

	subjects := []models.Subject{}
	for rows.Next() {
		var sub models.Subject
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Code, &sub.CreditHours, &sub.Department, &sub.CreatedAt); err != nil {
			return nil, apperrors.Storage("failed to scan subject", err)
		}
		subjects = append(subjects, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage("failed to read subjects", err)
	}

	return subjects, nil
}

func normalizeSubject(req *models.SubjectRequest) error {
	trim(&req.Name, &req.Code, &req.Department)
	return validation.Struct(req)
}

func (s *Service) CreateSubject(ctx context.Context, p auth.Principal, req models.SubjectRequest) (string, error) {
	if err := requireAdmin(p); err != nil {
		return "", err
	}
	if err := normalizeSubject(&req); err != nil {
		return "", err
	}

	id := auth.NewID()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO subjects (id, name, code, credit_hours, department, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, req.Name, req.Code, req.CreditHours, req.Department, time.Now().UTC())
	if db.IsUniqueViolation(err) {
		return "", apperrors.Validation("subject code already exists")
	}
	if err != nil {
		return "", apperrors.Storage("failed to insert subject", err)
	}

	slog.Info("subject created", "subject_id", id, "code", req.Code)
	return id, nil
}

func (s *Service) UpdateSubject(ctx context.Context, p auth.Principal, id string, req models.SubjectRequest) error {
	if err := requireAdmin(p); err != nil {
		return err
	}
	if err := normalizeSubject(&req); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE subjects SET name = $1, code = $2, credit_hours = $3, department = $4
		WHERE id = $5
	`, req.Name, req.Code, req.CreditHours, req.Department, id)
	if db.IsUniqueViolation(err) {
		return apperrors.Validation("subject code already exists")
	}
	if err != nil {
		return apperrors.Storage("failed to update subject", err)
	}
	if err := notFoundOnZero(res, "subject"); err != nil {
		return err
	}

	slog.Info("subject updated", "subject_id", id)
	return nil
}

// DeleteSubject refuses to remove a subject that still has grades.
func (s *Service) DeleteSubject(ctx context.Context, p auth.Principal, id string) error {
	if err := requireAdmin(p); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.Storage("failed to begin transaction", err)
	}
	defer tx.Rollback()

	var grades int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM grades WHERE subject_id = $1`, id).Scan(&grades)
	if err != nil {
		return apperrors.Storage("failed to count subject grades", err)
	}
	if grades > 0 {
		return apperrors.Validation("subject still has grades; delete them first")
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return apperrors.Storage("failed to delete subject", err)
	}
	if err := notFoundOnZero(res, "subject"); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Storage("failed to commit subject deletion", err)
	}

	slog.Info("subject deleted", "subject_id", id)
	return nil
}
