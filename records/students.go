// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package records

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/danielhkuo/gradebook/apperrors"
	"github.com/danielhkuo/gradebook/auth"
	"github.com/danielhkuo/gradebook/db"
	"github.com/danielhkuo/gradebook/models"
	"github.com/danielhkuo/gradebook/validation"
)

func (s *Service) ListStudents(ctx context.Context, p auth.Principal) ([]models.Student, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, student_number, class, department, email, phone, created_at
		FROM students
		ORDER BY name, student_number
	`)
	if err != nil {
		return nil, apperrors.Storage("failed to query students", err)
	}
	defer rows.Close()

	students := []models.Student{}
	for rows.Next() {
		var st models.Student
		if err := rows.Scan(&st.ID, &st.Name, &st.StudentNumber, &st.Class, &st.Department, &st.Email, &st.Phone, &st.CreatedAt); err != nil {
			return nil, apperrors.Storage("failed to scan student", err)
		}
		students = append(students, st)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage("failed to read students", err)
	}

	return students, nil
}

func normalizeStudent(req *models.StudentRequest) error {
	trim(&req.Name, &req.StudentNumber, &req.Class, &req.Department, &req.Email, &req.Phone)
	return validation.Struct(req)
}

// CreateStudent stores a student together with their login account. The
// account's username and initial password are both the student number.
func (s *Service) CreateStudent(ctx context.Context, p auth.Principal, req models.StudentRequest) (string, error) {
	if err := requireAdmin(p); err != nil {
		return "", err
	}
	if err := normalizeStudent(&req); err != nil {
		return "", err
	}

	hash, err := auth.HashPassword(req.StudentNumber)
	if err != nil {
		return "", apperrors.Storage("failed to hash password", err)
	}

	studentID := auth.NewID()
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", apperrors.Storage("failed to begin transaction", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO students (id, name, student_number, class, department, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, studentID, req.Name, req.StudentNumber, req.Class, req.Department, req.Email, req.Phone, now)
	if db.IsUniqueViolation(err) {
		return "", apperrors.Validation("student number already exists")
	}
	if err != nil {
		return "", apperrors.Storage("failed to insert student", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, role, student_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, auth.NewID(), req.StudentNumber, hash, auth.RoleStudent, studentID, now)
	if db.IsUniqueViolation(err) {
		return "", apperrors.Validation("username " + req.StudentNumber + " is already taken")
	}
	if err != nil {
		return "", apperrors.Storage("failed to create student account", err)
	}

	if err := tx.Commit(); err != nil {
		return "", apperrors.Storage("failed to commit student", err)
	}

	slog.Info("student created", "student_id", studentID, "student_number", req.StudentNumber)
	return studentID, nil
}

// UpdateStudent replaces a student's details. When the student number
// changes, the login follows it: new username and password reset to the
// new number.
func (s *Service) UpdateStudent(ctx context.Context, p auth.Principal, id string, req models.StudentRequest) error {
	if err := requireAdmin(p); err != nil {
		return err
	}
	if err := normalizeStudent(&req); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.Storage("failed to begin transaction", err)
	}
	defer tx.Rollback()

	var oldNumber string
	err = tx.QueryRowContext(ctx, `SELECT student_number FROM students WHERE id = $1`, id).Scan(&oldNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound("student not found")
	}
	if err != nil {
		return apperrors.Storage("failed to query student", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE students
		SET name = $1, student_number = $2, class = $3, department = $4, email = $5, phone = $6
		WHERE id = $7
	`, req.Name, req.StudentNumber, req.Class, req.Department, req.Email, req.Phone, id)
	if db.IsUniqueViolation(err) {
		return apperrors.Validation("student number already exists")
	}
	if err != nil {
		return apperrors.Storage("failed to update student", err)
	}

	if oldNumber != req.StudentNumber {
		hash, err := auth.HashPassword(req.StudentNumber)
		if err != nil {
			return apperrors.Storage("failed to hash password", err)
		}
		_, err = tx.ExecContext(ctx, `
			UPDATE users SET username = $1, password_hash = $2 WHERE student_id = $3
		`, req.StudentNumber, hash, id)
		if db.IsUniqueViolation(err) {
			return apperrors.Validation("username " + req.StudentNumber + " is already taken")
		}
		if err != nil {
			return apperrors.Storage("failed to update student account", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Storage("failed to commit student", err)
	}

	slog.Info("student updated", "student_id", id, "login_changed", oldNumber != req.StudentNumber)
	return nil
}

// DeleteStudent removes a student with their grades, poll responses and
// login in one transaction.
func (s *Service) DeleteStudent(ctx context.Context, p auth.Principal, id string) error {
	if err := requireAdmin(p); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.Storage("failed to begin transaction", err)
	}
	defer tx.Rollback()

	var counts [3]int64
	for i, query := range []string{
		`DELETE FROM grades WHERE student_id = $1`,
		`DELETE FROM poll_responses WHERE student_id = $1`,
		`DELETE FROM users WHERE student_id = $1`,
	} {
		res, err := tx.ExecContext(ctx, query, id)
		if err != nil {
			return apperrors.Storage("failed to delete student records", err)
		}
		counts[i], _ = res.RowsAffected()
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return apperrors.Storage("failed to delete student", err)
	}
	if err := notFoundOnZero(res, "student"); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Storage("failed to commit student deletion", err)
	}

	slog.Info("student deleted",
		"student_id", id,
		"grades", counts[0],
		"poll_responses", counts[1],
		"accounts", counts[2],
	)
	return nil
}
