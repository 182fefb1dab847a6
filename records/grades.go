// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package records

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/gradebook/apperrors"
	"github.com/danielhkuo/gradebook/auth"
	"github.com/danielhkuo/gradebook/db"
	"github.com/danielhkuo/gradebook/grading"
	"github.com/danielhkuo/gradebook/models"
	"github.com/danielhkuo/gradebook/validation"
)

func components(c models.GradeComponents) grading.Components {
	value := func(f *float64) float64 {
		if f == nil {
			return 0
		}
		return *f
	}
	return grading.Components{
		MidtermTheory:    value(c.MidtermTheory),
		MidtermPractical: value(c.MidtermPractical),
		FinalTheory:      value(c.FinalTheory),
		FinalPractical:   value(c.FinalPractical),
	}
}

// SubmitGrade computes and stores a grade. A grade already recorded for
// the same student, subject, semester and academic year is replaced.
func (s *Service) SubmitGrade(ctx context.Context, p auth.Principal, req models.GradeRequest) (models.GradeResult, error) {
	if err := requireAdmin(p); err != nil {
		return models.GradeResult{}, err
	}

	trim(&req.StudentID, &req.SubjectID, &req.Semester, &req.AcademicYear)
	if err := validation.Struct(req); err != nil {
		return models.GradeResult{}, err
	}

	c := components(req.GradeComponents)
	b := grading.Compute(c)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.GradeResult{}, apperrors.Storage("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if err := requireRow(ctx, tx, `SELECT EXISTS(SELECT 1 FROM students WHERE id = $1)`, req.StudentID, "student"); err != nil {
		return models.GradeResult{}, err
	}
	if err := requireRow(ctx, tx, `SELECT EXISTS(SELECT 1 FROM subjects WHERE id = $1)`, req.SubjectID, "subject"); err != nil {
		return models.GradeResult{}, err
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO grades (id, student_id, subject_id,
		                    midterm_theory, midterm_practical, midterm_total,
		                    final_theory, final_practical, final_total,
		                    total_grade, letter_grade, semester, academic_year, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)
		ON CONFLICT (student_id, subject_id, semester, academic_year) DO UPDATE SET
			midterm_theory = excluded.midterm_theory,
			midterm_practical = excluded.midterm_practical,
			midterm_total = excluded.midterm_total,
			final_theory = excluded.final_theory,
			final_practical = excluded.final_practical,
			final_total = excluded.final_total,
			total_grade = excluded.total_grade,
			letter_grade = excluded.letter_grade,
			updated_at = excluded.updated_at
	`, auth.NewID(), req.StudentID, req.SubjectID,
		c.MidtermTheory, c.MidtermPractical, b.MidtermTotal,
		c.FinalTheory, c.FinalPractical, b.FinalTotal,
		b.TotalGrade, b.LetterGrade, req.Semester, req.AcademicYear, now)
	if err != nil {
		return models.GradeResult{}, apperrors.Storage("failed to save grade", err)
	}

	var id string
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM grades
		WHERE student_id = $1 AND subject_id = $2 AND semester = $3 AND academic_year = $4
	`, req.StudentID, req.SubjectID, req.Semester, req.AcademicYear).Scan(&id)
	if err != nil {
		return models.GradeResult{}, apperrors.Storage("failed to read saved grade", err)
	}

	if err := tx.Commit(); err != nil {
		return models.GradeResult{}, apperrors.Storage("failed to commit grade", err)
	}

	slog.Info("grade saved",
		"grade_id", id,
		"student_id", req.StudentID,
		"subject_id", req.SubjectID,
		"total", b.TotalGrade,
		"letter", b.LetterGrade,
	)

	return gradeResult(id, b), nil
}

// UpdateGrade recomputes an existing grade from new components.
func (s *Service) UpdateGrade(ctx context.Context, p auth.Principal, id string, req models.GradeUpdateRequest) (models.GradeResult, error) {
	if err := requireAdmin(p); err != nil {
		return models.GradeResult{}, err
	}

	trim(&req.Semester, &req.AcademicYear)
	if err := validation.Struct(req); err != nil {
		return models.GradeResult{}, err
	}

	c := components(req.GradeComponents)
	b := grading.Compute(c)

	res, err := s.db.ExecContext(ctx, `
		UPDATE grades SET
			midterm_theory = $1, midterm_practical = $2, midterm_total = $3,
			final_theory = $4, final_practical = $5, final_total = $6,
			total_grade = $7, letter_grade = $8, semester = $9, academic_year = $10,
			updated_at = $11
		WHERE id = $12
	`, c.MidtermTheory, c.MidtermPractical, b.MidtermTotal,
		c.FinalTheory, c.FinalPractical, b.FinalTotal,
		b.TotalGrade, b.LetterGrade, req.Semester, req.AcademicYear,
		time.Now().UTC(), id)
	if db.IsUniqueViolation(err) {
		return models.GradeResult{}, apperrors.Validation("a grade for this student and subject already exists in that semester")
	}
	if err != nil {
		return models.GradeResult{}, apperrors.Storage("failed to update grade", err)
	}
	if err := notFoundOnZero(res, "grade"); err != nil {
		return models.GradeResult{}, err
	}

	slog.Info("grade updated", "grade_id", id, "total", b.TotalGrade, "letter", b.LetterGrade)
	return gradeResult(id, b), nil
}

func (s *Service) DeleteGrade(ctx context.Context, p auth.Principal, id string) error {
	if err := requireAdmin(p); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM grades WHERE id = $1`, id)
	if err != nil {
		return apperrors.Storage("failed to delete grade", err)
	}
	if err := notFoundOnZero(res, "grade"); err != nil {
		return err
	}

	slog.Info("grade deleted", "grade_id", id)
	return nil
}

// ListGrades returns grades joined with student and subject details.
// Students always get only their own grades. When the result is scoped to
// one student, every grade carries its rank within the subject.
func (s *Service) ListGrades(ctx context.Context, p auth.Principal, filter models.GradeFilter) ([]models.GradeView, error) {
	if err := requireAuth(p); err != nil {
		return nil, err
	}

	if !p.IsAdmin() {
		if !p.IsStudent() {
			return nil, apperrors.Forbidden("no student record linked to this account")
		}
		filter.StudentID = p.StudentID
	}

	return s.listGrades(ctx, filter)
}

func (s *Service) listGrades(ctx context.Context, filter models.GradeFilter) ([]models.GradeView, error) {
	var (
		conds []string
		args  []interface{}
	)
	add := func(cond, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conds = append(conds, cond+" = $"+strconv.Itoa(len(args)))
	}
	add("g.student_id", filter.StudentID)
	add("g.subject_id", filter.SubjectID)
	add("g.semester", filter.Semester)
	add("g.academic_year", filter.AcademicYear)

	query := `
		SELECT g.id, g.student_id, st.name, st.student_number,
		       g.subject_id, sub.name, sub.code, sub.credit_hours,
		       g.midterm_theory, g.midterm_practical, g.midterm_total,
		       g.final_theory, g.final_practical, g.final_total,
		       g.total_grade, g.letter_grade, g.semester, g.academic_year,
		       g.created_at, g.updated_at
		FROM grades g
		JOIN students st ON g.student_id = st.id
		JOIN subjects sub ON g.subject_id = sub.id
	`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY st.name, sub.name, g.academic_year, g.semester"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Storage("failed to query grades", err)
	}
	defer rows.Close()

	grades := []models.GradeView{}
	for rows.Next() {
		var g models.GradeView
		if err := rows.Scan(
			&g.ID, &g.StudentID, &g.StudentName, &g.StudentNumber,
			&g.SubjectID, &g.SubjectName, &g.SubjectCode, &g.CreditHours,
			&g.MidtermTheory, &g.MidtermPractical, &g.MidtermTotal,
			&g.FinalTheory, &g.FinalPractical, &g.FinalTotal,
			&g.TotalGrade, &g.LetterGrade, &g.Semester, &g.AcademicYear,
			&g.CreatedAt, &g.UpdatedAt,
		); err != nil {
			return nil, apperrors.Storage("failed to scan grade", err)
		}
		grades = append(grades, g)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage("failed to read grades", err)
	}
	rows.Close()

	if filter.StudentID != "" {
		if err := s.attachRanks(ctx, grades); err != nil {
			return nil, err
		}
	}

	return grades, nil
}

// attachRanks sets Rank and TotalStudents from a fresh read of every total
// recorded in each grade's subject.
func (s *Service) attachRanks(ctx context.Context, grades []models.GradeView) error {
	totals := map[string][]float64{}
	for i := range grades {
		subjectID := grades[i].SubjectID
		if _, ok := totals[subjectID]; !ok {
			t, err := s.subjectTotals(ctx, subjectID)
			if err != nil {
				return err
			}
			totals[subjectID] = t
		}

		rank, count := grading.Rank(grades[i].TotalGrade, totals[subjectID])
		grades[i].Rank = &rank
		grades[i].TotalStudents = &count
	}
	return nil
}

func (s *Service) subjectTotals(ctx context.Context, subjectID string) ([]float64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT total_grade FROM grades WHERE subject_id = $1`, subjectID)
	if err != nil {
		return nil, apperrors.Storage("failed to query subject totals", err)
	}
	defer rows.Close()

	var totals []float64
	for rows.Next() {
		var t float64
		if err := rows.Scan(&t); err != nil {
			return nil, apperrors.Storage("failed to scan subject total", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage("failed to read subject totals", err)
	}
	return totals, nil
}

// Dashboard summarizes one student's record: grades with ranks, GPA,
// credits and standing. Students may only read their own.
func (s *Service) Dashboard(ctx context.Context, p auth.Principal, studentID string) (models.Dashboard, error) {
	if err := requireAuth(p); err != nil {
		return models.Dashboard{}, err
	}
	if !p.IsAdmin() && (!p.IsStudent() || p.StudentID != studentID) {
		return models.Dashboard{}, apperrors.Forbidden("students may only view their own dashboard")
	}

	var dash models.Dashboard
	st := &dash.Student
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, student_number, class, department, email, phone, created_at
		FROM students
		WHERE id = $1
	`, studentID).Scan(&st.ID, &st.Name, &st.StudentNumber, &st.Class, &st.Department, &st.Email, &st.Phone, &st.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Dashboard{}, apperrors.NotFound("student not found")
	}
	if err != nil {
		return models.Dashboard{}, apperrors.Storage("failed to query student", err)
	}

	grades, err := s.listGrades(ctx, models.GradeFilter{StudentID: studentID})
	if err != nil {
		return models.Dashboard{}, err
	}

	credits := make([]grading.Credit, len(grades))
	for i, g := range grades {
		credits[i] = grading.Credit{LetterGrade: g.LetterGrade, Hours: g.CreditHours}
	}

	dash.Grades = grades
	dash.GPA, dash.TotalCredits = grading.GPA(credits)
	dash.Standing = grading.Standing(dash.GPA)
	return dash, nil
}

func gradeResult(id string, b grading.Breakdown) models.GradeResult {
	return models.GradeResult{
		ID:           id,
		MidtermTotal: b.MidtermTotal,
		FinalTotal:   b.FinalTotal,
		TotalGrade:   b.TotalGrade,
		LetterGrade:  b.LetterGrade,
	}
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func requireRow(ctx context.Context, q queryRower, query, id, what string) error {
	var exists bool
	if err := q.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return apperrors.Storage("failed to look up "+what, err)
	}
	if !exists {
		return apperrors.NotFound(what + " not found")
	}
	return nil
}
