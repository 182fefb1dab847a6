// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/gradebook/auth"
	"github.com/danielhkuo/gradebook/cliparse"
	"github.com/danielhkuo/gradebook/db"
	"github.com/danielhkuo/gradebook/grading"
)

// SetupTestDB creates a fresh SQLite database file with the full schema.
// It is closed automatically when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := GetTestConfig()
	cfg.DatabaseURL = filepath.Join(t.TempDir(), "gradebook_test.db")

	conn, err := db.Open(cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseType: cliparse.DatabaseSQLite,
		DatabaseURL:  "gradebook_test.db",
		JWTSecret:    "test-jwt-secret",
		TokenTTL:     time.Hour,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// CreateTestAdmin inserts an admin account and returns its principal
func CreateTestAdmin(t *testing.T, conn *sql.DB, username, password string) auth.Principal {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	p := auth.Principal{UserID: auth.NewID(), Username: username, Role: auth.RoleAdmin}
	_, err = conn.Exec(`
		INSERT INTO users (id, username, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, p.UserID, username, hash, auth.RoleAdmin, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test admin: %v", err)
	}

	return p
}

// CreateTestStudent inserts a student with a login account (username and
// password are the student number) and returns the student's principal
func CreateTestStudent(t *testing.T, conn *sql.DB, name, number string) auth.Principal {
	t.Helper()

	studentID := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO students (id, name, student_number, class, department, created_at)
		VALUES ($1, $2, $3, 'Class 1', 'Computer Science', $4)
	`, studentID, name, number, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test student: %v", err)
	}

	hash, err := auth.HashPassword(number)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	p := auth.Principal{UserID: auth.NewID(), Username: number, Role: auth.RoleStudent, StudentID: studentID}
	_, err = conn.Exec(`
		INSERT INTO users (id, username, password_hash, role, student_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.UserID, number, hash, auth.RoleStudent, studentID, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test student account: %v", err)
	}

	return p
}

// CreateTestSubject inserts a subject and returns its ID
func CreateTestSubject(t *testing.T, conn *sql.DB, name, code string, creditHours int) string {
	t.Helper()

	id := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO subjects (id, name, code, credit_hours, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, name, code, creditHours, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test subject: %v", err)
	}

	return id
}

// CreateTestGrade inserts a grade computed from the given components and
// returns its ID
func CreateTestGrade(t *testing.T, conn *sql.DB, studentID, subjectID string, c grading.Components) string {
	t.Helper()

	b := grading.Compute(c)
	id := auth.NewID()
	now := time.Now().UTC()
	_, err := conn.Exec(`
		INSERT INTO grades (id, student_id, subject_id,
		                    midterm_theory, midterm_practical, midterm_total,
		                    final_theory, final_practical, final_total,
		                    total_grade, letter_grade, semester, academic_year, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 'Fall', '2024-2025', $12, $12)
	`, id, studentID, subjectID,
		c.MidtermTheory, c.MidtermPractical, b.MidtermTotal,
		c.FinalTheory, c.FinalPractical, b.FinalTotal,
		b.TotalGrade, b.LetterGrade, now)
	if err != nil {
		t.Fatalf("Failed to create test grade: %v", err)
	}

	return id
}

// CreateTestPoll creates a poll with the given options and returns the
// poll ID and the option IDs in order
func CreateTestPoll(t *testing.T, conn *sql.DB, creator auth.Principal, active bool, options ...string) (string, []string) {
	t.Helper()

	pollID := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO polls (id, title, description, is_active, created_by, created_at)
		VALUES ($1, 'Test Poll', 'A test poll', $2, $3, $4)
	`, pollID, active, creator.UserID, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	optionIDs := make([]string, len(options))
	for i, text := range options {
		optionIDs[i] = AddTestOption(t, conn, pollID, text, i)
	}

	return pollID, optionIDs
}

// AddTestOption adds an option to a poll and returns the option ID
func AddTestOption(t *testing.T, conn *sql.DB, pollID, text string, position int) string {
	t.Helper()

	optionID := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO poll_options (id, poll_id, option_text, position)
		VALUES ($1, $2, $3, $4)
	`, optionID, pollID, text, position)
	if err != nil {
		t.Fatalf("Failed to create test option: %v", err)
	}

	return optionID
}

// CastTestVote records a vote directly in the database
func CastTestVote(t *testing.T, conn *sql.DB, pollID, studentID, optionID string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO poll_responses (id, poll_id, student_id, option_id, voted_at)
		VALUES ($1, $2, $3, $4, $5)
	`, auth.NewID(), pollID, studentID, optionID, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}
}

// CountRows returns the number of rows in table matching where
func CountRows(t *testing.T, conn *sql.DB, table, where string, args ...interface{}) int {
	t.Helper()

	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}

	var n int
	if err := conn.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// TokenFor issues a session token for p using the test config secret
func TokenFor(t *testing.T, p auth.Principal) string {
	t.Helper()

	cfg := GetTestConfig()
	token, _, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL).Issue(p)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return token
}

// BearerHeader returns request headers authenticating as p
func BearerHeader(t *testing.T, p auth.Principal) map[string]string {
	t.Helper()
	return map[string]string{"Authorization": "Bearer " + TokenFor(t, p)}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
