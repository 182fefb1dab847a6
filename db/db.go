// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/gradebook/auth"
	"github.com/danielhkuo/gradebook/cliparse"
)

const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// Open connects to the configured database and verifies the connection.
func Open(cfg cliparse.Config) (*sql.DB, error) {
	var (
		conn *sql.DB
		err  error
	)

	switch cfg.DatabaseType {
	case cliparse.DatabasePostgres:
		conn, err = sql.Open("postgres", cfg.DatabaseURL)
	case cliparse.DatabaseSQLite, "":
		conn, err = sql.Open("sqlite", sqliteDSN(cfg.DatabaseURL))
		if err == nil {
			// One writer at a time; SQLite serializes writes anyway
			conn.SetMaxOpenConns(1)
		}
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

func sqliteDSN(url string) string {
	if strings.Contains(url, "_pragma=foreign_keys") {
		return url
	}
	if !strings.HasPrefix(url, "file:") {
		url = "file:" + url
	}
	if strings.Contains(url, "?") {
		return url + "&" + sqlitePragmas
	}
	return url + "?" + sqlitePragmas
}

// IsUniqueViolation reports whether err is a unique or primary key
// constraint failure from either supported driver.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}

	return false
}

// IsForeignKeyViolation reports whether err is a foreign key constraint
// failure from either supported driver.
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
	}

	return false
}

// EnsureAdmin creates the bootstrap admin account if no user has that
// username yet. An existing account is left untouched.
func EnsureAdmin(ctx context.Context, db *sql.DB, username, password string) error {
	if username == "" {
		return nil
	}

	var exists bool
	err := db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)
	`, username).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check admin account: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, auth.NewID(), username, hash, auth.RoleAdmin, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	slog.Info("admin account created", "username", username)
	return nil
}
