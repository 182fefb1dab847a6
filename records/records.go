// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package records

import (
	"database/sql"
	"strings"

	"github.com/danielhkuo/gradebook/apperrors"
	"github.com/danielhkuo/gradebook/auth"
)

// Service owns grades, students and subjects.
type Service struct {
	db *sql.DB
}

func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

func requireAuth(p auth.Principal) error {
	if p.UserID == "" {
		return apperrors.Unauthenticated("authentication required")
	}
	return nil
}

func requireAdmin(p auth.Principal) error {
	if err := requireAuth(p); err != nil {
		return err
	}
	if !p.IsAdmin() {
		return apperrors.Forbidden("admin access required")
	}
	return nil
}

// notFoundOnZero turns an exec result that touched no rows into a
// not-found error.
func notFoundOnZero(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.Storage("failed to read affected rows", err)
	}
	if n == 0 {
		return apperrors.NotFound(what + " not found")
	}
	return nil
}

func trim(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
