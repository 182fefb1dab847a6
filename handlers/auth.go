// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/gradebook/apperrors"
	"github.com/danielhkuo/gradebook/auth"
	"github.com/danielhkuo/gradebook/cliparse"
	"github.com/danielhkuo/gradebook/middleware"
	"github.com/danielhkuo/gradebook/models"
	"github.com/danielhkuo/gradebook/validation"
)

type AuthHandler struct {
	db     *sql.DB
	tokens *auth.TokenService
}

func NewAuthHandler(db *sql.DB, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{
		db:     db,
		tokens: auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL),
	}
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if err := validation.Struct(req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	var (
		p         auth.Principal
		hash      string
		studentID sql.NullString
	)
	err := h.db.QueryRowContext(r.Context(), `
		SELECT id, username, password_hash, role, student_id
		FROM users
		WHERE username = $1
	`, req.Username).Scan(&p.UserID, &p.Username, &hash, &p.Role, &studentID)
	if errors.Is(err, sql.ErrNoRows) {
		h.rejectLogin(w, r, req.Username)
		return
	}
	if err != nil {
		middleware.WriteError(w, apperrors.Storage("failed to query user", err))
		return
	}

	if !auth.CheckPassword(hash, req.Password) {
		h.rejectLogin(w, r, req.Username)
		return
	}
	p.StudentID = studentID.String

	token, expiresAt, err := h.tokens.Issue(p)
	if err != nil {
		middleware.WriteError(w, apperrors.Storage("failed to issue session", err))
		return
	}

	slog.Info("login succeeded", "username", p.Username, "role", p.Role, "ip", middleware.GetClientIP(r))

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      p,
	})
}

func (h *AuthHandler) rejectLogin(w http.ResponseWriter, r *http.Request, username string) {
	slog.Warn("login failed", "username", username, "ip", middleware.GetClientIP(r))
	middleware.WriteError(w, apperrors.Unauthenticated("invalid username or password"))
}

// CurrentUser handles GET /api/user
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		middleware.WriteError(w, apperrors.Unauthenticated("authentication required"))
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]auth.Principal{"user": p})
}
