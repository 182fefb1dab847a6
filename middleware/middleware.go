// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/gradebook/apperrors"
	"github.com/danielhkuo/gradebook/auth"
	"github.com/danielhkuo/gradebook/models"
)

// RequestIDHeader carries the per-request id in both directions
const RequestIDHeader = "X-Request-ID"

// statusRecorder remembers the status code written by the handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// WithLogging wraps a handler with request logging. Each request gets an
// id, taken from the X-Request-ID header when the client sent one.
func WithLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		slog.Info("request started",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote", GetClientIP(r),
		)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)

		slog.Info("request completed",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

// JSONResponse writes a JSON response
func JSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// ErrorResponse writes a JSON error response
func ErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	JSONResponse(w, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

// StatusFor maps an error kind onto its HTTP status
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err as a JSON error response. Server-side failures are
// logged with their cause; the client only sees the message.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status != http.StatusInternalServerError {
		ErrorResponse(w, status, apperrors.Message(err))
		return
	}

	slog.Error("request failed", "error", err)

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		ErrorResponse(w, status, apperrors.Message(err))
		return
	}
	ErrorResponse(w, status, "internal server error")
}

// ParseJSONBody parses the request body into the given struct
func ParseJSONBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}

// authenticate resolves the bearer token on r to a principal
func authenticate(tokens *auth.TokenService, r *http.Request) (auth.Principal, error) {
	token, err := auth.ExtractBearerToken(r.Header.Get("Authorization"))
	if err != nil {
		return auth.Principal{}, apperrors.Unauthenticated("authentication required")
	}

	p, err := tokens.Validate(token)
	if errors.Is(err, auth.ErrExpiredToken) {
		return auth.Principal{}, apperrors.Unauthenticated("session expired")
	}
	if err != nil {
		return auth.Principal{}, apperrors.Unauthenticated("invalid session token")
	}
	return p, nil
}

// RequireAuth rejects requests without a valid session token and stores
// the caller's principal on the request context.
func RequireAuth(tokens *auth.TokenService, next http.HandlerFunc) http.HandlerFunc {
	return requireRole(tokens, "", next)
}

// RequireAdmin is RequireAuth restricted to admins
func RequireAdmin(tokens *auth.TokenService, next http.HandlerFunc) http.HandlerFunc {
	return requireRole(tokens, auth.RoleAdmin, next)
}

// RequireStudent is RequireAuth restricted to students linked to a
// student record
func RequireStudent(tokens *auth.TokenService, next http.HandlerFunc) http.HandlerFunc {
	return requireRole(tokens, auth.RoleStudent, next)
}

func requireRole(tokens *auth.TokenService, role string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := authenticate(tokens, r)
		if err != nil {
			WriteError(w, err)
			return
		}

		switch role {
		case auth.RoleAdmin:
			if !p.IsAdmin() {
				WriteError(w, apperrors.Forbidden("admin access required"))
				return
			}
		case auth.RoleStudent:
			if !p.IsStudent() {
				WriteError(w, apperrors.Forbidden("student access only"))
				return
			}
		}

		next(w, r.WithContext(auth.WithPrincipal(r.Context(), p)))
	}
}

// CORS middleware allows cross-origin requests from the frontend
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		// Handle preflight requests
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetClientIP extracts the client IP address
// Checks X-Forwarded-For, X-Real-IP, then falls back to RemoteAddr
func GetClientIP(r *http.Request) string {
	// Check X-Forwarded-For (load balancers)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Take first IP in chain
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' || xff[i] == ' ' {
				return xff[:i]
			}
		}
		return xff
	}

	// Check X-Real-IP (nginx)
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// Fall back to RemoteAddr
	// Strip port if present
	addr := r.RemoteAddr
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[:i]
		}
	}
	return addr
}
