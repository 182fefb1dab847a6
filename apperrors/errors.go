// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package apperrors defines the error kinds the services return and the
// HTTP layer maps onto status codes.
package apperrors

import "errors"

// Error kinds
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("resource not found")
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("permission denied")
	ErrStorage         = errors.New("storage failure")
)

// Error carries a kind, a caller-facing message and an optional cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

// Error implements error interface
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Kind != nil {
		msg = e.Kind.Error()
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func Validation(message string) error {
	return &Error{Kind: ErrValidation, Message: message}
}

func NotFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func Unauthenticated(message string) error {
	return &Error{Kind: ErrUnauthenticated, Message: message}
}

func Forbidden(message string) error {
	return &Error{Kind: ErrForbidden, Message: message}
}

// Storage wraps a persistence failure. The cause is kept for logging and
// never shown to clients.
func Storage(message string, err error) error {
	return &Error{Kind: ErrStorage, Message: message, Err: err}
}

// IsAuthorization reports whether err is either authorization kind.
func IsAuthorization(err error) bool {
	return errors.Is(err, ErrUnauthenticated) || errors.Is(err, ErrForbidden)
}

// Message returns the caller-facing message of err, without its cause.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		if appErr.Message != "" {
			return appErr.Message
		}
		if appErr.Kind != nil {
			return appErr.Kind.Error()
		}
	}
	return err.Error()
}
