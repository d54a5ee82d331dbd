// Package apperror defines the error taxonomy shared by all layers.
//
// Lower layers (store, repository, auth) return these errors; the HTTP
// handlers translate them to status codes with errors.Is:
//
//	ErrValidation → 409
//	ErrNotFound   → 404
//	ErrAuth       → 403
//	ErrInternal   → 500
//
// Internal errors carry an already-sanitized message — the underlying
// cause is logged where it happens and never reaches the client.
package apperror

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrAuth       = errors.New("authorization error")
	ErrInternal   = errors.New("internal error")
)

type AppError struct {
	Err     error  // sentinel classifying the error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports an unknown record ID.
func NotFound(message string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: message,
	}
}

// ValidationFailed reports a payload that violates the resource schema
// or a cross-field business rule.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Unauthorized reports a missing, invalid, or expired credential.
// HTTP handlers map this to 403 Forbidden.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrAuth,
		Message: message,
	}
}

// Internal reports a backend failure with a message safe to return to
// the client.
func Internal(message string) *AppError {
	return &AppError{
		Err:     ErrInternal,
		Message: message,
	}
}
