package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a terminal failure carrying the HTTP status, a numeric
// application code and a message safe to show to end users.
type AppError struct {
	Status  int
	Code    int
	Message string
	// Fields holds per-field messages for validation failures.
	Fields map[string]string
	cause  error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.cause }

// Is matches two AppErrors by status and code so sentinels work with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Status == t.Status && e.Code == t.Code
}

// NotFound reports a referenced entity that does not exist.
func NotFound(code int, message string) *AppError {
	return &AppError{Status: http.StatusNotFound, Code: code, Message: message}
}

// Unauthorized reports missing or invalid credentials.
func Unauthorized(code int, message string) *AppError {
	return &AppError{Status: http.StatusUnauthorized, Code: code, Message: message}
}

// Forbidden reports an authenticated caller that may not perform the action.
func Forbidden(code int, message string) *AppError {
	return &AppError{Status: http.StatusForbidden, Code: code, Message: message}
}

// Validation reports malformed input.
func Validation(code int, message string, fields map[string]string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Code: code, Message: message, Fields: fields}
}

// Internal wraps an unexpected failure. Only message reaches the client.
func Internal(code int, message string, cause error) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Code: code, Message: message, cause: cause}
}

// AsAppError extracts an *AppError from err, or wraps err as an internal error.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(50000, "internal server error", err)
}
