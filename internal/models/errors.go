package models

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for the application error taxonomy.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeNotAuthenticated = "NOT_AUTHENTICATED"
	CodeStore            = "STORE_ERROR"
)

// AppError is a typed application error carrying a taxonomy code and a
// human-readable message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError reports missing or invalid input.
func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

// NewNotFoundError reports a missing user, post, profile or media record.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message}
}

// NewNotAuthenticatedError reports a request with no current user.
func NewNotAuthenticatedError(message string) *AppError {
	return &AppError{Code: CodeNotAuthenticated, Message: message}
}

// NewStoreError wraps an underlying persistence failure. Store failures
// are opaque passthroughs: never retried, fatal for the request.
func NewStoreError(err error) *AppError {
	return &AppError{Code: CodeStore, Message: "store operation failed", Err: err}
}

// HTTPStatus maps an application error to the HTTP status the handlers
// respond with. Unknown errors are treated as store failures.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case CodeValidation:
			return http.StatusBadRequest
		case CodeNotFound:
			return http.StatusNotFound
		case CodeNotAuthenticated:
			return http.StatusUnauthorized
		}
	}
	return http.StatusInternalServerError
}
