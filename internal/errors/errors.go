// Package errors provides the structured error type shared by the CLI and
// HTTP surfaces. Errors carry a stable code so each surface can map them to
// its own representation (exit messages, HTTP status codes) without string
// matching.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies a class of failure.
type ErrorCode string

const (
	ErrCodeValidation     ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound       ErrorCode = "NOT_FOUND"
	ErrCodeStorageFailure ErrorCode = "STORAGE_FAILURE"
	ErrCodeInternalError  ErrorCode = "INTERNAL_ERROR"
)

// AppError is a standardized application error.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Cause   error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// ValidationError reports bad user input.
func ValidationError(message, details string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Details: details}
}

// NotFoundError reports a missing resource.
func NotFoundError(resource, id string) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// StorageError wraps a file system failure.
func StorageError(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeStorageFailure, Message: message, Cause: cause}
}

// Wrap adds context to an arbitrary error, preserving an existing AppError
// code.
func Wrap(err error, message string) *AppError {
	if appErr, ok := GetAppError(err); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Details: appErr.Message,
			Cause:   err,
		}
	}
	return &AppError{Code: ErrCodeInternalError, Message: message, Cause: err}
}

// GetAppError extracts an AppError from an error chain.
func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HTTPStatus maps an error to the HTTP status code the API should return.
func HTTPStatus(err error) int {
	appErr, ok := GetAppError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Code {
	case ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
