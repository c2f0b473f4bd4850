// Package errors provides coded application errors shared by the stores,
// the export assembler, and the CLI boundary.
package errors

import "fmt"

// ErrorCode identifies a class of failure for user-facing reporting.
type ErrorCode string

const (
	// General errors
	ErrInternal   ErrorCode = "INTERNAL_ERROR"
	ErrValidation ErrorCode = "VALIDATION_ERROR"
	ErrNotFound   ErrorCode = "NOT_FOUND"

	// Database errors
	ErrDatabase  ErrorCode = "DATABASE_ERROR"
	ErrMigration ErrorCode = "MIGRATION_FAILED"

	// Authentication errors
	ErrAuthFailed       ErrorCode = "AUTH_FAILED"
	ErrPasswordRequired ErrorCode = "PASSWORD_REQUIRED"

	// Export errors
	ErrExportFailed          ErrorCode = "EXPORT_FAILED"
	ErrCapabilityUnavailable ErrorCode = "CAPABILITY_UNAVAILABLE"

	// Backup errors
	ErrBackupFailed  ErrorCode = "BACKUP_FAILED"
	ErrRestoreFailed ErrorCode = "RESTORE_FAILED"
)

// AppError is an error with a stable code and a human-readable message.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an existing error with an error code.
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// Is checks whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}
