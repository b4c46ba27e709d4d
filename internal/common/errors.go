// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Input errors.
	ErrMissingFile       = errors.New("file not found")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMissingColumn     = errors.New("missing required column")

	// Row errors.
	ErrInvalidRow = errors.New("invalid row")

	// Persistence errors.
	ErrPersistence = errors.New("persistence failed")

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsInputError reports whether err was caused by unusable input files.
// Input errors abort a run before any row is processed.
func IsInputError(err error) bool {
	return errors.Is(err, ErrMissingFile) ||
		errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrMissingColumn)
}
