// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// ErrNotFound indicates an operation referenced an unknown id.
	ErrNotFound = errors.New("not found")
	// ErrPersistence indicates a load or save through the persistence
	// collaborator failed. Save failures are logged and never abort the
	// in-memory state transition.
	ErrPersistence = errors.New("persistence failure")
	// ErrNotification indicates a notification could not be delivered.
	// Always best-effort; never propagated to evaluation callers.
	ErrNotification = errors.New("notification failure")
)

// ValidationError reports a malformed issue or reminder field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a validation error for a named field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
