package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
var (
	ErrNilContext = errors.New("context cannot be nil")
	ErrEmptyKey   = errors.New("key cannot be empty")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateKey ensures a key parameter is not empty.
func validateKey(key, paramName string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyKey, paramName)
	}
	return nil
}
