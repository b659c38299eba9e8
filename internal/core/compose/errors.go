// Package compose contains pure functions for reading the stack's compose
// file. No I/O happens here; callers hand in the raw YAML.
package compose

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrEmptyInput is returned for an empty compose file.
	ErrEmptyInput = errors.New("compose file is empty")

	// ErrInvalidYAML is returned when the file is not valid YAML.
	ErrInvalidYAML = errors.New("invalid YAML syntax")

	// ErrNoServices is returned when the file defines no services.
	ErrNoServices = errors.New("compose file must define at least one service")
)

// ParseError wraps errors with context about where parsing failed.
type ParseError struct {
	Field   string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(field, message string, err error) *ParseError {
	return &ParseError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
