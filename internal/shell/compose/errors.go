// Package compose drives the external container orchestration tool through
// its command-line contract.
package compose

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrCommandFailed is returned when the orchestration tool exits nonzero.
	ErrCommandFailed = errors.New("compose command failed")

	// ErrToolNotFound is returned when the tool binary is not on PATH.
	ErrToolNotFound = errors.New("compose tool not found")
)

// CommandError wraps a failed orchestration-tool invocation.
type CommandError struct {
	Op      string // Operation that failed (e.g., "Build")
	Args    []string
	Message string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError.
func NewCommandError(op string, args []string, message string, err error) *CommandError {
	return &CommandError{
		Op:      op,
		Args:    args,
		Message: message,
		Err:     err,
	}
}
