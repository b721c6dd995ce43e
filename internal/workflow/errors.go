package workflow

import (
	"errors"
	"fmt"
)

// Op identifies the remote command a RemoteError came from.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// RemoteError reports a failed create, update or delete call. Draft and
// collection are left as they were before the command.
type RemoteError struct {
	Op    Op
	ID    int64 // zero for OpCreate
	Cause error
}

func (e *RemoteError) Error() string {
	if e.ID > 0 {
		return fmt.Sprintf("%s post #%d: %v", e.Op, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s post: %v", e.Op, e.Cause)
}

func (e *RemoteError) Unwrap() error {
	return e.Cause
}

// ValidationError represents a command rejected before any remote call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// IsRemoteError checks if error is a failed remote command
func IsRemoteError(err error) bool {
	var remoteErr *RemoteError
	return errors.As(err, &remoteErr)
}
