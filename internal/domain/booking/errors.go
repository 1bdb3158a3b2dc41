package booking

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is matching across layers. The typed errors below
// carry the diagnostic context.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrStateConflict   = errors.New("state conflict")
)

// InvalidArgumentError reports a malformed constructor input. Always
// caller-fixable, never retried.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func invalidArgument(field, reason string) error {
	return &InvalidArgumentError{Field: field, Reason: reason}
}

// StateConflictError reports a transition attempted from a status that does
// not permit it.
type StateConflictError struct {
	Current   Status
	Operation string
	Reason    string
}

func (e *StateConflictError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot %s reservation in status %q: %s", e.Operation, e.Current, e.Reason)
	}
	return fmt.Sprintf("cannot %s reservation in status %q", e.Operation, e.Current)
}

func (e *StateConflictError) Is(target error) bool {
	return target == ErrStateConflict
}
