package ledger

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the referenced transaction (or the whole
// ledger) does not exist.
var ErrNotFound = errors.New("transaction not found")

// ValidationError reports a caller-supplied field that fails a constraint.
// Nothing is written when a ValidationError is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalidField(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
