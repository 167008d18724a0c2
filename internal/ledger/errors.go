package ledger

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a mutation references an unknown ID.
var ErrNotFound = errors.New("not found")

// ErrDuplicateKey is returned when an insert collides with an existing ID.
var ErrDuplicateKey = errors.New("duplicate key")

// ValidationError describes a malformed record rejected at the store
// boundary. Records that pass validation are guaranteed well-formed for
// aggregation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
