package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in
	// the store. Entity-specific variants below wrap it so callers can
	// match either the generic or the specific condition.
	ErrNotFound = errors.New("entity not found")

	// ErrUnknownCode is returned when a lookup reference (a string code
	// or a numeric id) has no matching row in its lookup table. The
	// enclosing transaction is always rolled back before this error
	// propagates, so no partial write is ever visible.
	ErrUnknownCode = errors.New("unknown lookup code")

	// ErrInvalidEntity is returned when an entity fails validation or is
	// rejected by a store constraint. Check the wrapped error for the
	// specific violation.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a transaction fails to begin
	// or commit.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrMemberNotFound indicates that the requested member does not
	// exist in the registry.
	ErrMemberNotFound = fmt.Errorf("%w: member", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error,
// including the entity-specific variants.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
