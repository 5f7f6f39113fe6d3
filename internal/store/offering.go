package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/calebwray/flock-api/internal/domain"
)

// CreateOfferingInput carries the caller-supplied fields for a new
// offering. DonatedAt nil means the store assigns the insertion time;
// currency always takes the store default.
type CreateOfferingInput struct {
	MemberID  uuid.UUID
	Amount    float64
	Note      string
	DonatedAt *time.Time
}

// OfferingStore defines the interface for offering data persistence.
// Offerings are append-only; deletion happens only through
// MemberStore.Delete as part of the member cascade.
type OfferingStore interface {
	// Create verifies the member exists and inserts one offering row in
	// a single transaction, returning the full persisted row including
	// the store-assigned id, currency default, and timestamp.
	// Returns ErrMemberNotFound when MemberID references no member.
	// The amount is expected to be non-negative; the API layer enforces
	// that contract and the store's check constraint backs it up.
	Create(ctx context.Context, input CreateOfferingInput) (domain.Offering, error)

	// LogForMember verifies the member exists and returns the member's
	// offerings ordered most recent donated_at first, together with the
	// total of all amounts rounded to 2 decimal places.
	// Returns ErrMemberNotFound when the member does not exist, which
	// distinguishes "no member" from "member with zero offerings".
	LogForMember(ctx context.Context, memberID uuid.UUID) (domain.OfferingLog, error)
}
