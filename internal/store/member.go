package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/calebwray/flock-api/internal/domain"
)

// CreateMemberInput carries the caller-supplied fields for a new
// member. MembershipLevel and InterviewStatus are resolved against
// their lookup tables inside the creation transaction.
type CreateMemberInput struct {
	Name            string
	MembershipLevel domain.LookupRef
	InterviewStatus domain.LookupRef
	Gender          *string
	Birthdate       *time.Time
	Phone           *string
	Email           *string
	BasicInfo       json.RawMessage
}

// MemberStore defines the interface for member data persistence.
type MemberStore interface {
	// List returns the {id, name} of every member, ordered by creation
	// time ascending.
	List(ctx context.Context) ([]domain.MemberSummary, error)

	// SearchByName returns members whose name contains term as a
	// case-insensitive substring, ordered alphabetically by name.
	SearchByName(ctx context.Context, term string) ([]domain.MemberSummary, error)

	// GetIDByName returns the id of the member whose name matches
	// exactly. When several members share the name, the earliest
	// created one wins. Returns ErrMemberNotFound if none match.
	GetIDByName(ctx context.Context, name string) (uuid.UUID, error)

	// Create resolves both lookup references and inserts the member in
	// a single transaction, returning the persisted {id, name}.
	// Returns ErrUnknownCode if either reference has no matching lookup
	// row; the insert is rolled back and no partial write is visible.
	Create(ctx context.Context, input CreateMemberInput) (domain.MemberSummary, error)

	// Delete removes the member's offerings and then the member row as
	// one atomic transaction, in that order. Returns the number of
	// member rows deleted: 0 when the id did not exist (not an error),
	// 1 on success.
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

// LookupResolver resolves a lookup reference to the numeric foreign-key
// id used for storage. Both the code and the raw-id form are verified
// against the lookup table; an unmatched reference yields
// ErrUnknownCode. An unset reference resolves to a NULL id.
type LookupResolver interface {
	ResolveLookupID(ctx context.Context, tx DBTX, table domain.LookupTable, ref domain.LookupRef) (sql.NullInt64, error)
}
