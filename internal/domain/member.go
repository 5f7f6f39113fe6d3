package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Member
var (
	ErrEmptyMemberID   = errors.New("member ID cannot be empty")
	ErrEmptyMemberName = errors.New("member name cannot be empty")
	ErrMemberNameTooLong = errors.New("member name cannot exceed 100 characters")
)

// Member represents a person in the membership registry. The lookup
// references point at the membership_levels and interview_statuses
// tables and may be unset. BasicInfo is an open-ended JSON document
// stored verbatim; the application never inspects its contents.
type Member struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	MembershipLevelID *int64          `json:"membership_level_id,omitempty"`
	InterviewStatusID *int64          `json:"interview_status_id,omitempty"`
	Gender            *string         `json:"gender,omitempty"`
	Birthdate         *time.Time      `json:"birthdate,omitempty"`
	Phone             *string         `json:"phone,omitempty"`
	Email             *string         `json:"email,omitempty"`
	BasicInfo         json.RawMessage `json:"basic_info,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// MemberSummary is the {id, name} projection returned by listing and
// search operations.
type MemberSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Validate checks if the Member has valid data.
// Returns an error if any field fails validation.
func (m *Member) Validate() error {
	if m.ID == uuid.Nil {
		return ErrEmptyMemberID
	}
	return ValidateMemberName(m.Name)
}

// ValidateMemberName enforces the 1-100 character name rule shared by
// the API layer and the stores.
func ValidateMemberName(name string) error {
	if name == "" {
		return ErrEmptyMemberName
	}
	if len([]rune(name)) > 100 {
		return ErrMemberNameTooLong
	}
	return nil
}
