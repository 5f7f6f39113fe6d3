package domain

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Offering
var (
	ErrEmptyOfferingMemberID = errors.New("offering member ID cannot be empty")
	ErrNegativeOfferingAmount = errors.New("offering amount cannot be negative")
)

// Offering represents a single recorded donation attributed to a
// member. Offerings are append-only: they are never updated and are
// removed only as a side effect of deleting their member.
type Offering struct {
	ID        int64     `json:"id"`
	MemberID  uuid.UUID `json:"member_id"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	DonatedAt time.Time `json:"donated_at"`
	Note      string    `json:"note"`
}

// OfferingLog is the aggregate view of a member's donations: the full
// ordered log (most recent first) plus the rounded running total.
type OfferingLog struct {
	MemberID uuid.UUID  `json:"member_id"`
	Total    float64    `json:"total"`
	Log      []Offering `json:"log"`
}

// Validate checks if the Offering has valid data.
func (o *Offering) Validate() error {
	if o.MemberID == uuid.Nil {
		return ErrEmptyOfferingMemberID
	}
	if o.Amount < 0 {
		return ErrNegativeOfferingAmount
	}
	return nil
}

// SumAmounts adds up the amounts of the given offerings and rounds the
// result to 2 decimal places, half away from zero. Amounts are stored
// as numeric(12,2) so the rounding only guards against float64
// summation drift.
func SumAmounts(offerings []Offering) float64 {
	var total float64
	for _, o := range offerings {
		total += o.Amount
	}
	return RoundTo2(total)
}

// RoundTo2 rounds to 2 decimal places, half away from zero.
func RoundTo2(x float64) float64 {
	return math.Round(x*100) / 100
}
