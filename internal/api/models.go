package api

import (
	"encoding/json"
	"time"

	"github.com/calebwray/flock-api/internal/domain"
)

// Common request/response structures

// CreateMemberRequest defines the payload for the member creation
// endpoint. MembershipLevel and InterviewStatus accept either a
// numeric lookup id or a string code, or may be omitted entirely.
// BasicInfo is an open document stored verbatim.
type CreateMemberRequest struct {
	Name            string           `json:"name"             validate:"required,min=1,max=100"`
	MembershipLevel domain.LookupRef `json:"membership_level"`
	InterviewStatus domain.LookupRef `json:"interview_status"`
	Gender          *string          `json:"gender"`
	Birthdate       *time.Time       `json:"birthdate"`
	Phone           *string          `json:"phone"`
	Email           *string          `json:"email"`
	BasicInfo       json.RawMessage  `json:"basic_info"`
}

// MemberResponse is the {id, name} body returned by member creation
// and the listing endpoints.
type MemberResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MemberIDResponse is the body of the exact-name lookup endpoint.
type MemberIDResponse struct {
	ID string `json:"id"`
}

// CreateOfferingRequest defines the payload for recording a donation.
// DonatedAt defaults to the insertion time when omitted.
type CreateOfferingRequest struct {
	MemberID  string     `json:"member_id"  validate:"required,uuid"`
	Amount    *float64   `json:"amount"     validate:"required"`
	Note      string     `json:"note"`
	DonatedAt *time.Time `json:"donated_at"`
}

// OfferingResponse is the persisted offering row returned on creation
// and inside the donation log.
type OfferingResponse struct {
	ID        int64     `json:"id"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	DonatedAt time.Time `json:"donated_at"`
	Note      string    `json:"note"`
}

// OfferingLogResponse is the aggregate body of the per-member donation
// log endpoint.
type OfferingLogResponse struct {
	MemberID string             `json:"member_id"`
	Total    float64            `json:"total"`
	Log      []OfferingResponse `json:"log"`
}

func memberToResponse(m domain.MemberSummary) MemberResponse {
	return MemberResponse{ID: m.ID.String(), Name: m.Name}
}

func membersToResponse(members []domain.MemberSummary) []MemberResponse {
	out := make([]MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, memberToResponse(m))
	}
	return out
}

func offeringToResponse(o domain.Offering) OfferingResponse {
	return OfferingResponse{
		ID:        o.ID,
		Amount:    o.Amount,
		Currency:  o.Currency,
		DonatedAt: o.DonatedAt,
		Note:      o.Note,
	}
}

func offeringLogToResponse(l domain.OfferingLog) OfferingLogResponse {
	log := make([]OfferingResponse, 0, len(l.Log))
	for _, o := range l.Log {
		log = append(log, offeringToResponse(o))
	}
	return OfferingLogResponse{
		MemberID: l.MemberID.String(),
		Total:    l.Total,
		Log:      log,
	}
}
