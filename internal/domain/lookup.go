package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidLookupRef is returned when a lookup reference is neither
// an integer id nor a string code.
var ErrInvalidLookupRef = errors.New("lookup reference must be an integer id or a string code")

// LookupTable identifies one of the read-only reference tables that
// map a stable string code to a numeric id.
type LookupTable string

// Lookup tables known to the registry.
const (
	LookupMembershipLevels  LookupTable = "membership_levels"
	LookupInterviewStatuses LookupTable = "interview_statuses"
)

// LookupRef is a reference into a lookup table supplied by an API
// caller. It accepts either a raw numeric id (e.g. 2) or a stable
// string code (e.g. "participant"), or may be left unset. Exactly one
// of ID and Code is populated when Set is true.
type LookupRef struct {
	Set  bool
	ID   int64
	Code string
}

// ByID constructs a LookupRef for a numeric id.
func ByID(id int64) LookupRef {
	return LookupRef{Set: true, ID: id}
}

// ByCode constructs a LookupRef for a string code.
func ByCode(code string) LookupRef {
	return LookupRef{Set: true, Code: code}
}

// IsCode reports whether the reference carries a string code rather
// than a numeric id.
func (r LookupRef) IsCode() bool {
	return r.Set && r.Code != ""
}

// UnmarshalJSON accepts a JSON number, a JSON string, or null.
// Fractional numbers are rejected since lookup ids are integral.
func (r *LookupRef) UnmarshalJSON(data []byte) error {
	*r = LookupRef{}

	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		return nil
	case json.Number:
		id, err := v.Int64()
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidLookupRef, v.String())
		}
		*r = ByID(id)
		return nil
	case string:
		if v == "" {
			return nil
		}
		*r = ByCode(v)
		return nil
	default:
		return fmt.Errorf("%w: got %T", ErrInvalidLookupRef, raw)
	}
}

// MarshalJSON renders the reference back as the value it was supplied
// with, or null when unset.
func (r LookupRef) MarshalJSON() ([]byte, error) {
	switch {
	case !r.Set:
		return []byte("null"), nil
	case r.Code != "":
		return json.Marshal(r.Code)
	default:
		return json.Marshal(r.ID)
	}
}

// String implements fmt.Stringer for log output.
func (r LookupRef) String() string {
	switch {
	case !r.Set:
		return "<unset>"
	case r.Code != "":
		return r.Code
	default:
		return fmt.Sprintf("%d", r.ID)
	}
}
