package api

import (
	"errors"
	"net/http"

	"github.com/calebwray/flock-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This is the only place store failures
// are translated into statuses, which keeps the policy in one spot and
// prevents leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Unknown lookup code supplied by the caller
	case errors.Is(err, store.ErrUnknownCode):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, store.ErrMemberNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Constraint rejections that slipped past request validation
	case errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. Internal detail stays in the logs.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrUnknownCode):
		return "Unknown lookup code"

	case errors.Is(err, store.ErrMemberNotFound):
		return "Member not found"

	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}
