package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/calebwray/flock-api/internal/api/shared"
	"github.com/calebwray/flock-api/internal/platform/logger"
	"github.com/calebwray/flock-api/internal/store"
)

// OfferingHandler handles offering-related HTTP requests
type OfferingHandler struct {
	offerings store.OfferingStore
	logger    *slog.Logger
}

// NewOfferingHandler creates a new OfferingHandler
func NewOfferingHandler(offerings store.OfferingStore, log *slog.Logger) *OfferingHandler {
	if log == nil {
		panic("logger cannot be nil for OfferingHandler")
	}

	return &OfferingHandler{
		offerings: offerings,
		logger:    log.With(slog.String("component", "offering_handler")),
	}
}

// CreateOffering handles POST /offerings requests.
// The amount must be non-negative; the store re-enforces this with a
// check constraint but the contract belongs to this layer.
func (h *OfferingHandler) CreateOffering(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateOfferingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: member_id and amount are required")
		return
	}
	if *req.Amount < 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Amount must not be negative")
		return
	}

	memberID, err := uuid.Parse(req.MemberID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid member ID")
		return
	}

	created, err := h.offerings.Create(r.Context(), store.CreateOfferingInput{
		MemberID:  memberID,
		Amount:    *req.Amount,
		Note:      req.Note,
		DonatedAt: req.DonatedAt,
	})
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		message := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			message = "Failed to record offering"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, message, err)
		return
	}

	log.Debug("offering recorded via API",
		slog.Int64("offering_id", created.ID),
		slog.String("member_id", memberID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, offeringToResponse(created))
}

// GetMemberOfferings handles GET /members/{id}/offerings requests.
// The response carries the full donation log, most recent first, and
// the total rounded to two decimal places.
func (h *OfferingHandler) GetMemberOfferings(w http.ResponseWriter, r *http.Request) {
	memberID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid member ID")
		return
	}

	offeringLog, err := h.offerings.LogForMember(r.Context(), memberID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		message := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			message = "Failed to load offerings"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, message, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, offeringLogToResponse(offeringLog))
}
