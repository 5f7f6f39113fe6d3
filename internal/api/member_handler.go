// Package api handles incoming HTTP requests, request validation, and
// response formatting for the membership registry. It translates HTTP
// concerns into store operations and store outcomes into status codes.
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

// MemberHandler handles member-related HTTP requests
type MemberHandler struct {
	members store.MemberStore
	logger  *slog.Logger
}

// NewMemberHandler creates a new MemberHandler
func NewMemberHandler(members store.MemberStore, log *slog.Logger) *MemberHandler {
	if log == nil {
		panic("logger cannot be nil for MemberHandler")
	}

	return &MemberHandler{
		members: members,
		logger:  log.With(slog.String("component", "member_handler")),
	}
}

// ListMembers handles GET /members requests.
// It returns every member's {id, name} ordered by creation time.
func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.members.List(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to list members", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, membersToResponse(members))
}

// SearchMembers handles GET /members/search?name= requests.
// The term must be at least one character; matching is a
// case-insensitive substring match ordered by name.
func (h *MemberHandler) SearchMembers(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("name")
	if term == "" {
		shared.RespondWithError(w, r,
			http.StatusUnprocessableEntity, "Search term must not be empty")
		return
	}

	members, err := h.members.SearchByName(r.Context(), term)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to search members", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, membersToResponse(members))
}

// GetMemberIDByName handles GET /members/by-name/{name} requests.
// Returns the id of the member with that exact name, 404 when none.
func (h *MemberHandler) GetMemberIDByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	id, err := h.members.GetIDByName(r.Context(), name)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MemberIDResponse{ID: id.String()})
}

// CreateMember handles POST /members requests.
func (h *MemberHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateMemberRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: name must be 1-100 characters")
		return
	}

	created, err := h.members.Create(r.Context(), store.CreateMemberInput{
		Name:            req.Name,
		MembershipLevel: req.MembershipLevel,
		InterviewStatus: req.InterviewStatus,
		Gender:          req.Gender,
		Birthdate:       req.Birthdate,
		Phone:           req.Phone,
		Email:           req.Email,
		BasicInfo:       req.BasicInfo,
	})
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		message := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			message = "Failed to create member"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, message, err)
		return
	}

	log.Debug("member created via API",
		slog.String("member_id", created.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, memberToResponse(created))
}

// DeleteMember handles DELETE /members/{id} requests.
// A delete that matched no rows is reported as 404; success is 204
// with no body.
func (h *MemberHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid member ID")
		return
	}

	deleted, err := h.members.Delete(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to delete member", err)
		return
	}
	if deleted == 0 {
		shared.RespondWithError(w, r, http.StatusNotFound, "Member not found")
		return
	}

	log.Debug("member deleted via API", slog.String("member_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}
