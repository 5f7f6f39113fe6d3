package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/calebwray/flock-api/internal/api/shared"
)

// Pinger is the slice of the database handle the health check needs.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports service liveness, including store
// reachability.
type HealthHandler struct {
	db     Pinger
	logger *slog.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db Pinger, log *slog.Logger) *HealthHandler {
	if log == nil {
		panic("logger cannot be nil for HealthHandler")
	}

	return &HealthHandler{
		db:     db,
		logger: log.With(slog.String("component", "health_handler")),
	}
}

// Health handles GET /health requests.
// A failing database ping degrades the response to 503 so liveness
// reflects whether the service can actually serve requests.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Error("health check failed: database unreachable",
			slog.String("error", err.Error()))
		shared.RespondWithJSON(w, r, http.StatusServiceUnavailable,
			map[string]string{"status": "degraded"})
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
