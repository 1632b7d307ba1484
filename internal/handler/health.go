package handler

import (
	"context"
	"net/http"
	"time"

	"dishes-api/internal/repository"

	"github.com/rs/zerolog"
)

const healthTimeout = 2 * time.Second

// HealthHandler reports whether the backing store answers.
type HealthHandler struct {
	store  repository.Pinger
	logger zerolog.Logger
}

// NewHealthHandler creates a health handler for store.
func NewHealthHandler(store repository.Pinger, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		store:  store,
		logger: logger.With().Str("handler", "health").Logger(),
	}
}

// ServeHTTP handles GET /health.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Error().Err(err).Msg("store ping failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
