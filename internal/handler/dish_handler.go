package handler

import (
	"net/http"

	"dishes-api/internal/model"
	"dishes-api/internal/service"

	"github.com/go-chi/chi"
	"github.com/rs/zerolog"
)

// DishHandler handles dish-related HTTP requests.
type DishHandler struct {
	service service.DishService
	logger  zerolog.Logger
}

// NewDishHandler creates a new dish handler.
func NewDishHandler(service service.DishService, logger zerolog.Logger) *DishHandler {
	return &DishHandler{
		service: service,
		logger:  logger.With().Str("handler", "dish").Logger(),
	}
}

// List handles GET /dishes.
func (h *DishHandler) List(w http.ResponseWriter, r *http.Request) {
	dishes, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, dishes)
}

// Create handles POST /dishes.
func (h *DishHandler) Create(w http.ResponseWriter, r *http.Request, caller model.Identity) {
	var req model.DishRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	dish, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	h.logger.Info().
		Str("dish_id", dish.ID.Hex()).
		Str("user", caller.Username).
		Msg("dish created")
	writeJSON(w, http.StatusOK, dish)
}

// DeleteAll handles DELETE /dishes.
func (h *DishHandler) DeleteAll(w http.ResponseWriter, r *http.Request, caller model.Identity) {
	res, err := h.service.DeleteAll(r.Context())
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	h.logger.Info().Int64("deleted", res.DeletedCount).Str("user", caller.Username).Msg("dishes removed")
	writeJSON(w, http.StatusOK, res)
}

// Get handles GET /dishes/{dishId}.
func (h *DishHandler) Get(w http.ResponseWriter, r *http.Request) {
	dish, err := h.service.Get(r.Context(), chi.URLParam(r, "dishId"))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, dish)
}

// Update handles PUT /dishes/{dishId}.
func (h *DishHandler) Update(w http.ResponseWriter, r *http.Request, _ model.Identity) {
	var patch model.DishPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	dish, err := h.service.Update(r.Context(), chi.URLParam(r, "dishId"), patch)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, dish)
}

// Delete handles DELETE /dishes/{dishId}.
func (h *DishHandler) Delete(w http.ResponseWriter, r *http.Request, _ model.Identity) {
	dish, err := h.service.Delete(r.Context(), chi.URLParam(r, "dishId"))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, dish)
}
