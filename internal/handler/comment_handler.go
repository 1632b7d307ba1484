package handler

import (
	"net/http"

	"dishes-api/internal/model"
	"dishes-api/internal/service"

	"github.com/go-chi/chi"
	"github.com/rs/zerolog"
)

// CommentHandler handles requests on the comments of a dish.
type CommentHandler struct {
	service service.CommentService
	logger  zerolog.Logger
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(service service.CommentService, logger zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		logger:  logger.With().Str("handler", "comment").Logger(),
	}
}

// List handles GET /dishes/{dishId}/comments.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	comments, err := h.service.List(r.Context(), chi.URLParam(r, "dishId"))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// Add handles POST /dishes/{dishId}/comments.
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request, caller model.Identity) {
	var req model.CommentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	dish, err := h.service.Add(r.Context(), caller, chi.URLParam(r, "dishId"), req)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, dish)
}

// DeleteAll handles DELETE /dishes/{dishId}/comments.
func (h *CommentHandler) DeleteAll(w http.ResponseWriter, r *http.Request, _ model.Identity) {
	dish, err := h.service.DeleteAll(r.Context(), chi.URLParam(r, "dishId"))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, dish)
}

// Get handles GET /dishes/{dishId}/comments/{commentId}.
func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	comment, err := h.service.Get(r.Context(), chi.URLParam(r, "dishId"), chi.URLParam(r, "commentId"))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

// Update handles PUT /dishes/{dishId}/comments/{commentId}.
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request, caller model.Identity) {
	var patch model.CommentPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	dish, err := h.service.Update(r.Context(), caller, chi.URLParam(r, "dishId"), chi.URLParam(r, "commentId"), patch)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, dish)
}

// Delete handles DELETE /dishes/{dishId}/comments/{commentId}.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request, caller model.Identity) {
	dish, err := h.service.Delete(r.Context(), caller, chi.URLParam(r, "dishId"), chi.URLParam(r, "commentId"))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, dish)
}
