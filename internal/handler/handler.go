package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"dishes-api/internal/middleware"
	"dishes-api/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError maps err onto an error response. Domain errors carry their
// own status and code; anything else is reported as a 500 with the error
// text as message.
func writeError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	status := http.StatusInternalServerError
	code := model.ErrCodeInternalError

	var de *model.DomainError
	if errors.As(err, &de) {
		status = de.Status
		code = de.Code
	}

	requestID := middleware.RequestIDFromContext(r.Context())

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).
		Str("code", code).
		Int("status", status).
		Str("request_id", requestID).
		Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       err.Error(),
		CorrelationID: requestID,
	})
}

// decodeJSON reads the request body into dst. An empty body leaves dst
// untouched.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return model.ErrInvalidJSON
	}
	return nil
}

// NotSupported rejects a method the route does not implement.
func NotSupported(w http.ResponseWriter, r *http.Request, _ model.Identity) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	_, _ = io.WriteString(w, r.Method+" operation not supported on "+r.URL.Path)
}
