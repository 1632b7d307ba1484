package handler

import (
	"net/http"

	"dishes-api/internal/model"

	"github.com/rs/zerolog"
)

// IdentityHandlerFunc is a handler that runs on behalf of an
// authenticated caller.
type IdentityHandlerFunc func(w http.ResponseWriter, r *http.Request, caller model.Identity)

// Verifier resolves and authorises request callers.
type Verifier interface {
	Authenticate(r *http.Request) (model.Identity, error)
	RequireAdmin(identity model.Identity) error
}

// Gate turns identity-aware handlers into plain handlers that first
// authenticate the request.
type Gate struct {
	verifier Verifier
	logger   zerolog.Logger
}

// NewGate creates a gate backed by verifier.
func NewGate(verifier Verifier, logger zerolog.Logger) *Gate {
	return &Gate{
		verifier: verifier,
		logger:   logger.With().Str("handler", "gate").Logger(),
	}
}

// User requires any authenticated caller.
func (g *Gate) User(fn IdentityHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := g.verifier.Authenticate(r)
		if err != nil {
			writeError(w, r, err, g.logger)
			return
		}
		fn(w, r, caller)
	}
}

// Admin requires an authenticated caller with the admin flag.
func (g *Gate) Admin(fn IdentityHandlerFunc) http.HandlerFunc {
	return g.User(func(w http.ResponseWriter, r *http.Request, caller model.Identity) {
		if err := g.verifier.RequireAdmin(caller); err != nil {
			writeError(w, r, err, g.logger)
			return
		}
		fn(w, r, caller)
	})
}
