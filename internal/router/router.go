package router

import (
	"net/http"

	"dishes-api/internal/handler"
	"dishes-api/internal/middleware"

	"github.com/go-chi/chi"
	chimiddleware "github.com/go-chi/chi/middleware"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Dishes   *handler.DishHandler
	Comments *handler.CommentHandler
	Health   http.Handler
	Gate     *handler.Gate
}

// New creates a new HTTP router with all routes and middleware configured.
//
// Read-only routes use the open CORS policy. Preflight and mutating routes
// use the restricted policy built from allowedOrigins.
func New(h Handlers, allowedOrigins []string, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))

	r.Method(http.MethodGet, "/health", h.Health)

	restricted := middleware.RestrictedCORS(allowedOrigins)
	gate := h.Gate

	r.Route("/dishes", func(r chi.Router) {
		r.With(restricted).Options("/", middleware.Preflight)
		r.With(middleware.OpenCORS).Get("/", h.Dishes.List)
		r.With(restricted).Post("/", gate.Admin(h.Dishes.Create))
		r.With(restricted).Put("/", gate.Admin(handler.NotSupported))
		r.With(restricted).Delete("/", gate.Admin(h.Dishes.DeleteAll))

		r.Route("/{dishId}", func(r chi.Router) {
			r.With(restricted).Options("/", middleware.Preflight)
			r.With(middleware.OpenCORS).Get("/", h.Dishes.Get)
			r.With(restricted).Post("/", gate.Admin(handler.NotSupported))
			r.With(restricted).Put("/", gate.Admin(h.Dishes.Update))
			r.With(restricted).Delete("/", gate.Admin(h.Dishes.Delete))

			r.Route("/comments", func(r chi.Router) {
				r.With(restricted).Options("/", middleware.Preflight)
				r.With(middleware.OpenCORS).Get("/", h.Comments.List)
				r.With(restricted).Post("/", gate.User(h.Comments.Add))
				r.With(restricted).Put("/", gate.User(handler.NotSupported))
				r.With(restricted).Delete("/", gate.Admin(h.Comments.DeleteAll))

				r.Route("/{commentId}", func(r chi.Router) {
					r.With(restricted).Options("/", middleware.Preflight)
					r.With(middleware.OpenCORS).Get("/", h.Comments.Get)
					r.With(restricted).Post("/", gate.User(handler.NotSupported))
					r.With(restricted).Put("/", gate.User(h.Comments.Update))
					r.With(restricted).Delete("/", gate.User(h.Comments.Delete))
				})
			})
		})
	})

	return r
}
