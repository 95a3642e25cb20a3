package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter wires the handlers and middleware.
//
//	GET /health
//	GET /api/v1/now
//	GET /api/v1/day/{date}
//	GET /api/v1/sidereal
//	GET /api/v1/moon
func NewRouter(h *Handlers, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(RecoveryMiddleware(logger))
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "No route for "+r.URL.Path)
	})

	r.Get("/health", h.HealthCheck)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/now", h.GetNow)
		r.Get("/day/{date}", h.GetDay)
		r.Get("/sidereal", h.GetSidereal)
		r.Get("/moon", h.GetMoon)
	})
	return r
}
