package api

import (
	"eld-trip-service/internal/api/handlers"
	"eld-trip-service/internal/ports"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.TripRepository, provider ports.RouteProvider) http.Handler {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	tripHandler := &handlers.TripHandler{
		Repo:     repo,
		Provider: provider,
	}

	r.Get("/health", handlers.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/trips", func(r chi.Router) {
			r.Get("/", tripHandler.List)
			r.Post("/calculate", tripHandler.Calculate)
			r.Get("/{tripID}", tripHandler.Get)
			r.Get("/{tripID}/logs", tripHandler.Logs)
		})

		r.Route("/hos-rules", func(r chi.Router) {
			r.Get("/limits", handlers.Limits)
			r.Post("/check-compliance", handlers.CheckCompliance)
		})
	})

	return r
}
