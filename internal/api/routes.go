package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures the API routes.
func SetupRoutes(h *Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Get("/accounts", h.ListAccounts)

		r.Route("/accounts/{name}", func(r chi.Router) {
			r.Post("/report", h.UploadReport)
			r.Delete("/", h.DeleteAccount)
			r.Post("/analyze", h.Analyze)
			r.Get("/rollups", h.GetRollups)
			r.Post("/simulate", h.Simulate)
			r.Get("/export/{kind}", h.Export)
		})

		r.Post("/compare", h.Compare)
	})

	return r
}
