/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/users/*       Profile, positions, analysis per user
  /api/positions/*   Position and record management
  /api/records/*     Record deletion
  /api/market/*      Static market data lookups

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// User-scoped routes
		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/profile", h.GetProfile)
			r.Put("/profile", h.SaveProfile)
			r.Get("/positions", h.ListPositions)
			r.Post("/positions", h.CreatePosition)
			r.Get("/analysis", h.GetAnalysis)
			r.Get("/weekly-projection", h.GetWeeklyProjection)
			r.Get("/reality-check", h.GetRealityCheck)
			r.Get("/resume", h.GetResume)
		})

		// Position routes
		r.Route("/positions/{id}", func(r chi.Router) {
			r.Get("/", h.GetPosition)
			r.Put("/", h.UpdatePosition)
			r.Delete("/", h.DeletePosition)
			r.Get("/records", h.ListRecords)
			r.Post("/records", h.CreateRecord)
		})

		// Record routes
		r.Route("/records", func(r chi.Router) {
			r.Delete("/{id}", h.DeleteRecord)
		})

		// Market data routes
		r.Route("/market", func(r chi.Router) {
			r.Get("/median", h.GetMarketMedian)
			r.Get("/tax-estimate", h.GetTaxEstimate)
		})
	})

	return r
}
