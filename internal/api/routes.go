package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ignite/touchpoint-analytics/internal/pkg/httputil"
)

// SetupRoutes configures all routes for the analytics API.
func SetupRoutes(h *Handlers, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", OrgHeader},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Route("/campaigns/{campaignID}", func(r chi.Router) {
			r.Use(RequireOrg)
			r.Get("/analytics", h.GetCampaignAnalytics)
			r.Get("/recipients", h.GetRecipients)
			r.Get("/recipients/{recipientID}/timeline", h.GetRecipientTimeline)
		})

		// Stateless computation over a feed supplied by the caller.
		r.Route("/analytics", func(r chi.Router) {
			r.Post("/aggregate", h.AggregateFeed)
			r.Post("/stage", h.DetermineStage)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.NotFound(w, "route not found")
	})

	return r
}
