/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/families/*   Family and member management
  /api/goals/*      Scoring goals
  /api/decisions/*  Decision CRUD, scoring, queue, status
  /api/queue        Queue listing
  /api/roadmap/*    Scheduling and roadmap items
  /api/budgets/*    Budget summary, policy, period reset
  /healthz          Liveness
  /metrics          Prometheus

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/hearthd/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/families", func(r chi.Router) {
			r.Get("/", h.ListFamilies)
			r.Post("/", h.CreateFamily)
			r.Get("/{id}", h.GetFamily)
			r.Delete("/{id}", h.DeleteFamily)
			r.Post("/{id}/members", h.AddMember)
		})

		r.Route("/goals", func(r chi.Router) {
			r.Get("/", h.ListGoals)
			r.Post("/", h.CreateGoal)
			r.Put("/{id}", h.UpdateGoal)
		})

		r.Route("/decisions", func(r chi.Router) {
			r.Get("/", h.ListDecisions)
			r.Post("/", h.CreateDecision)
			r.Get("/{id}", h.GetDecision)
			r.Patch("/{id}", h.UpdateDecision)
			r.Delete("/{id}", h.DeleteDecision)
			r.Post("/{id}/score", h.ScoreDecision)
			r.Post("/{id}/queue", h.QueueDecision)
			r.Post("/{id}/status", h.SetDecisionStatus)
		})

		r.Get("/queue", h.ListQueue)

		r.Route("/roadmap", func(r chi.Router) {
			r.Get("/", h.ListRoadmap)
			r.Post("/", h.ScheduleDecision)
			r.Patch("/{id}", h.UpdateRoadmapItem)
			r.Delete("/{id}", h.UnscheduleDecision)
		})

		r.Route("/budgets/families/{id}", func(r chi.Router) {
			r.Get("/", h.GetBudgetSummary)
			r.Put("/policy", h.UpdateBudgetPolicy)
			r.Post("/period/reset", h.ResetBudgetPeriod)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
