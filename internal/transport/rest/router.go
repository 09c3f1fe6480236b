package rest

import "net/http"

// NewRouter registers every endpoint on a new ServeMux.
func NewRouter(health *HealthHandler, actions *ActionHandler, views *ViewHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	mux.HandleFunc("GET /api/actions", actions.List)
	mux.HandleFunc("POST /api/actions", actions.Create)
	mux.HandleFunc("GET /api/actions/{id}", actions.Get)
	mux.HandleFunc("PATCH /api/actions/{id}", actions.Update)
	mux.HandleFunc("POST /api/actions/{id}/complete", actions.Complete)

	mux.HandleFunc("GET /api/views/today", views.Today)
	mux.HandleFunc("GET /api/views/pipeline", views.Pipeline)
	mux.HandleFunc("GET /api/views/performance", views.Performance)
	mux.HandleFunc("GET /api/views/matrices", views.Matrices)
	mux.HandleFunc("GET /api/views/dashboard", views.Dashboard)

	return mux
}
