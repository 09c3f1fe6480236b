package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/outbound-tracker/internal/domain"
	"github.com/heartmarshall/outbound-tracker/internal/service/analytics"
)

// analyticsService defines the minimal interface needed by ViewHandler.
type analyticsService interface {
	Now() time.Time
	Today(ctx context.Context, day time.Time) (analytics.TodayView, error)
	Pipeline(ctx context.Context) (analytics.PipelineView, error)
	Performance(ctx context.Context, rng analytics.TimeRange) (analytics.PerformanceView, error)
	Matrices(ctx context.Context) (analytics.MatricesView, error)
	Dashboard(ctx context.Context, rng analytics.TimeRange) (analytics.Dashboard, error)
}

// ViewHandler serves the derived views. Every response is computed from a
// fresh snapshot; nothing is cached between requests.
type ViewHandler struct {
	svc analyticsService
	log *slog.Logger
}

// NewViewHandler creates a ViewHandler.
func NewViewHandler(svc analyticsService, logger *slog.Logger) *ViewHandler {
	return &ViewHandler{svc: svc, log: logger.With("handler", "views")}
}

type pipelineResponse struct {
	analytics.PipelineView
	Counts analytics.PipelineCounts `json:"counts"`
}

// Today handles GET /api/views/today[?date=YYYY-MM-DD].
func (h *ViewHandler) Today(w http.ResponseWriter, r *http.Request) {
	day := h.svc.Now()
	if d := r.URL.Query().Get("date"); d != "" {
		parsed, err := domain.ParseDay(d)
		if err != nil {
			handleError(h.log, w, r, domain.NewValidationError("date", "must be YYYY-MM-DD"))
			return
		}
		day = parsed
	}

	view, err := h.svc.Today(r.Context(), day)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Pipeline handles GET /api/views/pipeline.
func (h *ViewHandler) Pipeline(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Pipeline(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pipelineResponse{PipelineView: view, Counts: view.Counts()})
}

// Performance handles GET /api/views/performance?range=7d|14d|30d|all.
func (h *ViewHandler) Performance(w http.ResponseWriter, r *http.Request) {
	rng, err := analytics.ParseTimeRange(r.URL.Query().Get("range"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	view, err := h.svc.Performance(r.Context(), rng)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Matrices handles GET /api/views/matrices.
func (h *ViewHandler) Matrices(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Matrices(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Dashboard handles GET /api/views/dashboard[?range=].
func (h *ViewHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	rng, err := analytics.ParseTimeRange(r.URL.Query().Get("range"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	view, err := h.svc.Dashboard(r.Context(), rng)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
