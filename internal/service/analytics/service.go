package analytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/outbound-tracker/internal/domain"
)

type actionReader interface {
	List(ctx context.Context, filter domain.ActionFilter) ([]domain.Action, error)
}

// Service reads snapshots from the action store and runs the view builders over them.
type Service struct {
	actions actionReader
	log     *slog.Logger
	now     func() time.Time
}

// NewService creates a new analytics service. A nil now uses time.Now.
func NewService(
	log *slog.Logger,
	actions actionReader,
	now func() time.Time,
) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		actions: actions,
		log:     log.With("service", "analytics"),
		now:     now,
	}
}

// Now returns the service clock reading in UTC.
func (s *Service) Now() time.Time {
	return s.now().UTC()
}

// Snapshot reads the actions matching filter and validates them.
// Malformed records are logged and skipped.
func (s *Service) Snapshot(ctx context.Context, filter domain.ActionFilter) (Snapshot, error) {
	actions, err := s.actions.List(ctx, filter)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list actions: %w", err)
	}

	snap, rejected := NewSnapshot(actions)
	for _, r := range rejected {
		s.log.WarnContext(ctx, "skipping malformed action", slog.String("action_id", r.ID), slog.String("error", r.Err.Error()))
	}
	return snap, nil
}

// Today returns the summary for the UTC calendar day containing day.
func (s *Service) Today(ctx context.Context, day time.Time) (TodayView, error) {
	start := domain.DayStart(day)
	snap, err := s.Snapshot(ctx, domain.ActionFilter{Day: &start})
	if err != nil {
		return TodayView{}, err
	}
	return BuildToday(snap, start), nil
}

// Pipeline returns the live pipeline board.
func (s *Service) Pipeline(ctx context.Context) (PipelineView, error) {
	snap, err := s.Snapshot(ctx, domain.ActionFilter{})
	if err != nil {
		return PipelineView{}, err
	}
	return s.buildPipeline(ctx, snap, s.Now())
}

// Performance returns the five daily series for rng.
func (s *Service) Performance(ctx context.Context, rng TimeRange) (PerformanceView, error) {
	if !rng.IsValid() {
		return PerformanceView{}, domain.NewValidationError("range", fmt.Sprintf("unknown time range %q", rng))
	}
	snap, err := s.Snapshot(ctx, domain.ActionFilter{})
	if err != nil {
		return PerformanceView{}, err
	}
	return BuildPerformance(snap, rng, s.Now())
}

// Matrices returns the three matrices with global stats.
func (s *Service) Matrices(ctx context.Context) (MatricesView, error) {
	snap, err := s.Snapshot(ctx, domain.ActionFilter{})
	if err != nil {
		return MatricesView{}, err
	}
	return BuildMatrices(snap), nil
}

// Dashboard computes every view against a single clock reading. The day
// snapshot and the full snapshot are read concurrently.
func (s *Service) Dashboard(ctx context.Context, rng TimeRange) (Dashboard, error) {
	if !rng.IsValid() {
		return Dashboard{}, domain.NewValidationError("range", fmt.Sprintf("unknown time range %q", rng))
	}

	now := s.Now()
	today := domain.DayStart(now)

	var daySnap, fullSnap Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		daySnap, err = s.Snapshot(gctx, domain.ActionFilter{Day: &today})
		if err != nil {
			return fmt.Errorf("today snapshot: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		fullSnap, err = s.Snapshot(gctx, domain.ActionFilter{})
		if err != nil {
			return fmt.Errorf("full snapshot: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	pipeline, err := s.buildPipeline(ctx, fullSnap, now)
	if err != nil {
		return Dashboard{}, err
	}
	performance, err := BuildPerformance(fullSnap, rng, now)
	if err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		GeneratedAt: now,
		Today:       BuildToday(daySnap, today),
		Pipeline:    pipeline,
		Performance: performance,
		Matrices:    BuildMatrices(fullSnap),
	}, nil
}

func (s *Service) buildPipeline(ctx context.Context, snap Snapshot, now time.Time) (PipelineView, error) {
	view, err := BuildPipeline(snap, now)
	if err != nil {
		if errors.Is(err, domain.ErrInvariant) {
			s.log.ErrorContext(ctx, "pipeline classification defect", slog.String("error", err.Error()))
		}
		return PipelineView{}, fmt.Errorf("build pipeline: %w", err)
	}
	return view, nil
}
