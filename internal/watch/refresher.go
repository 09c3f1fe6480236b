// Package watch recomputes a derived view on a fixed interval.
package watch

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ComputeFunc reads a fresh snapshot and builds a view from it.
type ComputeFunc[T any] func(ctx context.Context) (T, error)

// Refresher polls compute every interval and hands each successful result to
// publish. A failed tick is logged and the loop keeps going.
type Refresher[T any] struct {
	interval time.Duration
	compute  ComputeFunc[T]
	publish  func(T)
	log      *slog.Logger

	mu        sync.RWMutex
	latest    T
	updatedAt time.Time
	ok        bool
	failures  int
}

// New creates a Refresher. publish may be nil when only Latest is used.
func New[T any](log *slog.Logger, interval time.Duration, compute ComputeFunc[T], publish func(T)) (*Refresher[T], error) {
	if interval <= 0 {
		return nil, errors.New("watch: interval must be > 0")
	}
	if compute == nil {
		return nil, errors.New("watch: compute is required")
	}
	return &Refresher[T]{
		interval: interval,
		compute:  compute,
		publish:  publish,
		log:      log.With("component", "watch"),
	}, nil
}

// Run computes once immediately, then on every tick, until ctx is done.
// It returns nil on cancellation.
func (r *Refresher[T]) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

// Latest returns the most recent successful result and when it was computed.
func (r *Refresher[T]) Latest() (T, time.Time, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.latest, r.updatedAt, r.ok
}

// Failures returns the number of ticks that failed so far.
func (r *Refresher[T]) Failures() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.failures
}

func (r *Refresher[T]) tick(ctx context.Context) {
	v, err := r.compute(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		r.mu.Lock()
		r.failures++
		r.mu.Unlock()
		r.log.WarnContext(ctx, "refresh failed", slog.String("error", err.Error()))
		return
	}

	r.mu.Lock()
	r.latest, r.updatedAt, r.ok = v, time.Now(), true
	r.mu.Unlock()

	if r.publish != nil {
		r.publish(v)
	}
}
