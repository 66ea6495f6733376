// Package scheduler runs the background due-check loop for time-driven
// reminders.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/Veraticus/spendsense/internal/engine"
)

// DefaultInterval is how often the loop checks for due reminders.
const DefaultInterval = time.Minute

// Scheduler periodically fires time-driven reminders whose trigger date
// has passed, so weekly and monthly checks land even when no purchase
// event arrives.
type Scheduler struct {
	engine   *engine.Engine
	notifyCh chan struct{}
	interval time.Duration
}

// New creates a scheduler over the given engine. A non-positive interval
// falls back to DefaultInterval.
func New(eng *engine.Engine, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		engine:   eng,
		interval: interval,
		notifyCh: make(chan struct{}, 1),
	}
}

// Nudge triggers an immediate check. Non-blocking if one is already
// pending.
func (s *Scheduler) Nudge() {
	select {
	case s.notifyCh <- struct{}{}:
	default:
	}
}

// Start runs the check loop until the context is canceled. The first
// check runs immediately.
func (s *Scheduler) Start(ctx context.Context) {
	slog.Info("reminder scheduler started", "interval", s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.check(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("reminder scheduler stopped")
			return
		case <-ticker.C:
			s.check(ctx)
		case <-s.notifyCh:
			s.check(ctx)
		}
	}
}

// check fires every due time-driven reminder once.
func (s *Scheduler) check(ctx context.Context) {
	fired, err := s.engine.CheckDue(ctx)
	if err != nil {
		slog.Error("due-reminder check failed", "error", err)
		return
	}
	if len(fired) > 0 {
		slog.Info("due reminders fired", "count", len(fired))
	}
}
