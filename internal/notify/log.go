// Package notify provides notifier implementations. The host owns real
// alert delivery; the core only requests it.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/spendsense/internal/common"
)

// LogNotifier writes notifications to the structured log. It stands in
// for an OS notification center when spendsense runs headless.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier backed by the given logger, or the
// default logger when nil.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

// SendNow logs an immediate notification.
func (n *LogNotifier) SendNow(ctx context.Context, title, body string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrNotification, err)
	}
	n.logger.InfoContext(ctx, "reminder notification", "title", title, "body", body)
	return nil
}

// ScheduleAt logs the scheduling request. A log sink has no future
// delivery; the background scheduler covers due firing instead.
func (n *LogNotifier) ScheduleAt(ctx context.Context, id, title, _ string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrNotification, err)
	}
	n.logger.DebugContext(ctx, "reminder scheduled", "reminder_id", id, "title", title, "at", at)
	return nil
}

// Cancel logs the cancellation request.
func (n *LogNotifier) Cancel(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrNotification, err)
	}
	n.logger.DebugContext(ctx, "reminder schedule canceled", "reminder_id", id)
	return nil
}
