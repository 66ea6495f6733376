// Package engine implements the reminder engine: issue recording with
// rule suggestion, trigger evaluation against purchase events, and the
// due-check for time-driven reminders.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/spendsense/internal/model"
	"github.com/Veraticus/spendsense/internal/service"
	"github.com/Veraticus/spendsense/internal/store"
)

// Engine coordinates the rule store and the notifier. All notification
// dispatch is best-effort: failures are logged and never surfaced to the
// caller or rolled back.
type Engine struct {
	store    *store.RuleStore
	notifier service.Notifier
	now      func() time.Time
	timeout  time.Duration
}

// Config holds configuration options for the engine.
type Config struct {
	// Now is the time source. Defaults to time.Now.
	Now func() time.Time
	// NotifyTimeout bounds each notifier call.
	NotifyTimeout time.Duration
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		Now:           time.Now,
		NotifyTimeout: 5 * time.Second,
	}
}

// New creates an engine with default configuration.
func New(ruleStore *store.RuleStore, notifier service.Notifier) *Engine {
	return NewWithConfig(ruleStore, notifier, DefaultConfig())
}

// NewWithConfig creates an engine with custom configuration.
func NewWithConfig(ruleStore *store.RuleStore, notifier service.Notifier, config Config) *Engine {
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.NotifyTimeout <= 0 {
		config.NotifyTimeout = DefaultConfig().NotifyTimeout
	}
	return &Engine{
		store:    ruleStore,
		notifier: notifier,
		now:      config.Now,
		timeout:  config.NotifyTimeout,
	}
}

// RecordIssue flags a purchase with an issue and auto-adds the suggested
// reminder, mirroring the flag-then-suggest flow the host UI drives.
// Returns the stored issue and the stored suggestion.
func (e *Engine) RecordIssue(ctx context.Context, purchaseID string, issueType model.IssueType, description string, severity int) (model.Issue, model.Reminder, error) {
	issue := model.NewIssue(purchaseID, issueType, description, severity, e.now())
	if err := e.store.AddIssue(ctx, issue); err != nil {
		return model.Issue{}, model.Reminder{}, err
	}

	suggestion := SuggestReminder(issue, e.now())
	stored, err := e.AddReminder(ctx, suggestion)
	if err != nil {
		return issue, model.Reminder{}, fmt.Errorf("failed to add suggested reminder: %w", err)
	}

	slog.Info("recorded issue with suggested reminder",
		"issue_id", issue.ID,
		"issue_type", issueType,
		"reminder_id", stored.ID,
		"frequency", stored.Frequency)
	return issue, stored, nil
}

// AddReminder stores a reminder and, when it carries a trigger date,
// schedules a notification for it.
func (e *Engine) AddReminder(ctx context.Context, reminder model.Reminder) (model.Reminder, error) {
	stored, err := e.store.AddReminder(ctx, reminder)
	if err != nil {
		return model.Reminder{}, err
	}
	if stored.NextReminderDate != nil {
		e.schedule(stored.ID, stored.Title, stored.Message, *stored.NextReminderDate)
	}
	return stored, nil
}

// DeleteReminder removes a reminder and cancels any pending scheduled
// notification for it.
func (e *Engine) DeleteReminder(ctx context.Context, id string) error {
	if err := e.store.DeleteReminder(ctx, id); err != nil {
		return err
	}
	e.cancel(id)
	return nil
}

// ToggleReminder flips a reminder's active flag. Reactivation keeps the
// reminder's counters and trigger date; deactivation cancels any pending
// scheduled notification.
func (e *Engine) ToggleReminder(ctx context.Context, id string) (model.Reminder, error) {
	toggled, err := e.store.ToggleReminder(ctx, id)
	if err != nil {
		return model.Reminder{}, err
	}
	switch {
	case !toggled.IsActive:
		e.cancel(toggled.ID)
	case toggled.NextReminderDate != nil:
		e.schedule(toggled.ID, toggled.Title, toggled.Message, *toggled.NextReminderDate)
	}
	return toggled, nil
}

// Evaluate checks every active reminder against one purchase event,
// applies the fire transition to each match within a single critical
// section, and requests a notification per firing. Notification failures
// never abort the already-applied transitions.
func (e *Engine) Evaluate(ctx context.Context, purchase model.PurchaseEvent) ([]model.Reminder, error) {
	fired, err := e.store.Fire(ctx, func(r model.Reminder, now time.Time) bool {
		return r.ShouldTrigger(purchase, now)
	}, purchase.Context())
	if err != nil {
		return nil, err
	}

	for _, reminder := range fired {
		e.send(reminder.Title, reminder.Message)
	}
	if len(fired) > 0 {
		slog.Info("purchase fired reminders",
			"merchant", purchase.MerchantName,
			"category", purchase.Category,
			"fired", len(fired))
	}
	return fired, nil
}

// CheckDue fires every time-driven reminder whose trigger date has
// passed, independent of any purchase event. The background scheduler
// calls this periodically.
func (e *Engine) CheckDue(ctx context.Context) ([]model.Reminder, error) {
	fired, err := e.store.Fire(ctx, func(r model.Reminder, now time.Time) bool {
		return r.Frequency.TimeDriven() && r.Due(now)
	}, "scheduled reminder due")
	if err != nil {
		return nil, err
	}

	for _, reminder := range fired {
		e.send(reminder.Title, reminder.Message)
		// Weekly and monthly reminders roll forward to a new trigger
		// date; keep the notifier's schedule in step.
		if reminder.NextReminderDate != nil {
			e.schedule(reminder.ID, reminder.Title, reminder.Message, *reminder.NextReminderDate)
		}
	}
	return fired, nil
}

// send dispatches an immediate notification, fire-and-forget.
func (e *Engine) send(title, message string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
		defer cancel()
		if err := e.notifier.SendNow(ctx, title, message); err != nil {
			slog.Warn("notification send failed", "title", title, "error", err)
		}
	}()
}

// schedule requests a future notification, fire-and-forget.
func (e *Engine) schedule(id, title, message string, at time.Time) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
		defer cancel()
		if err := e.notifier.ScheduleAt(ctx, id, title, message, at); err != nil {
			slog.Warn("notification schedule failed", "reminder_id", id, "error", err)
		}
	}()
}

// cancel drops a pending scheduled notification, fire-and-forget.
func (e *Engine) cancel(id string) {
	go func() {
		ctx, cancelFn := context.WithTimeout(context.Background(), e.timeout)
		defer cancelFn()
		if err := e.notifier.Cancel(ctx, id); err != nil {
			slog.Warn("notification cancel failed", "reminder_id", id, "error", err)
		}
	}()
}
