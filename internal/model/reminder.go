package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Frequency classifies a reminder as time-driven (once, weekly, monthly)
// or behavior-driven (before similar purchase, merchant, category).
type Frequency string

// Frequency constants. The string values are the persisted form.
const (
	FrequencyOnce           Frequency = "once"
	FrequencyBeforeSimilar  Frequency = "before_similar"
	FrequencyWeekly         Frequency = "weekly"
	FrequencyMonthly        Frequency = "monthly"
	FrequencyBeforeMerchant Frequency = "before_merchant"
	FrequencyBeforeCategory Frequency = "before_category"
)

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyOnce, FrequencyBeforeSimilar, FrequencyWeekly,
		FrequencyMonthly, FrequencyBeforeMerchant, FrequencyBeforeCategory:
		return true
	}
	return false
}

// TimeDriven reports whether the frequency fires on the clock rather than
// on purchase behavior.
func (f Frequency) TimeDriven() bool {
	switch f {
	case FrequencyOnce, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// DisplayName returns a human-readable label for the frequency.
func (f Frequency) DisplayName() string {
	switch f {
	case FrequencyOnce:
		return "One-time Reminder"
	case FrequencyBeforeSimilar:
		return "Before Similar Purchase"
	case FrequencyWeekly:
		return "Weekly Reminder"
	case FrequencyMonthly:
		return "Monthly Reminder"
	case FrequencyBeforeMerchant:
		return "Before Merchant Purchase"
	case FrequencyBeforeCategory:
		return "Before Category Purchase"
	default:
		return string(f)
	}
}

// Trigger is the match condition of a reminder: a conjunction of the
// non-nil fields. A nil field means "don't care". The time-window fields
// are reserved and not consulted by the current matching rules.
type Trigger struct {
	MerchantName    *string  `json:"merchant_name,omitempty"`
	Category        *string  `json:"category,omitempty"`
	AmountThreshold *float64 `json:"amount_threshold,omitempty"`
	TimeOfDay       *string  `json:"time_of_day,omitempty"`
	DayOfWeek       *int     `json:"day_of_week,omitempty"`
	DayOfMonth      *int     `json:"day_of_month,omitempty"`
}

// Reminder is a standing rule that produces a notification when its
// condition matches.
type Reminder struct {
	CreatedAt        time.Time  `json:"created_at"`
	NextReminderDate *time.Time `json:"next_reminder_date,omitempty"`
	LastTriggeredAt  *time.Time `json:"last_triggered_at,omitempty"`
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Message          string     `json:"message"`
	IssueType        IssueType  `json:"issue_type"`
	Frequency        Frequency  `json:"frequency"`
	Trigger          Trigger    `json:"trigger"`
	ReminderCount    int        `json:"reminder_count"`
	IsActive         bool       `json:"is_active"`
}

// NewReminder creates an active reminder with its first trigger date
// computed from the frequency.
func NewReminder(title, message string, issueType IssueType, frequency Frequency, trigger Trigger, now time.Time) Reminder {
	return Reminder{
		ID:               uuid.NewString(),
		Title:            title,
		Message:          message,
		IssueType:        issueType,
		Frequency:        frequency,
		Trigger:          trigger,
		IsActive:         true,
		CreatedAt:        now,
		NextReminderDate: NextTriggerDate(frequency, now),
	}
}

// NextTriggerDate computes when a reminder of the given frequency should
// next fire, counting from the given time. Behavior-driven frequencies
// never have a trigger date, and a once reminder is never rescheduled.
func NextTriggerDate(frequency Frequency, from time.Time) *time.Time {
	switch frequency {
	case FrequencyWeekly:
		next := from.AddDate(0, 0, 7)
		return &next
	case FrequencyMonthly:
		next := addMonthClamped(from)
		return &next
	default:
		return nil
	}
}

// addMonthClamped advances a time by one calendar month, clamping the day
// to the target month's length (Jan 31 -> Feb 28/29).
func addMonthClamped(from time.Time) time.Time {
	year, month, day := from.Date()
	firstOfNext := time.Date(year, month+1, 1, from.Hour(), from.Minute(), from.Second(), from.Nanosecond(), from.Location())
	if last := daysIn(firstOfNext.Year(), firstOfNext.Month()); day > last {
		day = last
	}
	return time.Date(firstOfNext.Year(), firstOfNext.Month(), day, from.Hour(), from.Minute(), from.Second(), from.Nanosecond(), from.Location())
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ShouldTrigger determines whether a purchase event fires this reminder.
// Behavior-driven frequencies match against the purchase; time-driven
// frequencies fire when the trigger date has passed, regardless of the
// purchase content. Inactive reminders never fire.
func (r *Reminder) ShouldTrigger(p PurchaseEvent, now time.Time) bool {
	if !r.IsActive {
		return false
	}

	switch r.Frequency {
	case FrequencyBeforeSimilar:
		// Either a category or a merchant match alone is sufficient.
		return matchesString(r.Trigger.Category, p.Category) ||
			matchesString(r.Trigger.MerchantName, p.MerchantName)
	case FrequencyBeforeMerchant:
		return matchesString(r.Trigger.MerchantName, p.MerchantName)
	case FrequencyBeforeCategory:
		return matchesString(r.Trigger.Category, p.Category)
	case FrequencyOnce, FrequencyWeekly, FrequencyMonthly:
		return r.Due(now)
	default:
		return false
	}
}

// Due reports whether a time-driven reminder's trigger date has passed.
// Always false for behavior-driven reminders and inactive reminders.
func (r *Reminder) Due(now time.Time) bool {
	if !r.IsActive || r.NextReminderDate == nil {
		return false
	}
	return !now.Before(*r.NextReminderDate)
}

// matchesString compares an optional trigger field against a purchase
// value. A nil field never matches.
func matchesString(want *string, got string) bool {
	return want != nil && *want == got
}

// Validate ensures the reminder satisfies its invariants.
func (r *Reminder) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("reminder: missing ID")
	}
	if r.Title == "" {
		return fmt.Errorf("reminder: missing title")
	}
	if !r.Frequency.Valid() {
		return fmt.Errorf("reminder: unknown frequency %q", r.Frequency)
	}
	if !r.IssueType.Valid() {
		return fmt.Errorf("reminder: unknown issue type %q", r.IssueType)
	}
	if r.ReminderCount < 0 {
		return fmt.Errorf("reminder: negative reminder count")
	}
	if !r.Frequency.TimeDriven() && r.NextReminderDate != nil {
		return fmt.Errorf("reminder: trigger date set on behavior-driven frequency %q", r.Frequency)
	}
	return nil
}
