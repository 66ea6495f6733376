package model

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntry is an immutable record of one reminder firing. Entries are
// append-only; only WasActedUpon and UserResponse may change through later
// user feedback.
type HistoryEntry struct {
	TriggeredAt    time.Time `json:"triggered_at"`
	UserResponse   *string   `json:"user_response,omitempty"`
	ID             string    `json:"id"`
	ReminderID     string    `json:"reminder_id"`
	TriggerContext string    `json:"trigger_context"`
	WasActedUpon   bool      `json:"was_acted_upon"`
}

// NewHistoryEntry records a single firing of a reminder.
func NewHistoryEntry(reminderID, triggerContext string, now time.Time) HistoryEntry {
	return HistoryEntry{
		ID:             uuid.NewString(),
		ReminderID:     reminderID,
		TriggeredAt:    now,
		TriggerContext: triggerContext,
	}
}
