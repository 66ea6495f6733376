package store

import (
	"fmt"

	"github.com/Veraticus/spendsense/internal/common"
	"github.com/Veraticus/spendsense/internal/model"
)

// ListIssues returns a copy of all issues in creation order.
func (s *RuleStore) ListIssues() []model.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Issue, len(s.issues))
	copy(out, s.issues)
	return out
}

// UnresolvedIssues returns the issues not yet marked resolved.
func (s *RuleStore) UnresolvedIssues() []model.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Issue
	for _, issue := range s.issues {
		if !issue.IsResolved {
			out = append(out, issue)
		}
	}
	return out
}

// IssuesForPurchase returns the issues flagged on a given purchase.
func (s *RuleStore) IssuesForPurchase(purchaseID string) []model.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Issue
	for _, issue := range s.issues {
		if issue.PurchaseID == purchaseID {
			out = append(out, issue)
		}
	}
	return out
}

// ListReminders returns a copy of all reminders in creation order.
func (s *RuleStore) ListReminders() []model.Reminder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Reminder, len(s.reminders))
	copy(out, s.reminders)
	return out
}

// ActiveReminders returns the reminders currently able to fire.
func (s *RuleStore) ActiveReminders() []model.Reminder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Reminder
	for _, reminder := range s.reminders {
		if reminder.IsActive {
			out = append(out, reminder)
		}
	}
	return out
}

// GetReminder looks up a reminder by id.
func (s *RuleStore) GetReminder(id string) (model.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, reminder := range s.reminders {
		if reminder.ID == id {
			return reminder, nil
		}
	}
	return model.Reminder{}, fmt.Errorf("reminder %s: %w", id, common.ErrNotFound)
}

// ListHistory returns a copy of the firing history, oldest first.
func (s *RuleStore) ListHistory() []model.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

// HistoryForReminder returns the firing history of one reminder.
func (s *RuleStore) HistoryForReminder(reminderID string) []model.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.HistoryEntry
	for _, entry := range s.history {
		if entry.ReminderID == reminderID {
			out = append(out, entry)
		}
	}
	return out
}

// Stats returns the counters recomputed at the last mutation.
func (s *RuleStore) Stats() model.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}
