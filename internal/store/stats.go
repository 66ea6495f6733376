package store

import (
	"time"

	"github.com/Veraticus/spendsense/internal/model"
)

// SavedPerResolvedIssue is the flat per-problem savings estimate used for
// the money-saved counter. Deliberately coarse: a fixed unit value, not a
// calculation from actual purchase amounts.
const SavedPerResolvedIssue = 50.0

// ComputeStats recomputes the derived counters from full collections. It
// is always a full recompute, never incremental, so the stats can't drift
// from the underlying data.
func ComputeStats(issues []model.Issue, reminders []model.Reminder, history []model.HistoryEntry, now time.Time) model.Stats {
	stats := model.Stats{TotalReminders: len(reminders)}

	for _, reminder := range reminders {
		if reminder.IsActive {
			stats.ActiveReminders++
		}
	}

	year, month, day := now.Date()
	for _, entry := range history {
		y, m, d := entry.TriggeredAt.In(now.Location()).Date()
		if y == year && m == month && d == day {
			stats.TriggeredToday++
		}
	}

	for _, issue := range issues {
		if issue.IsResolved {
			stats.ProblemsSolved++
		}
	}
	stats.MoneySaved = float64(stats.ProblemsSolved) * SavedPerResolvedIssue

	return stats
}
