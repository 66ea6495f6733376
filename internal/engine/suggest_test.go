package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/spendsense/internal/model"
)

func TestSuggestReminder_PolicyTable(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		wantTitle     string
		issueType     model.IssueType
		wantFrequency model.Frequency
	}{
		{
			name:          "over budget suggests category watch",
			issueType:     model.IssueOverBudget,
			wantFrequency: model.FrequencyBeforeCategory,
			wantTitle:     "Budget Reminder",
		},
		{
			name:          "unnecessary purchase suggests similar-purchase watch",
			issueType:     model.IssueUnnecessaryPurchase,
			wantFrequency: model.FrequencyBeforeSimilar,
			wantTitle:     "Spending Reminder",
		},
		{
			name:          "impulse spending suggests merchant watch",
			issueType:     model.IssueImpulseSpending,
			wantFrequency: model.FrequencyBeforeMerchant,
			wantTitle:     "Impulse Spending Reminder",
		},
		{
			name:          "forgotten subscription suggests monthly check",
			issueType:     model.IssueSubscriptionForgotten,
			wantFrequency: model.FrequencyMonthly,
			wantTitle:     "Subscription Check",
		},
		{
			name:          "duplicate charge falls back to once",
			issueType:     model.IssueDuplicateCharge,
			wantFrequency: model.FrequencyOnce,
			wantTitle:     "Spending Reminder",
		},
		{
			name:          "wrong category falls back to once",
			issueType:     model.IssueWrongCategory,
			wantFrequency: model.FrequencyOnce,
			wantTitle:     "Spending Reminder",
		},
		{
			name:          "suspicious charge falls back to once",
			issueType:     model.IssueSuspiciousCharge,
			wantFrequency: model.FrequencyOnce,
			wantTitle:     "Spending Reminder",
		},
		{
			name:          "price increase falls back to once",
			issueType:     model.IssuePriceIncreased,
			wantFrequency: model.FrequencyOnce,
			wantTitle:     "Spending Reminder",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issue := model.NewIssue("purchase-1", tt.issueType, "test issue", 3, now)
			suggestion := SuggestReminder(issue, now)

			assert.Equal(t, tt.wantFrequency, suggestion.Frequency)
			assert.Equal(t, tt.wantTitle, suggestion.Title)
			assert.Equal(t, tt.issueType, suggestion.IssueType)
			assert.NotEmpty(t, suggestion.Message)
			assert.True(t, suggestion.IsActive)

			// Suggestions are always unconditional; the caller narrows
			// the trigger before saving if desired.
			assert.Equal(t, model.Trigger{}, suggestion.Trigger)
		})
	}
}

func TestSuggestReminder_MonthlySchedules(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	issue := model.NewIssue("purchase-1", model.IssueSubscriptionForgotten, "forgotten sub", 3, now)

	suggestion := SuggestReminder(issue, now)
	if assert.NotNil(t, suggestion.NextReminderDate) {
		assert.Equal(t, time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC), *suggestion.NextReminderDate)
	}
}
