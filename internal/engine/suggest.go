package engine

import (
	"time"

	"github.com/Veraticus/spendsense/internal/model"
)

// suggestionPolicy is one row of the issue-type-to-reminder mapping.
type suggestionPolicy struct {
	frequency model.Frequency
	title     string
	message   string
}

// suggestionPolicies maps each issue type to the reminder it suggests.
// Types absent here fall back to a one-time acknowledgement.
var suggestionPolicies = map[model.IssueType]suggestionPolicy{
	model.IssueOverBudget: {
		frequency: model.FrequencyBeforeCategory,
		title:     "Budget Reminder",
		message:   "Notice: Last spending in this category exceeded budget",
	},
	model.IssueUnnecessaryPurchase: {
		frequency: model.FrequencyBeforeSimilar,
		title:     "Spending Reminder",
		message:   "Reminder: This type of spending was previously marked as unnecessary",
	},
	model.IssueImpulseSpending: {
		frequency: model.FrequencyBeforeMerchant,
		title:     "Impulse Spending Reminder",
		message:   "Slow down! Previous impulse spending occurred here",
	},
	model.IssueSubscriptionForgotten: {
		frequency: model.FrequencyMonthly,
		title:     "Subscription Check",
		message:   "Remember to check if this subscription is still needed",
	},
}

// fallbackPolicy covers issue types with no dedicated rule: a single
// unconditional acknowledgement.
var fallbackPolicy = suggestionPolicy{
	frequency: model.FrequencyOnce,
	title:     "Spending Reminder",
	message:   "Notice: There was a previous issue here",
}

// SuggestReminder derives a candidate reminder from a newly recorded
// issue. Pure table lookup, no side effects. The suggested trigger is
// unconditional (all fields nil); the caller may narrow it to a merchant
// or category before saving.
func SuggestReminder(issue model.Issue, now time.Time) model.Reminder {
	policy, ok := suggestionPolicies[issue.IssueType]
	if !ok {
		policy = fallbackPolicy
	}
	return model.NewReminder(policy.title, policy.message, issue.IssueType, policy.frequency, model.Trigger{}, now)
}
