package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/spendsense/internal/model"
	"github.com/Veraticus/spendsense/internal/storage"
	"github.com/Veraticus/spendsense/internal/store"
)

const (
	waitFor = 2 * time.Second
	tick    = 10 * time.Millisecond
)

func newTestEngine(t *testing.T, now time.Time) (*Engine, *store.RuleStore, *MockNotifier) {
	t.Helper()
	clock := func() time.Time { return now }
	ruleStore, err := store.New(context.Background(), storage.NewMemoryStore(), store.WithClock(clock))
	require.NoError(t, err)

	notifier := NewMockNotifier()
	eng := NewWithConfig(ruleStore, notifier, Config{Now: clock})
	return eng, ruleStore, notifier
}

func strPtr(s string) *string { return &s }

func TestEvaluate_CategoryMatch(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	eng, ruleStore, notifier := newTestEngine(t, now)

	reminder := model.NewReminder("Coffee watch", "You already bought coffee today",
		model.IssueUnnecessaryPurchase, model.FrequencyBeforeCategory,
		model.Trigger{Category: strPtr("Coffee")}, now)
	_, err := eng.AddReminder(ctx, reminder)
	require.NoError(t, err)

	fired, err := eng.Evaluate(ctx, model.PurchaseEvent{MerchantName: "X", Category: "Coffee", Amount: 4.75})
	require.NoError(t, err)
	require.Len(t, fired, 1)
	assert.Equal(t, 1, fired[0].ReminderCount)

	require.Len(t, ruleStore.ListHistory(), 1)
	assert.Eventually(t, func() bool {
		return len(notifier.Sent()) == 1
	}, waitFor, tick, "evaluate should send one notification")
	assert.Equal(t, "Coffee watch", notifier.Sent()[0].Title)
}

func TestEvaluate_MerchantMismatch(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	eng, ruleStore, notifier := newTestEngine(t, now)

	reminder := model.NewReminder("Impulse watch", "Slow down",
		model.IssueImpulseSpending, model.FrequencyBeforeMerchant,
		model.Trigger{MerchantName: strPtr("Shein")}, now)
	_, err := eng.AddReminder(ctx, reminder)
	require.NoError(t, err)

	fired, err := eng.Evaluate(ctx, model.PurchaseEvent{MerchantName: "Target", Category: "Shopping"})
	require.NoError(t, err)
	assert.Empty(t, fired)
	assert.Empty(t, ruleStore.ListHistory())
	assert.Equal(t, 0, ruleStore.ListReminders()[0].ReminderCount)
	assert.Empty(t, notifier.Sent())
}

func TestEvaluate_OnceFiresExactlyOnce(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	eng, ruleStore, _ := newTestEngine(t, now)

	yesterday := now.AddDate(0, 0, -1)
	once := model.NewReminder("One shot", "Single nudge",
		model.IssueDuplicateCharge, model.FrequencyOnce, model.Trigger{}, now)
	once.NextReminderDate = &yesterday
	_, err := eng.AddReminder(ctx, once)
	require.NoError(t, err)

	// Fires on any purchase: time-driven matching ignores the content.
	fired, err := eng.Evaluate(ctx, model.PurchaseEvent{MerchantName: "Anywhere", Category: "Anything"})
	require.NoError(t, err)
	require.Len(t, fired, 1)
	assert.Nil(t, fired[0].NextReminderDate)
	assert.True(t, fired[0].IsActive, "once reminders stay active after firing")

	// Never fires again: the trigger date is now nil forever.
	fired, err = eng.Evaluate(ctx, model.PurchaseEvent{MerchantName: "Elsewhere", Category: "Other"})
	require.NoError(t, err)
	assert.Empty(t, fired)
	assert.Len(t, ruleStore.ListHistory(), 1)
}

func TestEvaluate_WeeklyReschedules(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	eng, _, _ := newTestEngine(t, now)

	due := now.Add(-time.Hour)
	weekly := model.NewReminder("Weekly check", "Look at spending",
		model.IssueOverBudget, model.FrequencyWeekly, model.Trigger{}, now)
	weekly.NextReminderDate = &due
	_, err := eng.AddReminder(ctx, weekly)
	require.NoError(t, err)

	fired, err := eng.Evaluate(ctx, model.PurchaseEvent{MerchantName: "Any"})
	require.NoError(t, err)
	require.Len(t, fired, 1)
	require.NotNil(t, fired[0].NextReminderDate)
	assert.True(t, fired[0].NextReminderDate.After(due), "rescheduled date must be strictly later")
	assert.Equal(t, now.AddDate(0, 0, 7), *fired[0].NextReminderDate)
}

func TestEvaluate_MultipleMatchesFireInCreationOrder(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	eng, _, _ := newTestEngine(t, now)

	first := model.NewReminder("First", "m", model.IssueOverBudget,
		model.FrequencyBeforeCategory, model.Trigger{Category: strPtr("Coffee")}, now)
	second := model.NewReminder("Second", "m", model.IssueUnnecessaryPurchase,
		model.FrequencyBeforeSimilar, model.Trigger{Category: strPtr("Coffee")}, now)
	_, err := eng.AddReminder(ctx, first)
	require.NoError(t, err)
	_, err = eng.AddReminder(ctx, second)
	require.NoError(t, err)

	fired, err := eng.Evaluate(ctx, model.PurchaseEvent{MerchantName: "Blue Bottle", Category: "Coffee"})
	require.NoError(t, err)
	require.Len(t, fired, 2)
	assert.Equal(t, "First", fired[0].Title)
	assert.Equal(t, "Second", fired[1].Title)
}

func TestEvaluate_NotificationFailureDoesNotRollBack(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	eng, ruleStore, notifier := newTestEngine(t, now)
	notifier.FailWith(errors.New("notification center down"))

	reminder := model.NewReminder("Coffee watch", "m", model.IssueUnnecessaryPurchase,
		model.FrequencyBeforeCategory, model.Trigger{Category: strPtr("Coffee")}, now)
	_, err := eng.AddReminder(ctx, reminder)
	require.NoError(t, err)

	fired, err := eng.Evaluate(ctx, model.PurchaseEvent{MerchantName: "X", Category: "Coffee"})
	require.NoError(t, err, "delivery failure must not surface to the evaluate caller")
	require.Len(t, fired, 1)
	assert.Equal(t, 1, fired[0].ReminderCount)
	assert.Len(t, ruleStore.ListHistory(), 1)
}

func TestRecordIssue_AddsSuggestedReminder(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	eng, ruleStore, _ := newTestEngine(t, now)

	issue, suggestion, err := eng.RecordIssue(ctx, "purchase-1", model.IssueSubscriptionForgotten, "unused Netflix", 3)
	require.NoError(t, err)

	assert.Equal(t, model.IssueSubscriptionForgotten, issue.IssueType)
	assert.Equal(t, model.FrequencyMonthly, suggestion.Frequency)
	assert.Equal(t, "Subscription Check", suggestion.Title)

	require.Len(t, ruleStore.ListIssues(), 1)
	require.Len(t, ruleStore.ListReminders(), 1)
	assert.Equal(t, 1, ruleStore.Stats().TotalReminders)
}

func TestRecordIssue_ClampsSeverity(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	eng, _, _ := newTestEngine(t, now)

	issue, _, err := eng.RecordIssue(ctx, "purchase-1", model.IssueOverBudget, "way over", 9)
	require.NoError(t, err)
	assert.Equal(t, 5, issue.Severity)
}

func TestAddReminder_SchedulesTimeDriven(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	eng, _, notifier := newTestEngine(t, now)

	weekly := model.NewReminder("Weekly check", "m", model.IssueOverBudget, model.FrequencyWeekly, model.Trigger{}, now)
	stored, err := eng.AddReminder(ctx, weekly)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(notifier.Scheduled()) == 1
	}, waitFor, tick, "time-driven reminder should be scheduled with the notifier")
	scheduled := notifier.Scheduled()[0]
	assert.Equal(t, stored.ID, scheduled.ID)
	assert.Equal(t, now.AddDate(0, 0, 7), scheduled.At)

	// Behavior-driven reminders have nothing to schedule.
	behavior := model.NewReminder("Merchant watch", "m", model.IssueImpulseSpending, model.FrequencyBeforeMerchant, model.Trigger{}, now)
	_, err = eng.AddReminder(ctx, behavior)
	require.NoError(t, err)
	assert.Len(t, notifier.Scheduled(), 1)
}

func TestDeleteReminder_CancelsSchedule(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	eng, ruleStore, notifier := newTestEngine(t, now)

	stored, err := eng.AddReminder(ctx, model.NewReminder("Weekly check", "m", model.IssueOverBudget, model.FrequencyWeekly, model.Trigger{}, now))
	require.NoError(t, err)

	require.NoError(t, eng.DeleteReminder(ctx, stored.ID))
	assert.Empty(t, ruleStore.ListReminders())
	require.Eventually(t, func() bool {
		return len(notifier.Canceled()) == 1
	}, waitFor, tick)
	assert.Equal(t, stored.ID, notifier.Canceled()[0])
}

func TestCheckDue_FiresOnlyDueTimeDriven(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	eng, ruleStore, notifier := newTestEngine(t, now)

	due := now.Add(-time.Minute)
	notYet := now.Add(time.Hour)

	dueWeekly := model.NewReminder("Due weekly", "m", model.IssueOverBudget, model.FrequencyWeekly, model.Trigger{}, now)
	dueWeekly.NextReminderDate = &due
	pendingMonthly := model.NewReminder("Pending monthly", "m", model.IssueSubscriptionForgotten, model.FrequencyMonthly, model.Trigger{}, now)
	pendingMonthly.NextReminderDate = &notYet
	behavior := model.NewReminder("Merchant watch", "m", model.IssueImpulseSpending, model.FrequencyBeforeMerchant,
		model.Trigger{MerchantName: strPtr("Shein")}, now)

	for _, r := range []model.Reminder{dueWeekly, pendingMonthly, behavior} {
		_, err := eng.AddReminder(ctx, r)
		require.NoError(t, err)
	}

	fired, err := eng.CheckDue(ctx)
	require.NoError(t, err)
	require.Len(t, fired, 1)
	assert.Equal(t, "Due weekly", fired[0].Title)
	assert.Len(t, ruleStore.ListHistory(), 1)
	assert.Eventually(t, func() bool {
		return len(notifier.Sent()) == 1
	}, waitFor, tick)
}
