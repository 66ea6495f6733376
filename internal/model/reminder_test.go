package model

import (
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestNextTriggerDate(t *testing.T) {
	tests := []struct {
		want      *time.Time
		name      string
		frequency Frequency
		from      time.Time
	}{
		{
			name:      "once never schedules",
			frequency: FrequencyOnce,
			from:      time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC),
			want:      nil,
		},
		{
			name:      "weekly adds seven days",
			frequency: FrequencyWeekly,
			from:      time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC),
			want:      timePtr(time.Date(2024, 1, 22, 9, 30, 0, 0, time.UTC)),
		},
		{
			name:      "weekly crosses month boundary",
			frequency: FrequencyWeekly,
			from:      time.Date(2024, 1, 29, 9, 30, 0, 0, time.UTC),
			want:      timePtr(time.Date(2024, 2, 5, 9, 30, 0, 0, time.UTC)),
		},
		{
			name:      "monthly adds one month",
			frequency: FrequencyMonthly,
			from:      time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC),
			want:      timePtr(time.Date(2024, 4, 15, 9, 30, 0, 0, time.UTC)),
		},
		{
			name:      "monthly clamps to leap february",
			frequency: FrequencyMonthly,
			from:      time.Date(2024, 1, 31, 9, 30, 0, 0, time.UTC),
			want:      timePtr(time.Date(2024, 2, 29, 9, 30, 0, 0, time.UTC)),
		},
		{
			name:      "monthly clamps to short february",
			frequency: FrequencyMonthly,
			from:      time.Date(2023, 1, 31, 9, 30, 0, 0, time.UTC),
			want:      timePtr(time.Date(2023, 2, 28, 9, 30, 0, 0, time.UTC)),
		},
		{
			name:      "monthly clamps thirty-one to thirty",
			frequency: FrequencyMonthly,
			from:      time.Date(2024, 3, 31, 9, 30, 0, 0, time.UTC),
			want:      timePtr(time.Date(2024, 4, 30, 9, 30, 0, 0, time.UTC)),
		},
		{
			name:      "monthly wraps december to january",
			frequency: FrequencyMonthly,
			from:      time.Date(2024, 12, 31, 9, 30, 0, 0, time.UTC),
			want:      timePtr(time.Date(2025, 1, 31, 9, 30, 0, 0, time.UTC)),
		},
		{
			name:      "before similar never schedules",
			frequency: FrequencyBeforeSimilar,
			from:      time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC),
			want:      nil,
		},
		{
			name:      "before merchant never schedules",
			frequency: FrequencyBeforeMerchant,
			from:      time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC),
			want:      nil,
		},
		{
			name:      "before category never schedules",
			frequency: FrequencyBeforeCategory,
			from:      time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC),
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextTriggerDate(tt.frequency, tt.from)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("NextTriggerDate() = %v, want nil", got)
			case tt.want != nil && got == nil:
				t.Errorf("NextTriggerDate() = nil, want %v", tt.want)
			case tt.want != nil && got != nil && !got.Equal(*tt.want):
				t.Errorf("NextTriggerDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReminder_ShouldTrigger(t *testing.T) {
	now := time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	coffee := PurchaseEvent{MerchantName: "Blue Bottle", Category: "Coffee", Amount: 6.50}

	tests := []struct {
		name     string
		reminder Reminder
		purchase PurchaseEvent
		want     bool
	}{
		{
			name: "before category matches category",
			reminder: Reminder{
				IsActive:  true,
				Frequency: FrequencyBeforeCategory,
				Trigger:   Trigger{Category: strPtr("Coffee")},
			},
			purchase: coffee,
			want:     true,
		},
		{
			name: "before category ignores merchant",
			reminder: Reminder{
				IsActive:  true,
				Frequency: FrequencyBeforeCategory,
				Trigger:   Trigger{Category: strPtr("Shopping"), MerchantName: strPtr("Blue Bottle")},
			},
			purchase: coffee,
			want:     false,
		},
		{
			name: "before merchant matches merchant",
			reminder: Reminder{
				IsActive:  true,
				Frequency: FrequencyBeforeMerchant,
				Trigger:   Trigger{MerchantName: strPtr("Blue Bottle")},
			},
			purchase: coffee,
			want:     true,
		},
		{
			name: "before merchant mismatch",
			reminder: Reminder{
				IsActive:  true,
				Frequency: FrequencyBeforeMerchant,
				Trigger:   Trigger{MerchantName: strPtr("Shein")},
			},
			purchase: PurchaseEvent{MerchantName: "Target", Category: "Shopping"},
			want:     false,
		},
		{
			name: "before similar matches on category alone",
			reminder: Reminder{
				IsActive:  true,
				Frequency: FrequencyBeforeSimilar,
				Trigger:   Trigger{Category: strPtr("Coffee"), MerchantName: strPtr("Starbucks")},
			},
			purchase: coffee,
			want:     true,
		},
		{
			name: "before similar matches on merchant alone",
			reminder: Reminder{
				IsActive:  true,
				Frequency: FrequencyBeforeSimilar,
				Trigger:   Trigger{Category: strPtr("Groceries"), MerchantName: strPtr("Blue Bottle")},
			},
			purchase: coffee,
			want:     true,
		},
		{
			name: "before similar with empty trigger never matches",
			reminder: Reminder{
				IsActive:  true,
				Frequency: FrequencyBeforeSimilar,
			},
			purchase: coffee,
			want:     false,
		},
		{
			name: "nil merchant does not match empty merchant",
			reminder: Reminder{
				IsActive:  true,
				Frequency: FrequencyBeforeMerchant,
			},
			purchase: PurchaseEvent{MerchantName: "", Category: "Coffee"},
			want:     false,
		},
		{
			name: "time-driven fires when due regardless of purchase",
			reminder: Reminder{
				IsActive:         true,
				Frequency:        FrequencyOnce,
				NextReminderDate: &yesterday,
			},
			purchase: PurchaseEvent{MerchantName: "Anything", Category: "Anything"},
			want:     true,
		},
		{
			name: "time-driven does not fire before due",
			reminder: Reminder{
				IsActive:         true,
				Frequency:        FrequencyWeekly,
				NextReminderDate: &tomorrow,
			},
			purchase: coffee,
			want:     false,
		},
		{
			name: "once with nil date never fires",
			reminder: Reminder{
				IsActive:  true,
				Frequency: FrequencyOnce,
			},
			purchase: coffee,
			want:     false,
		},
		{
			name: "inactive reminder never fires",
			reminder: Reminder{
				IsActive:  false,
				Frequency: FrequencyBeforeCategory,
				Trigger:   Trigger{Category: strPtr("Coffee")},
			},
			purchase: coffee,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.reminder.ShouldTrigger(tt.purchase, now); got != tt.want {
				t.Errorf("ShouldTrigger() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReminder_Due_ExactBoundary(t *testing.T) {
	due := time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC)
	r := Reminder{IsActive: true, Frequency: FrequencyWeekly, NextReminderDate: &due}

	if !r.Due(due) {
		t.Error("reminder should be due exactly at its trigger date")
	}
	if r.Due(due.Add(-time.Second)) {
		t.Error("reminder should not be due before its trigger date")
	}
}

func TestNewReminder_TimeDrivenInvariant(t *testing.T) {
	now := time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC)

	for _, frequency := range []Frequency{FrequencyBeforeSimilar, FrequencyBeforeMerchant, FrequencyBeforeCategory, FrequencyOnce} {
		r := NewReminder("t", "m", IssueImpulseSpending, frequency, Trigger{}, now)
		if r.NextReminderDate != nil {
			t.Errorf("frequency %q: NextReminderDate = %v, want nil", frequency, r.NextReminderDate)
		}
		if err := r.Validate(); err != nil {
			t.Errorf("frequency %q: Validate() error = %v", frequency, err)
		}
	}

	for _, frequency := range []Frequency{FrequencyWeekly, FrequencyMonthly} {
		r := NewReminder("t", "m", IssueSubscriptionForgotten, frequency, Trigger{}, now)
		if r.NextReminderDate == nil {
			t.Errorf("frequency %q: NextReminderDate = nil, want scheduled", frequency)
		}
	}
}

func timePtr(t time.Time) *time.Time { return &t }
