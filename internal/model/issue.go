// Package model defines the core data structures for the spendsense application.
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// IssueType classifies the kind of problem a user flagged on a purchase.
type IssueType string

// Issue type constants. The string values are the persisted form.
const (
	IssueOverBudget            IssueType = "over_budget"
	IssueUnnecessaryPurchase   IssueType = "unnecessary"
	IssueDuplicateCharge       IssueType = "duplicate"
	IssueWrongCategory         IssueType = "wrong_category"
	IssueSuspiciousCharge      IssueType = "suspicious"
	IssueSubscriptionForgotten IssueType = "subscription"
	IssueImpulseSpending       IssueType = "impulse"
	IssuePriceIncreased        IssueType = "price_increase"
)

// AllIssueTypes lists every valid issue type in display order.
var AllIssueTypes = []IssueType{
	IssueOverBudget,
	IssueUnnecessaryPurchase,
	IssueDuplicateCharge,
	IssueWrongCategory,
	IssueSuspiciousCharge,
	IssueSubscriptionForgotten,
	IssueImpulseSpending,
	IssuePriceIncreased,
}

// Valid reports whether t is a known issue type.
func (t IssueType) Valid() bool {
	switch t {
	case IssueOverBudget, IssueUnnecessaryPurchase, IssueDuplicateCharge,
		IssueWrongCategory, IssueSuspiciousCharge, IssueSubscriptionForgotten,
		IssueImpulseSpending, IssuePriceIncreased:
		return true
	}
	return false
}

// DisplayName returns a human-readable label for the issue type.
func (t IssueType) DisplayName() string {
	switch t {
	case IssueOverBudget:
		return "Over Budget"
	case IssueUnnecessaryPurchase:
		return "Unnecessary Purchase"
	case IssueDuplicateCharge:
		return "Duplicate Charge"
	case IssueWrongCategory:
		return "Wrong Category"
	case IssueSuspiciousCharge:
		return "Suspicious Charge"
	case IssueSubscriptionForgotten:
		return "Forgotten Subscription"
	case IssueImpulseSpending:
		return "Impulse Spending"
	case IssuePriceIncreased:
		return "Price Increased"
	default:
		return string(t)
	}
}

// Severity bounds for issues.
const (
	MinSeverity = 1
	MaxSeverity = 5
)

// ClampSeverity forces a severity value into the [MinSeverity, MaxSeverity] range.
func ClampSeverity(severity int) int {
	if severity < MinSeverity {
		return MinSeverity
	}
	if severity > MaxSeverity {
		return MaxSeverity
	}
	return severity
}

// Issue records a problem a user flagged on a past purchase.
type Issue struct {
	CreatedAt    time.Time  `json:"created_at"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
	ResolvedNote *string    `json:"resolved_note,omitempty"`
	ID           string     `json:"id"`
	PurchaseID   string     `json:"purchase_id"`
	IssueType    IssueType  `json:"issue_type"`
	Description  string     `json:"description"`
	Severity     int        `json:"severity"`
	IsResolved   bool       `json:"is_resolved"`
}

// NewIssue creates an unresolved issue for a purchase, clamping severity
// into the valid range.
func NewIssue(purchaseID string, issueType IssueType, description string, severity int, now time.Time) Issue {
	return Issue{
		ID:          uuid.NewString(),
		PurchaseID:  purchaseID,
		IssueType:   issueType,
		Description: description,
		CreatedAt:   now,
		Severity:    ClampSeverity(severity),
	}
}

// Validate ensures the issue satisfies its invariants.
func (i *Issue) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("issue: missing ID")
	}
	if !i.IssueType.Valid() {
		return fmt.Errorf("issue: unknown issue type %q", i.IssueType)
	}
	if i.Severity < MinSeverity || i.Severity > MaxSeverity {
		return fmt.Errorf("issue: severity %d outside [%d, %d]", i.Severity, MinSeverity, MaxSeverity)
	}
	if i.IsResolved && i.ResolvedAt == nil {
		return fmt.Errorf("issue: resolved without resolution time")
	}
	if !i.IsResolved && (i.ResolvedAt != nil || i.ResolvedNote != nil) {
		return fmt.Errorf("issue: resolution fields set on unresolved issue")
	}
	return nil
}
