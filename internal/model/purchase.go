package model

import (
	"fmt"
	"time"
)

// PurchaseEvent describes a purchase the host just recorded. The engine
// evaluates every active reminder against it.
type PurchaseEvent struct {
	OccurredAt   time.Time `json:"occurred_at"`
	ID           string    `json:"id"`
	MerchantName string    `json:"merchant_name"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	Amount       float64   `json:"amount"`
}

// Context returns the free-text firing context recorded in history
// entries produced by this purchase.
func (p PurchaseEvent) Context() string {
	if p.Category != "" {
		return fmt.Sprintf("new purchase at %s (%s, $%.2f)", p.MerchantName, p.Category, p.Amount)
	}
	return fmt.Sprintf("new purchase at %s ($%.2f)", p.MerchantName, p.Amount)
}
