// Package service defines the interfaces between the core and its
// external collaborators.
package service

import (
	"context"
	"time"
)

// Persistence is the durable key-value collaborator the rule store writes
// its collections through. The encoding is opaque to implementations;
// round-trip fidelity is the only contract.
type Persistence interface {
	// Load returns the blob stored under key, or (nil, nil) if the key
	// has never been written.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save durably stores the blob under key, replacing any prior value.
	Save(ctx context.Context, key string, data []byte) error
}

// Notifier delivers reminder notifications. Delivery guarantees are the
// implementation's concern; the core treats every call as best-effort.
type Notifier interface {
	// ScheduleAt requests a notification at a future time, keyed by id so
	// it can later be canceled.
	ScheduleAt(ctx context.Context, id, title, body string, at time.Time) error
	// SendNow requests an immediate notification.
	SendNow(ctx context.Context, title, body string) error
	// Cancel drops any pending scheduled notification for id.
	Cancel(ctx context.Context, id string) error
}
