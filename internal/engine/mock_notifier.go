package engine

import (
	"context"
	"sync"
	"time"
)

// MockNotifier is a test double recording every notifier call.
type MockNotifier struct {
	err       error
	sent      []MockNotification
	scheduled []MockNotification
	canceled  []string
	mu        sync.Mutex
}

// MockNotification captures the payload of one notifier call.
type MockNotification struct {
	At    time.Time
	ID    string
	Title string
	Body  string
}

// NewMockNotifier creates a notifier that records calls and succeeds.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// FailWith makes every subsequent call return err.
func (m *MockNotifier) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SendNow records an immediate notification.
func (m *MockNotifier) SendNow(_ context.Context, title, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, MockNotification{Title: title, Body: body})
	return nil
}

// ScheduleAt records a scheduled notification.
func (m *MockNotifier) ScheduleAt(_ context.Context, id, title, body string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.scheduled = append(m.scheduled, MockNotification{ID: id, Title: title, Body: body, At: at})
	return nil
}

// Cancel records a cancellation.
func (m *MockNotifier) Cancel(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.canceled = append(m.canceled, id)
	return nil
}

// Sent returns a copy of the immediate notifications recorded so far.
func (m *MockNotifier) Sent() []MockNotification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockNotification, len(m.sent))
	copy(out, m.sent)
	return out
}

// Scheduled returns a copy of the scheduled notifications recorded so far.
func (m *MockNotifier) Scheduled() []MockNotification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockNotification, len(m.scheduled))
	copy(out, m.scheduled)
	return out
}

// Canceled returns a copy of the canceled ids recorded so far.
func (m *MockNotifier) Canceled() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.canceled))
	copy(out, m.canceled)
	return out
}
