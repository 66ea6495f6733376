// Package store implements the rule store: the single owner of the
// issue, reminder, and history collections.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Veraticus/spendsense/internal/common"
	"github.com/Veraticus/spendsense/internal/model"
	"github.com/Veraticus/spendsense/internal/service"
)

// Persistence keys for the three collections. The names predate this
// implementation; keeping them lets an existing data blob round-trip.
const (
	keyIssues    = "spending_issues"
	keyReminders = "spending_reminders"
	keyHistory   = "reminder_history"
)

// defaultSideEffectTimeout bounds persistence and notification calls.
const defaultSideEffectTimeout = 5 * time.Second

// RuleStore holds the three mutable collections and mediates every read
// and write. All mutations are serialized behind a single mutex; stats
// are recomputed from a consistent snapshot inside the critical section.
type RuleStore struct {
	persistence service.Persistence
	now         func() time.Time
	onChange    func()
	issues      []model.Issue
	reminders   []model.Reminder
	history     []model.HistoryEntry
	stats       model.Stats
	timeout     time.Duration
	mu          sync.RWMutex

	// persistMu serializes background writes; lastPersisted drops stale
	// snapshots so an earlier slow write can't clobber a newer one.
	persistMu     sync.Mutex
	snapshotSeq   uint64
	lastPersisted uint64
}

// Option configures a RuleStore.
type Option func(*RuleStore)

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *RuleStore) { s.now = now }
}

// WithOnChange registers a callback invoked after every mutation, outside
// the store's critical section.
func WithOnChange(fn func()) Option {
	return func(s *RuleStore) { s.onChange = fn }
}

// WithSideEffectTimeout bounds background persistence writes.
func WithSideEffectTimeout(d time.Duration) Option {
	return func(s *RuleStore) { s.timeout = d }
}

// New creates a rule store hydrated from the persistence collaborator.
// A failed or corrupt load falls back to an empty collection with a
// logged warning; it never fails construction.
func New(ctx context.Context, persistence service.Persistence, opts ...Option) (*RuleStore, error) {
	if persistence == nil {
		return nil, fmt.Errorf("persistence is required")
	}

	s := &RuleStore{
		persistence: persistence,
		now:         time.Now,
		timeout:     defaultSideEffectTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	loadCollection(ctx, persistence, keyIssues, &s.issues)
	loadCollection(ctx, persistence, keyReminders, &s.reminders)
	loadCollection(ctx, persistence, keyHistory, &s.history)
	s.stats = ComputeStats(s.issues, s.reminders, s.history, s.now())

	slog.Debug("rule store hydrated",
		"issues", len(s.issues),
		"reminders", len(s.reminders),
		"history", len(s.history))
	return s, nil
}

// loadCollection hydrates one collection, falling back to empty on any
// load or decode failure.
func loadCollection[T any](ctx context.Context, p service.Persistence, key string, dst *[]T) {
	data, err := p.Load(ctx, key)
	if err != nil {
		slog.Warn("failed to load collection, starting empty", "key", key, "error", err)
		return
	}
	if data == nil {
		return
	}
	if err := json.Unmarshal(data, dst); err != nil {
		slog.Warn("failed to decode collection, starting empty", "key", key, "error", err)
		*dst = nil
	}
}

// AddIssue appends a new issue. The store re-validates even though
// callers are expected to clamp severity before constructing the issue.
func (s *RuleStore) AddIssue(ctx context.Context, issue model.Issue) error {
	if ctx == nil {
		return fmt.Errorf("context is required")
	}
	if err := issue.Validate(); err != nil {
		return common.NewValidationError("issue", err.Error())
	}

	s.mu.Lock()
	s.issues = append(s.issues, issue)
	snap := s.commitLocked()
	s.mu.Unlock()

	s.afterMutation(snap)
	return nil
}

// ResolveIssue marks an issue resolved with an optional note. An empty
// note is recorded as no note.
func (s *RuleStore) ResolveIssue(ctx context.Context, id, note string) error {
	if ctx == nil {
		return fmt.Errorf("context is required")
	}

	s.mu.Lock()
	idx := -1
	for i := range s.issues {
		if s.issues[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("issue %s: %w", id, common.ErrNotFound)
	}

	now := s.now()
	s.issues[idx].IsResolved = true
	s.issues[idx].ResolvedAt = &now
	if note != "" {
		s.issues[idx].ResolvedNote = &note
	}
	snap := s.commitLocked()
	s.mu.Unlock()

	s.afterMutation(snap)
	return nil
}

// DeleteIssue removes an issue. Idempotent: deleting an absent id is not
// an error.
func (s *RuleStore) DeleteIssue(ctx context.Context, id string) error {
	if ctx == nil {
		return fmt.Errorf("context is required")
	}

	s.mu.Lock()
	kept := s.issues[:0]
	for _, issue := range s.issues {
		if issue.ID != id {
			kept = append(kept, issue)
		}
	}
	s.issues = kept
	snap := s.commitLocked()
	s.mu.Unlock()

	s.afterMutation(snap)
	return nil
}

// AddReminder appends a new reminder, deriving its trigger date from the
// frequency when the caller left it unset. Returns the stored reminder.
func (s *RuleStore) AddReminder(ctx context.Context, reminder model.Reminder) (model.Reminder, error) {
	if ctx == nil {
		return model.Reminder{}, fmt.Errorf("context is required")
	}
	if reminder.Frequency.TimeDriven() && reminder.NextReminderDate == nil {
		reminder.NextReminderDate = model.NextTriggerDate(reminder.Frequency, s.now())
	}
	if err := reminder.Validate(); err != nil {
		return model.Reminder{}, common.NewValidationError("reminder", err.Error())
	}

	s.mu.Lock()
	s.reminders = append(s.reminders, reminder)
	snap := s.commitLocked()
	s.mu.Unlock()

	s.afterMutation(snap)
	return reminder, nil
}

// ToggleReminder flips a reminder's active flag, leaving its counters and
// trigger date intact, and returns the updated reminder.
func (s *RuleStore) ToggleReminder(ctx context.Context, id string) (model.Reminder, error) {
	if ctx == nil {
		return model.Reminder{}, fmt.Errorf("context is required")
	}

	s.mu.Lock()
	idx := -1
	for i := range s.reminders {
		if s.reminders[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return model.Reminder{}, fmt.Errorf("reminder %s: %w", id, common.ErrNotFound)
	}

	s.reminders[idx].IsActive = !s.reminders[idx].IsActive
	updated := s.reminders[idx]
	snap := s.commitLocked()
	s.mu.Unlock()

	s.afterMutation(snap)
	return updated, nil
}

// DeleteReminder removes a reminder. Idempotent.
func (s *RuleStore) DeleteReminder(ctx context.Context, id string) error {
	if ctx == nil {
		return fmt.Errorf("context is required")
	}

	s.mu.Lock()
	kept := s.reminders[:0]
	for _, reminder := range s.reminders {
		if reminder.ID != id {
			kept = append(kept, reminder)
		}
	}
	s.reminders = kept
	snap := s.commitLocked()
	s.mu.Unlock()

	s.afterMutation(snap)
	return nil
}

// AppendHistory records one trigger firing. History is append-only.
func (s *RuleStore) AppendHistory(ctx context.Context, entry model.HistoryEntry) error {
	if ctx == nil {
		return fmt.Errorf("context is required")
	}

	s.mu.Lock()
	s.history = append(s.history, entry)
	snap := s.commitLocked()
	s.mu.Unlock()

	s.afterMutation(snap)
	return nil
}

// Fire applies the trigger-fire transition to every active reminder
// matched by shouldFire, in creation order, within one critical section:
// a history entry is appended and the reminder's counters and trigger
// date are updated per its frequency. Returns the reminders that fired,
// in their post-transition state.
func (s *RuleStore) Fire(ctx context.Context, shouldFire func(model.Reminder, time.Time) bool, triggerContext string) ([]model.Reminder, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context is required")
	}

	s.mu.Lock()
	now := s.now()
	var fired []model.Reminder
	for i := range s.reminders {
		r := &s.reminders[i]
		if !r.IsActive || !shouldFire(*r, now) {
			continue
		}

		s.history = append(s.history, model.NewHistoryEntry(r.ID, triggerContext, now))
		triggeredAt := now
		r.LastTriggeredAt = &triggeredAt
		r.ReminderCount++
		r.NextReminderDate = model.NextTriggerDate(r.Frequency, now)
		fired = append(fired, *r)
	}
	if len(fired) == 0 {
		s.mu.Unlock()
		return nil, nil
	}
	snap := s.commitLocked()
	s.mu.Unlock()

	s.afterMutation(snap)
	return fired, nil
}

// Flush synchronously persists the current collections. Mutations persist
// in the background; call Flush before shutdown to guarantee durability.
func (s *RuleStore) Flush(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("context is required")
	}

	s.mu.RLock()
	snap := s.encodeLocked()
	s.mu.RUnlock()

	var firstErr error
	for _, blob := range snap {
		if err := s.persistence.Save(ctx, blob.key, blob.data); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// keyedBlob pairs a persistence key with an encoded collection.
type keyedBlob struct {
	key  string
	data []byte
}

// snapshot is an encoded, sequence-numbered view of all three collections.
type snapshot struct {
	blobs []keyedBlob
	seq   uint64
}

// commitLocked recomputes stats and encodes the collections. Callers must
// hold the write lock.
func (s *RuleStore) commitLocked() snapshot {
	s.stats = ComputeStats(s.issues, s.reminders, s.history, s.now())
	s.snapshotSeq++
	return snapshot{blobs: s.encodeLocked(), seq: s.snapshotSeq}
}

// encodeLocked marshals the three collections. Callers must hold at least
// the read lock.
func (s *RuleStore) encodeLocked() []keyedBlob {
	var blobs []keyedBlob
	for _, c := range []struct {
		value any
		key   string
	}{
		{value: s.issues, key: keyIssues},
		{value: s.reminders, key: keyReminders},
		{value: s.history, key: keyHistory},
	} {
		data, err := json.Marshal(c.value)
		if err != nil {
			slog.Error("failed to encode collection", "key", c.key, "error", err)
			continue
		}
		blobs = append(blobs, keyedBlob{key: c.key, data: data})
	}
	return blobs
}

// afterMutation performs the best-effort side effects of a mutation:
// background persistence and the change callback. Neither can roll back
// the in-memory transition.
func (s *RuleStore) afterMutation(snap snapshot) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		s.persistMu.Lock()
		defer s.persistMu.Unlock()
		if snap.seq <= s.lastPersisted {
			return
		}
		for _, blob := range snap.blobs {
			if err := s.persistence.Save(ctx, blob.key, blob.data); err != nil {
				slog.Warn("failed to persist collection", "key", blob.key, "error", err)
			}
		}
		s.lastPersisted = snap.seq
	}()

	if s.onChange != nil {
		s.onChange()
	}
}
