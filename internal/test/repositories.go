package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/cleanorder/internal/domain/errors"
	"github.com/polkiloo/cleanorder/internal/domain/model"
)

// PreferenceStoreStub keeps preferences in memory for tests.
type PreferenceStoreStub struct {
	Values map[string]string
	GetErr error
	SetErr error
	mu     sync.Mutex
}

// NewPreferenceStoreStub constructs stub store seeded with values.
func NewPreferenceStoreStub(values map[string]string) *PreferenceStoreStub {
	seeded := make(map[string]string, len(values))
	for k, v := range values {
		seeded[k] = v
	}
	return &PreferenceStoreStub{Values: seeded}
}

// Get returns stored value and presence flag.
func (s *PreferenceStoreStub) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return "", false, s.GetErr
	}
	v, ok := s.Values[key]
	return v, ok, nil
}

// Set stores value unless stub has explicit error.
func (s *PreferenceStoreStub) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SetErr != nil {
		return s.SetErr
	}
	if s.Values == nil {
		s.Values = make(map[string]string)
	}
	s.Values[key] = value
	return nil
}

// Delete removes key.
func (s *PreferenceStoreStub) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SetErr != nil {
		return s.SetErr
	}
	delete(s.Values, key)
	return nil
}

// Value returns stored value for assertions.
func (s *PreferenceStoreStub) Value(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.Values[key]
	return v, ok
}

// ReminderRepositoryStub records reminder jobs in memory.
type ReminderRepositoryStub struct {
	Enqueued   []model.Reminder
	Done       []int64
	Released   []int64
	Due        [][]model.Reminder
	EnqueueErr error
	ClaimErr   error
	DoneErr    error
	mu         sync.Mutex
	claimCalls int
	next       int64
}

// Enqueue stores reminder as pending.
func (s *ReminderRepositoryStub) Enqueue(ctx context.Context, orderID string, fireAt time.Time) (*model.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.EnqueueErr != nil {
		return nil, s.EnqueueErr
	}
	s.next++
	rem := model.Reminder{ID: s.next, OrderID: orderID, FireAt: fireAt, Status: model.ReminderStatusPending, CreatedAt: time.Now()}
	s.Enqueued = append(s.Enqueued, rem)
	return &rem, nil
}

// ClaimDue returns configured batches one by one.
func (s *ReminderRepositoryStub) ClaimDue(ctx context.Context, now time.Time, limit int) ([]model.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ClaimErr != nil {
		return nil, s.ClaimErr
	}
	if s.claimCalls < len(s.Due) {
		batch := s.Due[s.claimCalls]
		s.claimCalls++
		return batch, nil
	}
	return nil, nil
}

// MarkDone records completion.
func (s *ReminderRepositoryStub) MarkDone(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.DoneErr != nil {
		return s.DoneErr
	}
	for _, done := range s.Done {
		if done == id {
			return domainErrors.ErrNotFound
		}
	}
	s.Done = append(s.Done, id)
	return nil
}

// Release records a reminder returned to the queue.
func (s *ReminderRepositoryStub) Release(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Released = append(s.Released, id)
	return nil
}

// Snapshot returns copies of recorded state.
func (s *ReminderRepositoryStub) Snapshot() ([]model.Reminder, []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Reminder(nil), s.Enqueued...), append([]int64(nil), s.Done...)
}
