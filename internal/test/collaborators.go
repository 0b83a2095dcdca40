package test

import (
	"context"
	"sync"
	"time"

	"github.com/polkiloo/cleanorder/internal/adapter/api"
	"github.com/polkiloo/cleanorder/internal/domain/model"
)

// TrackedEvent is an analytics event captured by TrackerStub.
type TrackedEvent struct {
	Type    string
	Details string
}

// TrackerStub records analytics events in memory.
type TrackerStub struct {
	mu     sync.Mutex
	events []TrackedEvent
}

// Track stores event.
func (s *TrackerStub) Track(ctx context.Context, eventType, details string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, TrackedEvent{Type: eventType, Details: details})
}

// Events returns a copy of tracked events.
func (s *TrackerStub) Events() []TrackedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]TrackedEvent(nil), s.events...)
}

// PreparerStub serves attachments from an in-memory map.
type PreparerStub struct {
	Files map[string][]byte
}

// Prepare returns bytes for ref or an error when ref is unknown.
func (s PreparerStub) Prepare(ctx context.Context, ref string) (api.Attachment, error) {
	data, ok := s.Files[ref]
	if !ok {
		return api.Attachment{}, &missingFileError{ref: ref}
	}
	return api.Attachment{Filename: ref, ContentType: "image/jpeg", Data: data}, nil
}

type missingFileError struct{ ref string }

func (e *missingFileError) Error() string { return "open " + e.ref + ": no such file" }

// ScheduledReminder is a call captured by SchedulerStub.
type ScheduledReminder struct {
	OrderID     string
	ScheduledAt time.Time
}

// SchedulerStub records reminder scheduling requests.
type SchedulerStub struct {
	Err   error
	mu    sync.Mutex
	calls []ScheduledReminder
}

// ScheduleIfEnabled records the call.
func (s *SchedulerStub) ScheduleIfEnabled(ctx context.Context, orderID string, at time.Time) (*model.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, ScheduledReminder{OrderID: orderID, ScheduledAt: at})
	if s.Err != nil {
		return nil, s.Err
	}
	return &model.Reminder{OrderID: orderID, FireAt: at, Status: model.ReminderStatusPending}, nil
}

// Calls returns captured calls.
func (s *SchedulerStub) Calls() []ScheduledReminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ScheduledReminder(nil), s.calls...)
}
