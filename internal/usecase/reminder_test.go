package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/polkiloo/cleanorder/internal/domain/errors"
	"github.com/polkiloo/cleanorder/internal/domain/model"
	"github.com/polkiloo/cleanorder/internal/metrics"
	testhelpers "github.com/polkiloo/cleanorder/internal/test"
)

func newReminderFixture(prefs map[string]string) (*ReminderUseCase, *testhelpers.PreferenceStoreStub, *testhelpers.ReminderRepositoryStub) {
	store := testhelpers.NewPreferenceStoreStub(prefs)
	repo := &testhelpers.ReminderRepositoryStub{}
	uc := NewReminderUseCase(store, repo, metrics.New(), discardLogger())
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }
	return uc, store, repo
}

func TestScheduleIfEnabled(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		name     string
		prefs    map[string]string
		at       time.Time
		enqueued bool
	}{
		{"notifications off", map[string]string{model.PrefNotificationsEnabled: "false"}, base.Add(time.Hour), false},
		{"preference missing", nil, base.Add(time.Hour), false},
		{"time passed", map[string]string{model.PrefNotificationsEnabled: "true"}, base.Add(-time.Minute), false},
		{"zero delay", map[string]string{model.PrefNotificationsEnabled: "true"}, base, false},
		{"future", map[string]string{model.PrefNotificationsEnabled: "true"}, base.Add(time.Hour), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, _, repo := newReminderFixture(tc.prefs)
			rem, err := uc.ScheduleIfEnabled(context.Background(), "order-1", tc.at)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			enqueued, _ := repo.Snapshot()
			if tc.enqueued {
				if rem == nil || len(enqueued) != 1 || enqueued[0].OrderID != "order-1" || !enqueued[0].FireAt.Equal(tc.at) {
					t.Fatalf("expected reminder enqueued, got %+v", enqueued)
				}
				return
			}
			if rem != nil || len(enqueued) != 0 {
				t.Fatalf("expected no reminder, got %+v", enqueued)
			}
		})
	}
}

func TestScheduleIfEnabledErrors(t *testing.T) {
	uc, store, repo := newReminderFixture(map[string]string{model.PrefNotificationsEnabled: "true"})
	repo.EnqueueErr = errors.New("insert failed")
	if _, err := uc.ScheduleIfEnabled(context.Background(), "o", time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)); err == nil {
		t.Fatal("expected enqueue error")
	}

	store.GetErr = errors.New("db down")
	if _, err := uc.ScheduleIfEnabled(context.Background(), "o", time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)); err == nil {
		t.Fatal("expected preference error")
	}
}

func TestNotificationPermitted(t *testing.T) {
	uc, store, _ := newReminderFixture(nil)
	if uc.NotificationPermitted(context.Background()) {
		t.Fatal("missing permission must read as denied")
	}
	_ = store.Set(context.Background(), model.PrefNotificationPermission, "true")
	if !uc.NotificationPermitted(context.Background()) {
		t.Fatal("expected permission granted")
	}
	store.GetErr = errors.New("db down")
	if uc.NotificationPermitted(context.Background()) {
		t.Fatal("read failure must read as denied")
	}
}

func TestDueAndCompleteReminders(t *testing.T) {
	uc, _, repo := newReminderFixture(nil)
	repo.Due = [][]model.Reminder{{{ID: 4, OrderID: "o-4"}}}

	due, err := uc.DueReminders(context.Background(), 10)
	if err != nil || len(due) != 1 {
		t.Fatalf("unexpected due reminders %v %v", due, err)
	}
	if err := uc.CompleteReminder(context.Background(), 4, metrics.ReminderShown); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := uc.CompleteReminder(context.Background(), 4, metrics.ReminderShown); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found on second completion, got %v", err)
	}
	if _, done := repo.Snapshot(); len(done) != 1 || done[0] != 4 {
		t.Fatalf("unexpected done list %v", done)
	}
}

func TestReleaseReminderReturnsItToRepository(t *testing.T) {
	uc, _, repo := newReminderFixture(nil)
	if err := uc.ReleaseReminder(context.Background(), 12); err != nil {
		t.Fatalf("release: %v", err)
	}
	if len(repo.Released) != 1 || repo.Released[0] != 12 {
		t.Fatalf("unexpected released list %v", repo.Released)
	}
}
