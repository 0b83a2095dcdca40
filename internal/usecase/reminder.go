package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/polkiloo/cleanorder/internal/domain/model"
	"github.com/polkiloo/cleanorder/internal/domain/repository"
	"github.com/polkiloo/cleanorder/internal/metrics"
)

// ReminderUseCase schedules and completes pickup reminders.
type ReminderUseCase struct {
	prefs     repository.PreferenceRepository
	reminders repository.ReminderRepository
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

// NewReminderUseCase constructs ReminderUseCase.
func NewReminderUseCase(prefs repository.PreferenceRepository, reminders repository.ReminderRepository, m *metrics.Metrics, logger *slog.Logger) *ReminderUseCase {
	return &ReminderUseCase{
		prefs:     prefs,
		reminders: reminders,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

// ScheduleIfEnabled enqueues a one-shot reminder for orderID firing at
// scheduledAt. It returns nil without error when notifications are off or
// the time has already passed.
func (u *ReminderUseCase) ScheduleIfEnabled(ctx context.Context, orderID string, scheduledAt time.Time) (*model.Reminder, error) {
	enabled, err := boolPreference(ctx, u.prefs, model.PrefNotificationsEnabled)
	if err != nil {
		return nil, fmt.Errorf("read notifications preference: %w", err)
	}
	if !enabled {
		return nil, nil
	}

	delay := scheduledAt.Sub(u.now())
	if delay <= 0 {
		return nil, nil
	}

	rem, err := u.reminders.Enqueue(ctx, orderID, scheduledAt)
	if err != nil {
		return nil, fmt.Errorf("enqueue reminder: %w", err)
	}
	u.metrics.ReminderScheduled()
	u.logger.Info("reminder scheduled", slog.String("order", orderID), slog.Duration("delay", delay))
	return rem, nil
}

// DueReminders claims reminders whose fire time has come.
func (u *ReminderUseCase) DueReminders(ctx context.Context, limit int) ([]model.Reminder, error) {
	return u.reminders.ClaimDue(ctx, u.now(), limit)
}

// NotificationPermitted re-reads the OS-level notification permission.
func (u *ReminderUseCase) NotificationPermitted(ctx context.Context) bool {
	granted, err := boolPreference(ctx, u.prefs, model.PrefNotificationPermission)
	if err != nil {
		u.logger.Warn("read notification permission failed", slog.String("error", err.Error()))
		return false
	}
	return granted
}

// CompleteReminder marks reminder done and counts the fire result.
func (u *ReminderUseCase) CompleteReminder(ctx context.Context, id int64, result string) error {
	u.metrics.ObserveReminder(result)
	return u.reminders.MarkDone(ctx, id)
}

// ReleaseReminder hands a claimed but unfired reminder back to the queue.
func (u *ReminderUseCase) ReleaseReminder(ctx context.Context, id int64) error {
	return u.reminders.Release(ctx, id)
}
