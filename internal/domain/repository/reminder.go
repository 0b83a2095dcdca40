package repository

import (
	"context"
	"time"

	"github.com/polkiloo/cleanorder/internal/domain/model"
)

// ReminderRepository persists deferred reminder jobs.
type ReminderRepository interface {
	Enqueue(ctx context.Context, orderID string, fireAt time.Time) (*model.Reminder, error)
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]model.Reminder, error)
	MarkDone(ctx context.Context, id int64) error
	// Release returns a claimed reminder to the pending queue.
	Release(ctx context.Context, id int64) error
}
