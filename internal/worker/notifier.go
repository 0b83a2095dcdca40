package worker

import (
	"context"
	"log/slog"

	"github.com/polkiloo/cleanorder/internal/domain/model"
)

// Notifier displays a fired reminder to the user.
type Notifier interface {
	Notify(ctx context.Context, rem model.Reminder) error
}

// LogNotifier emits reminders as structured log entries for the presentation
// layer to pick up.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier constructs LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the reminder.
func (n *LogNotifier) Notify(ctx context.Context, rem model.Reminder) error {
	n.logger.InfoContext(ctx, "pickup reminder",
		slog.String("order", rem.OrderID),
		slog.Time("scheduled_at", rem.FireAt),
	)
	return nil
}
