package analytics

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/cleanorder/internal/adapter/api"
	"github.com/polkiloo/cleanorder/internal/config"
	"github.com/polkiloo/cleanorder/internal/domain/repository"
)

// Module provides the analytics tracker and drains it on shutdown.
var Module = fx.Options(
	fx.Provide(newTracker),
	fx.Invoke(registerLifecycle),
)

type trackerParams struct {
	fx.In

	Prefs  repository.PreferenceRepository
	Client api.Client
	Config *config.Config
	Logger *slog.Logger
}

func newTracker(p trackerParams) *Tracker {
	return NewTracker(p.Prefs, p.Client, p.Config.AnalyticsLogPath, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, tracker *Tracker) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			tracker.Wait()
			return nil
		},
	})
}
