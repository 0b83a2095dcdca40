package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/cleanorder/internal/config"
	"github.com/polkiloo/cleanorder/internal/domain/model"
	"github.com/polkiloo/cleanorder/internal/server/http/handlers"
	"github.com/polkiloo/cleanorder/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewClientFacade,
		asHandlersFacade,
		newHTTPServer,
		newReminderProcessor,
	),
	fx.Invoke(registerLifecycle),
)

func asHandlersFacade(f *ClientFacade) handlers.ClientFacade {
	return f
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.ListenAddress,
		Handler: p.Router,
	}
}

type workerParams struct {
	fx.In

	Facade *ClientFacade
	Config *config.Config
	Logger *slog.Logger
}

func newReminderProcessor(p workerParams) *worker.ReminderProcessor {
	return worker.NewReminderProcessor(
		p.Facade,
		worker.NewLogNotifier(p.Logger),
		p.Config.ReminderPollInterval,
		p.Config.ReminderBatch,
		p.Config.WorkerPoolSize,
		p.Logger,
	)
}

// SessionRestorer loads a persisted session and warms the promotion cache
// before the control API starts accepting requests.
type SessionRestorer interface {
	RestoreSession(ctx context.Context) (bool, error)
	Promotions(ctx context.Context) ([]model.Promotion, error)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Worker     *worker.ReminderProcessor
	Facade     *ClientFacade
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	registerHooks(p.Lifecycle, p.Shutdowner, p.Logger, p.Server, p.Worker, p.Facade, p.Config)
}

func registerHooks(lc fx.Lifecycle, shutdowner fx.Shutdowner, logger *slog.Logger, server *http.Server, w *worker.ReminderProcessor, restorer SessionRestorer, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("starting cleanorder", slog.String("addr", server.Addr))

			restored, err := restorer.RestoreSession(ctx)
			if err != nil {
				return err
			}
			logger.Info("session restored", slog.Bool("authenticated", restored))

			if promos, err := restorer.Promotions(ctx); err != nil {
				logger.Warn("promotion refresh failed", slog.String("error", err.Error()))
			} else {
				logger.Info("promotions loaded", slog.Int("active", len(promos)))
			}

			w.Start(context.Background())
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			w.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, cfg.ShutdownTimeout)
			}
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("cleanorder stopped")
			return nil
		},
	})
}
