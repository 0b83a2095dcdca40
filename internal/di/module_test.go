package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/cleanorder/internal/adapter/api"
	"github.com/polkiloo/cleanorder/internal/app"
	"github.com/polkiloo/cleanorder/internal/config"
	"github.com/polkiloo/cleanorder/internal/domain/repository"
	"github.com/polkiloo/cleanorder/internal/server/http/handlers"
	"github.com/polkiloo/cleanorder/internal/storage/postgres"
	"github.com/polkiloo/cleanorder/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		ListenAddress:        ":0",
		DatabaseURI:          "postgres://stub",
		APIBaseURL:           "http://localhost",
		TokenSecret:          "secret",
		APITimeout:           time.Second,
		ReminderPollInterval: time.Millisecond,
		ReminderBatch:        1,
		WorkerPoolSize:       1,
		ShutdownTimeout:      time.Millisecond,
		AnalyticsLogPath:     t.TempDir() + "/analytics.log",
		ServicePrices:        "1=500,2=400,3=300",
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	prefs := test.NewPreferenceStoreStub(nil)
	reminders := &test.ReminderRepositoryStub{}
	remote := &test.RemoteAPIStub{}

	var facade *app.ClientFacade
	var handlerFacade handlers.ClientFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.PreferenceRepository(prefs)),
			fx.Replace(repository.ReminderRepository(reminders)),
			fx.Replace(api.Client(remote)),
		),
		fx.Populate(&facade, &handlerFacade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected client facade instance")
	}
	if handlerFacade == nil {
		t.Fatal("expected handler facade instance")
	}
}

func TestModuleRejectsInvalidPriceCatalog(t *testing.T) {
	cfg := &config.Config{
		ListenAddress:    ":0",
		DatabaseURI:      "postgres://stub",
		APIBaseURL:       "http://localhost",
		TokenSecret:      "secret",
		AnalyticsLogPath: t.TempDir() + "/analytics.log",
		ServicePrices:    "1=free",
	}

	var facade *app.ClientFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(slog.New(slog.NewJSONHandler(io.Discard, nil))),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.PreferenceRepository(test.NewPreferenceStoreStub(nil))),
			fx.Replace(repository.ReminderRepository(&test.ReminderRepositoryStub{})),
			fx.Replace(api.Client(&test.RemoteAPIStub{})),
		),
		fx.Populate(&facade),
	)

	if fxApp.Err() == nil {
		t.Fatal("expected invalid price catalog to fail graph construction")
	}
}
