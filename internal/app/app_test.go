package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/cleanorder/internal/config"
	"github.com/polkiloo/cleanorder/internal/domain/model"
	testhelpers "github.com/polkiloo/cleanorder/internal/test"
	"github.com/polkiloo/cleanorder/internal/worker"
)

type restorerStub struct {
	restoreErr error
	promoErr   error
	restored   bool
	promoCalls int
}

func (s *restorerStub) RestoreSession(context.Context) (bool, error) {
	return s.restored, s.restoreErr
}

func (s *restorerStub) Promotions(context.Context) ([]model.Promotion, error) {
	s.promoCalls++
	return nil, s.promoErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestReminderProcessor() *worker.ReminderProcessor {
	return worker.NewReminderProcessor(&testhelpers.ReminderFacadeStub{}, &testhelpers.NotifierStub{}, 10*time.Millisecond, 1, 1, discardLogger())
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{ListenAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
}

func TestNewReminderProcessorUsesConfig(t *testing.T) {
	proc := newReminderProcessor(workerParams{
		Facade: &ClientFacade{},
		Config: &config.Config{ReminderPollInterval: 15 * time.Second, ReminderBatch: 3, WorkerPoolSize: 4},
		Logger: discardLogger(),
	})
	if proc == nil {
		t.Fatal("expected reminder processor instance")
	}
}

func TestAsHandlersFacade(t *testing.T) {
	f := &ClientFacade{}
	if asHandlersFacade(f) != f {
		t.Fatal("expected the same facade behind the handler interface")
	}
}

func TestRegisterHooksStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	restorer := &restorerStub{restored: true, promoErr: errors.New("offline")}
	cfg := &config.Config{ShutdownTimeout: 100 * time.Millisecond}

	registerHooks(recorder, shutdowner, discardLogger(), server, newTestReminderProcessor(), restorer, cfg)

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := recorder.Start(ctx); err != nil {
		t.Fatalf("on start failed despite promotion refresh error: %v", err)
	}
	if restorer.promoCalls != 1 {
		t.Fatalf("expected one promotion refresh, got %d", restorer.promoCalls)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = recorder.Stop(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected on stop to finish")
	}
}

func TestRegisterHooksFailsWhenRestoreFails(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	restorer := &restorerStub{restoreErr: errors.New("db down")}
	server := &http.Server{Addr: "127.0.0.1:0"}

	registerHooks(recorder, &testhelpers.ShutdownerStub{}, discardLogger(), server, newTestReminderProcessor(), restorer, &config.Config{ShutdownTimeout: time.Second})

	if err := recorder.Start(context.Background()); err == nil {
		t.Fatal("expected start error")
	}
	if restorer.promoCalls != 0 {
		t.Fatal("promotions must not be refreshed after restore failure")
	}
}

func TestRegisterHooksShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	server := &http.Server{Addr: "bad addr"}

	registerHooks(recorder, shutdowner, discardLogger(), server, newTestReminderProcessor(), &restorerStub{}, &config.Config{ShutdownTimeout: time.Second})

	hook := recorder.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start returned error: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}

	_ = hook.OnStop(context.Background())
}
