package main

import (
	"context"
	"errors"
	"os"
	"syscall"
	"testing"
)

type runnerStub struct {
	startErr error
	stopErr  error
	done     chan os.Signal
	stopped  bool
}

func (r *runnerStub) Start(context.Context) error { return r.startErr }

func (r *runnerStub) Stop(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	r.stopped = true
	return r.stopErr
}

func (r *runnerStub) Done() <-chan os.Signal { return r.done }

func TestRunStopsOnContextCancel(t *testing.T) {
	r := &runnerStub{done: make(chan os.Signal)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := run(ctx, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.stopped {
		t.Fatal("expected app to be stopped with a live context")
	}
}

func TestRunStopsOnShutdownSignal(t *testing.T) {
	r := &runnerStub{done: make(chan os.Signal, 1)}
	r.done <- syscall.SIGTERM

	if err := run(context.Background(), r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.stopped {
		t.Fatal("expected app to be stopped")
	}
}

func TestRunReportsStartAndStopErrors(t *testing.T) {
	startErr := errors.New("no database")
	r := &runnerStub{startErr: startErr}
	if err := run(context.Background(), r); !errors.Is(err, startErr) {
		t.Fatalf("expected start error, got %v", err)
	}
	if r.stopped {
		t.Fatal("app must not be stopped after failed start")
	}

	stopErr := errors.New("timeout")
	r = &runnerStub{stopErr: stopErr, done: make(chan os.Signal, 1)}
	r.done <- syscall.SIGTERM
	if err := run(context.Background(), r); !errors.Is(err, stopErr) {
		t.Fatalf("expected stop error, got %v", err)
	}
}
