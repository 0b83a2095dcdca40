package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/polkiloo/cleanorder/internal/domain/model"
	"github.com/polkiloo/cleanorder/internal/domain/repository"
)

// Event types recorded by the client agent.
const (
	EventRegisterSuccess      = "register_success"
	EventRegisterFailed       = "register_failed"
	EventLoginSuccess         = "login_success"
	EventLoginFailed          = "login_failed"
	EventLogout               = "logout"
	EventOrderCreated         = "order_created"
	EventOrderCreatedFallback = "order_created_fallback_empty_body"
	EventOrderFailedServer    = "order_failed_server"
	EventOrderFailedNetwork   = "order_failed_network"
	EventSearchPerformed      = "search_performed"
	EventSearchFailed         = "search_failed"
	EventSearchHistoryCleared = "history_cleared"
)

const (
	timestampLayout = "2006-01-02T15:04:05"
	remoteTimeout   = 10 * time.Second
)

// Sender delivers events to the remote service.
type Sender interface {
	LogEvent(ctx context.Context, event model.AnalyticsEvent) error
}

// Tracker records usage events when the analytics preference is on.
// Lines go to an append-only local file and are mirrored to the remote service.
type Tracker struct {
	prefs  repository.PreferenceRepository
	sender Sender
	path   string
	now    func() time.Time
	logger *slog.Logger

	mu sync.Mutex
	wg sync.WaitGroup
}

// NewTracker constructs Tracker writing to path.
func NewTracker(prefs repository.PreferenceRepository, sender Sender, path string, logger *slog.Logger) *Tracker {
	return &Tracker{
		prefs:  prefs,
		sender: sender,
		path:   path,
		now:    time.Now,
		logger: logger,
	}
}

// Track records a single event. It never fails the caller.
func (t *Tracker) Track(ctx context.Context, eventType, details string) {
	if !t.enabled(ctx) {
		return
	}

	if err := t.appendLine(formatLine(t.now(), eventType, details)); err != nil {
		t.logger.Error("write analytics event failed", slog.String("event", eventType), slog.String("error", err.Error()))
	}

	if t.sender == nil {
		return
	}

	event := model.AnalyticsEvent{Type: eventType, Details: details}
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), remoteTimeout)
		defer cancel()
		if err := t.sender.LogEvent(sendCtx, event); err != nil {
			t.logger.Warn("post analytics event failed", slog.String("event", eventType), slog.String("error", err.Error()))
		}
	}()
}

// Wait blocks until in-flight remote posts finish.
func (t *Tracker) Wait() {
	t.wg.Wait()
}

func (t *Tracker) enabled(ctx context.Context) bool {
	raw, ok, err := t.prefs.Get(ctx, model.PrefAnalyticsEnabled)
	if err != nil {
		t.logger.Warn("read analytics preference failed", slog.String("error", err.Error()))
		return false
	}
	if !ok {
		return false
	}
	on, err := strconv.ParseBool(raw)
	return err == nil && on
}

func (t *Tracker) appendLine(line string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func formatLine(ts time.Time, eventType, details string) string {
	line := fmt.Sprintf("%s | %s", ts.Format(timestampLayout), eventType)
	if strings.TrimSpace(details) != "" {
		line += " | " + details
	}
	return line
}
