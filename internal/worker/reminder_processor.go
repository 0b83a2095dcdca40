package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/cleanorder/internal/domain/model"
	"github.com/polkiloo/cleanorder/internal/metrics"
)

// ReminderFacade exposes the subset of application functionality required by the worker.
type ReminderFacade interface {
	DueReminders(ctx context.Context, limit int) ([]model.Reminder, error)
	NotificationPermitted(ctx context.Context) bool
	CompleteReminder(ctx context.Context, id int64, result string) error
	ReleaseReminder(ctx context.Context, id int64) error
}

// ReminderProcessor polls due reminders and fires them concurrently.
type ReminderProcessor struct {
	facade       ReminderFacade
	notifier     Notifier
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Reminder
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewReminderProcessor constructs reminder worker pool.
func NewReminderProcessor(facade ReminderFacade, notifier Notifier, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *ReminderProcessor {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &ReminderProcessor{
		facade:       facade,
		notifier:     notifier,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
	}
}

// Start launches background processing.
func (p *ReminderProcessor) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.jobs = make(chan model.Reminder, p.batchSize*p.workers)

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx, p.jobs)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx, p.jobs)
}

// Stop waits for all workers to finish. Reminders claimed but not yet
// handled are released back to the queue.
func (p *ReminderProcessor) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	jobs := p.jobs
	p.jobs = nil
	p.mu.Unlock()

	p.wg.Wait()
	if jobs == nil {
		return
	}
	// dispatch has closed jobs by now.
	for rem := range jobs {
		p.release(rem)
	}
}

func (p *ReminderProcessor) dispatch(ctx context.Context, jobs chan<- model.Reminder) {
	defer p.wg.Done()
	defer close(jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx, jobs)
		}
	}
}

func (p *ReminderProcessor) fetchAndDispatch(ctx context.Context, jobs chan<- model.Reminder) {
	due, err := p.facade.DueReminders(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch due reminders failed", slog.String("error", err.Error()))
		return
	}
	for i, rem := range due {
		select {
		case <-ctx.Done():
			for _, left := range due[i:] {
				p.release(left)
			}
			return
		case jobs <- rem:
		}
	}
}

func (p *ReminderProcessor) release(rem model.Reminder) {
	if err := p.facade.ReleaseReminder(context.Background(), rem.ID); err != nil {
		p.logger.Error("release reminder failed", slog.Int64("id", rem.ID), slog.String("error", err.Error()))
	}
}

func (p *ReminderProcessor) worker(ctx context.Context, jobs <-chan model.Reminder) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case rem, ok := <-jobs:
			if !ok {
				return
			}
			p.handleReminder(ctx, rem)
		}
	}
}

// handleReminder shows rem when permission is granted and completes it
// either way. Reminders are never retried. Once handling begins it runs to
// completion even if the processor is stopping.
func (p *ReminderProcessor) handleReminder(ctx context.Context, rem model.Reminder) {
	ctx = context.WithoutCancel(ctx)
	result := metrics.ReminderDropped
	if p.facade.NotificationPermitted(ctx) {
		if err := p.notifier.Notify(ctx, rem); err != nil {
			p.logger.Error("show reminder failed", slog.String("order", rem.OrderID), slog.String("error", err.Error()))
			result = metrics.ReminderFailed
		} else {
			result = metrics.ReminderShown
		}
	} else {
		p.logger.Info("reminder dropped without notification permission", slog.String("order", rem.OrderID))
	}

	if err := p.facade.CompleteReminder(ctx, rem.ID, result); err != nil {
		p.logger.Error("complete reminder failed", slog.Int64("id", rem.ID), slog.String("error", err.Error()))
	}
}
