package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/polkiloo/cleanorder/internal/adapter/api"
	"github.com/polkiloo/cleanorder/internal/analytics"
	domainErrors "github.com/polkiloo/cleanorder/internal/domain/errors"
	"github.com/polkiloo/cleanorder/internal/domain/model"
	"github.com/polkiloo/cleanorder/internal/draft"
	"github.com/polkiloo/cleanorder/internal/metrics"
)

const maxParallelImages = 4

// AttachmentPreparer turns an image reference into upload bytes.
type AttachmentPreparer interface {
	Prepare(ctx context.Context, ref string) (api.Attachment, error)
}

// EventTracker records analytics events.
type EventTracker interface {
	Track(ctx context.Context, eventType, details string)
}

// ReminderScheduler enqueues pickup reminders.
type ReminderScheduler interface {
	ScheduleIfEnabled(ctx context.Context, orderID string, scheduledAt time.Time) (*model.Reminder, error)
}

// SubmissionReply is delivered by SubmitAsync.
type SubmissionReply struct {
	Result model.SubmitResult
	Err    error
}

// SubmissionUseCase validates a draft, sends it to the remote service and
// applies the outcome back to the draft session.
type SubmissionUseCase struct {
	client    api.Client
	images    AttachmentPreparer
	tracker   EventTracker
	reminders ReminderScheduler
	metrics   *metrics.Metrics
	logger    *slog.Logger
	newID     func() string
	now       func() time.Time
}

// NewSubmissionUseCase constructs SubmissionUseCase.
func NewSubmissionUseCase(client api.Client, images AttachmentPreparer, tracker EventTracker, reminders ReminderScheduler, m *metrics.Metrics, logger *slog.Logger) *SubmissionUseCase {
	return &SubmissionUseCase{
		client:    client,
		images:    images,
		tracker:   tracker,
		reminders: reminders,
		metrics:   m,
		logger:    logger,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// SubmitAsync runs Submit in the background. The submission outlives
// cancellation of ctx; its effect lands on the session only while the
// session is alive.
func (u *SubmissionUseCase) SubmitAsync(ctx context.Context, s *draft.Session) <-chan SubmissionReply {
	out := make(chan SubmissionReply, 1)
	go func() {
		defer close(out)
		res, err := u.Submit(context.WithoutCancel(ctx), s)
		out <- SubmissionReply{Result: res, Err: err}
	}()
	return out
}

// Submit sends the current draft of s as a new order. Failed preconditions
// yield a ValidationFailed result without any network call. The returned
// error is reserved for a closed session or a canceled context.
func (u *SubmissionUseCase) Submit(ctx context.Context, s *draft.Session) (model.SubmitResult, error) {
	snap := s.Snapshot()
	if violations := ValidateDraft(snap); len(violations) > 0 {
		u.metrics.ObserveSubmission(metrics.OutcomeValidation)
		return model.SubmitResult{Outcome: model.SubmitValidationFailed, Violations: violations}, nil
	}

	if _, err := s.Apply(func(d model.OrderDraft) model.OrderDraft {
		d.Submitting = true
		d.LastError = ""
		return d
	}); err != nil {
		return model.SubmitResult{}, err
	}

	form, err := u.buildForm(ctx, snap)
	if err != nil {
		u.settle(s, model.SubmitResult{Outcome: model.SubmitNetworkError, Message: err.Error()})
		return model.SubmitResult{}, err
	}

	order, err := u.client.CreateOrder(ctx, form)
	res := u.classify(ctx, snap, form, order, err)
	u.metrics.ObserveSubmission(outcomeLabel(res))

	if res.Outcome == model.SubmitSuccess {
		if _, err := u.reminders.ScheduleIfEnabled(ctx, res.Order.ID, *snap.ScheduledAt); err != nil {
			u.logger.Error("schedule reminder failed", slog.String("order", res.Order.ID), slog.String("error", err.Error()))
		}
	}

	u.settle(s, res)
	return res, nil
}

func (u *SubmissionUseCase) buildForm(ctx context.Context, snap model.OrderDraft) (api.OrderForm, error) {
	form := api.OrderForm{
		Address:     strings.TrimSpace(snap.Address),
		ScheduledAt: *snap.ScheduledAt,
		Services:    snap.ChosenServices(),
	}
	if snap.DiscountApplied {
		form.PromoCode = snap.PromoCode
	}

	prepared := make([]*api.Attachment, len(snap.SelectedImages))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelImages)
	for i, ref := range snap.SelectedImages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			att, err := u.images.Prepare(gctx, ref)
			if err != nil {
				u.logger.Warn("skip unreadable image", slog.String("ref", ref), slog.String("error", err.Error()))
				return nil
			}
			prepared[i] = &att
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return api.OrderForm{}, fmt.Errorf("prepare images: %w", err)
	}

	for _, att := range prepared {
		if att != nil {
			form.Images = append(form.Images, *att)
		}
	}
	return form, nil
}

func (u *SubmissionUseCase) classify(ctx context.Context, snap model.OrderDraft, form api.OrderForm, order *model.Order, err error) model.SubmitResult {
	var serverErr api.ServerError
	var netErr api.NetworkError

	switch {
	case err == nil:
		u.logger.Info("order created", slog.String("order", order.ID))
		u.tracker.Track(ctx, analytics.EventOrderCreated,
			fmt.Sprintf("orderId=%s, %s", order.ID, orderSummary(form.Services, snap.Total)))
		return model.SubmitResult{Outcome: model.SubmitSuccess, Order: order}

	case errors.Is(err, domainErrors.ErrEmptyResponse):
		fallback := u.fallbackOrder(snap, form)
		u.logger.Warn("order created without server id", slog.String("order", fallback.ID), slog.String("error", err.Error()))
		u.tracker.Track(ctx, analytics.EventOrderCreatedFallback, orderSummary(form.Services, snap.Total))
		return model.SubmitResult{Outcome: model.SubmitSuccess, Order: fallback, Degraded: true}

	case errors.As(err, &serverErr):
		u.tracker.Track(ctx, analytics.EventOrderFailedServer, "error="+serverErr.Message)
		return model.SubmitResult{Outcome: model.SubmitServerError, Message: serverErr.Message}

	case errors.As(err, &netErr):
		msg := netErr.Err.Error()
		u.tracker.Track(ctx, analytics.EventOrderFailedNetwork, "exception="+msg)
		return model.SubmitResult{Outcome: model.SubmitNetworkError, Message: msg}

	default:
		u.tracker.Track(ctx, analytics.EventOrderFailedNetwork, "exception="+err.Error())
		return model.SubmitResult{Outcome: model.SubmitNetworkError, Message: err.Error()}
	}
}

func (u *SubmissionUseCase) fallbackOrder(snap model.OrderDraft, form api.OrderForm) *model.Order {
	order := &model.Order{
		ID:          u.newID(),
		CreatedAt:   u.now(),
		ScheduledAt: form.ScheduledAt,
		Address:     form.Address,
		TotalAmount: snap.Total,
		Status:      model.OrderStatusNew,
		Services:    form.Services,
	}
	if form.PromoCode != "" {
		code := form.PromoCode
		order.PromoCode = &code
	}
	return order
}

// settle writes the outcome into the session unless it was abandoned.
func (u *SubmissionUseCase) settle(s *draft.Session, res model.SubmitResult) {
	if !s.Alive() {
		u.logger.Info("draft discarded before submission finished", slog.String("draft", s.ID()))
		return
	}
	_, err := s.Apply(func(d model.OrderDraft) model.OrderDraft {
		d.Submitting = false
		if res.Outcome == model.SubmitSuccess {
			d.SubmittedOrderID = res.Order.ID
			d.LastError = ""
		} else {
			d.LastError = res.Message
		}
		return d
	})
	if err != nil && !errors.Is(err, domainErrors.ErrDraftClosed) {
		u.logger.Error("apply submission result failed", slog.String("draft", s.ID()), slog.String("error", err.Error()))
	}
}

func orderSummary(services []model.ServiceID, total model.Money) string {
	ids := make([]string, 0, len(services))
	for _, id := range services {
		ids = append(ids, fmt.Sprint(int(id)))
	}
	return fmt.Sprintf("services=%s, total=%s", strings.Join(ids, ", "), total.String())
}

func outcomeLabel(res model.SubmitResult) string {
	switch res.Outcome {
	case model.SubmitSuccess:
		if res.Degraded {
			return metrics.OutcomeDegraded
		}
		return metrics.OutcomeSuccess
	case model.SubmitServerError:
		return metrics.OutcomeServer
	case model.SubmitNetworkError:
		return metrics.OutcomeNetwork
	default:
		return metrics.OutcomeValidation
	}
}
