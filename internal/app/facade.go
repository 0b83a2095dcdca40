package app

import (
	"context"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/cleanorder/internal/domain/model"
	"github.com/polkiloo/cleanorder/internal/draft"
	"github.com/polkiloo/cleanorder/internal/usecase"
)

// ClientFacade aggregates client use cases behind a single surface used by
// the control API and the reminder worker.
type ClientFacade struct {
	auth       *usecase.AuthUseCase
	profile    *usecase.ProfileUseCase
	orders     *usecase.OrderUseCase
	promotions *usecase.PromotionUseCase
	settings   *usecase.SettingsUseCase
	reminders  *usecase.ReminderUseCase
	submission *usecase.SubmissionUseCase
	drafts     *draft.Registry
}

type facadeParams struct {
	fx.In

	Auth       *usecase.AuthUseCase
	Profile    *usecase.ProfileUseCase
	Orders     *usecase.OrderUseCase
	Promotions *usecase.PromotionUseCase
	Settings   *usecase.SettingsUseCase
	Reminders  *usecase.ReminderUseCase
	Submission *usecase.SubmissionUseCase
	Drafts     *draft.Registry
}

func NewClientFacade(p facadeParams) *ClientFacade {
	return &ClientFacade{
		auth:       p.Auth,
		profile:    p.Profile,
		orders:     p.Orders,
		promotions: p.Promotions,
		settings:   p.Settings,
		reminders:  p.Reminders,
		submission: p.Submission,
		drafts:     p.Drafts,
	}
}

func (f *ClientFacade) Register(ctx context.Context, reg model.Registration) error {
	return f.auth.Register(ctx, reg)
}

func (f *ClientFacade) Login(ctx context.Context, email, password string) error {
	return f.auth.Login(ctx, email, password)
}

func (f *ClientFacade) Logout(ctx context.Context) error {
	return f.auth.Logout(ctx)
}

func (f *ClientFacade) Authenticated() bool {
	return f.auth.Authenticated()
}

func (f *ClientFacade) RestoreSession(ctx context.Context) (bool, error) {
	return f.auth.Restore(ctx)
}

func (f *ClientFacade) Profile(ctx context.Context) (*model.Profile, error) {
	return f.profile.Get(ctx)
}

func (f *ClientFacade) UpdateProfile(ctx context.Context, upd model.ProfileUpdate) (*model.Profile, error) {
	return f.profile.Update(ctx, upd)
}

func (f *ClientFacade) Promotions(ctx context.Context) ([]model.Promotion, error) {
	return f.promotions.Refresh(ctx)
}

func (f *ClientFacade) CachedPromotions() []model.Promotion {
	return f.promotions.Active()
}

func (f *ClientFacade) CreateDraft() model.OrderDraft {
	return f.drafts.Create().Snapshot()
}

func (f *ClientFacade) Draft(id string) (model.OrderDraft, error) {
	s, err := f.drafts.Get(id)
	if err != nil {
		return model.OrderDraft{}, err
	}
	return s.Snapshot(), nil
}

func (f *ClientFacade) DiscardDraft(id string) error {
	return f.drafts.Discard(id)
}

func (f *ClientFacade) ToggleService(id string, service model.ServiceID, selected bool) (model.OrderDraft, error) {
	return f.withSession(id, func(s *draft.Session) (model.OrderDraft, error) {
		return s.ToggleService(service, selected)
	})
}

func (f *ClientFacade) SetAddress(id, address string) (model.OrderDraft, error) {
	return f.withSession(id, func(s *draft.Session) (model.OrderDraft, error) {
		return s.SetAddress(address)
	})
}

func (f *ClientFacade) SetSchedule(id string, at time.Time) (model.OrderDraft, error) {
	return f.withSession(id, func(s *draft.Session) (model.OrderDraft, error) {
		return s.SetSchedule(at)
	})
}

func (f *ClientFacade) AddImage(id, ref string) (model.OrderDraft, error) {
	return f.withSession(id, func(s *draft.Session) (model.OrderDraft, error) {
		return s.AddImage(ref)
	})
}

func (f *ClientFacade) RemoveImage(id, ref string) (model.OrderDraft, error) {
	return f.withSession(id, func(s *draft.Session) (model.OrderDraft, error) {
		return s.RemoveImage(ref)
	})
}

func (f *ClientFacade) SetPromoCode(id, code string) (model.OrderDraft, error) {
	return f.withSession(id, func(s *draft.Session) (model.OrderDraft, error) {
		_, d, err := s.SetPromoCode(code)
		return d, err
	})
}

func (f *ClientFacade) ClearPromoCode(id string) (model.OrderDraft, error) {
	return f.withSession(id, func(s *draft.Session) (model.OrderDraft, error) {
		return s.ClearPromoCode()
	})
}

// SubmitDraft sends the draft and waits for the outcome. When ctx ends first
// the submission keeps running and lands on the draft if it is still open.
// A successful submission closes the draft either way.
func (f *ClientFacade) SubmitDraft(ctx context.Context, id string) (model.SubmitResult, error) {
	s, err := f.drafts.Get(id)
	if err != nil {
		return model.SubmitResult{}, err
	}
	replies := f.submission.SubmitAsync(ctx, s)
	settled := make(chan usecase.SubmissionReply, 1)
	go func() {
		reply := <-replies
		if reply.Err == nil && reply.Result.Outcome == model.SubmitSuccess {
			// ErrNotFound only means the caller already discarded it.
			_ = f.drafts.Discard(id)
		}
		settled <- reply
	}()
	select {
	case reply := <-settled:
		return reply.Result, reply.Err
	case <-ctx.Done():
		return model.SubmitResult{}, ctx.Err()
	}
}

func (f *ClientFacade) Orders(ctx context.Context, filter string) ([]model.OrderSummary, error) {
	return f.orders.List(ctx, filter)
}

func (f *ClientFacade) OrderDetails(ctx context.Context, id string) (*model.Order, error) {
	return f.orders.Details(ctx, id)
}

func (f *ClientFacade) SearchOrders(ctx context.Context, query string, page, size int) (*model.Page[model.OrderSummary], error) {
	return f.orders.Search(ctx, query, page, size)
}

func (f *ClientFacade) SearchHistory(ctx context.Context) ([]string, error) {
	return f.orders.History(ctx)
}

func (f *ClientFacade) ClearSearchHistory(ctx context.Context) error {
	return f.orders.ClearHistory(ctx)
}

func (f *ClientFacade) Settings(ctx context.Context) (model.Settings, error) {
	return f.settings.Get(ctx)
}

func (f *ClientFacade) UpdateSettings(ctx context.Context, s model.Settings) error {
	return f.settings.Update(ctx, s)
}

func (f *ClientFacade) NotificationPermission(ctx context.Context) (bool, error) {
	return f.settings.NotificationPermission(ctx)
}

func (f *ClientFacade) SetNotificationPermission(ctx context.Context, granted bool) error {
	return f.settings.SetNotificationPermission(ctx, granted)
}

func (f *ClientFacade) DueReminders(ctx context.Context, limit int) ([]model.Reminder, error) {
	return f.reminders.DueReminders(ctx, limit)
}

func (f *ClientFacade) NotificationPermitted(ctx context.Context) bool {
	return f.reminders.NotificationPermitted(ctx)
}

func (f *ClientFacade) CompleteReminder(ctx context.Context, id int64, result string) error {
	return f.reminders.CompleteReminder(ctx, id, result)
}

func (f *ClientFacade) ReleaseReminder(ctx context.Context, id int64) error {
	return f.reminders.ReleaseReminder(ctx, id)
}

func (f *ClientFacade) withSession(id string, fn func(*draft.Session) (model.OrderDraft, error)) (model.OrderDraft, error) {
	s, err := f.drafts.Get(id)
	if err != nil {
		return model.OrderDraft{}, err
	}
	return fn(s)
}
