package test

import (
	"context"
	"sync"
	"time"

	"github.com/polkiloo/cleanorder/internal/domain/model"
)

// ClientFacadeStub provides controllable behaviour for control API handlers.
// Draft operations without an override echo a draft carrying the given id.
type ClientFacadeStub struct {
	SignedIn bool

	RegisterFn      func(context.Context, model.Registration) error
	LoginFn         func(context.Context, string, string) error
	LogoutFn        func(context.Context) error
	ProfileFn       func(context.Context) (*model.Profile, error)
	UpdateProfileFn func(context.Context, model.ProfileUpdate) (*model.Profile, error)
	PromotionsFn    func(context.Context) ([]model.Promotion, error)
	Cached          []model.Promotion

	DraftFn    func(string) (model.OrderDraft, error)
	DiscardFn  func(string) error
	ToggleFn   func(string, model.ServiceID, bool) (model.OrderDraft, error)
	AddressFn  func(string, string) (model.OrderDraft, error)
	ScheduleFn func(string, time.Time) (model.OrderDraft, error)
	ImageFn    func(string, string, bool) (model.OrderDraft, error)
	PromoFn    func(string, string) (model.OrderDraft, error)
	SubmitFn   func(context.Context, string) (model.SubmitResult, error)

	OrdersFn       func(context.Context, string) ([]model.OrderSummary, error)
	DetailsFn      func(context.Context, string) (*model.Order, error)
	SearchFn       func(context.Context, string, int, int) (*model.Page[model.OrderSummary], error)
	HistoryFn      func(context.Context) ([]string, error)
	ClearHistoryFn func(context.Context) error

	SettingsFn       func(context.Context) (model.Settings, error)
	UpdateSettingsFn func(context.Context, model.Settings) error
	Permission       bool
	mu               sync.Mutex
}

// Register delegates to override or succeeds.
func (s *ClientFacadeStub) Register(ctx context.Context, reg model.Registration) error {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, reg)
	}
	return nil
}

// Login delegates to override or succeeds.
func (s *ClientFacadeStub) Login(ctx context.Context, email, password string) error {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, email, password)
	}
	return nil
}

// Logout delegates to override or succeeds.
func (s *ClientFacadeStub) Logout(ctx context.Context) error {
	if s.LogoutFn != nil {
		return s.LogoutFn(ctx)
	}
	return nil
}

// Authenticated returns SignedIn.
func (s *ClientFacadeStub) Authenticated() bool {
	return s.SignedIn
}

// Profile returns configured profile.
func (s *ClientFacadeStub) Profile(ctx context.Context) (*model.Profile, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx)
	}
	return &model.Profile{ID: 1, Email: "user@example.com"}, nil
}

// UpdateProfile echoes the update.
func (s *ClientFacadeStub) UpdateProfile(ctx context.Context, upd model.ProfileUpdate) (*model.Profile, error) {
	if s.UpdateProfileFn != nil {
		return s.UpdateProfileFn(ctx, upd)
	}
	return &model.Profile{ID: 1, Name: upd.Name, Phone: upd.Phone}, nil
}

// Promotions returns configured promotions.
func (s *ClientFacadeStub) Promotions(ctx context.Context) ([]model.Promotion, error) {
	if s.PromotionsFn != nil {
		return s.PromotionsFn(ctx)
	}
	return s.Cached, nil
}

// CachedPromotions returns Cached.
func (s *ClientFacadeStub) CachedPromotions() []model.Promotion {
	return s.Cached
}

// CreateDraft returns an empty draft.
func (s *ClientFacadeStub) CreateDraft() model.OrderDraft {
	return model.OrderDraft{ID: "draft-1", SelectedServices: map[model.ServiceID]bool{1: false, 2: false, 3: false}}
}

// Draft delegates to override or echoes id.
func (s *ClientFacadeStub) Draft(id string) (model.OrderDraft, error) {
	if s.DraftFn != nil {
		return s.DraftFn(id)
	}
	return model.OrderDraft{ID: id}, nil
}

// DiscardDraft delegates to override or succeeds.
func (s *ClientFacadeStub) DiscardDraft(id string) error {
	if s.DiscardFn != nil {
		return s.DiscardFn(id)
	}
	return nil
}

// ToggleService delegates to override or echoes selection.
func (s *ClientFacadeStub) ToggleService(id string, service model.ServiceID, selected bool) (model.OrderDraft, error) {
	if s.ToggleFn != nil {
		return s.ToggleFn(id, service, selected)
	}
	return model.OrderDraft{ID: id, SelectedServices: map[model.ServiceID]bool{service: selected}}, nil
}

// SetAddress delegates to override or echoes address.
func (s *ClientFacadeStub) SetAddress(id, address string) (model.OrderDraft, error) {
	if s.AddressFn != nil {
		return s.AddressFn(id, address)
	}
	return model.OrderDraft{ID: id, Address: address}, nil
}

// SetSchedule delegates to override or echoes schedule.
func (s *ClientFacadeStub) SetSchedule(id string, at time.Time) (model.OrderDraft, error) {
	if s.ScheduleFn != nil {
		return s.ScheduleFn(id, at)
	}
	return model.OrderDraft{ID: id, ScheduledAt: &at}, nil
}

// AddImage delegates to override or echoes ref.
func (s *ClientFacadeStub) AddImage(id, ref string) (model.OrderDraft, error) {
	if s.ImageFn != nil {
		return s.ImageFn(id, ref, true)
	}
	return model.OrderDraft{ID: id, SelectedImages: []string{ref}}, nil
}

// RemoveImage delegates to override or returns draft without images.
func (s *ClientFacadeStub) RemoveImage(id, ref string) (model.OrderDraft, error) {
	if s.ImageFn != nil {
		return s.ImageFn(id, ref, false)
	}
	return model.OrderDraft{ID: id}, nil
}

// SetPromoCode delegates to override or echoes code.
func (s *ClientFacadeStub) SetPromoCode(id, code string) (model.OrderDraft, error) {
	if s.PromoFn != nil {
		return s.PromoFn(id, code)
	}
	return model.OrderDraft{ID: id, PromoCode: code}, nil
}

// ClearPromoCode routes through PromoFn with an empty code.
func (s *ClientFacadeStub) ClearPromoCode(id string) (model.OrderDraft, error) {
	return s.SetPromoCode(id, "")
}

// SubmitDraft delegates to override or reports success.
func (s *ClientFacadeStub) SubmitDraft(ctx context.Context, id string) (model.SubmitResult, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, id)
	}
	return model.SubmitResult{Outcome: model.SubmitSuccess, Order: &model.Order{ID: "order-1"}}, nil
}

// Orders returns configured summaries.
func (s *ClientFacadeStub) Orders(ctx context.Context, filter string) ([]model.OrderSummary, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, filter)
	}
	return nil, nil
}

// OrderDetails returns configured order.
func (s *ClientFacadeStub) OrderDetails(ctx context.Context, id string) (*model.Order, error) {
	if s.DetailsFn != nil {
		return s.DetailsFn(ctx, id)
	}
	return &model.Order{ID: id}, nil
}

// SearchOrders returns configured page.
func (s *ClientFacadeStub) SearchOrders(ctx context.Context, query string, page, size int) (*model.Page[model.OrderSummary], error) {
	if s.SearchFn != nil {
		return s.SearchFn(ctx, query, page, size)
	}
	return &model.Page[model.OrderSummary]{Number: page, Size: size}, nil
}

// SearchHistory returns configured history.
func (s *ClientFacadeStub) SearchHistory(ctx context.Context) ([]string, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx)
	}
	return []string{}, nil
}

// ClearSearchHistory delegates to override or succeeds.
func (s *ClientFacadeStub) ClearSearchHistory(ctx context.Context) error {
	if s.ClearHistoryFn != nil {
		return s.ClearHistoryFn(ctx)
	}
	return nil
}

// Settings returns configured settings or defaults.
func (s *ClientFacadeStub) Settings(ctx context.Context) (model.Settings, error) {
	if s.SettingsFn != nil {
		return s.SettingsFn(ctx)
	}
	return model.Settings{Language: model.LanguageSystem, Theme: model.ThemeSystem}, nil
}

// UpdateSettings delegates to override or succeeds.
func (s *ClientFacadeStub) UpdateSettings(ctx context.Context, settings model.Settings) error {
	if s.UpdateSettingsFn != nil {
		return s.UpdateSettingsFn(ctx, settings)
	}
	return nil
}

// NotificationPermission returns Permission.
func (s *ClientFacadeStub) NotificationPermission(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Permission, nil
}

// SetNotificationPermission stores Permission.
func (s *ClientFacadeStub) SetNotificationPermission(ctx context.Context, granted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Permission = granted
	return nil
}

// CompletedReminder records a CompleteReminder call.
type CompletedReminder struct {
	ID     int64
	Result string
}

// ReminderFacadeStub mimics worker interactions with the client facade.
type ReminderFacadeStub struct {
	Due       [][]model.Reminder
	FetchErr  error
	Permitted bool

	mu        sync.Mutex
	calls     int
	completed []CompletedReminder
	released  []int64
}

// DueReminders returns batches from configured queue.
func (s *ReminderFacadeStub) DueReminders(ctx context.Context, limit int) ([]model.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FetchErr != nil {
		return nil, s.FetchErr
	}
	if s.calls < len(s.Due) {
		batch := s.Due[s.calls]
		s.calls++
		return batch, nil
	}
	return nil, nil
}

// NotificationPermitted returns Permitted.
func (s *ReminderFacadeStub) NotificationPermitted(ctx context.Context) bool {
	return s.Permitted
}

// CompleteReminder records completion. A cancelled ctx fails the call the
// way a database round trip would.
func (s *ReminderFacadeStub) CompleteReminder(ctx context.Context, id int64, result string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed = append(s.completed, CompletedReminder{ID: id, Result: result})
	return nil
}

// ReleaseReminder records a reminder handed back to the queue.
func (s *ReminderFacadeStub) ReleaseReminder(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.released = append(s.released, id)
	return nil
}

// Released returns ids passed to ReleaseReminder.
func (s *ReminderFacadeStub) Released() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.released...)
}

// Completed returns a copy of recorded completions.
func (s *ReminderFacadeStub) Completed() []CompletedReminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]CompletedReminder(nil), s.completed...)
}

// NotifierStub records shown reminders. When Hold is set Notify reports the
// reminder on Entered and blocks until Hold is closed.
type NotifierStub struct {
	Err     error
	Entered chan<- model.Reminder
	Hold    <-chan struct{}
	mu      sync.Mutex
	shown   []model.Reminder
}

// Notify records reminder unless Err is set.
func (s *NotifierStub) Notify(ctx context.Context, rem model.Reminder) error {
	if s.Entered != nil {
		s.Entered <- rem
	}
	if s.Hold != nil {
		<-s.Hold
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.shown = append(s.shown, rem)
	return nil
}

// Shown returns a copy of shown reminders.
func (s *NotifierStub) Shown() []model.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Reminder(nil), s.shown...)
}
