package test

import (
	"context"
	"sync"

	"github.com/polkiloo/cleanorder/internal/adapter/api"
	"github.com/polkiloo/cleanorder/internal/domain/model"
)

// RemoteAPIStub implements api.Client with overridable behaviour and call recording.
type RemoteAPIStub struct {
	RegisterFn      func(context.Context, model.Registration) (string, error)
	LoginFn         func(context.Context, string, string) (string, error)
	ProfileFn       func(context.Context) (*model.Profile, error)
	UpdateProfileFn func(context.Context, model.ProfileUpdate) (*model.Profile, error)
	PromotionsFn    func(context.Context) ([]model.Promotion, error)
	CreateOrderFn   func(context.Context, api.OrderForm) (*model.Order, error)
	OrdersFn        func(context.Context) ([]model.OrderSummary, error)
	SearchFn        func(context.Context, string, int, int) (*model.Page[model.OrderSummary], error)
	DetailsFn       func(context.Context, string) (*model.Order, error)
	LogEventFn      func(context.Context, model.AnalyticsEvent) error

	mu     sync.Mutex
	Forms  []api.OrderForm
	Events []model.AnalyticsEvent
}

// Register returns a token for successful registration scenarios.
func (s *RemoteAPIStub) Register(ctx context.Context, reg model.Registration) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, reg)
	}
	return "token", nil
}

// Login returns a token for successful login scenarios.
func (s *RemoteAPIStub) Login(ctx context.Context, email, password string) (string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, email, password)
	}
	return "token", nil
}

// Profile returns configured profile.
func (s *RemoteAPIStub) Profile(ctx context.Context) (*model.Profile, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx)
	}
	return &model.Profile{ID: 1, Email: "user@example.com", Name: "User"}, nil
}

// UpdateProfile echoes the update.
func (s *RemoteAPIStub) UpdateProfile(ctx context.Context, upd model.ProfileUpdate) (*model.Profile, error) {
	if s.UpdateProfileFn != nil {
		return s.UpdateProfileFn(ctx, upd)
	}
	return &model.Profile{ID: 1, Email: "user@example.com", Name: upd.Name, Phone: upd.Phone}, nil
}

// Promotions returns configured promotions.
func (s *RemoteAPIStub) Promotions(ctx context.Context) ([]model.Promotion, error) {
	if s.PromotionsFn != nil {
		return s.PromotionsFn(ctx)
	}
	return nil, nil
}

// CreateOrder records the form and returns configured order.
func (s *RemoteAPIStub) CreateOrder(ctx context.Context, form api.OrderForm) (*model.Order, error) {
	s.mu.Lock()
	s.Forms = append(s.Forms, form)
	s.mu.Unlock()
	if s.CreateOrderFn != nil {
		return s.CreateOrderFn(ctx, form)
	}
	return &model.Order{ID: "order-1", Address: form.Address, ScheduledAt: form.ScheduledAt, Services: form.Services}, nil
}

// Orders returns configured summaries.
func (s *RemoteAPIStub) Orders(ctx context.Context) ([]model.OrderSummary, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx)
	}
	return nil, nil
}

// SearchOrders returns configured page.
func (s *RemoteAPIStub) SearchOrders(ctx context.Context, query string, page, size int) (*model.Page[model.OrderSummary], error) {
	if s.SearchFn != nil {
		return s.SearchFn(ctx, query, page, size)
	}
	return &model.Page[model.OrderSummary]{Number: page, Size: size}, nil
}

// OrderDetails returns configured order.
func (s *RemoteAPIStub) OrderDetails(ctx context.Context, id string) (*model.Order, error) {
	if s.DetailsFn != nil {
		return s.DetailsFn(ctx, id)
	}
	return &model.Order{ID: id}, nil
}

// LogEvent records the event.
func (s *RemoteAPIStub) LogEvent(ctx context.Context, event model.AnalyticsEvent) error {
	s.mu.Lock()
	s.Events = append(s.Events, event)
	s.mu.Unlock()
	if s.LogEventFn != nil {
		return s.LogEventFn(ctx, event)
	}
	return nil
}

// CreateCalls returns number of CreateOrder invocations.
func (s *RemoteAPIStub) CreateCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Forms)
}

// RecordedEvents returns a copy of posted events.
func (s *RemoteAPIStub) RecordedEvents() []model.AnalyticsEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.AnalyticsEvent(nil), s.Events...)
}

var _ api.Client = (*RemoteAPIStub)(nil)
