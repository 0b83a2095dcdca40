package handlers

import (
	"context"
	"time"

	"github.com/polkiloo/cleanorder/internal/domain/model"
)

// AuthFacade describes session capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, reg model.Registration) error
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	Authenticated() bool
}

// ProfileFacade exposes the customer profile.
type ProfileFacade interface {
	Profile(ctx context.Context) (*model.Profile, error)
	UpdateProfile(ctx context.Context, upd model.ProfileUpdate) (*model.Profile, error)
}

// PromotionFacade exposes promotions.
type PromotionFacade interface {
	Promotions(ctx context.Context) ([]model.Promotion, error)
	CachedPromotions() []model.Promotion
}

// DraftFacade drives order drafts.
type DraftFacade interface {
	CreateDraft() model.OrderDraft
	Draft(id string) (model.OrderDraft, error)
	DiscardDraft(id string) error
	ToggleService(id string, service model.ServiceID, selected bool) (model.OrderDraft, error)
	SetAddress(id, address string) (model.OrderDraft, error)
	SetSchedule(id string, at time.Time) (model.OrderDraft, error)
	AddImage(id, ref string) (model.OrderDraft, error)
	RemoveImage(id, ref string) (model.OrderDraft, error)
	SetPromoCode(id, code string) (model.OrderDraft, error)
	ClearPromoCode(id string) (model.OrderDraft, error)
	SubmitDraft(ctx context.Context, id string) (model.SubmitResult, error)
}

// OrderFacade encapsulates order browsing operations exposed via HTTP.
type OrderFacade interface {
	Orders(ctx context.Context, filter string) ([]model.OrderSummary, error)
	OrderDetails(ctx context.Context, id string) (*model.Order, error)
	SearchOrders(ctx context.Context, query string, page, size int) (*model.Page[model.OrderSummary], error)
	SearchHistory(ctx context.Context) ([]string, error)
	ClearSearchHistory(ctx context.Context) error
}

// SettingsFacade provides preference operations.
type SettingsFacade interface {
	Settings(ctx context.Context) (model.Settings, error)
	UpdateSettings(ctx context.Context, s model.Settings) error
	NotificationPermission(ctx context.Context) (bool, error)
	SetNotificationPermission(ctx context.Context, granted bool) error
}

// ClientFacade aggregates the full set of operations used across handlers.
type ClientFacade interface {
	AuthFacade
	ProfileFacade
	PromotionFacade
	DraftFacade
	OrderFacade
	SettingsFacade
}
