package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/polkiloo/cleanorder/internal/adapter/api"
	"github.com/polkiloo/cleanorder/internal/domain/model"
	"github.com/polkiloo/cleanorder/internal/draft"
	"github.com/polkiloo/cleanorder/internal/promotion"
)

// PromotionUseCase keeps the promotions cache in sync with the server.
type PromotionUseCase struct {
	client   api.Client
	cache    *promotion.Cache
	registry *draft.Registry
	logger   *slog.Logger
	now      func() time.Time
}

// NewPromotionUseCase constructs PromotionUseCase.
func NewPromotionUseCase(client api.Client, cache *promotion.Cache, registry *draft.Registry, logger *slog.Logger) *PromotionUseCase {
	return &PromotionUseCase{client: client, cache: cache, registry: registry, logger: logger, now: time.Now}
}

// Refresh replaces the cache with the server list and recomputes open
// draft totals. Promo codes already accepted by a draft are not re-validated.
func (u *PromotionUseCase) Refresh(ctx context.Context) ([]model.Promotion, error) {
	items, err := u.client.Promotions(ctx)
	if err != nil {
		return nil, err
	}
	u.cache.Replace(items, u.now())
	u.registry.RecomputeAll()
	u.logger.Info("promotions refreshed", slog.Int("count", len(items)))
	return u.cache.Active(), nil
}

// Active lists cached active promotions.
func (u *PromotionUseCase) Active() []model.Promotion {
	return u.cache.Active()
}
