package draft

import (
	"go.uber.org/fx"

	"github.com/polkiloo/cleanorder/internal/domain/model"
	"github.com/polkiloo/cleanorder/internal/promotion"
)

// Module provides the draft session registry.
var Module = fx.Provide(newRegistry)

func newRegistry(prices model.ServicePrices, cache *promotion.Cache) *Registry {
	return NewRegistry(prices, cache)
}
