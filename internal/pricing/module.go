package pricing

import (
	"go.uber.org/fx"

	"github.com/polkiloo/cleanorder/internal/config"
	"github.com/polkiloo/cleanorder/internal/domain/model"
)

// Module provides the service price catalog parsed from configuration.
var Module = fx.Provide(newServicePrices)

func newServicePrices(cfg *config.Config) (model.ServicePrices, error) {
	return ParsePrices(cfg.ServicePrices)
}
