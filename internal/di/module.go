package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/cleanorder/internal/adapter/api"
	"github.com/polkiloo/cleanorder/internal/analytics"
	"github.com/polkiloo/cleanorder/internal/app"
	"github.com/polkiloo/cleanorder/internal/attachment"
	"github.com/polkiloo/cleanorder/internal/config"
	"github.com/polkiloo/cleanorder/internal/draft"
	"github.com/polkiloo/cleanorder/internal/logger"
	"github.com/polkiloo/cleanorder/internal/metrics"
	"github.com/polkiloo/cleanorder/internal/pkg/auth"
	"github.com/polkiloo/cleanorder/internal/pricing"
	"github.com/polkiloo/cleanorder/internal/promotion"
	"github.com/polkiloo/cleanorder/internal/server/http/router"
	"github.com/polkiloo/cleanorder/internal/storage/postgres"
	"github.com/polkiloo/cleanorder/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		api.Module,
		promotion.Module,
		pricing.Module,
		draft.Module,
		attachment.Module,
		analytics.Module,
		metrics.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
