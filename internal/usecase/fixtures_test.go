package usecase

import (
	"io"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/cleanorder/internal/domain/model"
	"github.com/polkiloo/cleanorder/internal/draft"
	"github.com/polkiloo/cleanorder/internal/promotion"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func catalog() model.ServicePrices {
	return model.ServicePrices{
		1: decimal.NewFromInt(500),
		2: decimal.NewFromInt(400),
		3: decimal.NewFromInt(300),
	}
}

func welcomePromotions() []model.Promotion {
	return []model.Promotion{{ID: 1, Code: "WELCOME10", DiscountPct: decimal.NewFromInt(10), Active: true}}
}

func newRegistry() (*draft.Registry, *promotion.Cache) {
	cache := promotion.NewCache()
	cache.Replace(welcomePromotions(), time.Now())
	return draft.NewRegistry(catalog(), cache), cache
}
