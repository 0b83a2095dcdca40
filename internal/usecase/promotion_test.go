package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/cleanorder/internal/adapter/api"
	"github.com/polkiloo/cleanorder/internal/domain/model"
	testhelpers "github.com/polkiloo/cleanorder/internal/test"
)

func TestPromotionUseCaseRefreshRecomputesDrafts(t *testing.T) {
	registry, cache := newRegistry()
	remote := &testhelpers.RemoteAPIStub{}
	uc := NewPromotionUseCase(remote, cache, registry, discardLogger())

	s := registry.Create()
	_, _ = s.ToggleService(1, true)
	res, d, _ := s.SetPromoCode("welcome10")
	if !res.DiscountApplied || !d.Total.Equal(decimal.NewFromInt(450)) {
		t.Fatalf("expected discount applied, got %+v", d)
	}

	remote.PromotionsFn = func(context.Context) ([]model.Promotion, error) {
		return []model.Promotion{
			{ID: 2, Code: "SPRING", DiscountPct: decimal.NewFromInt(20), Active: true},
			{ID: 3, Code: "OLD", DiscountPct: decimal.NewFromInt(50), Active: false},
		}, nil
	}
	active, err := uc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if len(active) != 1 || active[0].Code != "SPRING" {
		t.Fatalf("unexpected active promotions %v", active)
	}

	snap := s.Snapshot()
	if !snap.DiscountApplied {
		t.Fatal("accepted promo code is not re-validated on refresh")
	}
	if !snap.Total.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected total recomputed without vanished promotion, got %s", snap.Total)
	}
	if len(uc.Active()) != 1 {
		t.Fatal("expected cached active promotions")
	}
}

func TestPromotionUseCaseRefreshErrorKeepsCache(t *testing.T) {
	registry, cache := newRegistry()
	remote := &testhelpers.RemoteAPIStub{PromotionsFn: func(context.Context) ([]model.Promotion, error) {
		return nil, api.NetworkError{Err: errors.New("offline")}
	}}
	uc := NewPromotionUseCase(remote, cache, registry, discardLogger())

	if _, err := uc.Refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if len(uc.Active()) != 1 || uc.Active()[0].Code != "WELCOME10" {
		t.Fatal("failed refresh must keep previous snapshot")
	}
}
