package draft

import (
	"errors"
	"testing"

	domainErrors "github.com/polkiloo/cleanorder/internal/domain/errors"
	"github.com/polkiloo/cleanorder/internal/domain/model"
	"github.com/polkiloo/cleanorder/internal/promotion"
)

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry(testPrices(), welcomeCache())
	s := r.Create()
	if s.ID() == "" {
		t.Fatal("expected generated id")
	}

	got, err := r.Get(s.ID())
	if err != nil || got != s {
		t.Fatalf("expected same session, got %v %v", got, err)
	}

	if err := r.Discard(s.ID()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Alive() {
		t.Fatal("discarded session must be closed")
	}
	if _, err := r.Get(s.ID()); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := r.Discard(s.ID()); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found on second discard, got %v", err)
	}
}

func TestRegistryRecomputeAll(t *testing.T) {
	cache := welcomeCache()
	r := NewRegistry(testPrices(), cache)
	s := r.Create()
	_, _ = s.ToggleService(1, true)
	_, _, _ = s.SetPromoCode("welcome10")

	cache.Replace([]model.Promotion{}, cache.FetchedAt())
	r.RecomputeAll()
	requireTotal(t, s.Snapshot(), 500)
}

func TestNewRegistryFromModule(t *testing.T) {
	r := newRegistry(testPrices(), promotion.NewCache())
	if r == nil {
		t.Fatal("expected registry")
	}
}
