package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/polkiloo/cleanorder/internal/adapter/api"
	"github.com/polkiloo/cleanorder/internal/analytics"
	"github.com/polkiloo/cleanorder/internal/domain/model"
	testhelpers "github.com/polkiloo/cleanorder/internal/test"
)

func newOrderFixture() (*OrderUseCase, *testhelpers.RemoteAPIStub, *testhelpers.PreferenceStoreStub, *testhelpers.TrackerStub) {
	remote := &testhelpers.RemoteAPIStub{}
	prefs := testhelpers.NewPreferenceStoreStub(nil)
	tracker := &testhelpers.TrackerStub{}
	return NewOrderUseCase(remote, prefs, tracker, discardLogger()), remote, prefs, tracker
}

func TestOrderUseCaseListFilter(t *testing.T) {
	uc, remote, _, _ := newOrderFixture()
	remote.OrdersFn = func(context.Context) ([]model.OrderSummary, error) {
		return []model.OrderSummary{{ID: "ABC-1"}, {ID: "xyz-2"}, {ID: "abc-3"}}, nil
	}

	all, err := uc.List(context.Background(), " ")
	if err != nil || len(all) != 3 {
		t.Fatalf("expected all orders, got %v %v", all, err)
	}
	matched, err := uc.List(context.Background(), "aBc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matched) != 2 || matched[0].ID != "ABC-1" || matched[1].ID != "abc-3" {
		t.Fatalf("unexpected filter result %v", matched)
	}
}

func TestOrderUseCaseListPropagatesError(t *testing.T) {
	uc, remote, _, _ := newOrderFixture()
	remote.OrdersFn = func(context.Context) ([]model.OrderSummary, error) {
		return nil, api.ServerError{Status: 500, Message: api.UnknownErrorMessage}
	}
	var serverErr api.ServerError
	if _, err := uc.List(context.Background(), ""); !errors.As(err, &serverErr) {
		t.Fatalf("expected server error, got %v", err)
	}
}

func TestOrderUseCaseDetailsTrimsID(t *testing.T) {
	uc, remote, _, _ := newOrderFixture()
	remote.DetailsFn = func(_ context.Context, id string) (*model.Order, error) {
		if id != "o-1" {
			t.Fatalf("unexpected id %q", id)
		}
		return &model.Order{ID: id, ImageURLs: []string{"/img/1.jpg"}}, nil
	}
	order, err := uc.Details(context.Background(), " o-1 ")
	if err != nil || len(order.ImageURLs) != 1 {
		t.Fatalf("unexpected details %+v %v", order, err)
	}
}

func TestOrderUseCaseSearchDefaultsAndHistory(t *testing.T) {
	uc, remote, _, tracker := newOrderFixture()
	remote.SearchFn = func(_ context.Context, q string, page, size int) (*model.Page[model.OrderSummary], error) {
		if page != 0 || size != defaultSearchSize {
			t.Fatalf("unexpected paging %d/%d", page, size)
		}
		return &model.Page[model.OrderSummary]{TotalElements: 2}, nil
	}

	for _, q := range []string{" coat ", "", "dress", "coat"} {
		if _, err := uc.Search(context.Background(), q, -1, 0); err != nil {
			t.Fatalf("search %q: %v", q, err)
		}
	}

	history, err := uc.History(context.Background())
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 || history[0] != "coat" || history[1] != "dress" {
		t.Fatalf("expected de-duplicated recent-first history, got %v", history)
	}

	events := tracker.Events()
	if len(events) != 4 || events[0].Type != analytics.EventSearchPerformed || events[0].Details != "query=coat, results=2" {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestOrderUseCaseHistoryLimit(t *testing.T) {
	uc, _, _, _ := newOrderFixture()
	for i := 0; i < maxSearchHistory+5; i++ {
		if _, err := uc.Search(context.Background(), fmt.Sprintf("q%d", i), 0, 10); err != nil {
			t.Fatalf("search: %v", err)
		}
	}
	history, _ := uc.History(context.Background())
	if len(history) != maxSearchHistory {
		t.Fatalf("expected %d entries, got %d", maxSearchHistory, len(history))
	}
	if history[0] != "q14" {
		t.Fatalf("expected most recent first, got %v", history)
	}
}

func TestOrderUseCaseSearchFailureKeepsHistory(t *testing.T) {
	uc, remote, prefs, tracker := newOrderFixture()
	remote.SearchFn = func(context.Context, string, int, int) (*model.Page[model.OrderSummary], error) {
		return nil, api.NetworkError{Err: errors.New("offline")}
	}
	_, err := uc.Search(context.Background(), " coat ", 0, 10)
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := prefs.Value(model.PrefSearchHistory); ok {
		t.Fatal("failed search must not be remembered")
	}
	events := tracker.Events()
	want := fmt.Sprintf("query=coat, error=%s", err.Error())
	if len(events) != 1 || events[0].Type != analytics.EventSearchFailed || events[0].Details != want {
		t.Fatalf("expected search_failed event %q, got %+v", want, events)
	}
}

func TestOrderUseCaseSearchReturnsResultsWhenHistoryWriteFails(t *testing.T) {
	uc, remote, prefs, tracker := newOrderFixture()
	remote.SearchFn = func(context.Context, string, int, int) (*model.Page[model.OrderSummary], error) {
		return &model.Page[model.OrderSummary]{Content: []model.OrderSummary{{ID: "o-1"}}, TotalElements: 1}, nil
	}
	prefs.SetErr = errors.New("disk full")

	result, err := uc.Search(context.Background(), "coat", 0, 10)
	if err != nil {
		t.Fatalf("history failure must not fail the search: %v", err)
	}
	if result == nil || len(result.Content) != 1 {
		t.Fatalf("expected search results, got %+v", result)
	}
	events := tracker.Events()
	if len(events) != 1 || events[0].Type != analytics.EventSearchPerformed {
		t.Fatalf("expected search_performed event, got %+v", events)
	}
}

func TestOrderUseCaseClearHistory(t *testing.T) {
	uc, _, prefs, tracker := newOrderFixture()
	_ = prefs.Set(context.Background(), model.PrefSearchHistory, `["coat"]`)

	if err := uc.ClearHistory(context.Background()); err != nil {
		t.Fatalf("clear: %v", err)
	}
	history, _ := uc.History(context.Background())
	if len(history) != 0 {
		t.Fatalf("expected empty history, got %v", history)
	}
	events := tracker.Events()
	if len(events) != 1 || events[0].Type != analytics.EventSearchHistoryCleared {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestOrderUseCaseHistoryIgnoresCorruptValue(t *testing.T) {
	uc, _, prefs, _ := newOrderFixture()
	_ = prefs.Set(context.Background(), model.PrefSearchHistory, "not json")
	history, err := uc.History(context.Background())
	if err != nil || len(history) != 0 {
		t.Fatalf("expected empty history, got %v %v", history, err)
	}
}
