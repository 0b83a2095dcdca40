package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/polkiloo/cleanorder/internal/adapter/api"
	"github.com/polkiloo/cleanorder/internal/analytics"
	"github.com/polkiloo/cleanorder/internal/domain/model"
	"github.com/polkiloo/cleanorder/internal/domain/repository"
)

const (
	maxSearchHistory  = 10
	defaultSearchSize = 20
)

// OrderUseCase browses submitted orders and keeps the search history.
type OrderUseCase struct {
	client  api.Client
	prefs   repository.PreferenceRepository
	tracker EventTracker
	logger  *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(client api.Client, prefs repository.PreferenceRepository, tracker EventTracker, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{client: client, prefs: prefs, tracker: tracker, logger: logger}
}

// List returns order summaries whose id contains filter, ignoring case.
func (u *OrderUseCase) List(ctx context.Context, filter string) ([]model.OrderSummary, error) {
	orders, err := u.client.Orders(ctx)
	if err != nil {
		return nil, err
	}
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return orders, nil
	}
	matched := make([]model.OrderSummary, 0, len(orders))
	for _, o := range orders {
		if strings.Contains(strings.ToLower(o.ID), filter) {
			matched = append(matched, o)
		}
	}
	return matched, nil
}

// Details fetches a single order.
func (u *OrderUseCase) Details(ctx context.Context, id string) (*model.Order, error) {
	return u.client.OrderDetails(ctx, strings.TrimSpace(id))
}

// Search queries the server and remembers non-blank queries. Results are
// returned even when the history cannot be stored.
func (u *OrderUseCase) Search(ctx context.Context, query string, page, size int) (*model.Page[model.OrderSummary], error) {
	query = strings.TrimSpace(query)
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultSearchSize
	}

	result, err := u.client.SearchOrders(ctx, query, page, size)
	if err != nil {
		u.tracker.Track(ctx, analytics.EventSearchFailed, fmt.Sprintf("query=%s, error=%s", query, err.Error()))
		return nil, err
	}
	if query != "" {
		if err := u.remember(ctx, query); err != nil {
			u.logger.Warn("save search history failed", slog.String("query", query), slog.String("error", err.Error()))
		}
	}
	u.tracker.Track(ctx, analytics.EventSearchPerformed, fmt.Sprintf("query=%s, results=%d", query, result.TotalElements))
	return result, nil
}

// History returns recent queries, most recent first.
func (u *OrderUseCase) History(ctx context.Context) ([]string, error) {
	raw, ok, err := u.prefs.Get(ctx, model.PrefSearchHistory)
	if err != nil {
		return nil, fmt.Errorf("read search history: %w", err)
	}
	if !ok || raw == "" {
		return []string{}, nil
	}
	var history []string
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		return []string{}, nil
	}
	return history, nil
}

// ClearHistory forgets every stored query.
func (u *OrderUseCase) ClearHistory(ctx context.Context) error {
	if err := u.prefs.Delete(ctx, model.PrefSearchHistory); err != nil {
		return fmt.Errorf("clear search history: %w", err)
	}
	u.tracker.Track(ctx, analytics.EventSearchHistoryCleared, "")
	return nil
}

func (u *OrderUseCase) remember(ctx context.Context, query string) error {
	history, err := u.History(ctx)
	if err != nil {
		return err
	}
	history = slices.DeleteFunc(history, func(q string) bool { return q == query })
	history = append([]string{query}, history...)
	if len(history) > maxSearchHistory {
		history = history[:maxSearchHistory]
	}
	data, err := json.Marshal(history)
	if err != nil {
		return err
	}
	if err := u.prefs.Set(ctx, model.PrefSearchHistory, string(data)); err != nil {
		return fmt.Errorf("store search history: %w", err)
	}
	return nil
}
