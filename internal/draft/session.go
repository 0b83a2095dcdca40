package draft

import (
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/cleanorder/internal/domain/errors"
	"github.com/polkiloo/cleanorder/internal/domain/model"
	"github.com/polkiloo/cleanorder/internal/pricing"
)

// InvalidPromoMessage is reported when an entered code matches no promotion.
const InvalidPromoMessage = "invalid promo code"

// PromotionLookup resolves a promo code against the current promotions snapshot.
type PromotionLookup interface {
	Lookup(code string) (*model.Promotion, bool)
}

// Reducer derives the next draft from the current one.
type Reducer func(model.OrderDraft) model.OrderDraft

// Listener receives the draft snapshot after every update.
type Listener func(model.OrderDraft)

// PromoResult is the outcome of entering a promo code.
type PromoResult struct {
	Code            string
	Error           *string
	DiscountApplied bool
}

// Session owns a single order draft. State is replaced, never mutated in
// place, and the total is recomputed on every update.
type Session struct {
	id        string
	mu        sync.Mutex
	state     model.OrderDraft
	prices    model.ServicePrices
	promos    PromotionLookup
	listeners map[int]Listener
	nextSub   int
	closed    bool
}

// NewSession creates a fresh draft with every catalog service unselected.
func NewSession(id string, prices model.ServicePrices, promos PromotionLookup) *Session {
	services := make(map[model.ServiceID]bool, len(prices))
	for sid := range prices {
		services[sid] = false
	}
	return &Session{
		id: id,
		state: model.OrderDraft{
			ID:               id,
			SelectedServices: services,
			Total:            decimal.Zero,
		},
		prices:    prices,
		promos:    promos,
		listeners: make(map[int]Listener),
	}
}

// ID returns the draft identifier.
func (s *Session) ID() string {
	return s.id
}

// Snapshot returns an immutable copy of the current draft.
func (s *Session) Snapshot() model.OrderDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Alive reports whether the session still accepts updates.
func (s *Session) Alive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed
}

// Close releases the session; later updates fail with ErrDraftClosed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.listeners = make(map[int]Listener)
}

// Subscribe registers l and returns a function removing it.
func (s *Session) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Apply runs r against a copy of the state, recomputes the total, stores the
// result and notifies subscribers.
func (s *Session) Apply(r Reducer) (model.OrderDraft, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return model.OrderDraft{}, domainErrors.ErrDraftClosed
	}
	next := r(s.state.Clone())
	next.Total = s.total(next)
	s.state = next
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(next.Clone())
	}
	return next.Clone(), nil
}

func (s *Session) total(d model.OrderDraft) model.Money {
	var matched *model.Promotion
	if p, ok := s.promos.Lookup(d.PromoCode); ok {
		matched = p
	}
	return pricing.ComputeTotal(d.SelectedServices, s.prices, matched, d.DiscountApplied)
}

// ToggleService marks a catalog service as selected or not.
func (s *Session) ToggleService(id model.ServiceID, selected bool) (model.OrderDraft, error) {
	if _, ok := s.prices[id]; !ok {
		return model.OrderDraft{}, domainErrors.ErrUnknownService
	}
	return s.Apply(func(d model.OrderDraft) model.OrderDraft {
		d.SelectedServices[id] = selected
		return d
	})
}

// SetAddress stores the pickup address as typed.
func (s *Session) SetAddress(address string) (model.OrderDraft, error) {
	return s.Apply(func(d model.OrderDraft) model.OrderDraft {
		d.Address = address
		return d
	})
}

// SetSchedule stores the pickup date and time.
func (s *Session) SetSchedule(at time.Time) (model.OrderDraft, error) {
	return s.Apply(func(d model.OrderDraft) model.OrderDraft {
		d.ScheduledAt = &at
		return d
	})
}

// AddImage appends ref unless it is already selected.
func (s *Session) AddImage(ref string) (model.OrderDraft, error) {
	return s.Apply(func(d model.OrderDraft) model.OrderDraft {
		for _, existing := range d.SelectedImages {
			if existing == ref {
				return d
			}
		}
		d.SelectedImages = append(d.SelectedImages, ref)
		return d
	})
}

// RemoveImage drops ref from the selection.
func (s *Session) RemoveImage(ref string) (model.OrderDraft, error) {
	return s.Apply(func(d model.OrderDraft) model.OrderDraft {
		kept := d.SelectedImages[:0]
		for _, existing := range d.SelectedImages {
			if existing != ref {
				kept = append(kept, existing)
			}
		}
		d.SelectedImages = kept
		return d
	})
}

// SetPromoCode validates raw against the promotions snapshot. Blank input
// clears the code. The result is not re-validated when the snapshot changes.
func (s *Session) SetPromoCode(raw string) (PromoResult, model.OrderDraft, error) {
	trimmed := strings.TrimSpace(raw)
	var result PromoResult
	if trimmed != "" {
		if p, ok := s.promos.Lookup(trimmed); ok {
			result = PromoResult{Code: p.Code, DiscountApplied: true}
		} else {
			msg := InvalidPromoMessage
			result = PromoResult{Code: trimmed, Error: &msg}
		}
	}

	d, err := s.Apply(func(d model.OrderDraft) model.OrderDraft {
		d.PromoCode = result.Code
		d.PromoError = result.Error
		d.DiscountApplied = result.DiscountApplied
		return d
	})
	return result, d, err
}

// ClearPromoCode resets code, error and discount flag.
func (s *Session) ClearPromoCode() (model.OrderDraft, error) {
	_, d, err := s.SetPromoCode("")
	return d, err
}

// Recompute refreshes the derived total against the current promotions
// snapshot without touching the discount flag.
func (s *Session) Recompute() (model.OrderDraft, error) {
	return s.Apply(func(d model.OrderDraft) model.OrderDraft { return d })
}
