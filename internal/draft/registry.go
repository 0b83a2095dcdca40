package draft

import (
	"sync"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/cleanorder/internal/domain/errors"
	"github.com/polkiloo/cleanorder/internal/domain/model"
)

// Registry tracks open order-creation sessions.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	prices   model.ServicePrices
	promos   PromotionLookup
}

// NewRegistry constructs an empty registry.
func NewRegistry(prices model.ServicePrices, promos PromotionLookup) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		prices:   prices,
		promos:   promos,
	}
}

// Create opens a new session with a random identifier.
func (r *Registry) Create() *Session {
	s := NewSession(uuid.NewString(), r.prices, r.promos)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID()] = s
	return s
}

// Get returns an open session.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return s, nil
}

// Discard closes and forgets a session.
func (r *Registry) Discard(id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return domainErrors.ErrNotFound
	}
	s.Close()
	return nil
}

// RecomputeAll refreshes totals of every open session.
func (r *Registry) RecomputeAll() {
	r.mu.RLock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.RUnlock()

	for _, s := range sessions {
		_, _ = s.Recompute()
	}
}
