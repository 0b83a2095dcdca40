package promotion

import (
	"strings"
	"sync"
	"time"

	"github.com/polkiloo/cleanorder/internal/domain/model"
)

// Cache holds the most recently fetched promotions snapshot.
type Cache struct {
	mu        sync.RWMutex
	items     []model.Promotion
	fetchedAt time.Time
}

// NewCache constructs an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// Replace supersedes the whole snapshot.
func (c *Cache) Replace(items []model.Promotion, fetchedAt time.Time) {
	snapshot := append([]model.Promotion(nil), items...)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = snapshot
	c.fetchedAt = fetchedAt
}

// Lookup returns the first active promotion whose code equals code
// case-insensitively. The cache does not enforce code uniqueness.
func (c *Cache) Lookup(code string) (*model.Promotion, bool) {
	if code == "" {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.items {
		p := c.items[i]
		if p.Active && strings.EqualFold(p.Code, code) {
			return &p, true
		}
	}
	return nil, false
}

// Active returns active promotions in server order.
func (c *Cache) Active() []model.Promotion {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Promotion, 0, len(c.items))
	for _, p := range c.items {
		if p.Active {
			out = append(out, p)
		}
	}
	return out
}

// FetchedAt reports when the snapshot was last replaced.
func (c *Cache) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}
