package auth

import "sync"

// TokenHolder keeps the bearer token of the current session in memory.
type TokenHolder struct {
	mu    sync.RWMutex
	token string
}

// NewTokenHolder creates an empty holder.
func NewTokenHolder() *TokenHolder {
	return &TokenHolder{}
}

// Token returns current token or empty string when signed out.
func (h *TokenHolder) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Set replaces current token.
func (h *TokenHolder) Set(token string) {
	h.mu.Lock()
	h.token = token
	h.mu.Unlock()
}

// Clear drops current token.
func (h *TokenHolder) Clear() {
	h.Set("")
}

// Authenticated reports whether a token is present.
func (h *TokenHolder) Authenticated() bool {
	return h.Token() != ""
}
