package auth

import (
	"context"
	"sync"
)

type memoryRegistry struct {
	mu      sync.RWMutex
	revoked map[string]struct{}
}

// NewMemoryRegistry builds an in-memory revocation registry for testing and
// database-less development. Entries live for the process lifetime; the
// bounded validity window of the tokens themselves keeps this acceptable.
func NewMemoryRegistry() RevocationRegistry {
	return &memoryRegistry{revoked: make(map[string]struct{})}
}

func (r *memoryRegistry) Revoke(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[token] = struct{}{}
	return nil
}

func (r *memoryRegistry) IsRevoked(_ context.Context, token string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.revoked[token]
	return ok, nil
}
