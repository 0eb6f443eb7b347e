// Package snapshot persists full cart snapshots keyed by the shopper's cart
// token. Every cart mutation rewrites the whole snapshot (write-through); the
// store is an injected dependency so tests can run against the in-memory
// implementation.
package snapshot

import (
	"context"
	"encoding/json"
	"sync"

	"timeless_backend/internal/cart/domain"
)

// Store persists cart snapshots. Load reports found=false for a missing
// snapshot; a corrupt snapshot surfaces as an error so callers can degrade to
// an empty cart.
type Store interface {
	Load(ctx context.Context, token string) (domain.Cart, bool, error)
	Save(ctx context.Context, token string, c domain.Cart) error
	Delete(ctx context.Context, token string) error
}

// Memory is an in-process Store used in tests and development without Redis.
// Snapshots are stored as their JSON encoding so a load exercises the same
// round-trip as the Redis store.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory snapshot store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

var _ Store = (*Memory)(nil)

// Load retrieves and decodes the snapshot for the token.
func (m *Memory) Load(_ context.Context, token string) (domain.Cart, bool, error) {
	m.mu.RLock()
	raw, ok := m.data[token]
	m.mu.RUnlock()
	if !ok {
		return domain.Cart{}, false, nil
	}

	var c domain.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return domain.Cart{}, false, err
	}
	return c, true, nil
}

// Save writes the full snapshot for the token.
func (m *Memory) Save(_ context.Context, token string, c domain.Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.data[token] = raw
	m.mu.Unlock()
	return nil
}

// Delete drops the snapshot for the token.
func (m *Memory) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	delete(m.data, token)
	m.mu.Unlock()
	return nil
}

// Corrupt overwrites the stored snapshot with invalid JSON. Test hook for the
// degrade-to-empty path.
func (m *Memory) Corrupt(token string) {
	m.mu.Lock()
	m.data[token] = []byte("{not json")
	m.mu.Unlock()
}
