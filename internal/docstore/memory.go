package docstore

import (
	"context"
	"sync"
)

// MemoryStore keeps documents in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

var _ Handle = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

// Fetch implements Store.
func (m *MemoryStore) Fetch(_ context.Context, userID string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[Key(userID)]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), doc...), nil
}

// Write implements Store.
func (m *MemoryStore) Write(_ context.Context, userID string, doc []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.docs[Key(userID)] = append([]byte(nil), doc...)
	return nil
}

// Close implements Handle.
func (m *MemoryStore) Close() error { return nil }
