package persist

import "sync"

// MemoryStore is an in-memory store for testing.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	doc    Document
	saved  bool
	saves  int
	closed bool
}

// NewMemoryStore creates a new, empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWith creates an in-memory store that already holds doc.
func NewMemoryStoreWith(doc Document) *MemoryStore {
	return &MemoryStore{doc: doc.Clone(), saved: true}
}

// Name implements Store.
func (m *MemoryStore) Name() string {
	return BackendMemory
}

// Load implements Store.
func (m *MemoryStore) Load() (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Document{}, ErrStoreClosed
	}
	if !m.saved {
		return Document{}, ErrNotFound
	}
	// Return a copy to prevent modification
	return m.doc.Clone(), nil
}

// Save implements Store.
func (m *MemoryStore) Save(doc Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	// Copy to avoid retaining caller's slice
	m.doc = doc.Clone()
	m.saved = true
	m.saves++
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.doc = Document{}
	return nil
}

// Saves returns how many times Save succeeded.
// Useful for testing.
func (m *MemoryStore) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}
