package keyvault

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by a Store when no value exists for a key role.
var ErrNotFound = errors.New("key material not found")

// Store is the device-local secure key store: a process-durable key-value
// store keyed by key-role name, accessible only to the owning device/user
// context.
type Store interface {
	// Get returns the stored bytes for a role, or ErrNotFound.
	Get(name string) ([]byte, error)
	// Put stores bytes under a role name, replacing any previous value.
	Put(name string, data []byte) error
	// Clear removes all stored key material.
	Clear() error
}

// MemStore is an in-memory Store for tests and ephemeral sessions.
// Keys stored here do not survive the process.
type MemStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

// Get implements Store.
func (s *MemStore) Get(name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.data[name]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Put implements Store.
func (s *MemStore) Put(name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.data[name] = stored
	return nil
}

// Clear implements Store.
func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string][]byte)
	return nil
}
