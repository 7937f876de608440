// Package memory provides a process-local KeyValue implementation used by
// tests and by deployments that do not need durable state.
package memory

import (
	"context"
	"sync"

	"github.com/example/campus-booking/internal/persistence"
)

// Store keeps saved values in a map guarded by an RWMutex.
type Store struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{values: make(map[string][]byte)}
}

// Save records a copy of value under key.
func (s *Store) Save(ctx context.Context, key string, value []byte) error {
	buf := make([]byte, len(value))
	copy(buf, value)

	s.mu.Lock()
	s.values[key] = buf
	s.mu.Unlock()
	return nil
}

// Load returns a copy of the value last saved under key.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	value, ok := s.values[key]
	s.mu.RUnlock()

	if !ok {
		return nil, persistence.ErrNotFound
	}

	buf := make([]byte, len(value))
	copy(buf, value)
	return buf, nil
}
