package memory

import (
	"context"
	"sync"
)

// KV is an in-memory implementation of storage.KV. Contents are lost when
// the process exits.
type KV struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewKV returns a store preloaded with initial (which may be nil).
func NewKV(initial map[string]string) *KV {
	values := make(map[string]string, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &KV{values: values}
}

func (s *KV) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *KV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Raw returns the stored value for key, mainly for tests.
func (s *KV) Raw(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}
