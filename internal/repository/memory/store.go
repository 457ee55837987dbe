package memory

import (
	"context"
	"sync"

	"github.com/Guyuepp/blog-client/domain"
)

// Store is a process-local KV store. State does not survive a restart.
type Store struct {
	mu   sync.RWMutex
	data map[string]string
}

var _ domain.KVStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{data: make(map[string]string)}
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return v, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
