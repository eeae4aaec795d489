// README: Context store interface plus the in-memory implementation.
package usercontext

import (
	"context"
	"sync"
)

// Store loads and saves per-user context. Get never fails on a missing
// user: it hands back a fresh empty context instead.
type Store interface {
	Get(ctx context.Context, userID string) (*UserContext, error)
	Put(ctx context.Context, uc *UserContext) error
	Close() error
}

type MemoryStore struct {
	mu       sync.RWMutex
	contexts map[string]*UserContext
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{contexts: map[string]*UserContext{}}
}

func (s *MemoryStore) Get(_ context.Context, userID string) (*UserContext, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if uc, ok := s.contexts[userID]; ok {
		return uc.clone(), nil
	}
	return New(userID), nil
}

func (s *MemoryStore) Put(_ context.Context, uc *UserContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contexts[uc.UserID] = uc.clone()
	return nil
}

func (s *MemoryStore) Close() error { return nil }
