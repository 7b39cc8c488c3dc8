package watchlist

import (
	"context"
	"strings"
	"sync"
)

// MemStore is the in-process fallback used when no Redis URL is configured.
type MemStore struct {
	mu sync.RWMutex
	m  map[string]map[string]string
}

func NewMemStore() *MemStore {
	return &MemStore{m: make(map[string]map[string]string)}
}

func normEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *MemStore) LoadMembership(ctx context.Context, email string) (map[string]string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src, ok := s.m[normEmail(email)]
	if !ok {
		return nil, false, nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out, true, nil
}

func (s *MemStore) SaveMembership(ctx context.Context, email string, byTitle map[string]string) error {
	cp := make(map[string]string, len(byTitle))
	for k, v := range byTitle {
		cp[k] = v
	}
	s.mu.Lock()
	s.m[normEmail(email)] = cp
	s.mu.Unlock()
	return nil
}

func (s *MemStore) DropMembership(ctx context.Context, email string) error {
	s.mu.Lock()
	delete(s.m, normEmail(email))
	s.mu.Unlock()
	return nil
}
