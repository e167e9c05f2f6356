package fraudcase

import (
	"context"
	"sync"
)

// InMemoryStore keeps cases in memory for tests and database-less runs.
type InMemoryStore struct {
	mu    sync.RWMutex
	cases []*Case
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Insert(_ context.Context, c *Case) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *c
	s.cases = append(s.cases, &copied)
	return nil
}

// All returns a snapshot of the stored cases in insertion order.
func (s *InMemoryStore) All() []*Case {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Case, 0, len(s.cases))
	for _, c := range s.cases {
		copied := *c
		out = append(out, &copied)
	}
	return out
}
