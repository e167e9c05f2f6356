package registry

import (
	"context"
	"strings"
	"sync"
)

// InMemoryStore keeps registry rows in memory. Used by tests and by
// deployments without a database configured.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry // keyed by RIZIV number
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{entries: make(map[string]*Entry)}
}

// Seed loads entries, replacing rows with the same RIZIV number.
func (s *InMemoryStore) Seed(entries ...*Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		copied := *e
		s.entries[e.RizivNumber] = &copied
	}
}

func (s *InMemoryStore) LookupByRiziv(_ context.Context, rizivNumber string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[rizivNumber]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *entry
	return &copied, nil
}

func (s *InMemoryStore) SearchByLastName(_ context.Context, lastName string) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToUpper(lastName)
	var matches []*Entry
	for _, entry := range s.entries {
		if strings.Contains(strings.ToUpper(entry.LastName), needle) {
			copied := *entry
			matches = append(matches, &copied)
		}
	}
	return matches, nil
}

func (s *InMemoryStore) SearchByLastNameAndCity(_ context.Context, lastName, city string) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	nameNeedle := strings.ToUpper(lastName)
	cityNeedle := strings.ToUpper(city)
	var matches []*Entry
	for _, entry := range s.entries {
		if strings.Contains(strings.ToUpper(entry.LastName), nameNeedle) &&
			strings.Contains(strings.ToUpper(entry.City), cityNeedle) {
			copied := *entry
			matches = append(matches, &copied)
		}
	}
	return matches, nil
}
