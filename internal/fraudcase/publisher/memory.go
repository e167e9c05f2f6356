package publisher

import (
	"context"
	"sync"
)

// InMemoryPublisher captures events for tests and broker-less deployments.
type InMemoryPublisher struct {
	mu     sync.RWMutex
	events []CaseOpened
	err    error
}

func NewInMemory() *InMemoryPublisher {
	return &InMemoryPublisher{}
}

// FailWith makes subsequent publishes return err, for exercising the
// advisory path.
func (p *InMemoryPublisher) FailWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func (p *InMemoryPublisher) PublishCaseOpened(_ context.Context, event CaseOpened) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

// Events returns a snapshot of the published events.
func (p *InMemoryPublisher) Events() []CaseOpened {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]CaseOpened{}, p.events...)
}

func (p *InMemoryPublisher) Close() {}
