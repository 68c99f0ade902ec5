package entitlement

import (
	"context"
	"sync"

	"github.com/devicedash/devicedash/internal/shared/types"
)

// Memory is an in-process Resolver for tests and offline mode. State is
// set directly via Set; Refresh is a no-op success.
type Memory struct {
	mu      sync.RWMutex
	state   types.Entitlement
	subs    map[int]chan struct{}
	nextSub int
}

// NewMemory creates a resolver holding the given initial state.
func NewMemory(initial types.Entitlement) *Memory {
	return &Memory{
		state: initial,
		subs:  make(map[int]chan struct{}),
	}
}

// Current returns the entitlement snapshot.
func (m *Memory) Current() types.Entitlement {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Refresh is a no-op for the in-memory resolver.
func (m *Memory) Refresh(ctx context.Context) error {
	return nil
}

// Set replaces the entitlement state and notifies subscribers on change.
func (m *Memory) Set(state types.Entitlement) {
	m.mu.Lock()
	changed := m.state != state
	m.state = state
	m.mu.Unlock()

	if changed {
		m.notify()
	}
}

// Subscribe returns a change-signal channel plus a cancel func.
func (m *Memory) Subscribe() (<-chan struct{}, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++
	ch := make(chan struct{}, 1)
	m.subs[id] = ch

	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

func (m *Memory) notify() {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, ch := range m.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
