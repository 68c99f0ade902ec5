package adgate

import (
	"context"
	"sync"
)

// Memory is a scriptable in-process Provider for tests and offline mode.
type Memory struct {
	mu sync.Mutex

	// ReadyState is returned by Ready.
	ReadyState bool
	// Earned and Err are returned by Present.
	Earned bool
	Err    error
	// Gate, when non-nil, blocks Present until closed, letting tests hold a
	// presentation in flight.
	Gate chan struct{}

	presentCalls int
}

// NewMemory creates a provider that is ready and always grants the unlock.
func NewMemory() *Memory {
	return &Memory{ReadyState: true, Earned: true}
}

// Ready reports the scripted readiness.
func (m *Memory) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ReadyState
}

// Present resolves with the scripted result, honoring context cancellation
// while gated.
func (m *Memory) Present(ctx context.Context) (bool, error) {
	m.mu.Lock()
	m.presentCalls++
	gate := m.Gate
	earned, err := m.Earned, m.Err
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	return earned, err
}

// PresentCalls returns how many times Present was invoked.
func (m *Memory) PresentCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.presentCalls
}
