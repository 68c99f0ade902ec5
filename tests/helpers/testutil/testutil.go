// Package testutil provides testing utilities and helpers for engine tests.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/devicedash/devicedash/internal/shared/types"
)

// MockResolver is a mock implementation of entitlement.Resolver.
type MockResolver struct {
	mock.Mock
}

// Current mocks the Current method.
func (m *MockResolver) Current() types.Entitlement {
	args := m.Called()
	return args.Get(0).(types.Entitlement)
}

// Refresh mocks the Refresh method.
func (m *MockResolver) Refresh(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Subscribe mocks the Subscribe method.
func (m *MockResolver) Subscribe() (<-chan struct{}, func()) {
	args := m.Called()
	return args.Get(0).(chan struct{}), args.Get(1).(func())
}

// MockAdGate is a mock implementation of adgate.Provider.
type MockAdGate struct {
	mock.Mock
}

// Ready mocks the Ready method.
func (m *MockAdGate) Ready() bool {
	args := m.Called()
	return args.Bool(0)
}

// Present mocks the Present method.
func (m *MockAdGate) Present(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

// MockBlob is a mock implementation of storage.Blob.
type MockBlob struct {
	mock.Mock
}

// Read mocks the Read method.
func (m *MockBlob) Read(key string) ([]byte, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Write mocks the Write method.
func (m *MockBlob) Write(key string, data []byte) error {
	args := m.Called(key, data)
	return args.Error(0)
}

// NewMockResolver creates a mock resolver that reports the given state.
func NewMockResolver(t *testing.T, state types.Entitlement) *MockResolver {
	t.Helper()
	m := new(MockResolver)
	m.On("Current").Return(state)
	m.On("Refresh", mock.Anything).Return(nil)
	ch := make(chan struct{}, 1)
	m.On("Subscribe").Return(ch, func() {})
	return m
}
