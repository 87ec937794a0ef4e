package store

import (
	"context"
	"sync"

	"github.com/mnstudio/quote-studio/internal/ports"
)

// Memory is a process-local key-value store. It backs the `memory` driver
// and the test suites; nothing written to it survives a restart.
type Memory struct {
	mu     sync.RWMutex
	values map[ports.StoreKey]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[ports.StoreKey]string)}
}

// Get retrieves the value stored under key.
func (m *Memory) Get(_ context.Context, key ports.StoreKey) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]

	return value, ok, nil
}

// Set stores value under key.
func (m *Memory) Set(_ context.Context, key ports.StoreKey, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value

	return nil
}

// Delete removes the value stored under key.
func (m *Memory) Delete(_ context.Context, key ports.StoreKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)

	return nil
}

// Name implements ports.HealthChecker.
func (m *Memory) Name() string {
	return "memory-store"
}

// Check implements ports.HealthChecker.
func (m *Memory) Check(_ context.Context) error {
	return nil
}
