package store

import (
	"context"
	"sync"
)

// Memory is an in-process Store, used by tests and by the "memory" driver
type Memory struct {
	mu   sync.RWMutex
	data map[string]any
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{data: make(map[string]any)}
}

// Put stores an arbitrary raw value, bypassing integer typing
func (m *Memory) Put(prefix string, raw any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[prefix] = raw
}

func (m *Memory) GetLast(ctx context.Context, prefix string) (int, bool) {
	return lastFrom(m.Lookup(ctx, prefix))
}

func (m *Memory) SetLast(_ context.Context, prefix string, n int) error {
	m.Put(prefix, n)
	return nil
}

func (m *Memory) Lookup(_ context.Context, prefix string) (Value, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.data[prefix]
	return Value{Raw: raw}, ok
}

func (m *Memory) List(context.Context) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Document(m.data).records(), nil
}

func (m *Memory) Close() error { return nil }
