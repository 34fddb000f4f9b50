// internal/store/memory.go
//
// In-memory KV used by tests and by the terminal host when no database path
// is given. State is lost when the process exits.

package store

import (
	"context"
	"slices"
	"strings"
	"sync"
)

// Memory is a map-backed KV. Safe for concurrent use.
type Memory struct {
	mu   sync.RWMutex                 // guards data
	data map[string]map[string][]byte // owner -> key -> value
}

// NewMemory constructs an empty Memory.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string][]byte)}
}

// Get returns a copy of the stored value.
func (m *Memory) Get(_ context.Context, owner, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.data[owner][key]; ok {
		return slices.Clone(v), nil
	}
	return nil, ErrNotFound
}

// Put stores a copy of value.
func (m *Memory) Put(_ context.Context, owner, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	byKey, ok := m.data[owner]
	if !ok {
		byKey = make(map[string][]byte)
		m.data[owner] = byKey
	}
	byKey[key] = slices.Clone(value)
	return nil
}

func (m *Memory) Keys(_ context.Context, owner, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []string{}
	for k := range m.data[owner] {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out, nil
}
