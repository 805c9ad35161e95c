package ledger

import (
	"context"
	"sync"

	"regnet/pkg/platform/sentinel"
)

// InMemory is a versioned map. Commit validates and applies under one lock,
// which makes every invocation serializable.
type InMemory struct {
	mu      sync.RWMutex
	entries map[string]Versioned
}

func NewInMemory() *InMemory {
	return &InMemory{entries: make(map[string]Versioned)}
}

func (m *InMemory) Get(_ context.Context, key string) (Versioned, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	if !ok {
		return Versioned{}, sentinel.ErrNotFound
	}
	return Versioned{Value: cloneBytes(v.Value), Version: v.Version}, nil
}

func (m *InMemory) GetMany(_ context.Context, keys []string) (map[string]Versioned, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]Versioned, len(keys))
	for _, key := range keys {
		if v, ok := m.entries[key]; ok {
			out[key] = Versioned{Value: cloneBytes(v.Value), Version: v.Version}
		}
	}
	return out, nil
}

func (m *InMemory) Commit(ctx context.Context, set WriteSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, version := range set.Reads {
		if m.entries[key].Version != version {
			return sentinel.ErrConflict
		}
	}
	for _, w := range set.Writes {
		current := m.entries[w.Key]
		m.entries[w.Key] = Versioned{Value: cloneBytes(w.Value), Version: current.Version + 1}
	}
	return nil
}

func (m *InMemory) Ping(context.Context) error {
	return nil
}
