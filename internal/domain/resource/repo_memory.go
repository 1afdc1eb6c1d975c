package resource

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo keeps resources in insertion order. It backs STORE_DRIVER=memory
// and the tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	items map[Kind][]*Resource
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: make(map[Kind][]*Resource)}
}

func (m *MemoryRepo) List(_ context.Context, kind Kind) ([]*Resource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Resource, 0, len(m.items[kind]))
	for _, r := range m.items[kind] {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MemoryRepo) Replace(_ context.Context, kind Kind, items []*Resource) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	replaced := make(map[string]bool, len(items))
	for _, r := range items {
		replaced[r.ID] = true
	}
	kept := m.items[kind][:0:0]
	for _, r := range m.items[kind] {
		if !replaced[r.ID] {
			kept = append(kept, r)
		}
	}
	now := time.Now()
	for _, r := range items {
		r.Kind = kind
		r.CreatedAt = now
		r.UpdatedAt = now
		cp := *r
		kept = append(kept, &cp)
	}
	m.items[kind] = kept
	return nil
}
