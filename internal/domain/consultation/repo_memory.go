package consultation

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo keeps consultations in insertion order.
type MemoryRepo struct {
	mu    sync.RWMutex
	items []*Consultation
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (m *MemoryRepo) List(_ context.Context, limit, offset int) ([]*Consultation, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sorted := m.copyAll()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Begin.Before(sorted[j].Begin)
	})
	total := len(sorted)
	if offset >= total {
		return []*Consultation{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return sorted[offset:end], total, nil
}

func (m *MemoryRepo) ListAffecting(_ context.Context, begin, end time.Time) ([]*Consultation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*Consultation
	for _, c := range m.copyAll() {
		if c.Affects(begin, end) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MemoryRepo) Replace(_ context.Context, items []*Consultation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	replaced := make(map[string]bool, len(items))
	for _, c := range items {
		replaced[c.ID] = true
	}
	kept := m.items[:0:0]
	for _, c := range m.items {
		if !replaced[c.ID] {
			kept = append(kept, c)
		}
	}
	now := time.Now()
	for _, c := range items {
		c.CreatedAt = now
		cp := *c
		kept = append(kept, &cp)
	}
	m.items = kept
	return nil
}

func (m *MemoryRepo) copyAll() []*Consultation {
	out := make([]*Consultation, len(m.items))
	for i, c := range m.items {
		cp := *c
		out[i] = &cp
	}
	return out
}
