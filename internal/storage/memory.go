package storage

import (
	"context"
	"sync"

	"sentimentform/internal/domain"
)

const DefaultMemoryCapacity = 100

// Memory keeps the most recent analyses in process. Oldest entries are
// dropped once capacity is reached.
type Memory struct {
	mu       sync.RWMutex
	items    []domain.Analysis
	capacity int
}

func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &Memory{capacity: capacity}
}

func (m *Memory) Save(_ context.Context, a domain.Analysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = append(m.items, a)
	if over := len(m.items) - m.capacity; over > 0 {
		m.items = append(m.items[:0:0], m.items[over:]...)
	}
	return nil
}

func (m *Memory) FindByID(_ context.Context, id string) (*domain.Analysis, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.items {
		if m.items[i].ID == id {
			a := m.items[i]
			return &a, nil
		}
	}
	return nil, nil
}

// FindRecent returns up to limit analyses, newest first.
func (m *Memory) FindRecent(_ context.Context, limit int) ([]domain.Analysis, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit <= 0 || limit > len(m.items) {
		limit = len(m.items)
	}

	out := make([]domain.Analysis, 0, limit)
	for i := len(m.items) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.items[i])
	}
	return out, nil
}

func (m *Memory) Close() error {
	return nil
}
