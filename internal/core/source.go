package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/JonMunkholm/catalogadmin/internal/datatable"
)

// Source supplies the complete row collection of an entity.
// Each call returns a fresh snapshot; list views never page on the server.
type Source interface {
	Rows(ctx context.Context, entityKey string) ([]datatable.Record, error)
}

// MemorySource serves rows held in memory, seeded from the registry.
type MemorySource struct {
	mu   sync.RWMutex
	rows map[string][]datatable.Record
}

// NewMemorySource returns a source holding the seed rows of every
// registered entity that has a Seed function.
func NewMemorySource() *MemorySource {
	m := &MemorySource{rows: make(map[string][]datatable.Record)}
	for _, def := range All() {
		if def.Seed != nil {
			m.rows[def.Info.Key] = def.Seed()
		}
	}
	return m
}

// Rows returns a copy of the rows of entityKey.
// The records themselves are shared and must not be modified.
func (m *MemorySource) Rows(_ context.Context, entityKey string) ([]datatable.Record, error) {
	if _, ok := Get(entityKey); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, entityKey)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := m.rows[entityKey]
	out := make([]datatable.Record, len(rows))
	copy(out, rows)
	return out, nil
}

// Replace swaps the rows of entityKey for a new collection.
func (m *MemorySource) Replace(entityKey string, rows []datatable.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[entityKey] = rows
}
