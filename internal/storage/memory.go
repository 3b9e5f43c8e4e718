package storage

import (
	"context"
	"sync"

	"serverhub/internal/types"
)

// memoryStorage implements RecordSource over an in-memory slice
type memoryStorage struct {
	mu      sync.RWMutex
	records []types.ServerRecord
	closed  bool
}

// NewMemory creates an in-memory record source holding a copy of records
func NewMemory(records []types.ServerRecord) types.RecordSource {
	cp := make([]types.ServerRecord, len(records))
	copy(cp, records)
	return &memoryStorage{records: cp}
}

func (m *memoryStorage) List(ctx context.Context) ([]types.ServerRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, types.SourceError{Op: "list", Backend: "memory", Err: types.ErrStorageError}
	}

	// Return a copy to prevent external modifications
	out := make([]types.ServerRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *memoryStorage) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
