package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"movehistory/internal/history/models"
	"movehistory/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded history store for unit tests and local
// development. Ordering and not-found semantics match the Postgres store.
type InMemory struct {
	mu   sync.RWMutex
	rows map[string][]models.AuditHistory // keyed by move locator
}

// NewInMemory constructs an empty in-memory history store.
func NewInMemory() *InMemory {
	return &InMemory{rows: make(map[string][]models.AuditHistory)}
}

// FetchMoveHistory pages the stored rows for a move, newest action first.
func (m *InMemory) FetchMoveHistory(_ context.Context, locator string, page, perPage int64) ([]models.AuditHistory, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows, ok := m.rows[locator]
	if !ok || len(rows) == 0 {
		return nil, 0, fmt.Errorf("move %s: %w", locator, sentinel.ErrNotFound)
	}

	sorted := make([]models.AuditHistory, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ActionTstamp.After(sorted[j].ActionTstamp)
	})

	total := int64(len(sorted))
	start := (page - 1) * perPage
	if start >= total {
		return nil, total, nil
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return sorted[start:end], total, nil
}

// Append stores one row, ignoring replays of an already stored row ID.
func (m *InMemory) Append(_ context.Context, row models.AuditHistory) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.rows[row.MoveLocator] {
		if existing.ID == row.ID {
			return nil
		}
	}
	m.rows[row.MoveLocator] = append(m.rows[row.MoveLocator], row)
	return nil
}
