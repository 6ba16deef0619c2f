// Package store persists and pages audit history rows per move.
package store

import (
	"context"

	"movehistory/internal/history/models"
)

// Store is the persistence boundary for audit history rows. FetchMoveHistory
// pages rows newest-first; Append is used by the ingest path. Implementations
// return sentinel.ErrNotFound for a locator with no recorded history.
type Store interface {
	FetchMoveHistory(ctx context.Context, locator string, page, perPage int64) ([]models.AuditHistory, int64, error)
	Append(ctx context.Context, row models.AuditHistory) error
}
