package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // postgres driver

	"movehistory/internal/history/models"
	"movehistory/pkg/platform/sentinel"
)

// Postgres persists audit history rows in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed history store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// FetchMoveHistory pages the stored rows for a move, newest action first.
// A locator with no rows at all maps to sentinel.ErrNotFound; an empty page
// past the end of a known move's history is not an error.
func (p *Postgres) FetchMoveHistory(ctx context.Context, locator string, page, perPage int64) ([]models.AuditHistory, int64, error) {
	var total int64
	err := p.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM audit_history WHERE move_locator = $1`, locator,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count move history: %w", err)
	}
	if total == 0 {
		return nil, 0, fmt.Errorf("move %s: %w", locator, sentinel.ErrNotFound)
	}

	query := `
		SELECT id, move_locator, object_id, action, event_name, table_name,
		       COALESCE(old_data, '{}'), COALESCE(changed_data, '{}'), COALESCE(context, '[]'),
		       COALESCE(session_user_first_name, ''), COALESCE(session_user_last_name, ''),
		       action_tstamp
		FROM audit_history
		WHERE move_locator = $1
		ORDER BY action_tstamp DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := p.db.QueryContext(ctx, query, locator, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch move history: %w", err)
	}
	defer rows.Close()

	var out []models.AuditHistory
	for rows.Next() {
		var row models.AuditHistory
		if err := rows.Scan(
			&row.ID, &row.MoveLocator, &row.ObjectID, &row.Action, &row.EventName, &row.TableName,
			&row.OldData, &row.ChangedData, &row.Context,
			&row.SessionUserFirstName, &row.SessionUserLastName,
			&row.ActionTstamp,
		); err != nil {
			return nil, 0, fmt.Errorf("scan move history row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate move history rows: %w", err)
	}
	return out, total, nil
}

// Append stores one ingested audit row. Replayed messages upsert by row ID so
// at-least-once delivery from the broker stays idempotent.
func (p *Postgres) Append(ctx context.Context, row models.AuditHistory) error {
	query := `
		INSERT INTO audit_history (
			id, move_locator, object_id, action, event_name, table_name,
			old_data, changed_data, context,
			session_user_first_name, session_user_last_name, action_tstamp
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := p.db.ExecContext(ctx, query,
		row.ID, row.MoveLocator, row.ObjectID, row.Action, row.EventName, row.TableName,
		nullableJSON(row.OldData), nullableJSON(row.ChangedData), nullableJSON(row.Context),
		nullableText(row.SessionUserFirstName), nullableText(row.SessionUserLastName),
		row.ActionTstamp,
	)
	if err != nil {
		return fmt.Errorf("append audit history: %w", err)
	}
	return nil
}

func nullableJSON(data []byte) any {
	if len(data) == 0 {
		return nil
	}
	return data
}

func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}
