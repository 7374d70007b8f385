package pg

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/menahq/internal/domain/types"
	"github.com/dropDatabas3/menahq/internal/store/core"
)

type auditRepo struct{ q querier }

// Append es un INSERT plano: los ids son nuevos en cada llamada y una entrada
// existente nunca se reescribe.
func (r *auditRepo) Append(ctx context.Context, e *types.AuditLogEntry) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO audit_log (id, timestamp, actor, item, before, after, message)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.Timestamp, e.Actor, e.Item, nullableJSON(e.Before), nullableJSON(e.After), e.Message,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrConflict
		}
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (r *auditRepo) ListByItem(ctx context.Context, item string) ([]types.AuditLogEntry, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, timestamp, actor, item, before, after, message
		 FROM audit_log WHERE item = $1 ORDER BY timestamp, id`, item)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var out []types.AuditLogEntry
	for rows.Next() {
		var (
			e             types.AuditLogEntry
			before, after []byte
		)
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Actor, &e.Item, &before, &after, &e.Message); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		if len(before) > 0 {
			e.Before = before
		}
		if len(after) > 0 {
			e.After = after
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
