package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dropDatabas3/menahq/internal/domain/types"
	"github.com/dropDatabas3/menahq/internal/store/core"
)

type roleRepo struct{ q querier }

func (r *roleRepo) Find(ctx context.Context, id string) (*types.Role, error) {
	var (
		role  types.Role
		perms []byte
	)
	err := r.q.QueryRowContext(ctx, `SELECT id, name, permissions FROM roles WHERE id = $1`, id).
		Scan(&role.ID, &role.Name, &perms)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("select role: %w", err)
	}
	if err := decodePerms(perms, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepo) List(ctx context.Context) ([]types.Role, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name, permissions FROM roles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var out []types.Role
	for rows.Next() {
		var (
			role  types.Role
			perms []byte
		)
		if err := rows.Scan(&role.ID, &role.Name, &perms); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		if err := decodePerms(perms, &role); err != nil {
			return nil, err
		}
		out = append(out, role)
	}
	return out, rows.Err()
}

func (r *roleRepo) Upsert(ctx context.Context, role *types.Role) error {
	perms := role.Permissions
	if perms == nil {
		perms = []string{}
	}
	raw, err := json.Marshal(perms)
	if err != nil {
		return fmt.Errorf("encode permissions: %w", err)
	}
	_, err = r.q.ExecContext(ctx,
		`INSERT INTO roles (id, name, permissions) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, permissions = EXCLUDED.permissions`,
		role.ID, role.Name, string(raw),
	)
	if err != nil {
		return fmt.Errorf("upsert role: %w", err)
	}
	return nil
}

func decodePerms(raw []byte, role *types.Role) error {
	role.Permissions = []string{}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, &role.Permissions); err != nil {
		return fmt.Errorf("decode permissions for role %s: %w", role.ID, err)
	}
	return nil
}
