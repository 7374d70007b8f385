package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dropDatabas3/menahq/internal/domain/types"
	"github.com/dropDatabas3/menahq/internal/store/core"
)

const userColumns = `id, name_first, name_last, name_full,
	controller_rating_id, controller_rating_short, controller_rating_long,
	pilot_rating_id, pilot_rating_short, pilot_rating_long,
	region_id, region_name, division_id, division_name, subdivision_id, subdivision_name,
	role, vacc`

type userRepo struct{ q querier }

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*types.User, error) {
	var u types.User
	err := row.Scan(
		&u.ID, &u.NameFirst, &u.NameLast, &u.NameFull,
		&u.ControllerRatingID, &u.ControllerRatingShort, &u.ControllerRatingLong,
		&u.PilotRatingID, &u.PilotRatingShort, &u.PilotRatingLong,
		&u.RegionID, &u.RegionName, &u.DivisionID, &u.DivisionName, &u.SubdivisionID, &u.SubdivisionName,
		&u.Role, &u.Vacc,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Find(ctx context.Context, id string) (*types.User, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}

// Create inserta sin ON CONFLICT: una fila existente nunca se pisa.
func (r *userRepo) Create(ctx context.Context, u *types.User) error {
	_, err := r.q.ExecContext(ctx, `INSERT INTO users (`+userColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`,
		u.ID, u.NameFirst, u.NameLast, u.NameFull,
		u.ControllerRatingID, u.ControllerRatingShort, u.ControllerRatingLong,
		u.PilotRatingID, u.PilotRatingShort, u.PilotRatingLong,
		u.RegionID, u.RegionName, u.DivisionID, u.DivisionName, u.SubdivisionID, u.SubdivisionName,
		u.Role, u.Vacc,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepo) ListRoster(ctx context.Context, f core.RosterFilter) ([]types.User, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE division_id = $1 AND controller_rating_short <> $2 ORDER BY id`,
		f.DivisionID, f.ExcludeRating,
	)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	defer rows.Close()

	var out []types.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan roster row: %w", err)
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}
