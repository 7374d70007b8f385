// Package roster contiene el service del roster de la división MENA.
package roster

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dropDatabas3/menahq/internal/cache"
	"github.com/dropDatabas3/menahq/internal/domain/types"
	dto "github.com/dropDatabas3/menahq/internal/http/dto/roster"
	httperrors "github.com/dropDatabas3/menahq/internal/http/errors"
	"github.com/dropDatabas3/menahq/internal/observability/logger"
	"github.com/dropDatabas3/menahq/internal/store/core"
)

const (
	HomeDivisionID  = "MENA"
	SuspendedRating = "SUS"

	cacheKeyHome = "roster:home"
)

const (
	CodeDBGetPool   = "database_error_get_pool"
	CodeDBGetConn   = "database_error_get_conn"
	CodeDBListUsers = "database_error_list_users"
)

// RosterService lista el roster; extended=false aplica la redacción de apellidos.
type RosterService interface {
	Home(ctx context.Context, extended bool) (*dto.HomeRoster, error)
}

type Deps struct {
	Pool     core.PoolProvider
	Cache    cache.Cache
	CacheTTL time.Duration
}

type rosterService struct {
	d Deps
}

func NewRosterService(d Deps) RosterService {
	return &rosterService{d: d}
}

func (s *rosterService) Home(ctx context.Context, extended bool) (*dto.HomeRoster, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("roster"), logger.Op("Home"))

	rows, err := s.rows(ctx)
	if err != nil {
		return nil, err
	}

	out := &dto.HomeRoster{Users: make([]dto.HomeUser, 0, len(rows))}
	for _, r := range rows {
		if !extended {
			r.NameLast = Redact(r.CID)
		}
		out.Users = append(out.Users, r)
	}
	log.Debug("roster listed", logger.Count(len(out.Users)), logger.Bool("extended", extended))
	return out, nil
}

// rows devuelve las filas sin redactar, desde cache si están vigentes.
func (s *rosterService) rows(ctx context.Context) ([]dto.HomeUser, error) {
	if s.d.Cache != nil {
		if b, ok := s.d.Cache.Get(cacheKeyHome); ok {
			var cached []dto.HomeUser
			if err := json.Unmarshal(b, &cached); err == nil {
				return cached, nil
			}
			s.d.Cache.Delete(cacheKeyHome)
		}
	}

	pool, err := s.d.Pool.Pool(ctx)
	if err != nil {
		return nil, dbError(CodeDBGetPool, err)
	}
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, dbError(CodeDBGetConn, err)
	}
	defer conn.Release()

	users, err := conn.Users().ListRoster(ctx, core.RosterFilter{
		DivisionID:    HomeDivisionID,
		ExcludeRating: SuspendedRating,
	})
	if err != nil {
		return nil, dbError(CodeDBListUsers, err)
	}

	rows := make([]dto.HomeUser, 0, len(users))
	for _, u := range users {
		rows = append(rows, toHomeUser(u))
	}
	if s.d.Cache != nil {
		if b, err := json.Marshal(rows); err == nil {
			s.d.Cache.Set(cacheKeyHome, b, s.d.CacheTTL)
		}
	}
	return rows, nil
}

// Redact es el apellido visible para quien no tiene el permiso extendido.
func Redact(cid string) string {
	return "(" + cid + ")"
}

func toHomeUser(u types.User) dto.HomeUser {
	return dto.HomeUser{
		CID:       u.ID,
		NameFirst: u.NameFirst,
		NameLast:  u.NameLast,
		Role:      u.Role,
		Rating:    u.ControllerRatingShort,
		Vacc:      u.Vacc,
	}
}

func dbError(code string, err error) error {
	return httperrors.Wrap(err, http.StatusInternalServerError, code, "database error: "+err.Error())
}
