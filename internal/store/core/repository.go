package core

import (
	"context"

	"github.com/dropDatabas3/menahq/internal/domain/types"
)

// PoolProvider entrega el pool de conexiones, abriéndolo si hace falta.
type PoolProvider interface {
	Pool(ctx context.Context) (Pool, error)
}

// Pool entrega conexiones. Cada request toma una y la libera en todos los caminos.
type Pool interface {
	Acquire(ctx context.Context) (Conn, error)
	Ping(ctx context.Context) error
}

// Conn es una conexión tomada del pool con sus repositorios.
type Conn interface {
	Users() UserRepository
	Roles() RoleRepository
	AuditLog() AuditRepository
	Release()
}

// RosterFilter selecciona los usuarios listados en el roster.
type RosterFilter struct {
	DivisionID    string
	ExcludeRating string
}

// UserRepository: registro local de usuarios, indexado por CID.
type UserRepository interface {
	// Find retorna ErrNotFound si el usuario no existe.
	Find(ctx context.Context, id string) (*types.User, error)
	// Create inserta una fila nueva; ErrConflict si el id ya existe. Nunca sobrescribe.
	Create(ctx context.Context, u *types.User) error
	ListRoster(ctx context.Context, f RosterFilter) ([]types.User, error)
}

// RoleRepository resuelve roles. Los roles se siembran fuera del flujo de login.
type RoleRepository interface {
	// Find retorna ErrNotFound si el rol no existe.
	Find(ctx context.Context, id string) (*types.Role, error)
	List(ctx context.Context) ([]types.Role, error)
	// Upsert solo lo usa el CLI de siembra.
	Upsert(ctx context.Context, r *types.Role) error
}

// AuditRepository es append-only.
type AuditRepository interface {
	// Append inserta la entrada; ErrConflict si el id ya existe.
	Append(ctx context.Context, e *types.AuditLogEntry) error
	ListByItem(ctx context.Context, item string) ([]types.AuditLogEntry, error)
}
