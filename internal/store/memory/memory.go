// Package memory implementa core sobre mapas en memoria.
// Se usa en desarrollo (STORAGE_DRIVER=memory) y en tests de servicios.
package memory

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/dropDatabas3/menahq/internal/domain/types"
	"github.com/dropDatabas3/menahq/internal/store/core"
)

// Op identifica una operación a la que se le puede inyectar una falla.
type Op string

const (
	OpPool        Op = "pool"
	OpAcquire     Op = "acquire"
	OpFindUser    Op = "find_user"
	OpCreateUser  Op = "create_user"
	OpListRoster  Op = "list_roster"
	OpFindRole    Op = "find_role"
	OpAppendAudit Op = "append_audit"
)

type Store struct {
	mu    sync.RWMutex
	users map[string]types.User
	roles map[string]types.Role
	audit []types.AuditLogEntry

	failures map[Op]error
	// BeforeCreate corre antes de insertar un usuario, fuera del lock.
	// Los tests lo usan para simular un primer login concurrente.
	BeforeCreate func(u types.User)
	// FindHook corre antes de cada búsqueda de usuario con el ctx del caller.
	FindHook func(ctx context.Context, id string) error
	// AppendHook puede rechazar entradas puntuales del audit log.
	AppendHook func(e types.AuditLogEntry) error

	acquired atomic.Int64
	released atomic.Int64
}

var (
	_ core.PoolProvider = (*Store)(nil)
	_ core.Pool         = (*Store)(nil)
)

func New() *Store {
	return &Store{
		users:    map[string]types.User{},
		roles:    map[string]types.Role{},
		failures: map[Op]error{},
	}
}

// Fail hace que op retorne err hasta que se llame Fail(op, nil).
func (s *Store) Fail(op Op, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

func (s *Store) failure(op Op) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failures[op]
}

// Outstanding reporta conexiones tomadas y no liberadas.
func (s *Store) Outstanding() int64 { return s.acquired.Load() - s.released.Load() }

func (s *Store) Pool(context.Context) (core.Pool, error) {
	if err := s.failure(OpPool); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Ping(context.Context) error { return s.failure(OpPool) }

func (s *Store) Acquire(context.Context) (core.Conn, error) {
	if err := s.failure(OpAcquire); err != nil {
		return nil, err
	}
	s.acquired.Add(1)
	return &conn{s: s}, nil
}

// Users, Roles y AuditLog dan acceso sin conexión (CLI, seeds de tests).
func (s *Store) Users() core.UserRepository     { return userRepo{s} }
func (s *Store) Roles() core.RoleRepository     { return roleRepo{s} }
func (s *Store) AuditLog() core.AuditRepository { return auditRepo{s} }

type conn struct {
	s        *Store
	released atomic.Bool
}

func (c *conn) Users() core.UserRepository     { return userRepo{c.s} }
func (c *conn) Roles() core.RoleRepository     { return roleRepo{c.s} }
func (c *conn) AuditLog() core.AuditRepository { return auditRepo{c.s} }

func (c *conn) Release() {
	if c.released.CompareAndSwap(false, true) {
		c.s.released.Add(1)
	}
}

type userRepo struct{ s *Store }

func (r userRepo) Find(ctx context.Context, id string) (*types.User, error) {
	if err := r.s.failure(OpFindUser); err != nil {
		return nil, err
	}
	if r.s.FindHook != nil {
		if err := r.s.FindHook(ctx, id); err != nil {
			return nil, err
		}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &u, nil
}

func (r userRepo) Create(_ context.Context, u *types.User) error {
	if err := r.s.failure(OpCreateUser); err != nil {
		return err
	}
	if r.s.BeforeCreate != nil {
		r.s.BeforeCreate(*u)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.users[u.ID]; exists {
		return core.ErrConflict
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) ListRoster(_ context.Context, f core.RosterFilter) ([]types.User, error) {
	if err := r.s.failure(OpListRoster); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []types.User
	for _, u := range r.s.users {
		if u.DivisionID == f.DivisionID && u.ControllerRatingShort != f.ExcludeRating {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type roleRepo struct{ s *Store }

func (r roleRepo) Find(_ context.Context, id string) (*types.Role, error) {
	if err := r.s.failure(OpFindRole); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	role, ok := r.s.roles[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	role.Permissions = append([]string{}, role.Permissions...)
	return &role, nil
}

func (r roleRepo) List(context.Context) ([]types.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]types.Role, 0, len(r.s.roles))
	for _, role := range r.s.roles {
		out = append(out, role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r roleRepo) Upsert(_ context.Context, role *types.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *role
	cp.Permissions = append([]string{}, role.Permissions...)
	r.s.roles[role.ID] = cp
	return nil
}

type auditRepo struct{ s *Store }

func (r auditRepo) Append(_ context.Context, e *types.AuditLogEntry) error {
	if err := r.s.failure(OpAppendAudit); err != nil {
		return err
	}
	if r.s.AppendHook != nil {
		if err := r.s.AppendHook(*e); err != nil {
			return err
		}
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.audit {
		if existing.ID == e.ID {
			return core.ErrConflict
		}
	}
	r.s.audit = append(r.s.audit, *e)
	return nil
}

func (r auditRepo) ListByItem(_ context.Context, item string) ([]types.AuditLogEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []types.AuditLogEntry
	for _, e := range r.s.audit {
		if e.Item == item {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
