package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/dropDatabas3/menahq/internal/observability/logger"
	"github.com/dropDatabas3/menahq/internal/store/core"
)

const uniqueViolation = "23505"

// Options ajusta el pool de database/sql.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// OnOpen corre una vez cuando el pool se abre (registro de métricas).
	OnOpen func(db *sql.DB)
}

// Provider abre el pool de forma perezosa en el primer uso.
// Si la apertura falla se reintenta en el siguiente request.
type Provider struct {
	dsn  string
	opts Options

	mu     sync.Mutex
	store  *Store
	closed bool
}

var _ core.PoolProvider = (*Provider)(nil)

func NewProvider(dsn string, opts Options) *Provider {
	return &Provider{dsn: dsn, opts: opts}
}

// NewProviderFromDB envuelve un *sql.DB ya abierto (tests, CLI).
func NewProviderFromDB(db *sql.DB) *Provider {
	return &Provider{store: &Store{db: db}}
}

// Pool retorna el pool, abriéndolo si aún no existe.
func (p *Provider) Pool(ctx context.Context) (core.Pool, error) {
	s, err := p.open()
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Store retorna el *Store concreto (usado por el CLI).
func (p *Provider) Store(ctx context.Context) (*Store, error) {
	return p.open()
}

func (p *Provider) open() (*Store, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, core.ErrPoolUnavailable
	}
	if p.store != nil {
		return p.store, nil
	}

	cfg, err := pgx.ParseConfig(p.dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: parse dsn: %v", core.ErrPoolUnavailable, err)
	}
	db := stdlib.OpenDB(*cfg)
	if p.opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(p.opts.MaxOpenConns)
	}
	if p.opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(p.opts.MaxIdleConns)
	}
	if p.opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(p.opts.ConnMaxLifetime)
	}
	p.store = &Store{db: db}
	if p.opts.OnOpen != nil {
		p.opts.OnOpen(db)
	}

	logger.L().Info("pg pool opened",
		logger.Component("store.pg"),
		logger.Int("max_open_conns", p.opts.MaxOpenConns),
	)
	return p.store, nil
}

// Close cierra el pool (idempotente). Después de Close, Pool falla.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	if p.store == nil {
		return nil
	}
	err := p.store.db.Close()
	p.store = nil
	return err
}

// querier es lo común entre *sql.DB y *sql.Conn.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store implementa core.Pool sobre database/sql con el driver pgx.
type Store struct{ db *sql.DB }

var _ core.Pool = (*Store)(nil)

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// Acquire toma una conexión dedicada del pool.
func (s *Store) Acquire(ctx context.Context) (core.Conn, error) {
	c, err := s.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return &conn{c: c}, nil
}

// Repositorios directos sobre el pool, sin conexión dedicada.
func (s *Store) Users() core.UserRepository     { return &userRepo{q: s.db} }
func (s *Store) Roles() core.RoleRepository     { return &roleRepo{q: s.db} }
func (s *Store) AuditLog() core.AuditRepository { return &auditRepo{q: s.db} }

type conn struct{ c *sql.Conn }

func (c *conn) Users() core.UserRepository     { return &userRepo{q: c.c} }
func (c *conn) Roles() core.RoleRepository     { return &roleRepo{q: c.c} }
func (c *conn) AuditLog() core.AuditRepository { return &auditRepo{q: c.c} }

// Release devuelve la conexión al pool.
func (c *conn) Release() { _ = c.c.Close() }

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func nullableJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
