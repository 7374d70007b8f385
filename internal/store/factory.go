package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dropDatabas3/menahq/internal/store/core"
	"github.com/dropDatabas3/menahq/internal/store/memory"
	"github.com/dropDatabas3/menahq/internal/store/pg"
)

type Config struct {
	Driver   string
	DSN      string
	OnOpen   func(db *sql.DB)
	Postgres struct {
		MaxOpenConns, MaxIdleConns int
		ConnMaxLifetime            string
	}
}

// Opened agrupa el provider con su cierre.
type Opened struct {
	Provider core.PoolProvider
	Close    func() error
	// Memory es no-nil cuando el driver es "memory" (seed de roles al arrancar).
	Memory *memory.Store
}

// Open no conecta: el pool de Postgres se abre en el primer request.
func Open(cfg Config) (*Opened, error) {
	switch strings.ToLower(cfg.Driver) {
	case "postgres", "pg", "postgresql", "":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("postgres driver requires a DSN")
		}
		opts := pg.Options{
			MaxOpenConns: cfg.Postgres.MaxOpenConns,
			MaxIdleConns: cfg.Postgres.MaxIdleConns,
			OnOpen:       cfg.OnOpen,
		}
		if cfg.Postgres.ConnMaxLifetime != "" {
			d, err := time.ParseDuration(cfg.Postgres.ConnMaxLifetime)
			if err != nil {
				return nil, fmt.Errorf("conn max lifetime: %w", err)
			}
			opts.ConnMaxLifetime = d
		}
		p := pg.NewProvider(cfg.DSN, opts)
		return &Opened{Provider: p, Close: p.Close}, nil
	case "memory", "mem":
		m := memory.New()
		return &Opened{Provider: m, Close: func() error { return nil }, Memory: m}, nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", cfg.Driver)
	}
}
