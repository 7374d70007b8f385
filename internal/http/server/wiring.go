// Package server arma el handler HTTP completo a partir de la configuración.
package server

import (
	"context"
	"fmt"
	"net/http"

	rdb "github.com/redis/go-redis/v9"

	"github.com/dropDatabas3/menahq/internal/audit"
	cachemem "github.com/dropDatabas3/menahq/internal/cache/memory"
	"github.com/dropDatabas3/menahq/internal/config"
	"github.com/dropDatabas3/menahq/internal/domain/types"
	authctrl "github.com/dropDatabas3/menahq/internal/http/controllers/auth"
	healthctrl "github.com/dropDatabas3/menahq/internal/http/controllers/health"
	jwksctrl "github.com/dropDatabas3/menahq/internal/http/controllers/jwks"
	rosterctrl "github.com/dropDatabas3/menahq/internal/http/controllers/roster"
	"github.com/dropDatabas3/menahq/internal/http/router"
	authsvc "github.com/dropDatabas3/menahq/internal/http/services/auth"
	healthsvc "github.com/dropDatabas3/menahq/internal/http/services/health"
	rostersvc "github.com/dropDatabas3/menahq/internal/http/services/roster"
	jwtx "github.com/dropDatabas3/menahq/internal/jwt"
	"github.com/dropDatabas3/menahq/internal/metrics"
	"github.com/dropDatabas3/menahq/internal/oauth/vatsim"
	"github.com/dropDatabas3/menahq/internal/observability/logger"
	"github.com/dropDatabas3/menahq/internal/rate"
	"github.com/dropDatabas3/menahq/internal/rbac"
	"github.com/dropDatabas3/menahq/internal/store"
	"github.com/dropDatabas3/menahq/internal/util"
)

// Built es el resultado del wiring.
type Built struct {
	Handler http.Handler
	Keys    *jwtx.KeySet
	Cleanup func() error
}

// Build instancia stores, clientes y services y devuelve el router listo.
// La configuración ya debe estar validada.
func Build(ctx context.Context, cfg *config.Config) (*Built, error) {
	log := logger.From(ctx).With(logger.Component("wiring"))

	// 1. Clave de firma
	keys, err := jwtx.ParseKeySet(cfg.JWT.Key)
	if err != nil {
		return nil, fmt.Errorf("MENAHQ_API_JWT_KEY: %w", err)
	}
	log.Info("signing key loaded", logger.KID(keys.KID))
	log.Info("vatsim client configured",
		logger.String("endpoint", cfg.Vatsim.Endpoint),
		logger.String("client_id", cfg.Vatsim.ClientID),
		logger.String("client_secret", util.MaskSecret(cfg.Vatsim.ClientSecret)),
	)

	m := metrics.New()

	// 2. Store
	scfg := store.Config{Driver: cfg.Storage.Driver, DSN: cfg.Storage.DSN, OnOpen: m.RegisterDB}
	scfg.Postgres.MaxOpenConns = cfg.Storage.Postgres.MaxOpenConns
	scfg.Postgres.MaxIdleConns = cfg.Storage.Postgres.MaxIdleConns
	scfg.Postgres.ConnMaxLifetime = cfg.Storage.Postgres.ConnMaxLifetime
	opened, err := store.Open(scfg)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	if opened.Memory != nil {
		for _, r := range types.DefaultRoles() {
			if err := opened.Memory.Roles().Upsert(ctx, &r); err != nil {
				return nil, fmt.Errorf("seed roles: %w", err)
			}
		}
		log.Warn("using in-memory store; data is lost on restart")
	}
	log.Info("store configured", logger.String("driver", cfg.Storage.Driver), logger.String("dsn", util.MaskDSN(cfg.Storage.DSN)))
	cleanups := []func() error{opened.Close}

	// 3. Rate limiter: Redis si hay REDIS_ADDR, si no memoria del proceso.
	var (
		limiter    rate.Limiter
		redisCheck func(context.Context) error
	)
	if cfg.Redis.Addr != "" {
		client := rdb.NewClient(&rdb.Options{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		limiter = rate.NewRedisLimiter(client, cfg.Redis.Prefix, cfg.Rate.Login.Limit, cfg.Rate.Login.Window)
		redisCheck = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		cleanups = append(cleanups, client.Close)
	} else if cfg.Rate.Login.Limit > 0 {
		limiter = rate.NewMemoryLimiter(cfg.Rate.Login.Limit, cfg.Rate.Login.Window)
	}

	// 4. Services
	authServices := authsvc.NewServices(authsvc.Deps{
		Provider: vatsim.New(vatsim.Config{
			Endpoint:     cfg.Vatsim.Endpoint,
			ClientID:     cfg.Vatsim.ClientID,
			ClientSecret: cfg.Vatsim.ClientSecret,
			Timeout:      cfg.Vatsim.Timeout,
		}),
		Pool:           opened.Provider,
		Issuer:         jwtx.NewIssuer(cfg.JWT.Issuer, keys, cfg.JWT.TTL),
		Audit:          audit.NewWriter(),
		Metrics:        m,
		VatsimEndpoint: cfg.Vatsim.Endpoint,
		ClientID:       cfg.Vatsim.ClientID,
	})
	roster := rostersvc.NewRosterService(rostersvc.Deps{
		Pool:     opened.Provider,
		Cache:    cachemem.New(cfg.Roster.CacheTTL),
		CacheTTL: cfg.Roster.CacheTTL,
	})
	health := healthsvc.NewHealthService(healthsvc.Deps{
		Pool:       opened.Provider,
		RedisCheck: redisCheck,
		ActiveKID:  keys.KID,
	})

	// 5. Controllers + router
	gate := rbac.NewGate(jwtx.NewVerifier(cfg.JWT.Issuer, keys))
	h := router.New(router.Deps{
		Auth:         authctrl.NewAuthController(authServices),
		Roster:       rosterctrl.NewRosterController(roster, gate),
		Health:       healthctrl.NewHealthController(health),
		JWKS:         jwksctrl.NewJWKSController(keys),
		Metrics:      m,
		LoginLimiter: limiter,
	})

	cleanup := func() error {
		var first error
		for i := len(cleanups) - 1; i >= 0; i-- {
			if err := cleanups[i](); err != nil && first == nil {
				first = err
			}
		}
		return first
	}
	return &Built{Handler: h, Keys: keys, Cleanup: cleanup}, nil
}
