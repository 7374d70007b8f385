// Package health contiene el service para health checks.
package health

import (
	"context"
	"fmt"
	"time"

	dto "github.com/dropDatabas3/menahq/internal/http/dto/health"
	"github.com/dropDatabas3/menahq/internal/observability/logger"
	"github.com/dropDatabas3/menahq/internal/store/core"
)

const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"

	defaultPingTimeout = 2 * time.Second
)

// HealthService define las operaciones de health check.
type HealthService interface {
	Live(ctx context.Context) dto.HealthResponse
	Ready(ctx context.Context) dto.HealthResponse
}

// Deps contiene las dependencias inyectables para el health service.
type Deps struct {
	Pool        core.PoolProvider
	RedisCheck  func(ctx context.Context) error // opcional; no crítico
	ActiveKID   string
	PingTimeout time.Duration
}

type healthService struct {
	deps Deps
}

func NewHealthService(deps Deps) HealthService {
	if deps.PingTimeout <= 0 {
		deps.PingTimeout = defaultPingTimeout
	}
	return &healthService{deps: deps}
}

func (s *healthService) Live(context.Context) dto.HealthResponse {
	return dto.HealthResponse{Status: StatusOK, Timestamp: time.Now().UTC()}
}

func (s *healthService) Ready(ctx context.Context) dto.HealthResponse {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("health"), logger.Op("Ready"))

	resp := dto.HealthResponse{
		Status:      StatusOK,
		Components:  make(map[string]dto.HealthStatus),
		ActiveKeyID: s.deps.ActiveKID,
		Timestamp:   time.Now().UTC(),
	}

	// 1) Base de datos (crítico)
	if err := s.pingDB(ctx); err != nil {
		resp.Components["database"] = dto.HealthStatus{Status: "error", Message: fmt.Sprintf("unavailable: %v", err)}
		resp.Status = StatusUnavailable
		log.Error("database unavailable", logger.Err(err))
	} else {
		resp.Components["database"] = dto.HealthStatus{Status: StatusOK}
	}

	// 2) Redis (opcional): el rate limiter falla abierto, así que solo se reporta.
	if s.deps.RedisCheck != nil {
		cctx, cancel := context.WithTimeout(ctx, s.deps.PingTimeout)
		err := s.deps.RedisCheck(cctx)
		cancel()
		if err != nil {
			resp.Components["redis"] = dto.HealthStatus{Status: "degraded", Message: err.Error()}
			log.Warn("redis unavailable", logger.Err(err))
		} else {
			resp.Components["redis"] = dto.HealthStatus{Status: StatusOK}
		}
	}
	return resp
}

func (s *healthService) pingDB(ctx context.Context) error {
	if s.deps.Pool == nil {
		return fmt.Errorf("pool not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, s.deps.PingTimeout)
	defer cancel()
	pool, err := s.deps.Pool.Pool(ctx)
	if err != nil {
		return err
	}
	return pool.Ping(ctx)
}
