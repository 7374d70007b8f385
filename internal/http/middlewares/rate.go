package middlewares

import (
	"net"
	"net/http"
	"strconv"

	httperrors "github.com/dropDatabas3/menahq/internal/http/errors"
	"github.com/dropDatabas3/menahq/internal/metrics"
	"github.com/dropDatabas3/menahq/internal/observability/logger"
	"github.com/dropDatabas3/menahq/internal/rate"
)

// clientIP usa RemoteAddr; chi/middleware.RealIP ya lo reescribió si hay proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

// RateKeyFunc define cómo generar la clave de rate limiting.
type RateKeyFunc func(r *http.Request) string

// LoginRateKey limita por IP sin leer el body.
func LoginRateKey(r *http.Request) string {
	return "login:" + clientIP(r)
}

type RateLimitConfig struct {
	Limiter rate.Limiter
	KeyFunc RateKeyFunc
	Metrics *metrics.Metrics
}

// WithRateLimit responde 429 rate_limited al exceder el límite.
// Si el limiter falla (redis caído) el request pasa.
func WithRateLimit(cfg RateLimitConfig) Middleware {
	if cfg.Limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = LoginRateKey
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := cfg.Limiter.Allow(r.Context(), cfg.KeyFunc(r))
			if err != nil {
				logger.From(r.Context()).Warn("rate limiter unavailable", logger.Component("rate"), logger.Err(err))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
			if !res.Allowed {
				cfg.Metrics.RateLimited()
				w.Header().Set("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds())))
				httperrors.WriteError(w, httperrors.ErrRateLimitExceeded)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
