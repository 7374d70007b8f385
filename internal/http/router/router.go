// Package router arma el árbol de rutas HTTP sobre chi.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	authctrl "github.com/dropDatabas3/menahq/internal/http/controllers/auth"
	healthctrl "github.com/dropDatabas3/menahq/internal/http/controllers/health"
	jwksctrl "github.com/dropDatabas3/menahq/internal/http/controllers/jwks"
	rosterctrl "github.com/dropDatabas3/menahq/internal/http/controllers/roster"
	httperrors "github.com/dropDatabas3/menahq/internal/http/errors"
	mw "github.com/dropDatabas3/menahq/internal/http/middlewares"
	"github.com/dropDatabas3/menahq/internal/metrics"
	"github.com/dropDatabas3/menahq/internal/rate"
)

// Deps contiene los controllers y middlewares opcionales.
// Un controller nil deja su grupo de rutas sin registrar.
type Deps struct {
	Auth   *authctrl.AuthController
	Roster *rosterctrl.RosterController
	Health *healthctrl.HealthController
	JWKS   *jwksctrl.JWKSController

	Metrics      *metrics.Metrics
	LoginLimiter rate.Limiter // opcional
}

func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(mw.WithRequestID())
	r.Use(mw.WithLogging())
	r.Use(mw.WithRecover())
	r.Use(d.Metrics.Middleware)
	r.Use(mw.WithSecurityHeaders())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	if d.Auth != nil {
		r.Route("/api/auth", func(r chi.Router) {
			r.Get("/info", d.Auth.Info)
			r.With(
				mw.WithNoStore(),
				mw.WithRateLimit(mw.RateLimitConfig{Limiter: d.LoginLimiter, KeyFunc: mw.LoginRateKey, Metrics: d.Metrics}),
			).Post("/token", d.Auth.Token)
		})
	}
	if d.Roster != nil {
		r.With(mw.WithNoStore()).Get("/api/roster/home", d.Roster.Home)
	}
	if d.JWKS != nil {
		r.With(mw.WithCacheControl("public, max-age=600")).Get("/.well-known/jwks.json", d.JWKS.GetJWKS)
	}
	if d.Health != nil {
		r.Get("/healthz", d.Health.Healthz)
		r.Get("/readyz", d.Health.Readyz)
	}
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}
	return r
}
