// Package health contiene el controller para health checks.
package health

import (
	"net/http"

	"github.com/dropDatabas3/menahq/internal/http/helpers"
	svc "github.com/dropDatabas3/menahq/internal/http/services/health"
	"github.com/dropDatabas3/menahq/internal/observability/logger"
)

type HealthController struct {
	service svc.HealthService
}

func NewHealthController(service svc.HealthService) *HealthController {
	return &HealthController{service: service}
}

// Healthz maneja GET /healthz
func (c *HealthController) Healthz(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, c.service.Live(r.Context()))
}

// Readyz maneja GET /readyz
func (c *HealthController) Readyz(w http.ResponseWriter, r *http.Request) {
	resp := c.service.Ready(r.Context())
	if resp.ActiveKeyID != "" {
		w.Header().Set("X-JWKS-KID", resp.ActiveKeyID)
	}
	status := http.StatusOK
	if resp.Status == svc.StatusUnavailable {
		status = http.StatusServiceUnavailable
	}
	logger.From(r.Context()).Debug("readiness checked", logger.String("status", resp.Status))
	helpers.WriteJSON(w, status, resp)
}
