// Package roster contiene el controller del roster.
package roster

import (
	"net/http"

	"github.com/dropDatabas3/menahq/internal/domain/types"
	httperrors "github.com/dropDatabas3/menahq/internal/http/errors"
	"github.com/dropDatabas3/menahq/internal/http/helpers"
	svc "github.com/dropDatabas3/menahq/internal/http/services/roster"
	"github.com/dropDatabas3/menahq/internal/observability/logger"
	"github.com/dropDatabas3/menahq/internal/rbac"
)

type RosterController struct {
	service svc.RosterService
	gate    *rbac.Gate
}

func NewRosterController(s svc.RosterService, gate *rbac.Gate) *RosterController {
	return &RosterController{service: s, gate: gate}
}

// Home maneja GET /api/roster/home. Sin permiso extendido la respuesta sale redactada, nunca 401.
func (c *RosterController) Home(w http.ResponseWriter, r *http.Request) {
	extended := c.gate.AuthorizeRequest(r, types.PermRosterExtended)

	out, err := c.service.Home(r.Context(), extended)
	if err != nil {
		logger.From(r.Context()).Error("roster failed", logger.Layer("controller"), logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}
