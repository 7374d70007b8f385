// Package auth contiene los controllers de login y discovery.
package auth

import (
	"errors"
	"net/http"

	httperrors "github.com/dropDatabas3/menahq/internal/http/errors"
	"github.com/dropDatabas3/menahq/internal/http/helpers"
	svc "github.com/dropDatabas3/menahq/internal/http/services/auth"
	"github.com/dropDatabas3/menahq/internal/observability/logger"
)

type AuthController struct {
	login svc.LoginService
	info  svc.InfoService
}

func NewAuthController(s svc.Services) *AuthController {
	return &AuthController{login: s.Login, info: s.Info}
}

// Token maneja POST /api/auth/token.
func (c *AuthController) Token(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("AuthController.Token"))

	body, err := helpers.ReadJSONBody(w, r)
	if err != nil {
		log.Debug("unreadable body", logger.Err(err))
		writeLoginError(w, svc.InvalidPayload(err))
		return
	}

	resp, err := c.login.Login(ctx, body)
	if err != nil {
		var lerr *svc.LoginError
		if errors.As(err, &lerr) {
			writeLoginError(w, lerr)
			return
		}
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Info maneja GET /api/auth/info.
func (c *AuthController) Info(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, c.info.Info(r.Context()))
}

func writeLoginError(w http.ResponseWriter, lerr *svc.LoginError) {
	httperrors.WriteError(w, httperrors.Wrap(lerr.Err, lerr.HTTPStatus(), lerr.Code, lerr.Message))
}
