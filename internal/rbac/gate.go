// Package rbac verifica tokens de sesión entrantes y chequea permisos.
//
// El Gate nunca falla: cualquier problema (header ausente, valor inválido,
// token mal firmado o vencido, permiso faltante) se resuelve en false y se
// registra a nivel info. Los handlers tratan false como "vista restringida".
package rbac

import (
	"context"
	"net/http"

	"golang.org/x/net/http/httpguts"

	jwtx "github.com/dropDatabas3/menahq/internal/jwt"
	"github.com/dropDatabas3/menahq/internal/observability/logger"
)

// TokenHeader transporta el token de sesión en requests de lectura.
const TokenHeader = "X-HQ-Token"

// TokenVerifier es lo que el Gate necesita de internal/jwt.
type TokenVerifier interface {
	Verify(token string) (*jwtx.Claims, error)
}

type Gate struct {
	verifier TokenVerifier
}

func NewGate(v TokenVerifier) *Gate {
	return &Gate{verifier: v}
}

// Authorize: present=false equivale a header ausente.
func (g *Gate) Authorize(ctx context.Context, token string, present bool, required ...string) bool {
	log := logger.From(ctx).With(logger.Component("rbac.gate"))

	if !present {
		log.Info("extended view denied: header missing")
		return false
	}
	if !httpguts.ValidHeaderFieldValue(token) {
		log.Info("extended view denied: invalid header")
		return false
	}
	if g == nil || g.verifier == nil {
		log.Info("extended view denied: no verifier")
		return false
	}

	claims, err := g.verifier.Verify(token)
	if err != nil {
		log.Info("extended view denied: invalid token", logger.Err(err))
		return false
	}

	if !Can(claims.Custom.Role.Permissions, required) {
		log.Info("extended view denied: missing permission",
			logger.CID(claims.Subject),
			logger.String("perm", Missing(claims.Custom.Role.Permissions, required)),
		)
		return false
	}
	return true
}

// AuthorizeRequest lee TokenHeader del request.
func (g *Gate) AuthorizeRequest(r *http.Request, required ...string) bool {
	vals, present := r.Header[http.CanonicalHeaderKey(TokenHeader)]
	token := ""
	if present && len(vals) > 0 {
		token = vals[0]
	}
	return g.Authorize(r.Context(), token, present && len(vals) > 0, required...)
}
