// Package jwks publica la clave pública de firma.
package jwks

import (
	"net/http"

	"github.com/dropDatabas3/menahq/internal/http/helpers"
	jwtx "github.com/dropDatabas3/menahq/internal/jwt"
)

type JWKSController struct {
	body []byte
}

func NewJWKSController(keys *jwtx.KeySet) *JWKSController {
	return &JWKSController{body: keys.JWKSJSON()}
}

// GetJWKS maneja GET /.well-known/jwks.json
func (c *JWKSController) GetJWKS(w http.ResponseWriter, r *http.Request) {
	helpers.WriteRawJSON(w, http.StatusOK, c.body)
}
