// Package auth contiene los DTOs de /api/auth.
package auth

import "github.com/dropDatabas3/menahq/internal/domain/types"

// LoginRequest es el body de POST /api/auth/token.
type LoginRequest struct {
	Code        string `json:"code"`
	RedirectURI string `json:"redirect_uri"`
}

// LoginResponse es la respuesta exitosa del login.
type LoginResponse struct {
	Token string     `json:"token"`
	User  types.User `json:"user"`
	Role  types.Role `json:"role"`
}

// InfoResponse es la respuesta de GET /api/auth/info.
type InfoResponse struct {
	VatsimEndpoint string `json:"vatsim_endpoint"`
	ClientID       string `json:"client_id"`
}
