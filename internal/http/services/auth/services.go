// Package auth contiene el orquestador de login contra VATSIM.
package auth

import (
	"context"
	"time"

	"github.com/dropDatabas3/menahq/internal/domain/types"
	dto "github.com/dropDatabas3/menahq/internal/http/dto/auth"
	"github.com/dropDatabas3/menahq/internal/metrics"
	"github.com/dropDatabas3/menahq/internal/oauth/vatsim"
	"github.com/dropDatabas3/menahq/internal/store/core"
)

// IdentityProvider es el cliente de VATSIM Connect.
type IdentityProvider interface {
	ExchangeCode(ctx context.Context, code, redirectURI string) (string, error)
	FetchProfile(ctx context.Context, accessToken string) (*vatsim.Profile, error)
}

// TokenIssuer firma la sesión.
type TokenIssuer interface {
	Issue(user types.User, role types.Role) (string, time.Time, error)
}

// AuditWriter escribe los dos eventos del login.
type AuditWriter interface {
	UserCreated(ctx context.Context, repo core.AuditRepository, u types.User) error
	LoggedIn(ctx context.Context, repo core.AuditRepository, cid string) error
}

// LoginService ejecuta el login completo a partir del body crudo.
type LoginService interface {
	Login(ctx context.Context, payload []byte) (*dto.LoginResponse, error)
}

// InfoService expone la metadata pública de OAuth.
type InfoService interface {
	Info(ctx context.Context) dto.InfoResponse
}

type Deps struct {
	Provider IdentityProvider
	Pool     core.PoolProvider
	Issuer   TokenIssuer
	Audit    AuditWriter
	Metrics  *metrics.Metrics

	VatsimEndpoint string
	ClientID       string
}

type Services struct {
	Login LoginService
	Info  InfoService
}

func NewServices(d Deps) Services {
	return Services{
		Login: NewLoginService(d),
		Info:  infoService{endpoint: d.VatsimEndpoint, clientID: d.ClientID},
	}
}

type infoService struct {
	endpoint string
	clientID string
}

func (s infoService) Info(context.Context) dto.InfoResponse {
	return dto.InfoResponse{VatsimEndpoint: s.endpoint, ClientID: s.clientID}
}
