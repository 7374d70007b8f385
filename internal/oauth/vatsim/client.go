// Package vatsim implementa el intercambio OAuth 2.0 contra VATSIM Connect.
// Como GitHub, VATSIM no emite ID tokens: el perfil se obtiene con un GET
// autenticado a /api/user usando el access token.
package vatsim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/dropDatabas3/menahq/internal/observability/logger"
)

const (
	tokenPath = "/oauth/token"
	userPath  = "/api/user"

	defaultTimeout = 10 * time.Second
	maxErrorBody   = 4 << 10
	maxProfileBody = 1 << 20
)

// Config del cliente. Endpoint es la base (p.ej. https://auth.vatsim.net).
type Config struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// Client hace el intercambio en dos pasos. No reintenta: cada falla vuelve al caller.
type Client struct {
	endpoint string
	oauth    *oauth2.Config
	http     *http.Client
}

func New(cfg Config) *Client {
	base := strings.TrimRight(cfg.Endpoint, "/")
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		endpoint: base,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:   base + "/oauth/authorize",
				TokenURL:  base + tokenPath,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		http: &http.Client{Timeout: timeout},
	}
}

// Endpoint retorna la base configurada (la expone /api/auth/info).
func (c *Client) Endpoint() string { return c.endpoint }

// ExchangeCode canjea el authorization code por un access token.
// El redirect_uri es el que mandó el frontend, no uno fijo.
func (c *Client) ExchangeCode(ctx context.Context, code, redirectURI string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	tok, err := c.oauth.Exchange(ctx, code, oauth2.SetAuthURLParam("redirect_uri", redirectURI))
	if err != nil {
		return "", classify(StepToken, err)
	}
	logger.From(ctx).Debug("vatsim token exchanged", logger.Step(string(StepToken)))
	return tok.AccessToken, nil
}

// FetchProfile pide el perfil con el access token como bearer.
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	hc := c.oauth.Client(context.WithValue(ctx, oauth2.HTTPClient, c.http), &oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	})
	hc.Timeout = c.http.Timeout

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+userPath, nil)
	if err != nil {
		return nil, &Error{Step: StepUser, Kind: KindConnect, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, &Error{Step: StepUser, Kind: KindConnect, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &Error{Step: StepUser, Kind: KindResponse, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var env struct {
		Data *Profile `json:"data"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxProfileBody)).Decode(&env); err != nil {
		return nil, &Error{Step: StepUser, Kind: KindResponse, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode profile: %w", err)}
	}
	if env.Data == nil || env.Data.CID == "" {
		return nil, &Error{Step: StepUser, Kind: KindResponse, StatusCode: resp.StatusCode, Err: errors.New("profile without cid")}
	}
	logger.From(ctx).Debug("vatsim profile fetched", logger.Step(string(StepUser)), logger.CID(string(env.Data.CID)))
	return env.Data, nil
}

// classify separa "no hubo respuesta" de "VATSIM respondió con falla".
func classify(step Step, err error) *Error {
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		e := &Error{Step: step, Kind: KindResponse, Err: err}
		if rerr.Response != nil {
			e.StatusCode = rerr.Response.StatusCode
		}
		e.Body = string(rerr.Body)
		return e
	}
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return &Error{Step: step, Kind: KindConnect, Err: err}
	}
	// Respuesta 2xx pero ilegible o sin access_token.
	return &Error{Step: step, Kind: KindResponse, Err: err}
}
