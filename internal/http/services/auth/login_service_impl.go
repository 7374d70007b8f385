package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/dropDatabas3/menahq/internal/domain/types"
	dto "github.com/dropDatabas3/menahq/internal/http/dto/auth"
	"github.com/dropDatabas3/menahq/internal/http/helpers"
	"github.com/dropDatabas3/menahq/internal/oauth/vatsim"
	"github.com/dropDatabas3/menahq/internal/observability/logger"
	"github.com/dropDatabas3/menahq/internal/store/core"
)

type loginService struct {
	d Deps
}

func NewLoginService(d Deps) LoginService {
	return &loginService{d: d}
}

func (s *loginService) Login(ctx context.Context, payload []byte) (*dto.LoginResponse, error) {
	resp, lerr := s.login(ctx, payload)
	if lerr != nil {
		s.d.Metrics.Login(lerr.Code)
		log := logger.From(ctx).With(logger.Layer("service"), logger.Op("auth.Login"), logger.Code(lerr.Code))
		if lerr.HTTPStatus() >= 500 {
			log.Error("login failed", logger.String("message", lerr.Message), logger.Err(lerr.Err))
		} else {
			log.Warn("login failed", logger.String("message", lerr.Message))
		}
		return nil, lerr
	}
	s.d.Metrics.Login("ok")
	return resp, nil
}

func (s *loginService) login(ctx context.Context, payload []byte) (*dto.LoginResponse, *LoginError) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("auth.Login"))

	// ReceivedCode
	req, lerr := parsePayload(payload)
	if lerr != nil {
		return nil, lerr
	}

	// ExchangedToken
	start := time.Now()
	accessToken, err := s.d.Provider.ExchangeCode(ctx, req.Code, req.RedirectURI)
	s.d.Metrics.VatsimRequest(string(vatsim.StepToken), time.Since(start))
	if err != nil {
		return nil, providerError(vatsim.StepToken, err)
	}
	log.Debug("token exchanged")

	// FetchedProfile
	start = time.Now()
	profile, err := s.d.Provider.FetchProfile(ctx, accessToken)
	s.d.Metrics.VatsimRequest(string(vatsim.StepUser), time.Since(start))
	if err != nil {
		return nil, providerError(vatsim.StepUser, err)
	}
	cid := string(profile.CID)
	log = log.With(logger.CID(cid))
	log.Debug("profile fetched")

	// ResolvedUser
	pool, err := s.d.Pool.Pool(ctx)
	if err != nil {
		return nil, dbError(CodeDBGetPool, err)
	}
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, dbError(CodeDBGetConn, err)
	}
	defer conn.Release()

	user, lerr := s.resolveUser(ctx, conn, profile)
	if lerr != nil {
		return nil, lerr
	}
	log.Debug("user resolved", logger.Role(user.Role))

	// ResolvedRole
	role, err := conn.Roles().Find(ctx, user.Role)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, &LoginError{Code: CodeRoleMissing, Message: "user role is missing", Err: err}
		}
		return nil, dbError(CodeDBFindRole, err)
	}

	// IssuedToken
	token, _, err := s.d.Issuer.Issue(*user, *role)
	if err != nil {
		return nil, &LoginError{Code: CodeTokenSign, Message: "failed to sign session token", Err: err}
	}

	// Logged
	if err := s.d.Audit.LoggedIn(ctx, conn.AuditLog(), user.ID); err != nil {
		return nil, dbError(CodeDBCreateLog, err)
	}
	log.Info("user logged in", logger.Role(role.ID))

	return &dto.LoginResponse{Token: token, User: *user, Role: *role}, nil
}

// resolveUser hace find-or-create sobre la conexión del request. Dos primeros
// logins en carrera los resuelve la PK de users: el insert perdedor recibe
// ErrConflict y relee la fila ganadora, sin escribir entrada de alta.
func (s *loginService) resolveUser(ctx context.Context, conn core.Conn, p *vatsim.Profile) (*types.User, *LoginError) {
	cid := string(p.CID)
	u, err := conn.Users().Find(ctx, cid)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return nil, dbError(CodeDBFindUser, err)
	}

	nu, err := NewUserFromProfile(p)
	if err != nil {
		return nil, &LoginError{Code: CodeVatsimInvalidUser, Message: err.Error(), Err: err}
	}
	if err := conn.Users().Create(ctx, nu); err != nil {
		if !errors.Is(err, core.ErrConflict) {
			return nil, dbError(CodeDBCreateUser, err)
		}
		existing, ferr := conn.Users().Find(ctx, cid)
		if ferr != nil {
			return nil, dbError(CodeDBCreateUser, errors.Join(err, ferr))
		}
		logger.From(ctx).Info("concurrent first login, using existing user", logger.CID(cid))
		return existing, nil
	}
	if err := s.d.Audit.UserCreated(ctx, conn.AuditLog(), *nu); err != nil {
		return nil, dbError(CodeDBCreateUserLog, err)
	}
	logger.From(ctx).Info("user created", logger.CID(cid), logger.Role(nu.Role))
	return nu, nil
}

// parsePayload: vacío o null => missing_payload; cualquier otra cosa que no sea
// {"code": string, "redirect_uri": string} no vacíos => invalid_payload.
func parsePayload(b []byte) (dto.LoginRequest, *LoginError) {
	b = bytes.TrimSpace(b)
	if helpers.IsNullOrEmpty(b) {
		return dto.LoginRequest{}, missingPayload()
	}
	var raw struct {
		Code        *string `json:"code"`
		RedirectURI *string `json:"redirect_uri"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return dto.LoginRequest{}, InvalidPayload(err)
	}
	if raw.Code == nil || raw.RedirectURI == nil {
		return dto.LoginRequest{}, InvalidPayload(errors.New("code and redirect_uri are required"))
	}
	req := dto.LoginRequest{Code: strings.TrimSpace(*raw.Code), RedirectURI: strings.TrimSpace(*raw.RedirectURI)}
	if req.Code == "" || req.RedirectURI == "" {
		return dto.LoginRequest{}, InvalidPayload(errors.New("code and redirect_uri must not be empty"))
	}
	return req, nil
}

func providerError(step vatsim.Step, err error) *LoginError {
	connect, response := CodeVatsimTokenConnect, CodeVatsimTokenResponse
	if step == vatsim.StepUser {
		connect, response = CodeVatsimUserConnect, CodeVatsimUserResponse
	}
	code := connect
	var verr *vatsim.Error
	if errors.As(err, &verr) && verr.Kind == vatsim.KindResponse {
		code = response
	}
	msg := err.Error()
	if verr == nil {
		msg = "VATSIM returned error: " + msg
	}
	return &LoginError{Code: code, Message: msg, Err: err}
}
