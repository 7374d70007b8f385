package auth

import (
	"fmt"
	"net/http"
	"strings"
)

// Códigos de falla del login. Cada paso tiene el suyo para diagnosticar con precisión.
const (
	CodeInvalidPayload = "invalid_payload"
	CodeMissingPayload = "missing_payload"

	CodeVatsimTokenConnect  = "vatsim_token_connect_error"
	CodeVatsimTokenResponse = "vatsim_token_error_response"
	CodeVatsimUserConnect   = "vatsim_user_connect_error"
	CodeVatsimUserResponse  = "vatsim_user_error_response"
	CodeVatsimInvalidUser   = "vatsim_user_invalid_profile"

	CodeDBGetPool       = "database_error_get_pool"
	CodeDBGetConn       = "database_error_get_conn"
	CodeDBFindUser      = "database_error_find_user"
	CodeDBCreateUser    = "database_error_create_user"
	CodeDBCreateUserLog = "database_error_create_user_log"
	CodeDBFindRole      = "database_error_find_role"
	CodeDBCreateLog     = "database_error_create_log"

	CodeRoleMissing = "role_missing"
	CodeTokenSign   = "token_sign_error"
)

// LoginError es el estado Failed del login: código estable + mensaje con el error upstream.
type LoginError struct {
	Code    string
	Message string
	Err     error
}

func (e *LoginError) Error() string {
	return e.Code + ": " + e.Message
}

func (e *LoginError) Unwrap() error { return e.Err }

// HTTPStatus: payload => 400, fallas de VATSIM => 502, el resto => 500.
func (e *LoginError) HTTPStatus() int {
	switch {
	case e.Code == CodeInvalidPayload || e.Code == CodeMissingPayload:
		return http.StatusBadRequest
	case e.Code == CodeVatsimInvalidUser:
		return http.StatusInternalServerError
	case strings.HasPrefix(e.Code, "vatsim_"):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// InvalidPayload envuelve errores de lectura/parseo del body.
func InvalidPayload(err error) *LoginError {
	return &LoginError{Code: CodeInvalidPayload, Message: "Invalid payload", Err: err}
}

func missingPayload() *LoginError {
	return &LoginError{Code: CodeMissingPayload, Message: "Missing payload"}
}

func dbError(code string, err error) *LoginError {
	return &LoginError{Code: code, Message: fmt.Sprintf("database error: %v", err), Err: err}
}
