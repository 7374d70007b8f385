package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, New(http.StatusBadRequest, "invalid_payload", "Invalid payload"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"code": "invalid_payload", "message": "Invalid payload"}, body)
}

func TestFromErrorUnwrapsAndHidesCauses(t *testing.T) {
	wrapped := fmt.Errorf("ctx: %w", ErrRouteNotFound)
	assert.Equal(t, "ROUTE_NOT_FOUND", FromError(wrapped).Code)

	cause := stderrors.New("secret internals")
	rec := httptest.NewRecorder()
	WriteError(rec, cause)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret internals")
}

func TestWithDetailCopies(t *testing.T) {
	e := ErrServiceUnavailable.WithDetail("db down")
	assert.Equal(t, "db down", e.Detail)
	assert.Empty(t, ErrServiceUnavailable.Detail)
}
