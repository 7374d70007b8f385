package rbac

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dropDatabas3/menahq/internal/domain/types"
	jwtx "github.com/dropDatabas3/menahq/internal/jwt"
	"github.com/dropDatabas3/menahq/internal/observability/logger"
)

func TestCan(t *testing.T) {
	granted := []string{"a", "b"}
	cases := []struct {
		name     string
		required []string
		want     bool
	}{
		{"empty", nil, true},
		{"plain present", []string{"a"}, true},
		{"plain missing", []string{"a", "c"}, false},
		{"and present", []string{"&a", "&b"}, true},
		{"and missing", []string{"&c"}, false},
		{"and miss denies despite or hit", []string{"&c", "|b"}, false},
		{"and miss before or hit", []string{"|a", "&c"}, false},
		{"plain miss denies despite or hit", []string{"c", "|a"}, false},
		{"and present with or hit", []string{"&a", "|x", "|b"}, true},
		{"or miss", []string{"|c", "|d"}, false},
		{"prefix is stripped", []string{"|a"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Can(granted, tc.required))
		})
	}
	assert.Equal(t, "c", Missing(granted, []string{"a", "&c"}))
	assert.False(t, Can([]string{"a"}, []string{"&b", "|a"}))
}

func issue(t *testing.T, ks *jwtx.KeySet, perms ...string) string {
	t.Helper()
	tok, _, err := jwtx.NewIssuer("menahq", ks, time.Hour).Issue(
		types.User{ID: "1000001"},
		types.Role{ID: "r", Permissions: perms},
	)
	require.NoError(t, err)
	return tok
}

func TestGateAuthorize(t *testing.T) {
	ks, err := jwtx.GenerateKeySet()
	require.NoError(t, err)
	other, err := jwtx.GenerateKeySet()
	require.NoError(t, err)
	g := NewGate(jwtx.NewVerifier("menahq", ks))
	ctx := context.Background()

	assert.False(t, g.Authorize(ctx, "", false, types.PermRosterExtended), "absent")
	assert.False(t, g.Authorize(ctx, "bad\x00value", true, types.PermRosterExtended), "invalid header")
	assert.False(t, g.Authorize(ctx, "not.a.jwt", true, types.PermRosterExtended), "structure")
	assert.False(t, g.Authorize(ctx, issue(t, other, types.PermRosterExtended), true, types.PermRosterExtended), "mis-signed")
	assert.False(t, g.Authorize(ctx, issue(t, ks, "something.else"), true, types.PermRosterExtended), "missing perm")
	assert.True(t, g.Authorize(ctx, issue(t, ks, types.PermRosterExtended), true, types.PermRosterExtended))
}

func TestGateLogsAtInfoOnly(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := logger.Replace(zap.New(core))
	defer restore()

	ks, err := jwtx.GenerateKeySet()
	require.NoError(t, err)
	g := NewGate(jwtx.NewVerifier("menahq", ks))

	r := httptest.NewRequest("GET", "/api/roster/home", nil)
	assert.False(t, g.AuthorizeRequest(r, types.PermRosterExtended))
	r.Header.Set(TokenHeader, "garbage")
	assert.False(t, g.AuthorizeRequest(r, types.PermRosterExtended))

	require.Equal(t, 2, logs.Len())
	for _, e := range logs.All() {
		assert.Equal(t, zapcore.InfoLevel, e.Level)
	}

	r.Header.Set(TokenHeader, issue(t, ks, types.PermRosterExtended))
	assert.True(t, g.AuthorizeRequest(r, types.PermRosterExtended))
}
