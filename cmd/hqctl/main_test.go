package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/menahq/internal/config"
	"github.com/dropDatabas3/menahq/internal/domain/types"
	jwtx "github.com/dropDatabas3/menahq/internal/jwt"
	"github.com/dropDatabas3/menahq/internal/store"
	"github.com/dropDatabas3/menahq/internal/store/memory"
)

func newTestApp(t *testing.T) (*app, *memory.Store, *bytes.Buffer) {
	t.Helper()
	mem := memory.New()
	out := &bytes.Buffer{}
	a := &app{
		out: out,
		open: func(*config.Config) (*store.Opened, error) {
			return &store.Opened{Provider: mem, Close: func() error { return nil }, Memory: mem}, nil
		},
	}
	return a, mem, out
}

func run(t *testing.T, a *app, args ...string) error {
	t.Helper()
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestRolesSeedFromFile(t *testing.T) {
	a, mem, out := newTestApp(t)
	path := filepath.Join(t.TempDir(), "roles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
roles:
  - id: member
    name: Member
  - id: staff
    name: Staff
    permissions: [division.roster.extended, division.events.manage]
`), 0o600))

	require.NoError(t, run(t, a, "roles", "seed", "-f", path))
	assert.Contains(t, out.String(), "upserted staff (2 permissions)")

	staff, err := mem.Roles().Find(context.Background(), "staff")
	require.NoError(t, err)
	assert.True(t, staff.Has(types.PermRosterExtended))
	member, err := mem.Roles().Find(context.Background(), "member")
	require.NoError(t, err)
	assert.NotNil(t, member.Permissions)

	out.Reset()
	require.NoError(t, run(t, a, "roles", "list"))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[2], "division.roster.extended,division.events.manage")
}

func TestRolesSeedDefaults(t *testing.T) {
	a, mem, _ := newTestApp(t)
	require.NoError(t, run(t, a, "roles", "seed"))
	r, err := mem.Roles().Find(context.Background(), types.RoleControllerID)
	require.NoError(t, err)
	assert.Equal(t, []string{types.PermRosterExtended}, r.Permissions)
	assert.Zero(t, mem.Outstanding())
}

func TestParseRolesRejectsBadInput(t *testing.T) {
	_, err := parseRoles([]byte(`roles: []`))
	assert.Error(t, err)
	_, err = parseRoles([]byte("roles:\n  - name: x\n"))
	assert.Error(t, err)
	_, err = parseRoles([]byte("roles:\n  - id: a\n  - id: a\n"))
	assert.Error(t, err)
	_, err = parseRoles([]byte(`roles: [`))
	assert.Error(t, err)
}

func TestKeysGenerateProducesUsableKey(t *testing.T) {
	a, _, out := newTestApp(t)
	require.NoError(t, run(t, a, "keys", "generate"))

	text := out.String()
	require.True(t, strings.HasPrefix(text, "# kid: "))
	pem := text[strings.Index(text, "\n")+1:]
	ks, err := jwtx.ParseKeySet(pem)
	require.NoError(t, err)
	assert.Contains(t, text, ks.KID)
}

func TestTokenInspect(t *testing.T) {
	ks, err := jwtx.GenerateKeySet()
	require.NoError(t, err)
	pem, err := ks.PrivatePEM()
	require.NoError(t, err)
	t.Setenv("MENAHQ_API_JWT_KEY", string(pem))
	t.Setenv("JWT_ISSUER", "menahq")

	tok, _, err := jwtx.NewIssuer("menahq", ks, time.Hour).Issue(
		types.User{ID: "999", Role: types.RoleControllerID},
		types.Role{ID: types.RoleControllerID, Permissions: []string{types.PermRosterExtended}},
	)
	require.NoError(t, err)

	a, _, out := newTestApp(t)
	require.NoError(t, run(t, a, "token", "inspect", tok))
	assert.Contains(t, out.String(), `"sub": "999"`)
	assert.Contains(t, out.String(), types.PermRosterExtended)

	assert.Error(t, run(t, a, "token", "inspect", tok+"x"))
}

func TestSchemaPrintsEmbeddedSQL(t *testing.T) {
	a, _, out := newTestApp(t)
	require.NoError(t, run(t, a, "schema"))
	assert.Contains(t, out.String(), "-- 0001_init.sql")
	assert.Contains(t, out.String(), "CREATE TABLE IF NOT EXISTS audit_log")
}

func TestAuditList(t *testing.T) {
	a, mem, out := newTestApp(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, mem.AuditLog().Append(ctx, &types.AuditLogEntry{
		ID: "02", Timestamp: base.Add(time.Second), Actor: "999", Item: types.UserItem("999"), Message: "Logged in on new session",
	}))
	require.NoError(t, mem.AuditLog().Append(ctx, &types.AuditLogEntry{
		ID: "01", Timestamp: base, Actor: types.ActorSystem, Item: types.UserItem("999"), Message: "Created new user",
	}))
	require.NoError(t, mem.AuditLog().Append(ctx, &types.AuditLogEntry{
		ID: "03", Timestamp: base, Actor: "1", Item: types.UserItem("1"), Message: "Logged in on new session",
	}))

	require.NoError(t, run(t, a, "audit", "list", "999"))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "Created new user")
	assert.Contains(t, lines[2], "Logged in on new session")
	assert.Zero(t, mem.Outstanding())

	out.Reset()
	require.NoError(t, run(t, a, "audit", "list", "--json", "1"))
	assert.Contains(t, out.String(), `"id": "03"`)
}
