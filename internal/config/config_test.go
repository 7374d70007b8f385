package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("MENAHQ_API_VATSIM_OAUTH_ENDPOINT", "https://auth.vatsim.net/")
	t.Setenv("MENAHQ_API_VATSIM_OAUTH_CLIENT_ID", "42")
	t.Setenv("MENAHQ_API_VATSIM_OAUTH_CLIENT_SECRET", "secret")
	t.Setenv("MENAHQ_API_JWT_KEY", "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=")
	t.Setenv("DATABASE_URL", "postgres://hq:hq@localhost:5432/hq")
}

func TestDefaults(t *testing.T) {
	setRequired(t)
	c, err := Load("")
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, ":8080", c.Server.Addr)
	assert.Equal(t, "dev", c.App.Env)
	assert.Equal(t, "postgres", c.Storage.Driver)
	assert.Equal(t, "https://auth.vatsim.net", c.Vatsim.Endpoint)
	assert.Equal(t, 24*time.Hour, c.JWT.TTL)
	assert.Equal(t, "menahq", c.JWT.Issuer)
	assert.Equal(t, 20, c.Rate.Login.Limit)
	assert.Equal(t, 30*time.Second, c.Roster.CacheTTL)
	assert.Equal(t, 10*time.Second, c.Vatsim.Timeout)
}

func TestValidateListsEveryMissingKey(t *testing.T) {
	for _, k := range []string{
		"MENAHQ_API_VATSIM_OAUTH_ENDPOINT", "MENAHQ_API_VATSIM_OAUTH_CLIENT_ID",
		"MENAHQ_API_VATSIM_OAUTH_CLIENT_SECRET", "MENAHQ_API_JWT_KEY", "DATABASE_URL", "STORAGE_DSN",
		"STORAGE_DRIVER",
	} {
		t.Setenv(k, "")
	}
	err := FromEnv().Validate()
	require.Error(t, err)
	for _, k := range []string{
		"MENAHQ_API_VATSIM_OAUTH_ENDPOINT", "MENAHQ_API_VATSIM_OAUTH_CLIENT_ID",
		"MENAHQ_API_VATSIM_OAUTH_CLIENT_SECRET", "MENAHQ_API_JWT_KEY", "DATABASE_URL",
	} {
		assert.Contains(t, err.Error(), k)
	}
}

func TestMemoryDriverDoesNotNeedDSN(t *testing.T) {
	setRequired(t)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("STORAGE_DSN", "")
	t.Setenv("STORAGE_DRIVER", "memory")
	c := FromEnv()
	require.NoError(t, c.Validate())
	assert.False(t, c.UsesPostgres())
}

func TestYAMLThenEnv(t *testing.T) {
	setRequired(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
jwt:
  ttl: 2h
rate:
  login:
    limit: 5
`), 0o600))
	t.Setenv("RATE_LOGIN_LIMIT", "7")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", c.Server.Addr)
	assert.Equal(t, 2*time.Hour, c.JWT.TTL)
	assert.Equal(t, 7, c.Rate.Login.Limit)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.NoError(t, err)
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	setRequired(t)
	t.Setenv("STORAGE_DRIVER", "mongo")
	assert.Error(t, FromEnv().Validate())
}
