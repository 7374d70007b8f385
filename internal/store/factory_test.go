package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	o, err := Open(Config{Driver: "memory"})
	require.NoError(t, err)
	assert.NotNil(t, o.Memory)

	var cfg Config
	cfg.Driver = "postgres"
	cfg.DSN = "postgres://hq:hq@localhost:5432/hq"
	cfg.Postgres.ConnMaxLifetime = "5m"
	o, err = Open(cfg)
	require.NoError(t, err)
	assert.Nil(t, o.Memory)
	require.NoError(t, o.Close())

	_, err = Open(Config{Driver: "mongo"})
	assert.Error(t, err)

	_, err = Open(Config{Driver: "pg"})
	assert.Error(t, err)
}
