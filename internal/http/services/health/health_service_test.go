package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dropDatabas3/menahq/internal/store/memory"
)

func TestLive(t *testing.T) {
	resp := NewHealthService(Deps{}).Live(context.Background())
	assert.Equal(t, StatusOK, resp.Status)
}

func TestReadyOK(t *testing.T) {
	resp := NewHealthService(Deps{Pool: memory.New(), ActiveKID: "kid-1"}).Ready(context.Background())
	assert.Equal(t, StatusOK, resp.Status)
	assert.Equal(t, StatusOK, resp.Components["database"].Status)
	assert.Equal(t, "kid-1", resp.ActiveKeyID)
}

func TestReadyDatabaseDown(t *testing.T) {
	s := memory.New()
	s.Fail(memory.OpPool, errors.New("refused"))
	resp := NewHealthService(Deps{Pool: s}).Ready(context.Background())
	assert.Equal(t, StatusUnavailable, resp.Status)
	assert.Contains(t, resp.Components["database"].Message, "refused")
}

func TestReadyRedisIsNotCritical(t *testing.T) {
	resp := NewHealthService(Deps{
		Pool:       memory.New(),
		RedisCheck: func(context.Context) error { return errors.New("no redis") },
	}).Ready(context.Background())
	assert.Equal(t, StatusOK, resp.Status)
	assert.Equal(t, "degraded", resp.Components["redis"].Status)
}
