package memory

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/dropDatabas3/menahq/internal/cache"
)

type Mem struct{ c *gocache.Cache }

var _ cache.Cache = (*Mem)(nil)

// New crea un cache en memoria; la limpieza de expirados corre cada minuto.
func New(defaultTTL time.Duration) *Mem {
	return &Mem{c: gocache.New(defaultTTL, time.Minute)}
}

func (m *Mem) Get(k string) ([]byte, bool) {
	v, ok := m.c.Get(k)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

func (m *Mem) Set(k string, v []byte, ttl time.Duration) {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	m.c.Set(k, v, ttl)
}

func (m *Mem) Delete(k string) { m.c.Delete(k) }
