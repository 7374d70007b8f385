package rate

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryLimiter es el fallback de un solo proceso cuando no hay REDIS_ADDR.
type MemoryLimiter struct {
	c      *gocache.Cache
	Max    int64
	Window time.Duration
	now    func() time.Time
}

func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		c:      gocache.New(window, 2*window),
		Max:    int64(max),
		Window: window,
		now:    time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	k, left := windowKey("", key, l.Window, l.now().UTC())
	// Add falla si ya existe; en ese caso incrementamos.
	if err := l.c.Add(k, int64(1), l.Window); err == nil {
		return result(1, l.Max, left), nil
	}
	hits, err := l.c.IncrementInt64(k, 1)
	if err != nil {
		// expiró entre Add e Increment: arranca ventana nueva
		l.c.Set(k, int64(1), l.Window)
		hits = 1
	}
	return result(hits, l.Max, left), nil
}
