// Package ids genera identificadores únicos ordenables por tiempo.
package ids

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// New retorna un ULID nuevo. Dentro del mismo milisegundo los ids son
// estrictamente crecientes, así que el orden lexicográfico sigue al temporal.
func New() string {
	return NewAt(time.Now())
}

// NewAt retorna un ULID con el timestamp dado.
func NewAt(t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}
