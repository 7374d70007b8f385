// Package cache define el cache TTL en proceso que usan los servicios de lectura.
package cache

import "time"

// Cache guarda bytes por clave. Un TTL de 0 usa el default del backend.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
	Delete(key string)
}
