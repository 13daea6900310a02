// Package cache define la abstracción de cache con backends memory y redis.
//
// Acá NUNCA se cachean permisos ni roles: la resolución de grants es fresca
// en cada request. El cache sirve para datos de display (catálogo de
// organizaciones) y contadores de rate limiting.
package cache

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("cache: not found")

type Cache interface {
	// Get retorna ErrNotFound si la key no existe o expiró.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set guarda con TTL; ttl 0 = sin expiración.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	Ping(ctx context.Context) error
	Close() error
}
