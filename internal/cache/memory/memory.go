package memory

import (
	"context"
	"time"

	"github.com/dropDatabas3/peoplehub/internal/cache"
	gocache "github.com/patrickmn/go-cache"
)

// Mem implementa cache.Cache en memoria de proceso. Para desarrollo y tests.
type Mem struct {
	prefix string
	c      *gocache.Cache
}

func New(prefix string, defaultTTL time.Duration) *Mem {
	if defaultTTL <= 0 {
		defaultTTL = 2 * time.Minute
	}
	return &Mem{prefix: prefix, c: gocache.New(defaultTTL, time.Minute)}
}

func (m *Mem) key(k string) string {
	if m.prefix == "" {
		return k
	}
	return m.prefix + ":" + k
}

func (m *Mem) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.c.Get(m.key(key))
	if !ok {
		return nil, cache.ErrNotFound
	}
	b, _ := v.([]byte)
	return b, nil
}

func (m *Mem) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = gocache.NoExpiration
	}
	m.c.Set(m.key(key), value, ttl)
	return nil
}

func (m *Mem) Delete(_ context.Context, key string) error {
	m.c.Delete(m.key(key))
	return nil
}

func (m *Mem) Ping(context.Context) error { return nil }
func (m *Mem) Close() error               { return nil }

var _ cache.Cache = (*Mem)(nil)
