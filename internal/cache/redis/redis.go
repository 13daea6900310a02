package redis

import (
	"context"
	"errors"
	"time"

	"github.com/dropDatabas3/peoplehub/internal/cache"
	rdb "github.com/redis/go-redis/v9"
)

// Client implementa cache.Cache sobre Redis. Para despliegues multi-réplica.
type Client struct {
	prefix string
	c      *rdb.Client
}

type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

func New(cfg Config) *Client {
	return &Client{
		prefix: cfg.Prefix,
		c: rdb.NewClient(&rdb.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

// Raw expone el cliente subyacente (lo usa el rate limiter).
func (c *Client) Raw() *rdb.Client { return c.c }

func (c *Client) key(k string) string {
	if c.prefix == "" {
		return k
	}
	return c.prefix + ":" + k
}

func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.c.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, rdb.Nil) {
			return nil, cache.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.c.Set(ctx, c.key(key), value, ttl).Err()
}

func (c *Client) Delete(ctx context.Context, key string) error {
	return c.c.Del(ctx, c.key(key)).Err()
}

func (c *Client) Ping(ctx context.Context) error { return c.c.Ping(ctx).Err() }
func (c *Client) Close() error                   { return c.c.Close() }

var _ cache.Cache = (*Client)(nil)
