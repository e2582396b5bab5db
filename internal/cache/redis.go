// Package cache holds the optional Redis connection that backs shared
// rate-limit counters when more than one replica serves /send-email.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dialTimeout = 3 * time.Second
	ioTimeout   = 500 * time.Millisecond
	pingTimeout = 2 * time.Second
)

// Cache wraps the Redis client and satisfies the readiness checker.
type Cache struct {
	client *redis.Client
}

// Options parses redisURL and tunes the pool for small, latency-bound
// counter scripts. Explicit timeouts in the URL win over the defaults.
func Options(redisURL string) (*redis.Options, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	if opt.DialTimeout == 0 {
		opt.DialTimeout = dialTimeout
	}
	if opt.ReadTimeout == 0 {
		opt.ReadTimeout = ioTimeout
	}
	if opt.WriteTimeout == 0 {
		opt.WriteTimeout = ioTimeout
	}
	opt.PoolSize = 8
	opt.MinIdleConns = 1
	opt.PoolTimeout = time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	return opt, nil
}

// New connects to Redis and fails unless the first PING succeeds.
func New(ctx context.Context, redisURL string) (*Cache, error) {
	opt, err := Options(redisURL)
	if err != nil {
		return nil, err
	}

	c := &Cache{client: redis.NewClient(opt)}
	if err := c.Ping(ctx); err != nil {
		_ = c.client.Close()
		return nil, err
	}

	return c, nil
}

// NewFromClient wraps an existing client, e.g. a redismock one.
func NewFromClient(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Ping reports whether Redis answers within pingTimeout.
func (c *Cache) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}

// Client exposes the client for the rate limiter's scripts.
func (c *Cache) Client() *redis.Client {
	return c.client
}
