package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix is the Redis key prefix for submission rate limits.
const DefaultRedisPrefix = "ratelimit:submit:"

// fixedWindowScript increments the window counter and starts the window
// expiry on the first hit. Returns {count, pttl_ms}.
var fixedWindowScript = redis.NewScript(`
	local key = KEYS[1]
	local window_ms = tonumber(ARGV[1])

	local count = redis.call('INCR', key)
	if count == 1 then
		redis.call('PEXPIRE', key, window_ms)
	end

	local ttl = redis.call('PTTL', key)
	if ttl < 0 then
		-- key lost its expiry; restart the window
		redis.call('PEXPIRE', key, window_ms)
		ttl = window_ms
	end

	return {count, ttl}
`)

// Redis is a fixed-window limiter whose counters live in Redis,
// so every replica behind the proxy shares them.
type Redis struct {
	client redis.Scripter
	limit  int
	period time.Duration
	prefix string
	salt   string
}

// RedisOption configures a Redis limiter.
type RedisOption func(*Redis)

// WithPrefix overrides the key prefix.
func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) { r.prefix = prefix }
}

// WithKeySalt keys the client hash so stored keys cannot be reversed by
// hashing candidate IPs.
func WithKeySalt(salt string) RedisOption {
	return func(r *Redis) { r.salt = salt }
}

// NewRedis creates a limiter allowing limit requests per period per key.
func NewRedis(client redis.Scripter, limit int, period time.Duration, opts ...RedisOption) *Redis {
	r := &Redis{
		client: client,
		limit:  limit,
		period: period,
		prefix: DefaultRedisPrefix,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Allow records one request for key and reports whether it fits the window.
// Raw client addresses are never stored; the key is hashed first.
func (r *Redis) Allow(ctx context.Context, key string) (*Result, error) {
	now := time.Now()

	vals, err := fixedWindowScript.Run(ctx, r.client,
		[]string{r.redisKey(key)},
		r.period.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("rate limit script: %w", err)
	}
	if len(vals) != 2 {
		return nil, fmt.Errorf("rate limit script: unexpected reply length %d", len(vals))
	}

	count := int(vals[0])
	resetAt := now.Add(time.Duration(vals[1]) * time.Millisecond)

	return newResult(r.limit, count, resetAt, now), nil
}

func (r *Redis) redisKey(key string) string {
	return r.prefix + HashKey(key, r.salt)
}
