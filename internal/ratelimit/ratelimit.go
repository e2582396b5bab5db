// Package ratelimit implements fixed-window request limits keyed by client.
//
// Two limiters are provided: Memory, for a single process, and Redis, for
// counters shared between replicas. Both count every request inside a window
// and reject once the count exceeds the limit; the window resets a fixed
// period after its first request.
package ratelimit

import (
	"context"
	"time"
)

// Result contains the outcome of a rate limit check.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (*Result, error)
}

func newResult(limit, count int, resetAt, now time.Time) *Result {
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	res := &Result{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
	if !res.Allowed {
		res.RetryAfter = resetAt.Sub(now)
		if res.RetryAfter < time.Second {
			res.RetryAfter = time.Second
		}
	}
	return res
}
