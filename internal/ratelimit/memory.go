package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process fixed-window limiter.
// Counters are guarded by a single mutex so concurrent requests from the
// same key are counted exactly.
type Memory struct {
	mu           sync.Mutex
	windows      map[string]*window
	limit        int
	period       time.Duration
	cleanupEvery time.Duration
	now          func() time.Time
}

type window struct {
	start time.Time
	count int
}

// MemoryOption configures a Memory limiter.
type MemoryOption func(*Memory)

// WithClock overrides the time source.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

// WithCleanupEvery sets how often the janitor evicts expired windows.
func WithCleanupEvery(d time.Duration) MemoryOption {
	return func(m *Memory) { m.cleanupEvery = d }
}

// NewMemory creates a limiter allowing limit requests per period per key.
func NewMemory(limit int, period time.Duration, opts ...MemoryOption) *Memory {
	m := &Memory{
		windows:      make(map[string]*window),
		limit:        limit,
		period:       period,
		cleanupEvery: 2 * time.Minute,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Allow records one request for key and reports whether it fits the window.
func (m *Memory) Allow(_ context.Context, key string) (*Result, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[key]
	if !ok || !now.Before(w.start.Add(m.period)) {
		w = &window{start: now}
		m.windows[key] = w
	}
	w.count++

	return newResult(m.limit, w.count, w.start.Add(m.period), now), nil
}

// Cleanup evicts windows that have already expired.
func (m *Memory) Cleanup() {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	for k, w := range m.windows {
		if !now.Before(w.start.Add(m.period)) {
			delete(m.windows, k)
		}
	}
}

// Len returns the number of tracked keys.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.windows)
}

// StartJanitor evicts expired windows periodically until ctx is done.
func (m *Memory) StartJanitor(ctx context.Context) {
	if m.cleanupEvery <= 0 {
		return
	}

	t := time.NewTicker(m.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				m.Cleanup()
			}
		}
	}()
}
