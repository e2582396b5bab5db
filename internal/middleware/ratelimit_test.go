package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ranazonai/enquiry-relay/internal/metrics"
	"github.com/ranazonai/enquiry-relay/internal/ratelimit"
)

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (*ratelimit.Result, error) {
	return nil, errors.New("redis: connection refused")
}

func newRateLimitedHandler(cfg RateLimitConfig, calls *int) http.Handler {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.WriteHeader(http.StatusOK)
	})
	return RealIP(1)(RateLimit(cfg)(inner))
}

func TestRateLimit_FifthRequestRejected(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	rec := metrics.NewInMemory()
	calls := 0

	handler := newRateLimitedHandler(RateLimitConfig{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Limiter:  ratelimit.NewMemory(4, time.Minute, ratelimit.WithClock(func() time.Time { return now })),
		Recorder: rec,
		Enabled:  true,
	}, &calls)

	for i := 1; i <= 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/send-email", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		req.Header.Set("X-Forwarded-For", "198.51.100.23")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if i <= 4 {
			if w.Code != http.StatusOK {
				t.Fatalf("request %d: status = %d, want 200", i, w.Code)
			}
			continue
		}

		if w.Code != http.StatusTooManyRequests {
			t.Fatalf("request %d: status = %d, want 429", i, w.Code)
		}
		if got := w.Body.String(); got != `{"success":false,"message":"Too many requests. Please try again shortly."}` {
			t.Errorf("body = %s", got)
		}
		if got := w.Header().Get("Retry-After"); got != "60" {
			t.Errorf("Retry-After = %q, want 60", got)
		}
		if got := w.Header().Get("X-RateLimit-Remaining"); got != "0" {
			t.Errorf("X-RateLimit-Remaining = %q, want 0", got)
		}
	}

	if calls != 4 {
		t.Errorf("handler invoked %d times, want 4", calls)
	}
	if got := rec.Snapshot().RateLimited; got != 1 {
		t.Errorf("rate limited counter = %d, want 1", got)
	}
}

func TestRateLimit_KeysByClientIP(t *testing.T) {
	calls := 0
	handler := newRateLimitedHandler(RateLimitConfig{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Limiter: ratelimit.NewMemory(1, time.Minute),
		Enabled: true,
	}, &calls)

	for _, ip := range []string{"198.51.100.1", "198.51.100.2"} {
		req := httptest.NewRequest(http.MethodPost, "/send-email", nil)
		req.Header.Set("X-Forwarded-For", ip)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("ip %s: status = %d, want 200", ip, w.Code)
		}
		if got := w.Header().Get("X-RateLimit-Limit"); got != "1" {
			t.Errorf("X-RateLimit-Limit = %q, want 1", got)
		}
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	var buf bytes.Buffer
	calls := 0
	handler := newRateLimitedHandler(RateLimitConfig{
		Logger:  slog.New(slog.NewJSONHandler(&buf, nil)),
		Limiter: failingLimiter{},
		Enabled: true,
	}, &calls)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/send-email", nil))

	if w.Code != http.StatusOK || calls != 1 {
		t.Fatalf("status = %d calls = %d, want pass-through", w.Code, calls)
	}
	if !bytes.Contains(buf.Bytes(), []byte("rate limit check failed")) {
		t.Errorf("expected failure to be logged, got %s", buf.String())
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	calls := 0
	handler := newRateLimitedHandler(RateLimitConfig{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Limiter: ratelimit.NewMemory(1, time.Minute),
		Enabled: false,
	}, &calls)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/send-email", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryAfterSeconds(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want int64
	}{
		{0, 1},
		{500 * time.Millisecond, 1},
		{time.Second, 1},
		{1500 * time.Millisecond, 2},
		{time.Minute, 60},
	}
	for _, tt := range tests {
		if got := retryAfterSeconds(tt.in); got != tt.want {
			t.Errorf("retryAfterSeconds(%s) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
