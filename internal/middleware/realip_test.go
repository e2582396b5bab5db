package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name        string
		remoteAddr  string
		xff         []string
		trustedHops int
		want        string
	}{
		{
			name:        "no proxy header uses connection address",
			remoteAddr:  "192.0.2.10:41000",
			trustedHops: 1,
			want:        "192.0.2.10",
		},
		{
			name:        "single hop takes rightmost entry",
			remoteAddr:  "10.0.0.1:41000",
			xff:         []string{"1.1.1.1, 198.51.100.7"},
			trustedHops: 1,
			want:        "198.51.100.7",
		},
		{
			name:        "two hops skip the inner proxy",
			remoteAddr:  "10.0.0.1:41000",
			xff:         []string{"198.51.100.7, 10.0.0.2"},
			trustedHops: 2,
			want:        "198.51.100.7",
		},
		{
			name:        "repeated headers are joined",
			remoteAddr:  "10.0.0.1:41000",
			xff:         []string{"1.1.1.1", "198.51.100.8"},
			trustedHops: 1,
			want:        "198.51.100.8",
		},
		{
			name:        "more hops than entries clamps to leftmost",
			remoteAddr:  "10.0.0.1:41000",
			xff:         []string{"198.51.100.9"},
			trustedHops: 3,
			want:        "198.51.100.9",
		},
		{
			name:        "zero hops ignores header",
			remoteAddr:  "192.0.2.10:41000",
			xff:         []string{"198.51.100.7"},
			trustedHops: 0,
			want:        "192.0.2.10",
		},
		{
			name:        "garbage entry falls back to connection",
			remoteAddr:  "192.0.2.10:41000",
			xff:         []string{"not-an-ip"},
			trustedHops: 1,
			want:        "192.0.2.10",
		},
		{
			name:        "ipv6 connection address",
			remoteAddr:  "[2001:db8::1]:41000",
			trustedHops: 1,
			want:        "2001:db8::1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for _, v := range tt.xff {
				req.Header.Add("X-Forwarded-For", v)
			}

			if got := clientIP(req, tt.trustedHops); got != tt.want {
				t.Errorf("clientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRealIP_StoresAddressInContext(t *testing.T) {
	var got string
	handler := RealIP(1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetClientIP(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.50")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != "203.0.113.50" {
		t.Errorf("GetClientIP() = %q, want 203.0.113.50", got)
	}
}

func TestRemoteHost(t *testing.T) {
	if got := remoteHost(""); got != "unknown" {
		t.Errorf("remoteHost(\"\") = %q, want unknown", got)
	}
	if got := remoteHost("pipe"); got != "pipe" {
		t.Errorf("remoteHost(pipe) = %q", got)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	tests := []struct {
		name   string
		header string
		reuse  bool
	}{
		{"caller id", "abc-123", true},
		{"dotted id", "edge.7_f", true},
		{"missing", "", false},
		{"oversized", strings.Repeat("a", maxRequestIDLength+1), false},
		{"log injection", `x" level=ERROR msg="forged`, false},
		{"newline", "abc\ndef", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(RequestIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if tt.reuse && seen != tt.header {
				t.Errorf("expected caller id %q to be reused, got %q", tt.header, seen)
			}
			if !tt.reuse && len(seen) != 36 {
				t.Errorf("expected generated uuid, got %q", seen)
			}
			if rec.Header().Get(RequestIDHeader) != seen {
				t.Errorf("response header %q does not match context id %q", rec.Header().Get(RequestIDHeader), seen)
			}
		})
	}
}
