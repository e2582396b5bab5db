// Package middleware provides the HTTP middleware chain in front of the
// contact form: client address resolution, request ids, access logging,
// panic recovery, security headers, CORS and per-IP rate limiting.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
)

type contextKey string

const (
	// RequestIDKey is the context key for the request ID.
	RequestIDKey contextKey = "request_id"
	// ClientIPKey is the context key for the address resolved by RealIP.
	ClientIPKey contextKey = "client_ip"
)

// GetRequestID retrieves the request ID from context.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// GetClientIP retrieves the client address resolved by RealIP.
func GetClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(ClientIPKey).(string); ok {
		return ip
	}
	return ""
}

// clientAddr is GetClientIP with a fallback for routes mounted without RealIP.
func clientAddr(r *http.Request) string {
	if ip := GetClientIP(r.Context()); ip != "" {
		return ip
	}
	return remoteHost(r.RemoteAddr)
}

type failure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// writeFailure writes the {"success":false,"message":...} envelope that every
// error response of the service shares.
func writeFailure(w http.ResponseWriter, status int, message string) {
	body, _ := json.Marshal(failure{Message: message})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
