package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
)

// RealIP resolves the originating client address and stores it in the
// request context.
//
// trustedHops is the number of reverse proxies in front of the service.
// Each proxy appends the address it received the request from to
// X-Forwarded-For, so the client address is the entry trustedHops positions
// from the right. Entries further left are caller-controlled and ignored.
// With trustedHops == 0 the connection address is used as is.
func RealIP(trustedHops int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r, trustedHops)
			ctx := context.WithValue(r.Context(), ClientIPKey, ip)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func clientIP(r *http.Request, trustedHops int) string {
	if trustedHops > 0 {
		if xff := r.Header.Values("X-Forwarded-For"); len(xff) > 0 {
			var hops []string
			for _, line := range xff {
				for _, part := range strings.Split(line, ",") {
					if p := strings.TrimSpace(part); p != "" {
						hops = append(hops, p)
					}
				}
			}
			if len(hops) > 0 {
				idx := len(hops) - trustedHops
				if idx < 0 {
					idx = 0
				}
				if ip := net.ParseIP(hops[idx]); ip != nil {
					return ip.String()
				}
			}
		}
	}

	return remoteHost(r.RemoteAddr)
}

func remoteHost(addr string) string {
	addr = strings.TrimSpace(addr)
	if host, _, err := net.SplitHostPort(addr); err == nil && host != "" {
		return host
	}
	if addr != "" {
		return addr
	}
	return "unknown"
}
