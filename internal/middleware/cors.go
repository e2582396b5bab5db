package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig holds CORS configuration options.
type CORSConfig struct {
	// AllowedOrigins lists exact origins ("https://ranazonai.in"), subdomain
	// patterns ("https://*.ranazonai.in") or "*" for any origin. "*" is
	// ignored when AllowCredentials is set.
	AllowedOrigins []string

	AllowedMethods []string
	AllowedHeaders []string
	// ExposedHeaders lets browser code read the rate limit headers.
	ExposedHeaders []string

	AllowCredentials bool

	// MaxAge is the preflight cache lifetime in seconds; 0 omits the header.
	MaxAge int
}

// DefaultCORSConfig returns the settings for a browser-submitted contact
// form. Origins are left empty and come from CORS_ALLOWED_ORIGINS.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept", "Accept-Language", RequestIDHeader},
		ExposedHeaders: []string{
			RequestIDHeader,
			"X-RateLimit-Limit",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
			"Retry-After",
		},
		MaxAge: 600,
	}
}

// originPolicy is AllowedOrigins compiled once at startup.
type originPolicy struct {
	any      bool
	exact    map[string]bool
	suffixes []string // "scheme://.domain" for "scheme://*.domain" patterns
}

func compileOrigins(origins []string, allowCredentials bool) originPolicy {
	p := originPolicy{exact: make(map[string]bool, len(origins))}
	for _, o := range origins {
		o = strings.ToLower(strings.TrimSpace(o))
		switch {
		case o == "*":
			p.any = !allowCredentials
		case strings.Contains(o, "://*."):
			p.suffixes = append(p.suffixes, strings.Replace(o, "://*.", "://.", 1))
		case o != "":
			p.exact[o] = true
		}
	}
	return p
}

func (p originPolicy) allows(origin string) bool {
	if p.any {
		return true
	}
	origin = strings.ToLower(origin)
	if p.exact[origin] {
		return true
	}
	for _, s := range p.suffixes {
		// s is "https://.example.com"; require at least one subdomain label.
		scheme, domain, _ := strings.Cut(s, "://")
		rest, ok := strings.CutPrefix(origin, scheme+"://")
		if ok && strings.HasSuffix(rest, domain) && len(rest) > len(domain) {
			return true
		}
	}
	return false
}

// CORS answers preflight requests itself and decorates allowed cross-origin
// responses. Requests from disallowed origins still reach the handler
// without CORS headers, so the browser withholds the response.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	policy := compileOrigins(cfg.AllowedOrigins, cfg.AllowCredentials)
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	exposed := strings.Join(cfg.ExposedHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			preflight := r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
			h := w.Header()
			h.Add("Vary", "Origin")

			if !policy.allows(origin) {
				if preflight {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			h.Set("Access-Control-Allow-Origin", origin)
			if cfg.AllowCredentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			if exposed != "" {
				h.Set("Access-Control-Expose-Headers", exposed)
			}

			if !preflight {
				next.ServeHTTP(w, r)
				return
			}

			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Headers", headers)
			if cfg.MaxAge > 0 {
				h.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
			}
			w.WriteHeader(http.StatusNoContent)
		})
	}
}
