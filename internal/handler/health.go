package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const readyTimeout = 3 * time.Second

// HealthChecker is implemented by every dependency /readyz probes.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	checks map[string]HealthChecker
}

// NewHealthHandler probes the submission store and, when counters are
// shared, Redis. A nil cache is reported as "not configured".
func NewHealthHandler(store, cache HealthChecker) *HealthHandler {
	return &HealthHandler{checks: map[string]HealthChecker{
		"store": store,
		"redis": cache,
	}}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthz reports that the process is serving. It never touches dependencies.
//
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz pings every dependency concurrently. Failure details go to the log,
// not the response, since the endpoint is public.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]string, len(h.checks))
		healthy = true
	)

	for name, c := range h.checks {
		if c == nil {
			results[name] = "not configured"
			continue
		}

		wg.Add(1)
		go func(name string, c HealthChecker) {
			defer wg.Done()

			status := "ok"
			if err := c.Ping(ctx); err != nil {
				slog.WarnContext(ctx, "readiness check failed", "check", name, "error", err)
				status = "unavailable"
			}

			mu.Lock()
			defer mu.Unlock()
			results[name] = status
			if status != "ok" {
				healthy = false
			}
		}(name, c)
	}
	wg.Wait()

	if !healthy {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy", Checks: results})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Checks: results})
}
