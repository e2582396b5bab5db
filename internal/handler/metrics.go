package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler exposes metrics in Prometheus exposition format.
type MetricsHandler struct {
	exporter http.Handler
}

// NewMetricsHandler creates a new MetricsHandler.
// A nil gatherer means metrics are disabled.
func NewMetricsHandler(gatherer prometheus.Gatherer) *MetricsHandler {
	h := &MetricsHandler{}
	if gatherer != nil {
		h.exporter = promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
	}
	return h
}

// Metrics serves the registry.
// GET /metrics
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.exporter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	h.exporter.ServeHTTP(w, r)
}
