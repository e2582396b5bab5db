package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/ranazonai/enquiry-relay/internal/config"
	"github.com/ranazonai/enquiry-relay/internal/handler"
	"github.com/ranazonai/enquiry-relay/internal/metrics"
	"github.com/ranazonai/enquiry-relay/internal/middleware"
	"github.com/ranazonai/enquiry-relay/internal/ratelimit"
)

type routerDeps struct {
	cfg         *config.Config
	logger      *slog.Logger
	limiter     ratelimit.Limiter
	recorder    metrics.Recorder
	info        *handler.Handler
	health      *handler.HealthHandler
	metrics     *handler.MetricsHandler
	submissions *handler.SubmissionHandler
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(d routerDeps) *chi.Mux {
	r := chi.NewRouter()

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = d.cfg.GetCORSAllowedOrigins()

	// Global middleware
	r.Use(middleware.RealIP(d.cfg.TrustedProxyHops))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.logger))
	r.Use(middleware.Recoverer(d.logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: d.cfg.IsDevelopment()}))
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.MaxBodySize(d.cfg.MaxRequestBodySize))

	// Health and info endpoints
	r.Get("/healthz", d.health.Healthz)
	r.Get("/readyz", d.health.Readyz)
	r.Get("/metrics", d.metrics.Metrics)
	r.Get("/", d.info.Hello)

	// Contact form, rate limited per client IP
	rateLimit := middleware.RateLimit(middleware.RateLimitConfig{
		Logger:   d.logger,
		Limiter:  d.limiter,
		Recorder: d.recorder,
		Enabled:  d.cfg.RateLimitEnabled,
	})
	r.With(rateLimit).Post("/send-email", d.submissions.SendEmail)

	// 404 and 405 handlers
	r.NotFound(d.info.NotFound)
	r.MethodNotAllowed(d.info.MethodNotAllowed)

	return r
}
