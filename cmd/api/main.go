// Package main is the entrypoint for the enquiry relay API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/api/option"

	"github.com/ranazonai/enquiry-relay/internal/cache"
	"github.com/ranazonai/enquiry-relay/internal/config"
	"github.com/ranazonai/enquiry-relay/internal/handler"
	"github.com/ranazonai/enquiry-relay/internal/mailer"
	"github.com/ranazonai/enquiry-relay/internal/metrics"
	"github.com/ranazonai/enquiry-relay/internal/ratelimit"
	"github.com/ranazonai/enquiry-relay/internal/repository"
	"github.com/ranazonai/enquiry-relay/internal/server"
	"github.com/ranazonai/enquiry-relay/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", sanitizeError(err,
			os.Getenv("DATABASE_URL"), os.Getenv("REDIS_URL"), os.Getenv("MAIL_PASSWORD"), os.Getenv("RESEND_API_KEY")))
		os.Exit(1)
	}

	logger := initLogger(cfg)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Metrics
	var (
		recorder metrics.Recorder = metrics.NewNoop()
		gatherer prometheus.Gatherer
	)
	if cfg.MetricsEnabled {
		prom := metrics.NewPrometheus()
		recorder, gatherer = prom, prom.Registry()
	}

	var shutdown []namedShutdown

	// Submission store
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if closeStore != nil {
		shutdown = append(shutdown, namedShutdown{"store", closeStore})
	}

	// Rate limiter
	var (
		limiter     ratelimit.Limiter
		redisHealth handler.HealthChecker
	)
	if cfg.RedisURL != "" {
		cacheClient, err := cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			return errors.New("redis unavailable")
		}
		logger.Info("connected to Redis")
		shutdown = append(shutdown, namedShutdown{"redis", func(context.Context) error { return cacheClient.Close() }})

		limiter = ratelimit.NewRedis(cacheClient.Client(), cfg.RateLimitRequests, cfg.RateLimitWindow,
			ratelimit.WithKeySalt(cfg.RateLimitKeySalt))
		redisHealth = cacheClient
	} else {
		mem := ratelimit.NewMemory(cfg.RateLimitRequests, cfg.RateLimitWindow)
		mem.StartJanitor(ctx)
		limiter = mem
	}

	// Mail
	transport, err := openTransport(cfg)
	if err != nil {
		return err
	}
	notifier := mailer.NewNotifier(transport, mailer.NotifierConfig{
		FromAddress:       cfg.Mail.Sender(),
		FromName:          cfg.Mail.FromName,
		InternalRecipient: cfg.Mail.Recipient(),
	})

	// Services and handlers
	submissions := service.NewSubmissionService(store, notifier, service.SubmissionConfig{
		Logger:       logger,
		Recorder:     recorder,
		StoreTimeout: cfg.Store.Timeout,
		MailTimeout:  cfg.Mail.Timeout,
	})

	r := setupRouter(routerDeps{
		cfg:         cfg,
		logger:      logger,
		limiter:     limiter,
		recorder:    recorder,
		info:        handler.New(),
		health:      handler.NewHealthHandler(store, redisHealth),
		metrics:     handler.NewMetricsHandler(gatherer),
		submissions: handler.NewSubmissionHandler(submissions, logger),
	})

	srv := server.New(r, server.Config{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)
	for _, s := range shutdown {
		srv.OnShutdown(s.name, s.fn)
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"store", cfg.Store.Backend,
		"mail_transport", transport.Name(),
		"rate_limit_backend", limiterBackend(cfg),
	)

	return srv.Run(ctx)
}

type namedShutdown struct {
	name string
	fn   server.ShutdownFunc
}

// openStore builds the configured submission store. The returned close
// function is nil for stores that hold no connections.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.Store, server.ShutdownFunc, error) {
	switch cfg.Store.Backend {
	case config.StoreSheets:
		store, err := repository.NewSheetsStore(ctx, cfg.Store.SpreadsheetID, cfg.Store.SheetName,
			option.WithCredentialsJSON([]byte(cfg.Store.CredentialsJSON)))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialise sheets store: %w", err)
		}
		logger.Info("using sheets store", "sheet", cfg.Store.SheetName)
		return store, nil, nil

	case config.StorePostgres:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		pool, err := repository.OpenPostgres(connectCtx, cfg.Store.DatabaseURL)
		if err != nil {
			logger.Error(
				"failed to connect to database",
				slog.String("error", sanitizeError(err, cfg.Store.DatabaseURL)),
				slog.String("database_url", redactURL(cfg.Store.DatabaseURL)),
			)
			return nil, nil, errors.New("database unavailable")
		}

		store, err := preparePostgresStore(connectCtx, pool, cfg.Store)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("connected to database", "table", cfg.Store.PostgresTable, "auto_migrate", cfg.Store.AutoMigrate)
		return store, func(context.Context) error { pool.Close(); return nil }, nil

	default:
		logger.Warn("using in-memory store; submissions are lost on restart")
		return repository.NewMemoryStore(), nil, nil
	}
}

// preparePostgresStore creates the table only when AutoMigrate is set, so a
// role without CREATE can run against a table made by scripts/init-schema.go.
func preparePostgresStore(ctx context.Context, db repository.DB, cfg config.StoreConfig) (*repository.PostgresStore, error) {
	store := repository.NewPostgresStore(db, cfg.PostgresTable)
	if !cfg.AutoMigrate {
		return store, nil
	}
	if err := store.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func openTransport(cfg *config.Config) (mailer.Transport, error) {
	if cfg.Mail.Transport == config.TransportResend {
		return mailer.NewResendTransport(cfg.Mail.ResendAPIKey, nil), nil
	}

	t, err := mailer.NewSMTPTransport(mailer.SMTPConfig{
		Host:     cfg.Mail.SMTPHost,
		Port:     cfg.Mail.SMTPPort,
		Security: cfg.Mail.SMTPSecurity,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		Timeout:  cfg.Mail.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialise smtp transport: %w", err)
	}
	return t, nil
}

func limiterBackend(cfg *config.Config) string {
	if !cfg.RateLimitEnabled {
		return "disabled"
	}
	if cfg.RedisURL != "" {
		return "redis"
	}
	return "memory"
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
