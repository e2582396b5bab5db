// Package config provides application configuration management.
// Configuration is loaded once from environment variables and passed down explicitly.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/ranazonai/enquiry-relay/internal/mailer"
)

// Store backends.
const (
	StoreSheets   = "sheets"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Mail transports.
const (
	TransportSMTP   = "smtp"
	TransportResend = "resend"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"PORT" envDefault:"3000"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Comma-separated list of allowed origins; "*" allows any origin.
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`

	// Number of reverse proxies in front of the service whose
	// X-Forwarded-For entries are trusted.
	TrustedProxyHops int `env:"TRUSTED_PROXY_HOPS" envDefault:"1"`

	// Rate limiting (submission endpoint only)
	RateLimitEnabled  bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitRequests int           `env:"RATE_LIMIT_REQUESTS" envDefault:"4"`
	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"60s"`
	RateLimitKeySalt  string        `env:"RATE_LIMIT_KEY_SALT" envDefault:""`

	// Optional Redis for shared rate-limit counters. Empty means in-memory.
	RedisURL string `env:"REDIS_URL" envDefault:""`

	// Metrics
	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`

	Store StoreConfig
	Mail  MailConfig
}

// StoreConfig configures the submission log.
type StoreConfig struct {
	Backend string        `env:"STORE_BACKEND" envDefault:"sheets"`
	Timeout time.Duration `env:"STORE_TIMEOUT" envDefault:"10s"`

	SpreadsheetID   string `env:"SHEETS_SPREADSHEET_ID" envDefault:"1FJT6weANfRF9cirFM9-dD3KOy3r_mVy0f1YwMlSsAqg"`
	SheetName       string `env:"SHEETS_SHEET_NAME" envDefault:"Sheet1"`
	CredentialsJSON string `env:"GOOGLE_CREDENTIALS_JSON" envDefault:""`

	DatabaseURL   string `env:"DATABASE_URL" envDefault:""`
	PostgresTable string `env:"POSTGRES_TABLE" envDefault:"submissions"`
	// AutoMigrate creates the table at startup. Turn it off when the
	// service role lacks CREATE and scripts/init-schema.go ran instead.
	AutoMigrate bool `env:"POSTGRES_AUTO_MIGRATE" envDefault:"true"`
}

// MailConfig configures outbound mail.
type MailConfig struct {
	Transport string        `env:"MAIL_TRANSPORT" envDefault:"smtp"`
	Timeout   time.Duration `env:"MAIL_TIMEOUT" envDefault:"15s"`

	SMTPHost     string `env:"SMTP_HOST" envDefault:"smtp.hostinger.com"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"465"`
	SMTPSecurity string `env:"SMTP_SECURITY" envDefault:"ssl"`
	Username     string `env:"MAIL_USERNAME" envDefault:""`
	Password     string `env:"MAIL_PASSWORD" envDefault:""`

	ResendAPIKey string `env:"RESEND_API_KEY" envDefault:""`

	FromAddress       string `env:"MAIL_FROM_ADDRESS" envDefault:""`
	FromName          string `env:"MAIL_FROM_NAME" envDefault:"Ranazonai"`
	InternalRecipient string `env:"INTERNAL_RECIPIENT" envDefault:""`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Sender returns the mailbox used as the From address.
// It falls back to the SMTP username, which is how single-mailbox setups are configured.
func (m MailConfig) Sender() string {
	if m.FromAddress != "" {
		return m.FromAddress
	}
	return m.Username
}

// Recipient returns the internal notification address, defaulting to the sender mailbox.
func (m MailConfig) Recipient() string {
	if m.InternalRecipient != "" {
		return m.InternalRecipient
	}
	return m.Sender()
}

// Validate checks that the selected backends have what they need.
func (c *Config) Validate() error {
	var errs []error

	if c.RateLimitRequests < 1 {
		errs = append(errs, errors.New("RATE_LIMIT_REQUESTS must be at least 1"))
	}
	if c.RateLimitWindow <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_WINDOW must be positive"))
	}
	if c.TrustedProxyHops < 0 {
		errs = append(errs, errors.New("TRUSTED_PROXY_HOPS must not be negative"))
	}

	switch c.Store.Backend {
	case StoreSheets:
		if c.Store.SpreadsheetID == "" {
			errs = append(errs, errors.New("SHEETS_SPREADSHEET_ID is required for the sheets store"))
		}
		if c.Store.CredentialsJSON == "" {
			errs = append(errs, errors.New("GOOGLE_CREDENTIALS_JSON is required for the sheets store"))
		}
	case StorePostgres:
		if c.Store.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres store"))
		}
	case StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend))
	}

	switch c.Mail.Transport {
	case TransportSMTP:
		if c.Mail.SMTPHost == "" {
			errs = append(errs, errors.New("SMTP_HOST is required for the smtp transport"))
		}
		switch c.Mail.SMTPSecurity {
		case mailer.SecuritySSL, mailer.SecurityStartTLS, mailer.SecurityNone:
		default:
			errs = append(errs, fmt.Errorf("unknown SMTP_SECURITY %q", c.Mail.SMTPSecurity))
		}
	case TransportResend:
		if c.Mail.ResendAPIKey == "" {
			errs = append(errs, errors.New("RESEND_API_KEY is required for the resend transport"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown MAIL_TRANSPORT %q", c.Mail.Transport))
	}

	if c.Mail.Sender() == "" {
		errs = append(errs, errors.New("MAIL_FROM_ADDRESS or MAIL_USERNAME is required"))
	}

	return errors.Join(errs...)
}

// Load parses environment variables and returns a validated Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
