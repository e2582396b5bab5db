package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

// SMTP security modes.
const (
	SecuritySSL      = "ssl"
	SecurityStartTLS = "starttls"
	SecurityNone     = "none"
)

// SMTPConfig configures SMTPTransport.
type SMTPConfig struct {
	Host     string
	Port     int
	Security string
	Username string
	Password string
	Timeout  time.Duration
}

// SMTPTransport sends mail through an authenticated SMTP relay.
// A new connection is opened per message.
type SMTPTransport struct {
	cfg  SMTPConfig
	dial func(ctx context.Context, client *mail.Client, msg *mail.Msg) error
}

// NewSMTPTransport validates cfg and returns a transport.
func NewSMTPTransport(cfg SMTPConfig) (*SMTPTransport, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if _, err := clientOptions(cfg); err != nil {
		return nil, err
	}
	return &SMTPTransport{
		cfg: cfg,
		dial: func(ctx context.Context, client *mail.Client, msg *mail.Msg) error {
			return client.DialAndSendWithContext(ctx, msg)
		},
	}, nil
}

// Name implements Transport.
func (t *SMTPTransport) Name() string { return "smtp" }

func clientOptions(cfg SMTPConfig) ([]mail.Option, error) {
	opts := []mail.Option{mail.WithPort(cfg.Port)}

	switch cfg.Security {
	case SecuritySSL:
		opts = append(opts, mail.WithSSL())
	case SecurityStartTLS:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	case SecurityNone:
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	default:
		return nil, fmt.Errorf("unknown smtp security %q", cfg.Security)
	}

	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	if cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.Timeout))
	}
	return opts, nil
}

// buildMsg converts a Message into a go-mail message.
func buildMsg(m *Message) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if err := msg.FromFormat(m.FromName, m.FromAddress); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(m.To...); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	if m.ReplyTo != "" {
		if err := msg.ReplyTo(m.ReplyTo); err != nil {
			return nil, fmt.Errorf("invalid reply-to address: %w", err)
		}
	}

	msg.Subject(m.Subject)
	msg.SetBodyString(mail.TypeTextHTML, m.HTML)
	return msg, nil
}

// Send implements Transport.
func (t *SMTPTransport) Send(ctx context.Context, m *Message) error {
	msg, err := buildMsg(m)
	if err != nil {
		return sendError(t.Name(), err)
	}

	opts, err := clientOptions(t.cfg)
	if err != nil {
		return sendError(t.Name(), err)
	}

	client, err := mail.NewClient(t.cfg.Host, opts...)
	if err != nil {
		return sendError(t.Name(), err)
	}

	if err := t.dial(ctx, client, msg); err != nil {
		return sendError(t.Name(), err)
	}
	return nil
}
