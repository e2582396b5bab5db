// Package mailer renders and delivers the submission emails.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
)

// ErrSendFailed wraps every transport failure.
var ErrSendFailed = errors.New("mail send failed")

// Message is one outbound email, independent of transport.
type Message struct {
	FromName    string
	FromAddress string
	To          []string
	ReplyTo     string
	Subject     string
	HTML        string
}

// From returns the formatted From header value.
func (m *Message) From() string {
	if m.FromName == "" {
		return m.FromAddress
	}
	return (&mail.Address{Name: m.FromName, Address: m.FromAddress}).String()
}

// Transport delivers a rendered message.
type Transport interface {
	Send(ctx context.Context, msg *Message) error
	// Name identifies the transport in logs.
	Name() string
}

func sendError(transport string, err error) error {
	return fmt.Errorf("%w via %s: %w", ErrSendFailed, transport, err)
}
