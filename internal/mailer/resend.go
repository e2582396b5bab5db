package mailer

import (
	"context"
	"net/http"

	"github.com/resend/resend-go/v2"
)

// EmailSender is the part of the Resend emails service used here.
type EmailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendTransport sends mail through the Resend HTTP API.
type ResendTransport struct {
	emails EmailSender
}

// NewResendTransport builds a Resend client on httpClient.
// A nil httpClient uses NewHTTPClient.
func NewResendTransport(apiKey string, httpClient *http.Client) *ResendTransport {
	if httpClient == nil {
		httpClient = NewHTTPClient()
	}
	client := resend.NewCustomClient(httpClient, apiKey)
	return &ResendTransport{emails: client.Emails}
}

// NewResendTransportWithSender wraps an existing sender.
func NewResendTransportWithSender(emails EmailSender) *ResendTransport {
	return &ResendTransport{emails: emails}
}

// Name implements Transport.
func (t *ResendTransport) Name() string { return "resend" }

// Send implements Transport.
func (t *ResendTransport) Send(ctx context.Context, m *Message) error {
	params := &resend.SendEmailRequest{
		From:    m.From(),
		To:      m.To,
		Subject: m.Subject,
		Html:    m.HTML,
		ReplyTo: m.ReplyTo,
	}

	if _, err := t.emails.SendWithContext(ctx, params); err != nil {
		return sendError(t.Name(), err)
	}
	return nil
}
