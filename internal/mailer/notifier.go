package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/ranazonai/enquiry-relay/internal/model"
)

// receivedAtLayout formats the processing time in the internal footer.
const receivedAtLayout = "02 Jan 2006, 15:04:05 MST"

// NotifierConfig holds sender identity and routing.
type NotifierConfig struct {
	FromAddress       string
	FromName          string
	InternalRecipient string
	// Location for the internal footer timestamp. Defaults to UTC.
	Location *time.Location
}

// Notifier composes the two submission emails and hands them to a Transport.
type Notifier struct {
	transport Transport
	cfg       NotifierConfig
}

// NewNotifier creates a Notifier.
func NewNotifier(transport Transport, cfg NotifierConfig) *Notifier {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Notifier{transport: transport, cfg: cfg}
}

// Transport returns the underlying transport.
func (n *Notifier) Transport() Transport {
	return n.transport
}

// InternalMessage builds the notification for the site owner. The submitter
// appears as the display name and as Reply-To.
func (n *Notifier) InternalMessage(s *model.Submission) (*Message, error) {
	html, err := render("internal", internalData{
		Name:       s.Name,
		Email:      s.Email,
		Phone:      s.Phone,
		City:       s.City,
		Company:    s.Company,
		Services:   s.Services,
		Message:    s.Message,
		ReceivedAt: s.SubmittedAt.In(n.cfg.Location).Format(receivedAtLayout),
	})
	if err != nil {
		return nil, err
	}

	return &Message{
		FromName:    s.Name,
		FromAddress: n.cfg.FromAddress,
		To:          []string{n.cfg.InternalRecipient},
		ReplyTo:     s.Email,
		Subject:     fmt.Sprintf("New Enquiry from %s", s.Name),
		HTML:        html,
	}, nil
}

// ConfirmationMessage builds the auto-reply to the submitter.
func (n *Notifier) ConfirmationMessage(s *model.Submission, returning bool) (*Message, error) {
	name := "confirm_new"
	subject := fmt.Sprintf("Thanks for getting in touch, %s", s.Name)
	if returning {
		name = "confirm_returning"
		subject = fmt.Sprintf("Welcome back, %s!", s.Name)
	}

	html, err := render(name, confirmationData{Name: s.Name, Contact: contactAddress})
	if err != nil {
		return nil, err
	}

	return &Message{
		FromName:    n.cfg.FromName,
		FromAddress: n.cfg.FromAddress,
		To:          []string{s.Email},
		Subject:     subject,
		HTML:        html,
	}, nil
}

// SendInternalNotification renders and sends the internal notification.
func (n *Notifier) SendInternalNotification(ctx context.Context, s *model.Submission) error {
	msg, err := n.InternalMessage(s)
	if err != nil {
		return err
	}
	return n.transport.Send(ctx, msg)
}

// SendConfirmation renders and sends the new or returning confirmation.
func (n *Notifier) SendConfirmation(ctx context.Context, s *model.Submission, returning bool) error {
	msg, err := n.ConfirmationMessage(s, returning)
	if err != nil {
		return err
	}
	return n.transport.Send(ctx, msg)
}
