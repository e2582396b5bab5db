package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ranazonai/enquiry-relay/internal/metrics"
	"github.com/ranazonai/enquiry-relay/internal/model"
	"github.com/ranazonai/enquiry-relay/internal/repository"
)

// ErrMailFailed is returned when either email could not be sent.
var ErrMailFailed = errors.New("email failed to send")

// Mailer sends the two submission emails.
type Mailer interface {
	SendInternalNotification(ctx context.Context, s *model.Submission) error
	SendConfirmation(ctx context.Context, s *model.Submission, returning bool) error
}

// SubmissionConfig holds optional settings for SubmissionService.
type SubmissionConfig struct {
	Logger   *slog.Logger
	Recorder metrics.Recorder
	// StoreTimeout and MailTimeout bound each external call. Zero disables the bound.
	StoreTimeout time.Duration
	MailTimeout  time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// SubmissionService handles contact form submissions.
type SubmissionService struct {
	store     repository.Store
	mailer    Mailer
	validator *Validator
	logger    *slog.Logger
	metrics   metrics.Recorder
	storeTO   time.Duration
	mailTO    time.Duration
	now       func() time.Time
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(store repository.Store, mailer Mailer, cfg SubmissionConfig) *SubmissionService {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Recorder == nil {
		cfg.Recorder = metrics.NewNoop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &SubmissionService{
		store:     store,
		mailer:    mailer,
		validator: NewValidator(),
		logger:    cfg.Logger,
		metrics:   cfg.Recorder,
		storeTO:   cfg.StoreTimeout,
		mailTO:    cfg.MailTimeout,
		now:       cfg.Now,
	}
}

// Outcome reports what happened to an accepted submission.
type Outcome struct {
	Submission      *model.Submission
	Returning       bool
	ReadErr         error
	AppendErr       error
	InternalErr     error
	ConfirmationErr error
}

// Submit validates input, logs it to the store and sends both emails.
//
// Store failures are logged and otherwise ignored. Both emails are always
// attempted; if either fails the returned error wraps ErrMailFailed.
// Invalid input returns a *ValidationError and touches nothing external.
func (s *SubmissionService) Submit(ctx context.Context, input SubmissionInput) (*Outcome, error) {
	if errs := s.validator.Validate(&input); len(errs) > 0 {
		s.metrics.IncSubmission(metrics.OutcomeInvalid)
		return nil, &ValidationError{Fields: errs}
	}

	// A client disconnect must not abort a half-processed submission.
	ctx = context.WithoutCancel(ctx)

	sub := model.NewSubmission(input.Fields(), s.now())
	log := s.logger.With(slog.String("submission_id", sub.ID))
	out := &Outcome{Submission: sub}

	var known []string
	out.ReadErr = s.call(ctx, "list_emails", s.storeTO, func(ctx context.Context) error {
		var err error
		known, err = s.store.ListKnownEmails(ctx)
		return err
	})
	if out.ReadErr != nil {
		s.metrics.IncStoreError("list_emails")
		log.Error("failed to read known emails", slog.String("error", out.ReadErr.Error()))
	} else {
		out.Returning = repository.ContainsEmail(known, sub.Email)
	}

	out.AppendErr = s.call(ctx, "append", s.storeTO, func(ctx context.Context) error {
		return s.store.AppendRecord(ctx, sub)
	})
	if out.AppendErr != nil {
		s.metrics.IncStoreError("append")
		log.Error("failed to append submission", slog.String("error", out.AppendErr.Error()))
	} else {
		log.Info("submission logged", slog.Bool("returning", out.Returning))
	}

	out.InternalErr = s.call(ctx, "send_internal", s.mailTO, func(ctx context.Context) error {
		return s.mailer.SendInternalNotification(ctx, sub)
	})
	s.recordMail(log, "internal", out.InternalErr)

	out.ConfirmationErr = s.call(ctx, "send_confirmation", s.mailTO, func(ctx context.Context) error {
		return s.mailer.SendConfirmation(ctx, sub, out.Returning)
	})
	s.recordMail(log, "confirmation", out.ConfirmationErr)

	if out.InternalErr != nil || out.ConfirmationErr != nil {
		s.metrics.IncSubmission(metrics.OutcomeMailFailed)
		return out, fmt.Errorf("%w: %w", ErrMailFailed, errors.Join(out.InternalErr, out.ConfirmationErr))
	}

	s.metrics.IncSubmission(metrics.OutcomeSent)
	return out, nil
}

// call runs fn under timeout and records its duration. fn must honour ctx
// for the bound to hold; a call that returns nil after its deadline is still
// reported as failed.
func (s *SubmissionService) call(ctx context.Context, op string, timeout time.Duration, fn func(context.Context) error) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	err := fn(ctx)
	s.metrics.ObserveExternalCall(op, time.Since(start))

	if err == nil && ctx.Err() != nil {
		err = fmt.Errorf("%s: %w", op, ctx.Err())
	}
	return err
}

func (s *SubmissionService) recordMail(log *slog.Logger, kind string, err error) {
	if err != nil {
		s.metrics.IncMail(kind, "failed")
		log.Error("failed to send email", slog.String("kind", kind), slog.String("error", err.Error()))
		return
	}
	s.metrics.IncMail(kind, "sent")
}
