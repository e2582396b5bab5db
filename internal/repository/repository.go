// Package repository provides the submission log backends.
//
// The log is append-only: a row is written once per accepted submission and
// the email column is read back to tell returning contacts from new ones.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ranazonai/enquiry-relay/internal/model"
)

// Common errors for store operations.
var (
	ErrReadFailed  = errors.New("store read failed")
	ErrWriteFailed = errors.New("store write failed")
)

// Store is the submission log.
type Store interface {
	// ListKnownEmails returns every email recorded so far, in insertion order.
	ListKnownEmails(ctx context.Context) ([]string, error)
	// AppendRecord writes one submission.
	AppendRecord(ctx context.Context, s *model.Submission) error
	// Ping checks connectivity.
	Ping(ctx context.Context) error
}

func readError(err error) error {
	return fmt.Errorf("%w: %w", ErrReadFailed, err)
}

func writeError(err error) error {
	return fmt.Errorf("%w: %w", ErrWriteFailed, err)
}

// ContainsEmail reports whether email is in known.
// Comparison ignores case and surrounding whitespace.
func ContainsEmail(known []string, email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	for _, k := range known {
		if strings.EqualFold(strings.TrimSpace(k), email) {
			return true
		}
	}
	return false
}
