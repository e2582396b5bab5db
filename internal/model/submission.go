// Package model defines domain entities for the application.
package model

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// TimestampLayout matches the ISO-8601 form written to the submission log
// (UTC, millisecond precision, trailing Z).
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Submission is one validated contact-form payload.
// It lives only for the duration of the request that created it.
type Submission struct {
	// ID correlates log lines for one submission. It is never written to the store.
	ID          string    `json:"id"`
	SubmittedAt time.Time `json:"submitted_at"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	City        string    `json:"city"`
	Company     string    `json:"company"`
	Services    string    `json:"services"`
	Message     string    `json:"message"`
}

// Fields holds the caller-supplied part of a submission.
type Fields struct {
	Name     string
	Email    string
	Phone    string
	City     string
	Company  string
	Services string
	Message  string
}

// NewSubmission stamps validated fields with an ID and the processing time.
func NewSubmission(f Fields, at time.Time) *Submission {
	return &Submission{
		ID:          ulid.Make().String(),
		SubmittedAt: at.UTC(),
		Name:        f.Name,
		Email:       f.Email,
		Phone:       f.Phone,
		City:        f.City,
		Company:     f.Company,
		Services:    f.Services,
		Message:     f.Message,
	}
}

// Timestamp returns the processing time in log format.
func (s *Submission) Timestamp() string {
	return s.SubmittedAt.UTC().Format(TimestampLayout)
}

// Row returns the store columns A-H in order.
func (s *Submission) Row() []string {
	return []string{
		s.Timestamp(),
		s.Name,
		s.Email,
		s.Phone,
		s.City,
		s.Company,
		s.Services,
		s.Message,
	}
}

// Columns names the store columns in Row order.
var Columns = []string{"timestamp", "name", "email", "phone", "city", "company", "services", "message"}
