// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Submission outcomes.
const (
	OutcomeSent        = "sent"
	OutcomeInvalid     = "invalid"
	OutcomeMailFailed  = "mail_failed"
	OutcomeRateLimited = "rate_limited"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus or keep them in memory for tests.
type Recorder interface {
	// Submission metrics
	IncSubmission(outcome string)
	IncRateLimited()

	// External call metrics
	IncStoreError(op string)     // op: "list_emails" or "append"
	IncMail(kind, status string) // kind: "internal" or "confirmation"; status: "sent" or "failed"
	ObserveExternalCall(op string, d time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
