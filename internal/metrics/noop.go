package metrics

import "time"

// NoopRecorder discards everything. Used when METRICS_ENABLED is false.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder { return NoopRecorder{} }

func (NoopRecorder) IncSubmission(string)                      {}
func (NoopRecorder) IncRateLimited()                           {}
func (NoopRecorder) IncStoreError(string)                      {}
func (NoopRecorder) IncMail(string, string)                    {}
func (NoopRecorder) ObserveExternalCall(string, time.Duration) {}
