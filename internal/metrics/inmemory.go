package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	Submissions   map[string]uint64
	RateLimited   uint64
	StoreErrors   map[string]uint64
	Mail          map[string]uint64 // keyed "kind/status"
	ExternalCalls map[string]uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	rateLimited uint64

	mu            sync.Mutex
	submissions   map[string]uint64
	storeErrors   map[string]uint64
	mail          map[string]uint64
	externalCalls map[string]uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		submissions:   make(map[string]uint64),
		storeErrors:   make(map[string]uint64),
		mail:          make(map[string]uint64),
		externalCalls: make(map[string]uint64),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		Submissions:   copyCounts(m.submissions),
		RateLimited:   atomic.LoadUint64(&m.rateLimited),
		StoreErrors:   copyCounts(m.storeErrors),
		Mail:          copyCounts(m.mail),
		ExternalCalls: copyCounts(m.externalCalls),
	}
}

// IncSubmission increments the counter for a submission outcome.
func (m *InMemoryRecorder) IncSubmission(outcome string) {
	m.mu.Lock()
	m.submissions[outcome]++
	m.mu.Unlock()
}

// IncRateLimited increments the rejected request counter.
func (m *InMemoryRecorder) IncRateLimited() {
	atomic.AddUint64(&m.rateLimited, 1)
}

// IncStoreError increments the store failure counter for op.
func (m *InMemoryRecorder) IncStoreError(op string) {
	m.mu.Lock()
	m.storeErrors[op]++
	m.mu.Unlock()
}

// IncMail increments the mail counter for kind and status.
func (m *InMemoryRecorder) IncMail(kind, status string) {
	m.mu.Lock()
	m.mail[kind+"/"+status]++
	m.mu.Unlock()
}

// ObserveExternalCall counts calls per op. Durations are not kept.
func (m *InMemoryRecorder) ObserveExternalCall(op string, _ time.Duration) {
	m.mu.Lock()
	m.externalCalls[op]++
	m.mu.Unlock()
}

func copyCounts(src map[string]uint64) map[string]uint64 {
	dst := make(map[string]uint64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
