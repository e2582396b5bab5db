package repository

import (
	"context"
	"sync"

	"github.com/ranazonai/enquiry-relay/internal/model"
)

// MemoryStore keeps submissions in process memory.
// Used for local development and tests; contents are lost on restart.
type MemoryStore struct {
	mu   sync.RWMutex
	rows [][]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// ListKnownEmails returns the email column.
func (m *MemoryStore) ListKnownEmails(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, readError(err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	emails := make([]string, 0, len(m.rows))
	for _, row := range m.rows {
		emails = append(emails, row[2])
	}
	return emails, nil
}

// AppendRecord stores s as a row.
func (m *MemoryStore) AppendRecord(ctx context.Context, s *model.Submission) error {
	if err := ctx.Err(); err != nil {
		return writeError(err)
	}

	m.mu.Lock()
	m.rows = append(m.rows, s.Row())
	m.mu.Unlock()
	return nil
}

// Ping always succeeds.
func (m *MemoryStore) Ping(context.Context) error {
	return nil
}

// Rows returns a copy of the stored rows.
func (m *MemoryStore) Rows() [][]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([][]string, len(m.rows))
	for i, row := range m.rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}
