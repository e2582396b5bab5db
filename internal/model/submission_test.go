package model

import (
	"testing"
	"time"
)

func TestNewSubmission(t *testing.T) {
	at := time.Date(2025, 3, 4, 10, 11, 12, 345_000_000, time.FixedZone("IST", 5*3600+1800))

	s := NewSubmission(Fields{
		Name:     "Jane",
		Email:    "jane@x.com",
		Phone:    "+1-555-0100",
		City:     "Austin",
		Company:  "Acme",
		Services: "Consulting",
		Message:  "Hi",
	}, at)

	if s.ID == "" {
		t.Error("expected ID to be generated")
	}

	if s.SubmittedAt.Location() != time.UTC {
		t.Errorf("expected UTC timestamp, got %s", s.SubmittedAt.Location())
	}

	if got, want := s.Timestamp(), "2025-03-04T04:41:12.345Z"; got != want {
		t.Errorf("Timestamp() = %s, want %s", got, want)
	}
}

func TestSubmission_Row(t *testing.T) {
	s := NewSubmission(Fields{
		Name:     "Jane",
		Email:    "jane@x.com",
		Phone:    "+1-555-0100",
		City:     "Austin",
		Company:  "Acme",
		Services: "Consulting",
		Message:  "Hi",
	}, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	row := s.Row()
	want := []string{"2025-01-01T00:00:00.000Z", "Jane", "jane@x.com", "+1-555-0100", "Austin", "Acme", "Consulting", "Hi"}

	if len(row) != len(Columns) {
		t.Fatalf("row has %d columns, want %d", len(row), len(Columns))
	}

	for i := range want {
		if row[i] != want[i] {
			t.Errorf("column %s = %q, want %q", Columns[i], row[i], want[i])
		}
	}
}

func TestNewSubmission_UniqueIDs(t *testing.T) {
	at := time.Now()
	a := NewSubmission(Fields{Name: "a"}, at)
	b := NewSubmission(Fields{Name: "a"}, at)

	if a.ID == b.ID {
		t.Error("expected distinct IDs for identical submissions")
	}
}
