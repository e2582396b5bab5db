//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ranazonai/enquiry-relay/internal/testutil"
)

func newPostgresTestStore(t *testing.T) (context.Context, *PostgresStore, *pgxpool.Pool) {
	t.Helper()

	dsn := testutil.RequireEnv(t, "DATABASE_URL")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	pool, err := OpenPostgres(ctx, dsn)
	if err != nil {
		t.Fatalf("OpenPostgres: %v", err)
	}
	t.Cleanup(pool.Close)

	unlock, err := testutil.AcquireDBLock(ctx, pool)
	if err != nil {
		t.Fatalf("AcquireDBLock: %v", err)
	}
	t.Cleanup(func() { _ = unlock() })

	table := testutil.UniqueID("submissions_test")
	t.Cleanup(func() { _ = testutil.DropTable(context.Background(), pool, table) })

	store := NewPostgresStore(pool, table)
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	// Idempotent on restart.
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("second EnsureSchema: %v", err)
	}

	return ctx, store, pool
}

func TestIntegrationPostgres_AppendVisibleToNextLookup(t *testing.T) {
	ctx, store, _ := newPostgresTestStore(t)

	emails, err := store.ListKnownEmails(ctx)
	if err != nil {
		t.Fatalf("ListKnownEmails: %v", err)
	}
	if len(emails) != 0 {
		t.Fatalf("expected empty table, got %v", emails)
	}

	if err := store.AppendRecord(ctx, testutil.NewTestSubmission(t, "first@example.com")); err != nil {
		t.Fatalf("AppendRecord: %v", err)
	}
	if err := store.AppendRecord(ctx, testutil.NewTestSubmission(t, "first@example.com")); err != nil {
		t.Fatalf("AppendRecord duplicate: %v", err)
	}

	emails, err = store.ListKnownEmails(ctx)
	if err != nil {
		t.Fatalf("ListKnownEmails: %v", err)
	}
	if len(emails) != 2 {
		t.Fatalf("expected 2 rows, got %v", emails)
	}
	if !ContainsEmail(emails, "FIRST@example.com") {
		t.Error("expected appended email to be known")
	}
}

func TestIntegrationPostgres_Ping(t *testing.T) {
	ctx, store, _ := newPostgresTestStore(t)

	if err := store.Ping(ctx); err != nil {
		t.Errorf("Ping: %v", err)
	}
}
