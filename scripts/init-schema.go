// Command init-schema creates the Postgres submissions table ahead of the
// first deploy. Paired with POSTGRES_AUTO_MIGRATE=false, the service can then
// run with a role that lacks CREATE.
//
//	go run ./scripts/init-schema.go -database-url "$DATABASE_URL" -table submissions
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ranazonai/enquiry-relay/internal/repository"
)

type output struct {
	Table      string `json:"table"`
	KnownCount int    `json:"known_emails"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		table       = flag.String("table", envOr("POSTGRES_TABLE", "submissions"), "Submissions table name")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if strings.TrimSpace(*table) == "" {
		fmt.Fprintln(os.Stderr, "table name is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := repository.OpenPostgres(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer pool.Close()

	store := repository.NewPostgresStore(pool, *table)
	if err := store.EnsureSchema(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "create schema:", err)
		os.Exit(1)
	}

	emails, err := store.ListKnownEmails(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "verify table:", err)
		os.Exit(1)
	}

	out := output{Table: *table, KnownCount: len(emails)}
	if *format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
		return
	}

	fmt.Printf("table %s ready (%d existing submissions)\n", out.Table, out.KnownCount)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
