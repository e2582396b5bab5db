package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"github.com/ranazonai/enquiry-relay/internal/model"
)

// DB is the subset of pgxpool.Pool used by PostgresStore.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
}

// PostgresStore keeps submissions in a PostgreSQL table.
type PostgresStore struct {
	db    DB
	table string
}

// OpenPostgres creates a connection pool and verifies it.
func OpenPostgres(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = 5
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// NewPostgresStore returns a store writing to table.
func NewPostgresStore(db DB, table string) *PostgresStore {
	return &PostgresStore{db: db, table: pq.QuoteIdentifier(table)}
}

// EnsureSchema creates the submissions table if it does not exist.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id           BIGSERIAL PRIMARY KEY,
			submitted_at TIMESTAMPTZ NOT NULL,
			name         TEXT NOT NULL,
			email        TEXT NOT NULL,
			phone        TEXT NOT NULL,
			city         TEXT NOT NULL,
			company      TEXT NOT NULL,
			services     TEXT NOT NULL,
			message      TEXT NOT NULL
		)
	`, p.table)

	if _, err := p.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create submissions table: %w", err)
	}
	return nil
}

// ListKnownEmails returns the email column in insertion order.
func (p *PostgresStore) ListKnownEmails(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT email FROM %s ORDER BY id`, p.table)

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, readError(err)
	}

	emails, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, readError(err)
	}
	return emails, nil
}

// AppendRecord inserts one row.
func (p *PostgresStore) AppendRecord(ctx context.Context, s *model.Submission) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (submitted_at, name, email, phone, city, company, services, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, p.table)

	_, err := p.db.Exec(ctx, query,
		s.SubmittedAt,
		s.Name,
		s.Email,
		s.Phone,
		s.City,
		s.Company,
		s.Services,
		s.Message,
	)
	if err != nil {
		return writeError(err)
	}
	return nil
}

// Ping checks database connectivity.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}
