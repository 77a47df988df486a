package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brandondoesreviews-afk/healthy-weight-range/internal/usage"
)

// The counter lives in a single fixed row so the upsert in Increment is a
// serialized atomic read-modify-write on the database side.
const counterRowID = 1

// PostgresStore persists the counter in a one-row table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var (
	_ usage.Store       = (*PostgresStore)(nil)
	_ usage.Incrementer = (*PostgresStore)(nil)
)

// NewPostgresStore constructs a PostgresStore over an existing pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the counter table when it is missing. Called once
// at startup and by tests.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const ddl = `CREATE TABLE IF NOT EXISTS usage_counter (
        id INT PRIMARY KEY,
        count BIGINT NOT NULL DEFAULT 0,
        updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
    )`
	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("create usage_counter table: %w", err)
	}
	return nil
}

// Load implements usage.Store, mapping a missing row to
// usage.ErrNotInitialized.
func (s *PostgresStore) Load(ctx context.Context) (int64, error) {
	const query = `SELECT count FROM usage_counter WHERE id=$1`

	var count int64
	if err := s.pool.QueryRow(ctx, query, counterRowID).Scan(&count); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, usage.ErrNotInitialized
		}
		return 0, fmt.Errorf("select usage counter: %w", err)
	}
	return count, nil
}

// Save implements usage.Store.
func (s *PostgresStore) Save(ctx context.Context, count int64) error {
	const upsert = `INSERT INTO usage_counter (id, count, updated_at) VALUES ($1, $2, now())
        ON CONFLICT (id) DO UPDATE SET count=EXCLUDED.count, updated_at=now()`

	if _, err := s.pool.Exec(ctx, upsert, counterRowID, count); err != nil {
		return fmt.Errorf("upsert usage counter: %w", err)
	}
	return nil
}

// Increment implements usage.Incrementer with a single upsert, creating
// the row at 1 when absent.
func (s *PostgresStore) Increment(ctx context.Context) (int64, error) {
	const upsert = `INSERT INTO usage_counter (id, count, updated_at) VALUES ($1, 1, now())
        ON CONFLICT (id) DO UPDATE SET count=usage_counter.count+1, updated_at=now()
        RETURNING count`

	var count int64
	if err := s.pool.QueryRow(ctx, upsert, counterRowID).Scan(&count); err != nil {
		return 0, fmt.Errorf("increment usage counter: %w", err)
	}
	return count, nil
}
