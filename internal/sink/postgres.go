package sink

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonathan/profile-scraper/internal/types"
)

// ProfilesTableDDL creates the append-only table used by PostgresSink.
const ProfilesTableDDL = `CREATE TABLE IF NOT EXISTS profiles (
	id               BIGSERIAL PRIMARY KEY,
	run_id           UUID NOT NULL,
	url              TEXT NOT NULL,
	name             TEXT NOT NULL DEFAULT '',
	headline         TEXT NOT NULL DEFAULT '',
	about            TEXT NOT NULL DEFAULT '',
	current_company  TEXT NOT NULL DEFAULT '',
	previous_company TEXT NOT NULL DEFAULT '',
	status           TEXT NOT NULL,
	scraped_at       TIMESTAMP NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresSink appends records to the profiles table, tagged with the batch run ID.
type PostgresSink struct {
	pool  *pgxpool.Pool
	runID uuid.UUID
}

// ConnectPostgres opens a pool, verifies it and makes sure the profiles table exists.
// Every record written through the returned sink carries runID.
func ConnectPostgres(ctx context.Context, databaseURL string, runID uuid.UUID) (*PostgresSink, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, ProfilesTableDDL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create profiles table: %w", err)
	}

	return &PostgresSink{pool: pool, runID: runID}, nil
}

// RunID returns the batch identifier stamped on every row.
func (s *PostgresSink) RunID() uuid.UUID {
	return s.runID
}

// Append implements Sink.
func (s *PostgresSink) Append(ctx context.Context, record types.ProfileRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO profiles (run_id, url, name, headline, about, current_company, previous_company, status, scraped_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.runID, record.URL, record.Name, record.Headline, record.About,
		record.CurrentCompany, record.PreviousCompany, record.Status.String(), record.ScrapedAt,
	)
	if err != nil {
		return &WriteError{Sink: "postgres", URL: record.URL, Message: "failed to insert record", Cause: err}
	}
	return nil
}

// CountRun returns how many rows the run has written.
func (s *PostgresSink) CountRun(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM profiles WHERE run_id = $1`, s.runID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count run records: %w", err)
	}
	return n, nil
}

// Close implements Sink.
func (s *PostgresSink) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
