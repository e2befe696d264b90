// Package sqlstore implements storage.Store on database/sql. Engine
// differences (placeholders, schema, constraint errors) come from a Dialect,
// so the SQLite and PostgreSQL backends share every query.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mmynk/ballotbox/internal/models"
	"github.com/mmynk/ballotbox/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store over a *sql.DB.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// New wraps an open database and runs the dialect's schema.
func New(ctx context.Context, db *sql.DB, dialect Dialect) (*Store, error) {
	s := &Store{db: db, dialect: dialect}
	if err := s.migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run %s migrations: %w", dialect.Name, err)
	}
	return s, nil
}

// DB exposes the underlying connection pool, mainly for tests.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, s.dialect.Schema)
	return err
}

// q adapts a query to the dialect's placeholder style.
func (s *Store) q(query string) string {
	return s.dialect.rebind(query)
}

// Statistics returns system-wide record counts.
func (s *Store) Statistics(ctx context.Context) (*models.Statistics, error) {
	stats := &models.Statistics{}
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM elections),
			(SELECT COUNT(*) FROM candidates),
			(SELECT COUNT(*) FROM voters),
			(SELECT COUNT(*) FROM votes)
	`).Scan(&stats.Elections, &stats.Candidates, &stats.Voters, &stats.Votes)
	if err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}
	return stats, nil
}

// Timestamps are persisted as unix milliseconds so both engines store the
// same integer and comparisons stay exact.
func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// rowsAffected turns a zero-row write into ErrNotFound.
func rowsAffected(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", what, id, storage.ErrNotFound)
	}
	return nil
}
