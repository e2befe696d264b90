package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/ballotbox/internal/models"
	"github.com/mmynk/ballotbox/internal/storage"
)

const electionColumns = "id, title, description, start_at, end_at, status, created_by, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanElection(row rowScanner) (*models.Election, error) {
	var (
		e                         models.Election
		status                    string
		startAt, endAt, createdAt int64
	)
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &startAt, &endAt, &status, &e.CreatedBy, &createdAt); err != nil {
		return nil, err
	}
	e.StartAt = fromMillis(startAt)
	e.EndAt = fromMillis(endAt)
	e.Status = models.Status(status)
	e.CreatedAt = fromMillis(createdAt)
	return &e, nil
}

// CreateElection persists a new election.
func (s *Store) CreateElection(ctx context.Context, election *models.Election) error {
	if election.ID == "" {
		election.ID = uuid.New().String()
	}
	if election.CreatedAt.IsZero() {
		election.CreatedAt = time.Now().UTC()
	}
	if election.Status == "" {
		election.Status = models.StatusUpcoming
	}

	_, err := s.db.ExecContext(ctx, s.q(
		"INSERT INTO elections ("+electionColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)"),
		election.ID, election.Title, election.Description,
		toMillis(election.StartAt), toMillis(election.EndAt),
		string(election.Status), election.CreatedBy, toMillis(election.CreatedAt),
	)
	if err != nil {
		if s.dialect.uniqueViolation(err) {
			return fmt.Errorf("election %s: %w", election.ID, storage.ErrConflict)
		}
		return fmt.Errorf("failed to insert election: %w", err)
	}
	return nil
}

// GetElection retrieves an election by ID.
func (s *Store) GetElection(ctx context.Context, electionID string) (*models.Election, error) {
	row := s.db.QueryRowContext(ctx, s.q("SELECT "+electionColumns+" FROM elections WHERE id = ?"), electionID)
	election, err := scanElection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("election %s: %w", electionID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query election: %w", err)
	}
	return election, nil
}

// ListElections returns every election, newest start first.
func (s *Store) ListElections(ctx context.Context) ([]*models.Election, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+electionColumns+" FROM elections ORDER BY start_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query elections: %w", err)
	}
	defer rows.Close()

	var elections []*models.Election
	for rows.Next() {
		election, err := scanElection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan election: %w", err)
		}
		elections = append(elections, election)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating elections: %w", err)
	}
	return elections, nil
}

// UpdateElection overwrites the mutable fields of an election.
func (s *Store) UpdateElection(ctx context.Context, election *models.Election) error {
	res, err := s.db.ExecContext(ctx, s.q(
		"UPDATE elections SET title = ?, description = ?, start_at = ?, end_at = ?, status = ? WHERE id = ?"),
		election.Title, election.Description,
		toMillis(election.StartAt), toMillis(election.EndAt),
		string(election.Status), election.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update election: %w", err)
	}
	return rowsAffected(res, "election", election.ID)
}

// SetElectionStatuses writes back derived statuses. Elections deleted in the
// meantime are skipped.
func (s *Store) SetElectionStatuses(ctx context.Context, statuses map[string]models.Status) error {
	if len(statuses) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := s.q("UPDATE elections SET status = ? WHERE id = ?")
	for id, status := range statuses {
		if _, err := tx.ExecContext(ctx, query, string(status), id); err != nil {
			return fmt.Errorf("failed to update status of election %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteElection removes an election, its candidates and its votes.
func (s *Store) DeleteElection(ctx context.Context, electionID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Votes reference candidates without cascade, so they go first.
	if _, err := tx.ExecContext(ctx, s.q("DELETE FROM votes WHERE election_id = ?"), electionID); err != nil {
		return fmt.Errorf("failed to delete votes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, s.q("DELETE FROM candidates WHERE election_id = ?"), electionID); err != nil {
		return fmt.Errorf("failed to delete candidates: %w", err)
	}
	res, err := tx.ExecContext(ctx, s.q("DELETE FROM elections WHERE id = ?"), electionID)
	if err != nil {
		return fmt.Errorf("failed to delete election: %w", err)
	}
	if err := rowsAffected(res, "election", electionID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
