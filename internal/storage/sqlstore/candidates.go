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

const candidateColumns = "id, election_id, name, party, description, photo_url, created_at"

func scanCandidate(row rowScanner) (*models.Candidate, error) {
	var (
		c         models.Candidate
		createdAt int64
	)
	if err := row.Scan(&c.ID, &c.ElectionID, &c.Name, &c.Party, &c.Description, &c.PhotoURL, &createdAt); err != nil {
		return nil, err
	}
	c.CreatedAt = fromMillis(createdAt)
	return &c, nil
}

// CreateCandidate adds a candidate to an existing election.
func (s *Store) CreateCandidate(ctx context.Context, candidate *models.Candidate) error {
	if candidate.ID == "" {
		candidate.ID = uuid.New().String()
	}
	if candidate.CreatedAt.IsZero() {
		candidate.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, s.q(
		"INSERT INTO candidates ("+candidateColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)"),
		candidate.ID, candidate.ElectionID, candidate.Name, candidate.Party,
		candidate.Description, candidate.PhotoURL, toMillis(candidate.CreatedAt),
	)
	switch {
	case err == nil:
		return nil
	case s.dialect.foreignKeyViolation(err):
		return fmt.Errorf("election %s: %w", candidate.ElectionID, storage.ErrNotFound)
	case s.dialect.uniqueViolation(err):
		return fmt.Errorf("candidate %s: %w", candidate.ID, storage.ErrConflict)
	default:
		return fmt.Errorf("failed to insert candidate: %w", err)
	}
}

// GetCandidate retrieves a candidate by ID.
func (s *Store) GetCandidate(ctx context.Context, candidateID string) (*models.Candidate, error) {
	row := s.db.QueryRowContext(ctx, s.q("SELECT "+candidateColumns+" FROM candidates WHERE id = ?"), candidateID)
	candidate, err := scanCandidate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("candidate %s: %w", candidateID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query candidate: %w", err)
	}
	return candidate, nil
}

// ListCandidates returns an election's candidates ordered by name.
func (s *Store) ListCandidates(ctx context.Context, electionID string) ([]*models.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, s.q(
		"SELECT "+candidateColumns+" FROM candidates WHERE election_id = ? ORDER BY name, id"), electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	var candidates []*models.Candidate
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidates: %w", err)
	}
	return candidates, nil
}

// UpdateCandidate overwrites name, party, description and photo. The
// election_id column is deliberately absent from the statement.
func (s *Store) UpdateCandidate(ctx context.Context, candidate *models.Candidate) error {
	res, err := s.db.ExecContext(ctx, s.q(
		"UPDATE candidates SET name = ?, party = ?, description = ?, photo_url = ? WHERE id = ?"),
		candidate.Name, candidate.Party, candidate.Description, candidate.PhotoURL, candidate.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update candidate: %w", err)
	}
	return rowsAffected(res, "candidate", candidate.ID)
}

// DeleteCandidate removes a candidate that has received no votes.
func (s *Store) DeleteCandidate(ctx context.Context, candidateID string) error {
	res, err := s.db.ExecContext(ctx, s.q("DELETE FROM candidates WHERE id = ?"), candidateID)
	if err != nil {
		if s.dialect.foreignKeyViolation(err) {
			return fmt.Errorf("candidate %s has votes: %w", candidateID, storage.ErrConflict)
		}
		return fmt.Errorf("failed to delete candidate: %w", err)
	}
	return rowsAffected(res, "candidate", candidateID)
}
