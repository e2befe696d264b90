package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/ballotbox/internal/lifecycle"
	"github.com/mmynk/ballotbox/internal/models"
	"github.com/mmynk/ballotbox/internal/storage"
)

// CastVote records a vote after re-checking, inside one transaction, every
// condition that makes it valid. The order of checks is part of the contract:
// a foreign candidate is reported before anything else, and a voter who has
// already voted sees ErrDuplicateVote even once the election has closed.
func (s *Store) CastVote(ctx context.Context, vote *models.Vote, now time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var candidateElection string
	err = tx.QueryRowContext(ctx, s.q("SELECT election_id FROM candidates WHERE id = ?"), vote.CandidateID).
		Scan(&candidateElection)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && candidateElection != vote.ElectionID) {
		return fmt.Errorf("candidate %s: %w", vote.CandidateID, storage.ErrInvalidCandidate)
	}
	if err != nil {
		return fmt.Errorf("failed to query candidate: %w", err)
	}

	var existing int
	err = tx.QueryRowContext(ctx, s.q("SELECT COUNT(*) FROM votes WHERE voter_id = ? AND election_id = ?"),
		vote.VoterID, vote.ElectionID).Scan(&existing)
	if err != nil {
		return fmt.Errorf("failed to check existing vote: %w", err)
	}
	if existing > 0 {
		return storage.ErrDuplicateVote
	}

	var startAt, endAt int64
	err = tx.QueryRowContext(ctx, s.q("SELECT start_at, end_at FROM elections WHERE id = ?"), vote.ElectionID).
		Scan(&startAt, &endAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("election %s: %w", vote.ElectionID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to query election: %w", err)
	}
	if lifecycle.DeriveStatus(fromMillis(startAt), fromMillis(endAt), now) != models.StatusActive {
		return storage.ErrElectionNotActive
	}

	id := uuid.New().String()
	castAt := now.UTC()
	if err := s.insertVote(ctx, tx, id, vote, castAt); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		if s.dialect.uniqueViolation(err) {
			return storage.ErrDuplicateVote
		}
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	vote.ID = id
	vote.CastAt = castAt
	return nil
}

// insertVote writes the vote row. A uniqueness failure here means a
// concurrent transaction recorded a vote for the same pair first.
func (s *Store) insertVote(ctx context.Context, tx *sql.Tx, id string, vote *models.Vote, castAt time.Time) error {
	_, err := tx.ExecContext(ctx, s.q(
		"INSERT INTO votes (id, voter_id, election_id, candidate_id, cast_at) VALUES (?, ?, ?, ?, ?)"),
		id, vote.VoterID, vote.ElectionID, vote.CandidateID, toMillis(castAt),
	)
	switch {
	case err == nil:
		return nil
	case s.dialect.uniqueViolation(err):
		return storage.ErrDuplicateVote
	case s.dialect.foreignKeyViolation(err):
		return fmt.Errorf("voter %s: %w", vote.VoterID, storage.ErrNotFound)
	default:
		return fmt.Errorf("failed to insert vote: %w", err)
	}
}

// HasVoted reports whether a vote exists for the (voter, election) pair.
func (s *Store) HasVoted(ctx context.Context, voterID, electionID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, s.q("SELECT COUNT(*) FROM votes WHERE voter_id = ? AND election_id = ?"),
		voterID, electionID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check vote: %w", err)
	}
	return n > 0, nil
}

// VotedElections returns the IDs of every election the voter has voted in.
func (s *Store) VotedElections(ctx context.Context, voterID string) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, s.q("SELECT election_id FROM votes WHERE voter_id = ?"), voterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	voted := make(map[string]bool)
	for rows.Next() {
		var electionID string
		if err := rows.Scan(&electionID); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		voted[electionID] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating votes: %w", err)
	}
	return voted, nil
}

// TallyElection reads the election, its per-candidate counts and its total
// from one transaction so the three agree.
func (s *Store) TallyElection(ctx context.Context, electionID string) (*models.Election, []models.CandidateTally, int, error) {
	tx, err := s.db.BeginTx(ctx, s.dialect.SnapshotTx)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	election, err := scanElection(tx.QueryRowContext(ctx, s.q("SELECT "+electionColumns+" FROM elections WHERE id = ?"), electionID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, 0, fmt.Errorf("election %s: %w", electionID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, nil, 0, fmt.Errorf("failed to query election: %w", err)
	}

	rows, err := tx.QueryContext(ctx, s.q(`
		SELECT c.id, c.name, c.party, COUNT(v.id)
		FROM candidates c
		LEFT JOIN votes v ON v.candidate_id = c.id AND v.election_id = c.election_id
		WHERE c.election_id = ?
		GROUP BY c.id, c.name, c.party
		ORDER BY c.name, c.id
	`), electionID)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("failed to tally votes: %w", err)
	}
	var tallies []models.CandidateTally
	for rows.Next() {
		var t models.CandidateTally
		if err := rows.Scan(&t.CandidateID, &t.Name, &t.Party, &t.VoteCount); err != nil {
			rows.Close()
			return nil, nil, 0, fmt.Errorf("failed to scan tally: %w", err)
		}
		tallies = append(tallies, t)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, nil, 0, fmt.Errorf("error iterating tallies: %w", err)
	}
	rows.Close()

	var total int
	if err := tx.QueryRowContext(ctx, s.q("SELECT COUNT(*) FROM votes WHERE election_id = ?"), electionID).Scan(&total); err != nil {
		return nil, nil, 0, fmt.Errorf("failed to count votes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return election, tallies, total, nil
}

// ListVotes returns the audit view of votes, newest first.
func (s *Store) ListVotes(ctx context.Context, electionID string) ([]*models.VoteRecord, error) {
	query := `
		SELECT v.id, v.voter_id, vt.name, v.candidate_id, c.name, v.election_id, e.title, v.cast_at
		FROM votes v
		JOIN voters vt ON vt.id = v.voter_id
		JOIN candidates c ON c.id = v.candidate_id
		JOIN elections e ON e.id = v.election_id`
	var args []any
	if electionID != "" {
		query += " WHERE v.election_id = ?"
		args = append(args, electionID)
	}
	query += " ORDER BY v.cast_at DESC, v.id"

	rows, err := s.db.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	var records []*models.VoteRecord
	for rows.Next() {
		var (
			r      models.VoteRecord
			castAt int64
		)
		if err := rows.Scan(&r.VoteID, &r.VoterID, &r.VoterName, &r.CandidateID, &r.CandidateName,
			&r.ElectionID, &r.ElectionTitle, &castAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		r.CastAt = fromMillis(castAt)
		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating votes: %w", err)
	}
	return records, nil
}
