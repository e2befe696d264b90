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

const voterColumns = "id, voter_id, name, email, password_hash, email_verified, created_at"

func scanVoter(row rowScanner) (*models.Voter, error) {
	var (
		v         models.Voter
		createdAt int64
	)
	if err := row.Scan(&v.ID, &v.VoterID, &v.Name, &v.Email, &v.PasswordHash, &v.EmailVerified, &createdAt); err != nil {
		return nil, err
	}
	v.CreatedAt = fromMillis(createdAt)
	return &v, nil
}

// CreateVoter persists a new voter.
func (s *Store) CreateVoter(ctx context.Context, voter *models.Voter) error {
	if voter.ID == "" {
		voter.ID = uuid.New().String()
	}
	if voter.CreatedAt.IsZero() {
		voter.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, s.q(
		"INSERT INTO voters ("+voterColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)"),
		voter.ID, voter.VoterID, voter.Name, voter.Email, voter.PasswordHash,
		voter.EmailVerified, toMillis(voter.CreatedAt),
	)
	if err != nil {
		if s.dialect.uniqueViolation(err) {
			return fmt.Errorf("voter %s: %w", voter.VoterID, storage.ErrConflict)
		}
		return fmt.Errorf("failed to insert voter: %w", err)
	}
	return nil
}

func (s *Store) getVoterBy(ctx context.Context, column, value string) (*models.Voter, error) {
	row := s.db.QueryRowContext(ctx, s.q("SELECT "+voterColumns+" FROM voters WHERE "+column+" = ?"), value)
	voter, err := scanVoter(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("voter %s: %w", value, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query voter: %w", err)
	}
	return voter, nil
}

// GetVoter retrieves a voter by internal ID.
func (s *Store) GetVoter(ctx context.Context, id string) (*models.Voter, error) {
	return s.getVoterBy(ctx, "id", id)
}

// GetVoterByVoterID retrieves a voter by their public voter ID.
func (s *Store) GetVoterByVoterID(ctx context.Context, voterID string) (*models.Voter, error) {
	return s.getVoterBy(ctx, "voter_id", voterID)
}

// GetVoterByEmail retrieves a voter by email address.
func (s *Store) GetVoterByEmail(ctx context.Context, email string) (*models.Voter, error) {
	return s.getVoterBy(ctx, "email", email)
}

func (s *Store) SetVoterPassword(ctx context.Context, id, passwordHash string) error {
	res, err := s.db.ExecContext(ctx, s.q("UPDATE voters SET password_hash = ? WHERE id = ?"), passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return rowsAffected(res, "voter", id)
}

func (s *Store) MarkEmailVerified(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.q("UPDATE voters SET email_verified = ? WHERE id = ?"), true, id)
	if err != nil {
		return fmt.Errorf("failed to verify email: %w", err)
	}
	return rowsAffected(res, "voter", id)
}

// ListVoters returns every voter with the number of votes they cast, ordered
// by voter ID.
func (s *Store) ListVoters(ctx context.Context) ([]*models.VoterSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT v.id, v.voter_id, v.name, v.email, v.email_verified, v.created_at, COUNT(vo.id)
		FROM voters v
		LEFT JOIN votes vo ON vo.voter_id = v.id
		GROUP BY v.id, v.voter_id, v.name, v.email, v.email_verified, v.created_at
		ORDER BY v.voter_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query voters: %w", err)
	}
	defer rows.Close()

	var voters []*models.VoterSummary
	for rows.Next() {
		var (
			v         models.VoterSummary
			createdAt int64
		)
		if err := rows.Scan(&v.ID, &v.VoterID, &v.Name, &v.Email, &v.EmailVerified, &createdAt, &v.VotesCast); err != nil {
			return nil, fmt.Errorf("failed to scan voter: %w", err)
		}
		v.CreatedAt = fromMillis(createdAt)
		voters = append(voters, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating voters: %w", err)
	}
	return voters, nil
}

// DeleteVoter removes a voter and their votes.
func (s *Store) DeleteVoter(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, s.q("DELETE FROM votes WHERE voter_id = ?"), id); err != nil {
		return fmt.Errorf("failed to delete votes: %w", err)
	}
	res, err := tx.ExecContext(ctx, s.q("DELETE FROM voters WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete voter: %w", err)
	}
	if err := rowsAffected(res, "voter", id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CreateAdmin persists a new admin account.
func (s *Store) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	if admin.ID == "" {
		admin.ID = uuid.New().String()
	}
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, s.q(
		"INSERT INTO admins (id, username, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)"),
		admin.ID, admin.Username, admin.Email, admin.PasswordHash, toMillis(admin.CreatedAt),
	)
	if err != nil {
		if s.dialect.uniqueViolation(err) {
			return fmt.Errorf("admin %s: %w", admin.Username, storage.ErrConflict)
		}
		return fmt.Errorf("failed to insert admin: %w", err)
	}
	return nil
}

func (s *Store) GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var (
		a         models.Admin
		createdAt int64
	)
	err := s.db.QueryRowContext(ctx, s.q(
		"SELECT id, username, email, password_hash, created_at FROM admins WHERE username = ?"), username,
	).Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("admin %s: %w", username, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query admin: %w", err)
	}
	a.CreatedAt = fromMillis(createdAt)
	return &a, nil
}

func (s *Store) SetAdminPassword(ctx context.Context, id, passwordHash string) error {
	res, err := s.db.ExecContext(ctx, s.q("UPDATE admins SET password_hash = ? WHERE id = ?"), passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return rowsAffected(res, "admin", id)
}
