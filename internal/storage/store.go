// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mmynk/ballotbox/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a write would violate a uniqueness or
	// reference constraint other than the one-vote-per-election rule.
	ErrConflict = errors.New("conflicting record")

	// ErrDuplicateVote is returned when a vote already exists for the
	// (voter, election) pair, whether caught by the pre-check or by the
	// storage uniqueness constraint.
	ErrDuplicateVote = errors.New("voter has already voted in this election")

	// ErrInvalidCandidate is returned when the candidate does not exist or
	// belongs to a different election than the vote.
	ErrInvalidCandidate = errors.New("candidate does not belong to this election")

	// ErrElectionNotActive is returned when a vote is attempted outside the
	// election window.
	ErrElectionNotActive = errors.New("election is not active")
)

// Store defines the interface for ballot storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the voting or service layers.
type Store interface {
	ElectionStore
	CandidateStore
	AccountStore
	VoteStore

	// Statistics returns system-wide record counts.
	Statistics(ctx context.Context) (*models.Statistics, error)

	// Close releases any resources held by the store.
	Close() error
}

// ElectionStore persists elections.
type ElectionStore interface {
	// CreateElection persists a new election. The ID and CreatedAt fields are
	// populated by the store when empty.
	CreateElection(ctx context.Context, election *models.Election) error

	// GetElection retrieves an election by ID. Returns ErrNotFound if missing.
	GetElection(ctx context.Context, electionID string) (*models.Election, error)

	// ListElections returns every election, newest start first.
	ListElections(ctx context.Context) ([]*models.Election, error)

	// UpdateElection overwrites title, description, window and status.
	UpdateElection(ctx context.Context, election *models.Election) error

	// SetElectionStatuses writes back derived statuses in one transaction.
	SetElectionStatuses(ctx context.Context, statuses map[string]models.Status) error

	// DeleteElection removes an election together with its candidates and votes.
	DeleteElection(ctx context.Context, electionID string) error
}

// CandidateStore persists candidates.
type CandidateStore interface {
	// CreateCandidate adds a candidate to an existing election.
	// Returns ErrNotFound if the election does not exist.
	CreateCandidate(ctx context.Context, candidate *models.Candidate) error

	GetCandidate(ctx context.Context, candidateID string) (*models.Candidate, error)

	// ListCandidates returns an election's candidates ordered by name.
	ListCandidates(ctx context.Context, electionID string) ([]*models.Candidate, error)

	// UpdateCandidate overwrites name, party, description and photo.
	// The candidate's election never changes.
	UpdateCandidate(ctx context.Context, candidate *models.Candidate) error

	// DeleteCandidate removes a candidate. Returns ErrConflict if votes
	// reference it.
	DeleteCandidate(ctx context.Context, candidateID string) error
}

// AccountStore persists voters and admins.
type AccountStore interface {
	// CreateVoter persists a new voter. Returns ErrConflict if the voter ID
	// or email is taken.
	CreateVoter(ctx context.Context, voter *models.Voter) error
	GetVoter(ctx context.Context, id string) (*models.Voter, error)
	GetVoterByVoterID(ctx context.Context, voterID string) (*models.Voter, error)
	GetVoterByEmail(ctx context.Context, email string) (*models.Voter, error)
	SetVoterPassword(ctx context.Context, id, passwordHash string) error
	MarkEmailVerified(ctx context.Context, id string) error

	// ListVoters returns every voter with their vote count, ordered by
	// voter ID.
	ListVoters(ctx context.Context) ([]*models.VoterSummary, error)

	// DeleteVoter removes a voter and every vote they cast.
	DeleteVoter(ctx context.Context, id string) error

	// CreateAdmin persists a new admin. Returns ErrConflict if the username
	// or email is taken.
	CreateAdmin(ctx context.Context, admin *models.Admin) error
	GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error)
	SetAdminPassword(ctx context.Context, id, passwordHash string) error
}

// VoteStore persists votes. CastVote is the only way a vote row is created.
type VoteStore interface {
	// CastVote records a vote in a single transaction. Within that
	// transaction it verifies that the candidate belongs to the vote's
	// election, that the voter has not voted in it, and that the election is
	// active at now. The (voter, election) uniqueness constraint is the final
	// arbiter under concurrency; its violation surfaces as ErrDuplicateVote.
	// On success vote.ID and vote.CastAt are populated.
	CastVote(ctx context.Context, vote *models.Vote, now time.Time) error

	// HasVoted reports whether a vote exists for the (voter, election) pair.
	HasVoted(ctx context.Context, voterID, electionID string) (bool, error)

	// VotedElections returns the set of election IDs the voter has voted in.
	VotedElections(ctx context.Context, voterID string) (map[string]bool, error)

	// TallyElection returns the election, its per-candidate counts (every
	// candidate, zero included) and the number of vote rows for it, read from
	// one consistent snapshot. Returns ErrNotFound if the election is missing.
	TallyElection(ctx context.Context, electionID string) (*models.Election, []models.CandidateTally, int, error)

	// ListVotes returns votes joined with voter and candidate names, newest
	// first. An empty electionID lists votes across all elections.
	ListVotes(ctx context.Context, electionID string) ([]*models.VoteRecord, error)
}
