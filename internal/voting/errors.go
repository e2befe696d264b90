package voting

import (
	"errors"
	"fmt"

	"github.com/mmynk/ballotbox/internal/storage"
)

var (
	ErrElectionNotActive = errors.New("election is not active")
	ErrAlreadyVoted      = errors.New("voter has already voted in this election")
	ErrInvalidCandidate  = errors.New("candidate is not part of this election")
	ErrDuplicateVote     = errors.New("vote already recorded for this voter and election")
	ErrElectionNotFound  = errors.New("election not found")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrVoterNotFound     = errors.New("voter not found")
	ErrCandidateHasVotes = errors.New("candidate has received votes")
	ErrPersistence       = errors.New("persistence failure")
)

// DenialReason explains why CanVote answered no.
type DenialReason string

const (
	DenialNone              DenialReason = ""
	DenialElectionNotActive DenialReason = "ElectionNotActive"
	DenialAlreadyVoted      DenialReason = "AlreadyVoted"
)

// Err returns the error matching the reason, or nil for DenialNone.
func (r DenialReason) Err() error {
	switch r {
	case DenialElectionNotActive:
		return ErrElectionNotActive
	case DenialAlreadyVoted:
		return ErrAlreadyVoted
	}
	return nil
}

// persistence wraps an unexpected storage failure. The cause stays in the
// message for logs but callers only match ErrPersistence.
func persistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}

// translateVoteError maps storage outcomes of CastVote onto the domain errors.
func translateVoteError(err error) error {
	switch {
	case errors.Is(err, storage.ErrInvalidCandidate):
		return ErrInvalidCandidate
	case errors.Is(err, storage.ErrDuplicateVote):
		return ErrDuplicateVote
	case errors.Is(err, storage.ErrElectionNotActive):
		return ErrElectionNotActive
	case errors.Is(err, storage.ErrNotFound):
		return ErrVoterNotFound
	default:
		return persistence("record vote", err)
	}
}

// rejectionReason labels a failed vote for metrics.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCandidate):
		return "invalid_candidate"
	case errors.Is(err, ErrDuplicateVote):
		return "duplicate_vote"
	case errors.Is(err, ErrElectionNotActive):
		return "election_not_active"
	case errors.Is(err, ErrVoterNotFound):
		return "voter_not_found"
	default:
		return "persistence"
	}
}
