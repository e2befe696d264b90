// Package voting holds the vote-integrity rules: who may vote, how a vote is
// recorded exactly once, and how results are tallied. It returns domain errors
// and leaves presentation to the transport layer.
package voting

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mmynk/ballotbox/internal/lifecycle"
	"github.com/mmynk/ballotbox/internal/models"
	"github.com/mmynk/ballotbox/internal/storage"
	"github.com/mmynk/ballotbox/internal/tally"
)

// Observer is notified of vote outcomes. internal/metrics implements it.
type Observer interface {
	VoteRecorded(electionID string)
	VoteRejected(reason string)
}

type nopObserver struct{}

func (nopObserver) VoteRecorded(string) {}
func (nopObserver) VoteRejected(string) {}

// Service implements the voting operations on top of a storage.Store.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	store    storage.Store
	now      func() time.Time
	logger   *slog.Logger
	observer Observer
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// NewService creates a voting service backed by store.
func NewService(store storage.Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		now:      time.Now,
		logger:   slog.Default(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CanVote reports whether the voter may vote in the election right now. The
// answer is advisory: RecordVote re-checks everything.
func (s *Service) CanVote(ctx context.Context, voterID, electionID string) (bool, DenialReason, error) {
	election, err := s.store.GetElection(ctx, electionID)
	if errors.Is(err, storage.ErrNotFound) {
		return false, DenialNone, ErrElectionNotFound
	}
	if err != nil {
		return false, DenialNone, persistence("get election", err)
	}

	if lifecycle.DeriveStatus(election.StartAt, election.EndAt, s.now()) != models.StatusActive {
		return false, DenialElectionNotActive, nil
	}

	voted, err := s.store.HasVoted(ctx, voterID, electionID)
	if err != nil {
		return false, DenialNone, persistence("check vote", err)
	}
	if voted {
		return false, DenialAlreadyVoted, nil
	}
	return true, DenialNone, nil
}

// Ballot returns the election and its candidates for a voter who may vote in
// it now. A voter CanVote would turn away gets the matching error instead.
func (s *Service) Ballot(ctx context.Context, voterID, electionID string) (*models.Election, []*models.Candidate, error) {
	ok, reason, err := s.CanVote(ctx, voterID, electionID)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, reason.Err()
	}
	election, err := s.GetElection(ctx, electionID)
	if err != nil {
		return nil, nil, err
	}
	candidates, err := s.ListCandidates(ctx, electionID)
	if err != nil {
		return nil, nil, err
	}
	return election, candidates, nil
}

// RecordVote casts the voter's ballot for candidateID and returns the new
// vote's ID. All checks run inside one storage transaction; a failure leaves
// nothing behind and may be retried.
func (s *Service) RecordVote(ctx context.Context, voterID, electionID, candidateID string) (string, error) {
	vote := &models.Vote{
		VoterID:     voterID,
		ElectionID:  electionID,
		CandidateID: candidateID,
	}

	if err := s.store.CastVote(ctx, vote, s.now()); err != nil {
		verr := translateVoteError(err)
		s.observer.VoteRejected(rejectionReason(verr))
		if errors.Is(verr, ErrPersistence) {
			s.logger.Error("Vote failed", "voter_id", voterID, "election_id", electionID, "error", err)
		} else {
			s.logger.Warn("Vote rejected", "voter_id", voterID, "election_id", electionID, "reason", verr)
		}
		return "", verr
	}

	s.observer.VoteRecorded(electionID)
	s.logger.Info("Vote recorded", "vote_id", vote.ID, "election_id", electionID)
	return vote.ID, nil
}

// Results is an election together with its tallied outcome.
type Results struct {
	Election *models.Election
	tally.Results
}

// GetResults tallies an election. Every candidate appears, including those
// with no votes, and TotalVotes equals the number of stored votes. The
// election is read in the same snapshot as the counts.
func (s *Service) GetResults(ctx context.Context, electionID string) (*Results, error) {
	election, counts, total, err := s.store.TallyElection(ctx, electionID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrElectionNotFound
	}
	if err != nil {
		return nil, persistence("tally election", err)
	}

	computed, err := tally.Compute(counts, total)
	if err != nil {
		return nil, persistence("compute results", err)
	}
	s.refresh(ctx, election)
	return &Results{Election: election, Results: *computed}, nil
}
