package voting

import (
	"context"
	"errors"
	"strings"

	"github.com/mmynk/ballotbox/internal/models"
	"github.com/mmynk/ballotbox/internal/storage"
)

// AddCandidate adds a candidate to an existing election.
func (s *Service) AddCandidate(ctx context.Context, candidate *models.Candidate) error {
	candidate.Name = strings.TrimSpace(candidate.Name)
	candidate.Party = strings.TrimSpace(candidate.Party)
	if err := candidate.Validate(); err != nil {
		return err
	}

	err := s.store.CreateCandidate(ctx, candidate)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrElectionNotFound
	}
	if err != nil {
		return persistence("create candidate", err)
	}
	s.logger.Info("Candidate added", "candidate_id", candidate.ID, "election_id", candidate.ElectionID)
	return nil
}

// UpdateCandidate edits a candidate's details. The election it belongs to
// never changes.
func (s *Service) UpdateCandidate(ctx context.Context, update *models.Candidate) (*models.Candidate, error) {
	candidate, err := s.store.GetCandidate(ctx, update.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrCandidateNotFound
	}
	if err != nil {
		return nil, persistence("get candidate", err)
	}

	candidate.Name = strings.TrimSpace(update.Name)
	candidate.Party = strings.TrimSpace(update.Party)
	candidate.Description = update.Description
	candidate.PhotoURL = update.PhotoURL
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.UpdateCandidate(ctx, candidate); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, persistence("update candidate", err)
	}
	return candidate, nil
}

// DeleteCandidate removes a candidate who has not received any votes.
func (s *Service) DeleteCandidate(ctx context.Context, candidateID string) error {
	err := s.store.DeleteCandidate(ctx, candidateID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrNotFound):
		return ErrCandidateNotFound
	case errors.Is(err, storage.ErrConflict):
		return ErrCandidateHasVotes
	default:
		return persistence("delete candidate", err)
	}
}

// ListCandidates returns an election's candidates ordered by name.
func (s *Service) ListCandidates(ctx context.Context, electionID string) ([]*models.Candidate, error) {
	if _, err := s.getElection(ctx, electionID); err != nil {
		return nil, err
	}
	candidates, err := s.store.ListCandidates(ctx, electionID)
	if err != nil {
		return nil, persistence("list candidates", err)
	}
	return candidates, nil
}

// ListVotes returns the vote audit trail, newest first. An empty electionID
// covers every election.
func (s *Service) ListVotes(ctx context.Context, electionID string) ([]*models.VoteRecord, error) {
	if electionID != "" {
		if _, err := s.getElection(ctx, electionID); err != nil {
			return nil, err
		}
	}
	records, err := s.store.ListVotes(ctx, electionID)
	if err != nil {
		return nil, persistence("list votes", err)
	}
	return records, nil
}

func (s *Service) Statistics(ctx context.Context) (*models.Statistics, error) {
	stats, err := s.store.Statistics(ctx)
	if err != nil {
		return nil, persistence("statistics", err)
	}
	return stats, nil
}

// ListVoters returns every registered voter with their vote count.
func (s *Service) ListVoters(ctx context.Context) ([]*models.VoterSummary, error) {
	voters, err := s.store.ListVoters(ctx)
	if err != nil {
		return nil, persistence("list voters", err)
	}
	return voters, nil
}

// DeleteVoter removes a voter account together with every vote it cast.
func (s *Service) DeleteVoter(ctx context.Context, voterID string) error {
	err := s.store.DeleteVoter(ctx, voterID)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrVoterNotFound
	}
	if err != nil {
		return persistence("delete voter", err)
	}
	s.logger.Info("Voter deleted", "voter_id", voterID)
	return nil
}
