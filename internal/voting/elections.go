package voting

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mmynk/ballotbox/internal/lifecycle"
	"github.com/mmynk/ballotbox/internal/models"
	"github.com/mmynk/ballotbox/internal/storage"
)

// refresh re-derives statuses and writes changed ones back. A failed
// write-back is logged and ignored since the returned values are correct.
func (s *Service) refresh(ctx context.Context, elections ...*models.Election) {
	changed := lifecycle.Refresh(elections, s.now())
	if len(changed) == 0 {
		return
	}
	if err := s.store.SetElectionStatuses(ctx, changed); err != nil {
		s.logger.Warn("Status write-back failed", "count", len(changed), "error", err)
		return
	}
	s.logger.Debug("Election statuses refreshed", "count", len(changed))
}

// storedPrecision is the resolution election windows are persisted at.
const storedPrecision = time.Millisecond

// CreateElection validates and stores a new election. The start may be at
// most models.MaxStartBackdate in the past. The window is truncated to the
// stored precision first so the returned election matches what is stored.
func (s *Service) CreateElection(ctx context.Context, election *models.Election) error {
	election.Title = strings.TrimSpace(election.Title)
	election.StartAt = election.StartAt.Truncate(storedPrecision)
	election.EndAt = election.EndAt.Truncate(storedPrecision)
	if err := election.Validate(); err != nil {
		return err
	}
	now := s.now()
	if election.StartAt.Before(now.Add(-models.MaxStartBackdate)) {
		return models.ErrStartInPast
	}
	election.Status = lifecycle.DeriveStatus(election.StartAt, election.EndAt, now)

	if err := s.store.CreateElection(ctx, election); err != nil {
		return persistence("create election", err)
	}
	s.logger.Info("Election created", "election_id", election.ID, "status", election.Status)
	return nil
}

// UpdateElection changes an election's title, description and window.
func (s *Service) UpdateElection(ctx context.Context, update *models.Election) (*models.Election, error) {
	election, err := s.getElection(ctx, update.ID)
	if err != nil {
		return nil, err
	}

	election.Title = strings.TrimSpace(update.Title)
	election.Description = update.Description
	election.StartAt = update.StartAt.Truncate(storedPrecision)
	election.EndAt = update.EndAt.Truncate(storedPrecision)
	if err := election.Validate(); err != nil {
		return nil, err
	}
	election.Status = lifecycle.DeriveStatus(election.StartAt, election.EndAt, s.now())

	if err := s.store.UpdateElection(ctx, election); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrElectionNotFound
		}
		return nil, persistence("update election", err)
	}
	return election, nil
}

// DeleteElection removes an election with its candidates and votes.
func (s *Service) DeleteElection(ctx context.Context, electionID string) error {
	err := s.store.DeleteElection(ctx, electionID)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrElectionNotFound
	}
	if err != nil {
		return persistence("delete election", err)
	}
	s.logger.Info("Election deleted", "election_id", electionID)
	return nil
}

func (s *Service) getElection(ctx context.Context, electionID string) (*models.Election, error) {
	election, err := s.store.GetElection(ctx, electionID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrElectionNotFound
	}
	if err != nil {
		return nil, persistence("get election", err)
	}
	return election, nil
}

// GetElection returns an election with a freshly derived status.
func (s *Service) GetElection(ctx context.Context, electionID string) (*models.Election, error) {
	election, err := s.getElection(ctx, electionID)
	if err != nil {
		return nil, err
	}
	s.refresh(ctx, election)
	return election, nil
}

// ListElections returns elections, newest start first, filtered by their
// freshly derived status when filter.Status is set.
func (s *Service) ListElections(ctx context.Context, filter models.ElectionFilter) ([]*models.Election, error) {
	elections, err := s.store.ListElections(ctx)
	if err != nil {
		return nil, persistence("list elections", err)
	}
	s.refresh(ctx, elections...)

	if filter.Status == "" {
		return elections, nil
	}
	filtered := elections[:0]
	for _, e := range elections {
		if e.Status == filter.Status {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

// DashboardEntry is an active election as seen by one voter.
type DashboardEntry struct {
	Election *models.Election
	HasVoted bool
}

// Dashboard lists the currently active elections and whether the voter has
// already voted in each.
func (s *Service) Dashboard(ctx context.Context, voterID string) ([]DashboardEntry, error) {
	active, err := s.ListElections(ctx, models.ElectionFilter{Status: models.StatusActive})
	if err != nil {
		return nil, err
	}
	voted, err := s.store.VotedElections(ctx, voterID)
	if err != nil {
		return nil, persistence("list voted elections", err)
	}

	entries := make([]DashboardEntry, len(active))
	for i, e := range active {
		entries[i] = DashboardEntry{Election: e, HasVoted: voted[e.ID]}
	}
	return entries, nil
}
