package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/ballotbox/internal/middleware"
	"github.com/mmynk/ballotbox/internal/models"
	"github.com/mmynk/ballotbox/internal/voting"
	"github.com/mmynk/ballotbox/pkg/api"
)

// ElectionService implements the admin-only ElectionService RPC interface.
// Role checks happen in the interceptor chain.
type ElectionService struct {
	voting *voting.Service
	logger *slog.Logger
}

var _ api.ElectionServiceHandler = (*ElectionService)(nil)

// NewElectionService creates a new election administration service.
func NewElectionService(svc *voting.Service, logger *slog.Logger) *ElectionService {
	return &ElectionService{voting: svc, logger: logger}
}

// CreateElection creates an election owned by the calling admin.
func (s *ElectionService) CreateElection(ctx context.Context, req *connect.Request[api.CreateElectionRequest]) (*connect.Response[api.ElectionResponse], error) {
	s.logger.Info("CreateElection request", "title", req.Msg.Title)

	election := &models.Election{
		Title:       req.Msg.Title,
		Description: req.Msg.Description,
		StartAt:     req.Msg.StartAt,
		EndAt:       req.Msg.EndAt,
		CreatedBy:   middleware.GetUserID(ctx),
	}
	if err := s.voting.CreateElection(ctx, election); err != nil {
		s.logger.Warn("CreateElection failed", "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Election created", "election_id", election.ID, "status", election.Status)
	return connect.NewResponse(&api.ElectionResponse{Election: toAPIElection(election)}), nil
}

func (s *ElectionService) UpdateElection(ctx context.Context, req *connect.Request[api.UpdateElectionRequest]) (*connect.Response[api.ElectionResponse], error) {
	s.logger.Info("UpdateElection request", "election_id", req.Msg.ElectionID)

	updated, err := s.voting.UpdateElection(ctx, &models.Election{
		ID:          req.Msg.ElectionID,
		Title:       req.Msg.Title,
		Description: req.Msg.Description,
		StartAt:     req.Msg.StartAt,
		EndAt:       req.Msg.EndAt,
	})
	if err != nil {
		s.logger.Warn("UpdateElection failed", "election_id", req.Msg.ElectionID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ElectionResponse{Election: toAPIElection(updated)}), nil
}

// DeleteElection removes an election with its candidates and votes.
func (s *ElectionService) DeleteElection(ctx context.Context, req *connect.Request[api.ElectionRef]) (*connect.Response[api.Empty], error) {
	s.logger.Info("DeleteElection request", "election_id", req.Msg.ElectionID)

	if err := s.voting.DeleteElection(ctx, req.Msg.ElectionID); err != nil {
		return nil, toConnectError(err)
	}
	s.logger.Info("Election deleted", "election_id", req.Msg.ElectionID, "by", middleware.GetUserID(ctx))
	return connect.NewResponse(&api.Empty{}), nil
}

func (s *ElectionService) GetElection(ctx context.Context, req *connect.Request[api.ElectionRef]) (*connect.Response[api.GetElectionResponse], error) {
	election, err := s.voting.GetElection(ctx, req.Msg.ElectionID)
	if err != nil {
		return nil, toConnectError(err)
	}
	candidates, err := s.voting.ListCandidates(ctx, election.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetElectionResponse{
		Election:   toAPIElection(election),
		Candidates: toAPICandidates(candidates),
	}), nil
}

func (s *ElectionService) ListElections(ctx context.Context, req *connect.Request[api.ListElectionsRequest]) (*connect.Response[api.ListElectionsResponse], error) {
	status := models.Status(req.Msg.Status)
	if status != "" && !status.Valid() {
		return nil, invalidArgument("unknown election status " + req.Msg.Status)
	}
	elections, err := s.voting.ListElections(ctx, models.ElectionFilter{Status: status})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListElectionsResponse{Elections: toAPIElections(elections)}), nil
}

func (s *ElectionService) AddCandidate(ctx context.Context, req *connect.Request[api.AddCandidateRequest]) (*connect.Response[api.CandidateResponse], error) {
	s.logger.Info("AddCandidate request", "election_id", req.Msg.ElectionID, "name", req.Msg.Name)

	candidate := &models.Candidate{
		ElectionID:  req.Msg.ElectionID,
		Name:        req.Msg.Name,
		Party:       req.Msg.Party,
		Description: req.Msg.Description,
		PhotoURL:    req.Msg.PhotoURL,
	}
	if err := s.voting.AddCandidate(ctx, candidate); err != nil {
		s.logger.Warn("AddCandidate failed", "election_id", req.Msg.ElectionID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.CandidateResponse{Candidate: toAPICandidate(candidate)}), nil
}

func (s *ElectionService) UpdateCandidate(ctx context.Context, req *connect.Request[api.UpdateCandidateRequest]) (*connect.Response[api.CandidateResponse], error) {
	updated, err := s.voting.UpdateCandidate(ctx, &models.Candidate{
		ID:          req.Msg.CandidateID,
		Name:        req.Msg.Name,
		Party:       req.Msg.Party,
		Description: req.Msg.Description,
		PhotoURL:    req.Msg.PhotoURL,
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.CandidateResponse{Candidate: toAPICandidate(updated)}), nil
}

// DeleteCandidate fails with FailedPrecondition once the candidate has votes.
func (s *ElectionService) DeleteCandidate(ctx context.Context, req *connect.Request[api.CandidateRef]) (*connect.Response[api.Empty], error) {
	s.logger.Info("DeleteCandidate request", "candidate_id", req.Msg.CandidateID)

	if err := s.voting.DeleteCandidate(ctx, req.Msg.CandidateID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

func (s *ElectionService) ListCandidates(ctx context.Context, req *connect.Request[api.ElectionRef]) (*connect.Response[api.ListCandidatesResponse], error) {
	candidates, err := s.voting.ListCandidates(ctx, req.Msg.ElectionID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListCandidatesResponse{Candidates: toAPICandidates(candidates)}), nil
}

func (s *ElectionService) GetStatistics(ctx context.Context, req *connect.Request[api.Empty]) (*connect.Response[api.GetStatisticsResponse], error) {
	stats, err := s.voting.Statistics(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetStatisticsResponse{
		Elections:  stats.Elections,
		Candidates: stats.Candidates,
		Voters:     stats.Voters,
		Votes:      stats.Votes,
	}), nil
}

// ListVotes returns the vote audit, newest first.
func (s *ElectionService) ListVotes(ctx context.Context, req *connect.Request[api.ListVotesRequest]) (*connect.Response[api.ListVotesResponse], error) {
	records, err := s.voting.ListVotes(ctx, req.Msg.ElectionID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListVotesResponse{Votes: toAPIVoteRecords(records)}), nil
}

// ListVoters returns every voter with the number of votes cast, so admins can
// find the ID DeleteVoter takes.
func (s *ElectionService) ListVoters(ctx context.Context, req *connect.Request[api.Empty]) (*connect.Response[api.ListVotersResponse], error) {
	voters, err := s.voting.ListVoters(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListVotersResponse{Voters: toAPIVoterSummaries(voters)}), nil
}

// DeleteVoter removes a voter account and every vote it cast.
func (s *ElectionService) DeleteVoter(ctx context.Context, req *connect.Request[api.DeleteVoterRequest]) (*connect.Response[api.Empty], error) {
	s.logger.Info("DeleteVoter request", "id", req.Msg.ID)

	if err := s.voting.DeleteVoter(ctx, req.Msg.ID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.Empty{}), nil
}
