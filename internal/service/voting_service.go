package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/ballotbox/internal/auth"
	"github.com/mmynk/ballotbox/internal/middleware"
	"github.com/mmynk/ballotbox/internal/voting"
	"github.com/mmynk/ballotbox/pkg/api"
)

// VotingService implements the voter-facing VotingService RPC interface.
type VotingService struct {
	voting *voting.Service
	logger *slog.Logger
}

var _ api.VotingServiceHandler = (*VotingService)(nil)

// NewVotingService creates a new voting service.
func NewVotingService(svc *voting.Service, logger *slog.Logger) *VotingService {
	return &VotingService{voting: svc, logger: logger}
}

func voterID(ctx context.Context) (string, error) {
	p := middleware.GetPrincipal(ctx)
	if p == nil {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	if p.Role != auth.RoleVoter {
		return "", connect.NewError(connect.CodePermissionDenied, auth.ErrForbidden)
	}
	return p.ID, nil
}

// ListActiveElections returns the voter dashboard: every active election and
// whether the caller already voted in it.
func (s *VotingService) ListActiveElections(ctx context.Context, req *connect.Request[api.Empty]) (*connect.Response[api.ListActiveElectionsResponse], error) {
	id, err := voterID(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.voting.Dashboard(ctx, id)
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]*api.DashboardElection, len(entries))
	for i, entry := range entries {
		out[i] = &api.DashboardElection{Election: toAPIElection(entry.Election), HasVoted: entry.HasVoted}
	}
	return connect.NewResponse(&api.ListActiveElectionsResponse{Elections: out}), nil
}

// CanVote reports whether the caller may vote now. A denial is an answer,
// not an error.
func (s *VotingService) CanVote(ctx context.Context, req *connect.Request[api.ElectionRef]) (*connect.Response[api.CanVoteResponse], error) {
	id, err := voterID(ctx)
	if err != nil {
		return nil, err
	}
	allowed, reason, err := s.voting.CanVote(ctx, id, req.Msg.ElectionID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.CanVoteResponse{Allowed: allowed, Reason: string(reason)}), nil
}

// GetBallot returns the election's candidates to a voter who may vote in it.
// Voters who cannot vote get FailedPrecondition or AlreadyExists.
func (s *VotingService) GetBallot(ctx context.Context, req *connect.Request[api.ElectionRef]) (*connect.Response[api.GetBallotResponse], error) {
	id, err := voterID(ctx)
	if err != nil {
		return nil, err
	}
	election, candidates, err := s.voting.Ballot(ctx, id, req.Msg.ElectionID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetBallotResponse{
		Election:   toAPIElection(election),
		Candidates: toAPICandidates(candidates),
	}), nil
}

// CastVote records the caller's vote.
func (s *VotingService) CastVote(ctx context.Context, req *connect.Request[api.CastVoteRequest]) (*connect.Response[api.CastVoteResponse], error) {
	id, err := voterID(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("CastVote request", "voter", id, "election_id", req.Msg.ElectionID)

	voteID, err := s.voting.RecordVote(ctx, id, req.Msg.ElectionID, req.Msg.CandidateID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.CastVoteResponse{VoteID: voteID}), nil
}

// GetResults returns the current tally. It needs no session.
func (s *VotingService) GetResults(ctx context.Context, req *connect.Request[api.ElectionRef]) (*connect.Response[api.GetResultsResponse], error) {
	results, err := s.voting.GetResults(ctx, req.Msg.ElectionID)
	if err != nil {
		return nil, toConnectError(err)
	}

	rows, leaders := toAPIResults(results)
	return connect.NewResponse(&api.GetResultsResponse{
		Election:   toAPIElection(results.Election),
		Candidates: rows,
		TotalVotes: results.TotalVotes,
		Leaders:    leaders,
	}), nil
}
