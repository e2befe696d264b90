package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// VotingServiceName is the fully-qualified name of the VotingService service.
const VotingServiceName = "ballot.v1.VotingService"

const (
	VotingServiceListActiveElectionsProcedure = "/ballot.v1.VotingService/ListActiveElections"
	VotingServiceCanVoteProcedure             = "/ballot.v1.VotingService/CanVote"
	VotingServiceGetBallotProcedure           = "/ballot.v1.VotingService/GetBallot"
	VotingServiceCastVoteProcedure            = "/ballot.v1.VotingService/CastVote"
	VotingServiceGetResultsProcedure          = "/ballot.v1.VotingService/GetResults"
)

// VotingServiceHandler is implemented by the server side of ballot.v1.VotingService.
type VotingServiceHandler interface {
	ListActiveElections(context.Context, *connect.Request[Empty]) (*connect.Response[ListActiveElectionsResponse], error)
	CanVote(context.Context, *connect.Request[ElectionRef]) (*connect.Response[CanVoteResponse], error)
	GetBallot(context.Context, *connect.Request[ElectionRef]) (*connect.Response[GetBallotResponse], error)
	CastVote(context.Context, *connect.Request[CastVoteRequest]) (*connect.Response[CastVoteResponse], error)
	GetResults(context.Context, *connect.Request[ElectionRef]) (*connect.Response[GetResultsResponse], error)
}

// NewVotingServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewVotingServiceHandler(svc VotingServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	mux := http.NewServeMux()
	mux.Handle(VotingServiceListActiveElectionsProcedure, connect.NewUnaryHandler(VotingServiceListActiveElectionsProcedure, svc.ListActiveElections, opts...))
	mux.Handle(VotingServiceCanVoteProcedure, connect.NewUnaryHandler(VotingServiceCanVoteProcedure, svc.CanVote, opts...))
	mux.Handle(VotingServiceGetBallotProcedure, connect.NewUnaryHandler(VotingServiceGetBallotProcedure, svc.GetBallot, opts...))
	mux.Handle(VotingServiceCastVoteProcedure, connect.NewUnaryHandler(VotingServiceCastVoteProcedure, svc.CastVote, opts...))
	mux.Handle(VotingServiceGetResultsProcedure, connect.NewUnaryHandler(VotingServiceGetResultsProcedure, svc.GetResults, opts...))
	return "/" + VotingServiceName + "/", mux
}

// VotingServiceClient is a client for ballot.v1.VotingService.
type VotingServiceClient struct {
	listActiveElections *connect.Client[Empty, ListActiveElectionsResponse]
	canVote             *connect.Client[ElectionRef, CanVoteResponse]
	getBallot           *connect.Client[ElectionRef, GetBallotResponse]
	castVote            *connect.Client[CastVoteRequest, CastVoteResponse]
	getResults          *connect.Client[ElectionRef, GetResultsResponse]
}

// NewVotingServiceClient constructs a client for ballot.v1.VotingService.
func NewVotingServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *VotingServiceClient {
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &VotingServiceClient{
		listActiveElections: connect.NewClient[Empty, ListActiveElectionsResponse](httpClient, baseURL+VotingServiceListActiveElectionsProcedure, opts...),
		canVote:             connect.NewClient[ElectionRef, CanVoteResponse](httpClient, baseURL+VotingServiceCanVoteProcedure, opts...),
		getBallot:           connect.NewClient[ElectionRef, GetBallotResponse](httpClient, baseURL+VotingServiceGetBallotProcedure, opts...),
		castVote:            connect.NewClient[CastVoteRequest, CastVoteResponse](httpClient, baseURL+VotingServiceCastVoteProcedure, opts...),
		getResults:          connect.NewClient[ElectionRef, GetResultsResponse](httpClient, baseURL+VotingServiceGetResultsProcedure, opts...),
	}
}

func (c *VotingServiceClient) ListActiveElections(ctx context.Context, req *connect.Request[Empty]) (*connect.Response[ListActiveElectionsResponse], error) {
	return c.listActiveElections.CallUnary(ctx, req)
}

func (c *VotingServiceClient) CanVote(ctx context.Context, req *connect.Request[ElectionRef]) (*connect.Response[CanVoteResponse], error) {
	return c.canVote.CallUnary(ctx, req)
}

func (c *VotingServiceClient) GetBallot(ctx context.Context, req *connect.Request[ElectionRef]) (*connect.Response[GetBallotResponse], error) {
	return c.getBallot.CallUnary(ctx, req)
}

func (c *VotingServiceClient) CastVote(ctx context.Context, req *connect.Request[CastVoteRequest]) (*connect.Response[CastVoteResponse], error) {
	return c.castVote.CallUnary(ctx, req)
}

func (c *VotingServiceClient) GetResults(ctx context.Context, req *connect.Request[ElectionRef]) (*connect.Response[GetResultsResponse], error) {
	return c.getResults.CallUnary(ctx, req)
}
