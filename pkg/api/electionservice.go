package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// ElectionServiceName is the fully-qualified name of the ElectionService
// service. Every procedure requires an admin session.
const ElectionServiceName = "ballot.v1.ElectionService"

const (
	ElectionServiceCreateElectionProcedure  = "/ballot.v1.ElectionService/CreateElection"
	ElectionServiceUpdateElectionProcedure  = "/ballot.v1.ElectionService/UpdateElection"
	ElectionServiceDeleteElectionProcedure  = "/ballot.v1.ElectionService/DeleteElection"
	ElectionServiceGetElectionProcedure     = "/ballot.v1.ElectionService/GetElection"
	ElectionServiceListElectionsProcedure   = "/ballot.v1.ElectionService/ListElections"
	ElectionServiceAddCandidateProcedure    = "/ballot.v1.ElectionService/AddCandidate"
	ElectionServiceUpdateCandidateProcedure = "/ballot.v1.ElectionService/UpdateCandidate"
	ElectionServiceDeleteCandidateProcedure = "/ballot.v1.ElectionService/DeleteCandidate"
	ElectionServiceListCandidatesProcedure  = "/ballot.v1.ElectionService/ListCandidates"
	ElectionServiceGetStatisticsProcedure   = "/ballot.v1.ElectionService/GetStatistics"
	ElectionServiceListVotesProcedure       = "/ballot.v1.ElectionService/ListVotes"
	ElectionServiceListVotersProcedure      = "/ballot.v1.ElectionService/ListVoters"
	ElectionServiceDeleteVoterProcedure     = "/ballot.v1.ElectionService/DeleteVoter"
)

// ElectionServiceHandler is implemented by the server side of ballot.v1.ElectionService.
type ElectionServiceHandler interface {
	CreateElection(context.Context, *connect.Request[CreateElectionRequest]) (*connect.Response[ElectionResponse], error)
	UpdateElection(context.Context, *connect.Request[UpdateElectionRequest]) (*connect.Response[ElectionResponse], error)
	DeleteElection(context.Context, *connect.Request[ElectionRef]) (*connect.Response[Empty], error)
	GetElection(context.Context, *connect.Request[ElectionRef]) (*connect.Response[GetElectionResponse], error)
	ListElections(context.Context, *connect.Request[ListElectionsRequest]) (*connect.Response[ListElectionsResponse], error)
	AddCandidate(context.Context, *connect.Request[AddCandidateRequest]) (*connect.Response[CandidateResponse], error)
	UpdateCandidate(context.Context, *connect.Request[UpdateCandidateRequest]) (*connect.Response[CandidateResponse], error)
	DeleteCandidate(context.Context, *connect.Request[CandidateRef]) (*connect.Response[Empty], error)
	ListCandidates(context.Context, *connect.Request[ElectionRef]) (*connect.Response[ListCandidatesResponse], error)
	GetStatistics(context.Context, *connect.Request[Empty]) (*connect.Response[GetStatisticsResponse], error)
	ListVotes(context.Context, *connect.Request[ListVotesRequest]) (*connect.Response[ListVotesResponse], error)
	ListVoters(context.Context, *connect.Request[Empty]) (*connect.Response[ListVotersResponse], error)
	DeleteVoter(context.Context, *connect.Request[DeleteVoterRequest]) (*connect.Response[Empty], error)
}

// NewElectionServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewElectionServiceHandler(svc ElectionServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	mux := http.NewServeMux()
	mux.Handle(ElectionServiceCreateElectionProcedure, connect.NewUnaryHandler(ElectionServiceCreateElectionProcedure, svc.CreateElection, opts...))
	mux.Handle(ElectionServiceUpdateElectionProcedure, connect.NewUnaryHandler(ElectionServiceUpdateElectionProcedure, svc.UpdateElection, opts...))
	mux.Handle(ElectionServiceDeleteElectionProcedure, connect.NewUnaryHandler(ElectionServiceDeleteElectionProcedure, svc.DeleteElection, opts...))
	mux.Handle(ElectionServiceGetElectionProcedure, connect.NewUnaryHandler(ElectionServiceGetElectionProcedure, svc.GetElection, opts...))
	mux.Handle(ElectionServiceListElectionsProcedure, connect.NewUnaryHandler(ElectionServiceListElectionsProcedure, svc.ListElections, opts...))
	mux.Handle(ElectionServiceAddCandidateProcedure, connect.NewUnaryHandler(ElectionServiceAddCandidateProcedure, svc.AddCandidate, opts...))
	mux.Handle(ElectionServiceUpdateCandidateProcedure, connect.NewUnaryHandler(ElectionServiceUpdateCandidateProcedure, svc.UpdateCandidate, opts...))
	mux.Handle(ElectionServiceDeleteCandidateProcedure, connect.NewUnaryHandler(ElectionServiceDeleteCandidateProcedure, svc.DeleteCandidate, opts...))
	mux.Handle(ElectionServiceListCandidatesProcedure, connect.NewUnaryHandler(ElectionServiceListCandidatesProcedure, svc.ListCandidates, opts...))
	mux.Handle(ElectionServiceGetStatisticsProcedure, connect.NewUnaryHandler(ElectionServiceGetStatisticsProcedure, svc.GetStatistics, opts...))
	mux.Handle(ElectionServiceListVotesProcedure, connect.NewUnaryHandler(ElectionServiceListVotesProcedure, svc.ListVotes, opts...))
	mux.Handle(ElectionServiceListVotersProcedure, connect.NewUnaryHandler(ElectionServiceListVotersProcedure, svc.ListVoters, opts...))
	mux.Handle(ElectionServiceDeleteVoterProcedure, connect.NewUnaryHandler(ElectionServiceDeleteVoterProcedure, svc.DeleteVoter, opts...))
	return "/" + ElectionServiceName + "/", mux
}

// ElectionServiceClient is a client for ballot.v1.ElectionService.
type ElectionServiceClient struct {
	createElection  *connect.Client[CreateElectionRequest, ElectionResponse]
	updateElection  *connect.Client[UpdateElectionRequest, ElectionResponse]
	deleteElection  *connect.Client[ElectionRef, Empty]
	getElection     *connect.Client[ElectionRef, GetElectionResponse]
	listElections   *connect.Client[ListElectionsRequest, ListElectionsResponse]
	addCandidate    *connect.Client[AddCandidateRequest, CandidateResponse]
	updateCandidate *connect.Client[UpdateCandidateRequest, CandidateResponse]
	deleteCandidate *connect.Client[CandidateRef, Empty]
	listCandidates  *connect.Client[ElectionRef, ListCandidatesResponse]
	getStatistics   *connect.Client[Empty, GetStatisticsResponse]
	listVotes       *connect.Client[ListVotesRequest, ListVotesResponse]
	listVoters      *connect.Client[Empty, ListVotersResponse]
	deleteVoter     *connect.Client[DeleteVoterRequest, Empty]
}

// NewElectionServiceClient constructs a client for ballot.v1.ElectionService.
func NewElectionServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ElectionServiceClient {
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &ElectionServiceClient{
		createElection:  connect.NewClient[CreateElectionRequest, ElectionResponse](httpClient, baseURL+ElectionServiceCreateElectionProcedure, opts...),
		updateElection:  connect.NewClient[UpdateElectionRequest, ElectionResponse](httpClient, baseURL+ElectionServiceUpdateElectionProcedure, opts...),
		deleteElection:  connect.NewClient[ElectionRef, Empty](httpClient, baseURL+ElectionServiceDeleteElectionProcedure, opts...),
		getElection:     connect.NewClient[ElectionRef, GetElectionResponse](httpClient, baseURL+ElectionServiceGetElectionProcedure, opts...),
		listElections:   connect.NewClient[ListElectionsRequest, ListElectionsResponse](httpClient, baseURL+ElectionServiceListElectionsProcedure, opts...),
		addCandidate:    connect.NewClient[AddCandidateRequest, CandidateResponse](httpClient, baseURL+ElectionServiceAddCandidateProcedure, opts...),
		updateCandidate: connect.NewClient[UpdateCandidateRequest, CandidateResponse](httpClient, baseURL+ElectionServiceUpdateCandidateProcedure, opts...),
		deleteCandidate: connect.NewClient[CandidateRef, Empty](httpClient, baseURL+ElectionServiceDeleteCandidateProcedure, opts...),
		listCandidates:  connect.NewClient[ElectionRef, ListCandidatesResponse](httpClient, baseURL+ElectionServiceListCandidatesProcedure, opts...),
		getStatistics:   connect.NewClient[Empty, GetStatisticsResponse](httpClient, baseURL+ElectionServiceGetStatisticsProcedure, opts...),
		listVotes:       connect.NewClient[ListVotesRequest, ListVotesResponse](httpClient, baseURL+ElectionServiceListVotesProcedure, opts...),
		listVoters:      connect.NewClient[Empty, ListVotersResponse](httpClient, baseURL+ElectionServiceListVotersProcedure, opts...),
		deleteVoter:     connect.NewClient[DeleteVoterRequest, Empty](httpClient, baseURL+ElectionServiceDeleteVoterProcedure, opts...),
	}
}

func (c *ElectionServiceClient) CreateElection(ctx context.Context, req *connect.Request[CreateElectionRequest]) (*connect.Response[ElectionResponse], error) {
	return c.createElection.CallUnary(ctx, req)
}

func (c *ElectionServiceClient) UpdateElection(ctx context.Context, req *connect.Request[UpdateElectionRequest]) (*connect.Response[ElectionResponse], error) {
	return c.updateElection.CallUnary(ctx, req)
}

func (c *ElectionServiceClient) DeleteElection(ctx context.Context, req *connect.Request[ElectionRef]) (*connect.Response[Empty], error) {
	return c.deleteElection.CallUnary(ctx, req)
}

func (c *ElectionServiceClient) GetElection(ctx context.Context, req *connect.Request[ElectionRef]) (*connect.Response[GetElectionResponse], error) {
	return c.getElection.CallUnary(ctx, req)
}

func (c *ElectionServiceClient) ListElections(ctx context.Context, req *connect.Request[ListElectionsRequest]) (*connect.Response[ListElectionsResponse], error) {
	return c.listElections.CallUnary(ctx, req)
}

func (c *ElectionServiceClient) AddCandidate(ctx context.Context, req *connect.Request[AddCandidateRequest]) (*connect.Response[CandidateResponse], error) {
	return c.addCandidate.CallUnary(ctx, req)
}

func (c *ElectionServiceClient) UpdateCandidate(ctx context.Context, req *connect.Request[UpdateCandidateRequest]) (*connect.Response[CandidateResponse], error) {
	return c.updateCandidate.CallUnary(ctx, req)
}

func (c *ElectionServiceClient) DeleteCandidate(ctx context.Context, req *connect.Request[CandidateRef]) (*connect.Response[Empty], error) {
	return c.deleteCandidate.CallUnary(ctx, req)
}

func (c *ElectionServiceClient) ListCandidates(ctx context.Context, req *connect.Request[ElectionRef]) (*connect.Response[ListCandidatesResponse], error) {
	return c.listCandidates.CallUnary(ctx, req)
}

func (c *ElectionServiceClient) GetStatistics(ctx context.Context, req *connect.Request[Empty]) (*connect.Response[GetStatisticsResponse], error) {
	return c.getStatistics.CallUnary(ctx, req)
}

func (c *ElectionServiceClient) ListVotes(ctx context.Context, req *connect.Request[ListVotesRequest]) (*connect.Response[ListVotesResponse], error) {
	return c.listVotes.CallUnary(ctx, req)
}

func (c *ElectionServiceClient) ListVoters(ctx context.Context, req *connect.Request[Empty]) (*connect.Response[ListVotersResponse], error) {
	return c.listVoters.CallUnary(ctx, req)
}

func (c *ElectionServiceClient) DeleteVoter(ctx context.Context, req *connect.Request[DeleteVoterRequest]) (*connect.Response[Empty], error) {
	return c.deleteVoter.CallUnary(ctx, req)
}
