package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/ballotbox/internal/auth"
	"github.com/mmynk/ballotbox/internal/models"
	"github.com/mmynk/ballotbox/internal/voting"
	"github.com/mmynk/ballotbox/pkg/api"
)

// Reasons attached to errors in the api.ErrorReasonHeader metadata.
const (
	ReasonElectionNotActive = "ElectionNotActive"
	ReasonAlreadyVoted      = "AlreadyVoted"
	ReasonDuplicateVote     = "DuplicateVote"
	ReasonInvalidCandidate  = "InvalidCandidate"
	ReasonNotFound          = "NotFound"
	ReasonCandidateHasVotes = "CandidateHasVotes"
	ReasonValidation        = "Validation"
	ReasonAccountExists     = "AccountExists"
	ReasonInvalidToken      = "InvalidToken"
	ReasonPersistence       = "Persistence"
)

type errorMapping struct {
	target error
	code   connect.Code
	reason string
}

var errorMappings = []errorMapping{
	{voting.ErrElectionNotActive, connect.CodeFailedPrecondition, ReasonElectionNotActive},
	{voting.ErrAlreadyVoted, connect.CodeAlreadyExists, ReasonAlreadyVoted},
	{voting.ErrDuplicateVote, connect.CodeAlreadyExists, ReasonDuplicateVote},
	{voting.ErrInvalidCandidate, connect.CodeInvalidArgument, ReasonInvalidCandidate},
	{voting.ErrElectionNotFound, connect.CodeNotFound, ReasonNotFound},
	{voting.ErrCandidateNotFound, connect.CodeNotFound, ReasonNotFound},
	{voting.ErrVoterNotFound, connect.CodeNotFound, ReasonNotFound},
	{voting.ErrCandidateHasVotes, connect.CodeFailedPrecondition, ReasonCandidateHasVotes},

	{models.ErrEmptyTitle, connect.CodeInvalidArgument, ReasonValidation},
	{models.ErrTitleTooLong, connect.CodeInvalidArgument, ReasonValidation},
	{models.ErrInvalidWindow, connect.CodeInvalidArgument, ReasonValidation},
	{models.ErrMissingWindow, connect.CodeInvalidArgument, ReasonValidation},
	{models.ErrStartInPast, connect.CodeInvalidArgument, ReasonValidation},
	{models.ErrEmptyCandidate, connect.CodeInvalidArgument, ReasonValidation},
	{models.ErrEmptyParty, connect.CodeInvalidArgument, ReasonValidation},

	{auth.ErrInvalidVoterID, connect.CodeInvalidArgument, ReasonValidation},
	{auth.ErrInvalidEmail, connect.CodeInvalidArgument, ReasonValidation},
	{auth.ErrWeakPassword, connect.CodeInvalidArgument, ReasonValidation},
	{auth.ErrMissingName, connect.CodeInvalidArgument, ReasonValidation},
	{auth.ErrInvalidUsername, connect.CodeInvalidArgument, ReasonValidation},
	{auth.ErrAccountExists, connect.CodeAlreadyExists, ReasonAccountExists},
	{auth.ErrInvalidCredentials, connect.CodeUnauthenticated, ""},
	{auth.ErrUnknownToken, connect.CodeInvalidArgument, ReasonInvalidToken},
}

// toConnectError presents a domain error as a Connect error with a reason
// header. Unrecognised errors become Internal without leaking their cause.
func toConnectError(err error) *connect.Error {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return withReason(connect.NewError(m.code, m.target), m.reason)
		}
	}
	return withReason(connect.NewError(connect.CodeInternal, voting.ErrPersistence), ReasonPersistence)
}

func withReason(err *connect.Error, reason string) *connect.Error {
	if reason != "" {
		err.Meta().Set(api.ErrorReasonHeader, reason)
	}
	return err
}

func invalidArgument(msg string) *connect.Error {
	return withReason(connect.NewError(connect.CodeInvalidArgument, errors.New(msg)), ReasonValidation)
}
