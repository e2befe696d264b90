package service

import (
	"errors"
	"fmt"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"

	"github.com/mmynk/ballotbox/internal/auth"
	"github.com/mmynk/ballotbox/internal/models"
	"github.com/mmynk/ballotbox/internal/voting"
	"github.com/mmynk/ballotbox/pkg/api"
)

func TestToConnectError(t *testing.T) {
	tests := []struct {
		err    error
		code   connect.Code
		reason string
	}{
		{voting.ErrElectionNotActive, connect.CodeFailedPrecondition, ReasonElectionNotActive},
		{fmt.Errorf("cast: %w", voting.ErrDuplicateVote), connect.CodeAlreadyExists, ReasonDuplicateVote},
		{voting.ErrAlreadyVoted, connect.CodeAlreadyExists, ReasonAlreadyVoted},
		{voting.ErrInvalidCandidate, connect.CodeInvalidArgument, ReasonInvalidCandidate},
		{voting.ErrElectionNotFound, connect.CodeNotFound, ReasonNotFound},
		{models.ErrInvalidWindow, connect.CodeInvalidArgument, ReasonValidation},
		{auth.ErrAccountExists, connect.CodeAlreadyExists, ReasonAccountExists},
		{auth.ErrInvalidCredentials, connect.CodeUnauthenticated, ""},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			got := toConnectError(tt.err)
			assert.Equal(t, tt.code, got.Code())
			assert.Equal(t, tt.reason, got.Meta().Get(api.ErrorReasonHeader))
		})
	}
}

func TestToConnectErrorHidesCause(t *testing.T) {
	got := toConnectError(fmt.Errorf("%w: insert vote: disk I/O error", voting.ErrPersistence))
	assert.Equal(t, connect.CodeInternal, got.Code())
	assert.NotContains(t, got.Message(), "disk")

	got = toConnectError(errors.New("boom"))
	assert.Equal(t, connect.CodeInternal, got.Code())
	assert.Equal(t, ReasonPersistence, got.Meta().Get(api.ErrorReasonHeader))
}
