package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.VoteRecorded("e1")
	m.VoteRecorded("e2")
	m.VoteRejected("duplicate_vote")
	m.VoteRejected("duplicate_vote")
	m.VoteRejected("election_not_active")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.votesRecorded))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.votesRejected.WithLabelValues("duplicate_vote")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.votesRejected.WithLabelValues("election_not_active")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.VoteRecorded("e1")
	m.ObserveRPC("/ballot.v1.VotingService/CastVote", "ok", 15*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "ballotbox_votes_recorded_total 1")
	assert.Contains(t, string(body), `ballotbox_rpc_duration_seconds_count{code="ok",procedure="/ballot.v1.VotingService/CastVote"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
