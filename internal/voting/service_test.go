package voting

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/ballotbox/internal/models"
	"github.com/mmynk/ballotbox/internal/storage"
	"github.com/mmynk/ballotbox/internal/storage/sqlite"
)

var base = time.Date(2031, 3, 1, 12, 0, 0, 0, time.UTC)

type countingObserver struct {
	mu       sync.Mutex
	recorded int
	rejected map[string]int
}

func (o *countingObserver) VoteRecorded(string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.recorded++
}

func (o *countingObserver) VoteRejected(reason string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.rejected == nil {
		o.rejected = make(map[string]int)
	}
	o.rejected[reason]++
}

type harness struct {
	store    storage.Store
	svc      *Service
	now      time.Time
	observer *countingObserver
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "voting.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	h := &harness{store: store, now: base, observer: &countingObserver{}}
	h.svc = NewService(store,
		WithClock(func() time.Time { return h.now }),
		WithObserver(h.observer),
	)
	return h
}

// election creates an election open from base to base+2h with the named
// candidates, returned in the order given.
func (h *harness) election(t *testing.T, title string, names ...string) (*models.Election, []*models.Candidate) {
	t.Helper()
	ctx := context.Background()
	e := &models.Election{Title: title, StartAt: base, EndAt: base.Add(2 * time.Hour)}
	require.NoError(t, h.svc.CreateElection(ctx, e))

	var cands []*models.Candidate
	for _, name := range names {
		c := &models.Candidate{ElectionID: e.ID, Name: name, Party: "Independent"}
		require.NoError(t, h.svc.AddCandidate(ctx, c))
		cands = append(cands, c)
	}
	return e, cands
}

func (h *harness) voter(t *testing.T, voterID string) *models.Voter {
	t.Helper()
	v := &models.Voter{VoterID: voterID, Name: voterID, Email: voterID + "@example.com", PasswordHash: "x"}
	require.NoError(t, h.store.CreateVoter(context.Background(), v))
	return v
}

func TestCanVote(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	e, cands := h.election(t, "Mayor", "Ann", "Ben")
	v := h.voter(t, "voter01")

	tests := []struct {
		name   string
		at     time.Time
		want   bool
		reason DenialReason
	}{
		{"before start", base.Add(-time.Second), false, DenialElectionNotActive},
		{"at start", base, true, DenialNone},
		{"at end", base.Add(2 * time.Hour), true, DenialNone},
		{"after end", base.Add(2*time.Hour + time.Second), false, DenialElectionNotActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h.now = tt.at
			ok, reason, err := h.svc.CanVote(ctx, v.ID, e.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, tt.reason, reason)
		})
	}

	t.Run("already voted", func(t *testing.T) {
		h.now = base.Add(time.Minute)
		_, err := h.svc.RecordVote(ctx, v.ID, e.ID, cands[0].ID)
		require.NoError(t, err)

		ok, reason, err := h.svc.CanVote(ctx, v.ID, e.ID)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, DenialAlreadyVoted, reason)
		assert.ErrorIs(t, reason.Err(), ErrAlreadyVoted)
	})

	t.Run("closed election reports not active before already voted", func(t *testing.T) {
		h.now = base.Add(3 * time.Hour)
		_, reason, err := h.svc.CanVote(ctx, v.ID, e.ID)
		require.NoError(t, err)
		assert.Equal(t, DenialElectionNotActive, reason)
	})

	t.Run("unknown election", func(t *testing.T) {
		_, _, err := h.svc.CanVote(ctx, v.ID, "missing")
		assert.ErrorIs(t, err, ErrElectionNotFound)
	})
}

func TestBallot(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	e, cands := h.election(t, "Mayor", "Ann", "Ben")
	v := h.voter(t, "voter01")

	h.now = base.Add(-time.Minute)
	_, _, err := h.svc.Ballot(ctx, v.ID, e.ID)
	assert.ErrorIs(t, err, ErrElectionNotActive)

	h.now = base.Add(time.Minute)
	election, ballot, err := h.svc.Ballot(ctx, v.ID, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, election.ID)
	assert.Equal(t, models.StatusActive, election.Status)
	require.Len(t, ballot, 2)
	assert.ElementsMatch(t, []string{cands[0].ID, cands[1].ID}, []string{ballot[0].ID, ballot[1].ID})

	_, err = h.svc.RecordVote(ctx, v.ID, e.ID, cands[0].ID)
	require.NoError(t, err)
	_, _, err = h.svc.Ballot(ctx, v.ID, e.ID)
	assert.ErrorIs(t, err, ErrAlreadyVoted)

	_, _, err = h.svc.Ballot(ctx, v.ID, "missing")
	assert.ErrorIs(t, err, ErrElectionNotFound)
}

func TestRecordVote(t *testing.T) {
	ctx := context.Background()

	t.Run("records and tallies", func(t *testing.T) {
		h := newHarness(t)
		e, cands := h.election(t, "Mayor", "Ann", "Ben")
		v := h.voter(t, "voter01")
		h.now = base.Add(time.Minute)

		id, err := h.svc.RecordVote(ctx, v.ID, e.ID, cands[1].ID)
		require.NoError(t, err)
		assert.NotEmpty(t, id)

		results, err := h.svc.GetResults(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, results.TotalVotes)
		assert.Equal(t, "Ben", results.Candidates[0].Name)
		assert.Equal(t, 1, results.Candidates[0].VoteCount)
		assert.Equal(t, 100.0, results.Candidates[0].Percentage)
		assert.Equal(t, 1, h.observer.recorded)
	})

	t.Run("second vote rejected and first preserved", func(t *testing.T) {
		h := newHarness(t)
		e, cands := h.election(t, "Mayor", "Ann", "Ben")
		v := h.voter(t, "voter01")
		h.now = base.Add(time.Minute)

		_, err := h.svc.RecordVote(ctx, v.ID, e.ID, cands[0].ID)
		require.NoError(t, err)
		_, err = h.svc.RecordVote(ctx, v.ID, e.ID, cands[1].ID)
		assert.ErrorIs(t, err, ErrDuplicateVote)

		results, err := h.svc.GetResults(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, results.TotalVotes)
		assert.Equal(t, "Ann", results.Candidates[0].Name)
		assert.Equal(t, 1, results.Candidates[0].VoteCount)
		assert.Equal(t, 1, h.observer.rejected["duplicate_vote"])
	})

	t.Run("candidate from another election", func(t *testing.T) {
		h := newHarness(t)
		e1, _ := h.election(t, "Mayor", "Ann")
		e2, other := h.election(t, "Council", "Cat")
		v := h.voter(t, "voter01")
		h.now = base.Add(time.Minute)

		_, err := h.svc.RecordVote(ctx, v.ID, e1.ID, other[0].ID)
		assert.ErrorIs(t, err, ErrInvalidCandidate)

		for _, id := range []string{e1.ID, e2.ID} {
			results, err := h.svc.GetResults(ctx, id)
			require.NoError(t, err)
			assert.Zero(t, results.TotalVotes)
		}
	})

	t.Run("invalid candidate reported even when closed", func(t *testing.T) {
		h := newHarness(t)
		e, _ := h.election(t, "Mayor", "Ann")
		v := h.voter(t, "voter01")
		h.now = base.Add(5 * time.Hour)

		_, err := h.svc.RecordVote(ctx, v.ID, e.ID, "missing")
		assert.ErrorIs(t, err, ErrInvalidCandidate)
	})

	t.Run("outside window", func(t *testing.T) {
		h := newHarness(t)
		e, cands := h.election(t, "Mayor", "Ann")
		v := h.voter(t, "voter01")

		h.now = base.Add(-time.Minute)
		_, err := h.svc.RecordVote(ctx, v.ID, e.ID, cands[0].ID)
		assert.ErrorIs(t, err, ErrElectionNotActive)

		h.now = base.Add(3 * time.Hour)
		_, err = h.svc.RecordVote(ctx, v.ID, e.ID, cands[0].ID)
		assert.ErrorIs(t, err, ErrElectionNotActive)
		assert.Equal(t, 2, h.observer.rejected["election_not_active"])
	})

	t.Run("failed attempt leaves no trace and can be retried", func(t *testing.T) {
		h := newHarness(t)
		e, cands := h.election(t, "Mayor", "Ann")
		v := h.voter(t, "voter01")

		h.now = base.Add(-time.Minute)
		_, err := h.svc.RecordVote(ctx, v.ID, e.ID, cands[0].ID)
		require.ErrorIs(t, err, ErrElectionNotActive)

		voted, err := h.store.HasVoted(ctx, v.ID, e.ID)
		require.NoError(t, err)
		assert.False(t, voted)

		h.now = base
		_, err = h.svc.RecordVote(ctx, v.ID, e.ID, cands[0].ID)
		require.NoError(t, err)
	})

	t.Run("unknown voter", func(t *testing.T) {
		h := newHarness(t)
		e, cands := h.election(t, "Mayor", "Ann")
		h.now = base.Add(time.Minute)

		_, err := h.svc.RecordVote(ctx, "ghost", e.ID, cands[0].ID)
		assert.ErrorIs(t, err, ErrVoterNotFound)
	})
}

func TestRecordVoteConcurrent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	e, cands := h.election(t, "Mayor", "Ann", "Ben")
	v := h.voter(t, "voter01")
	h.now = base.Add(time.Minute)

	const n = 25
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = h.svc.RecordVote(ctx, v.ID, e.ID, cands[i%2].ID)
		}(i)
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrDuplicateVote):
			dup++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, dup)

	results, err := h.svc.GetResults(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, results.TotalVotes)
}

func TestManyVotersConcurrent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	e, cands := h.election(t, "Mayor", "Ann", "Ben", "Cy")
	h.now = base.Add(time.Minute)

	const n = 30
	voters := make([]*models.Voter, n)
	for i := range voters {
		voters[i] = h.voter(t, fmt.Sprintf("voter%02d", i))
	}

	var wg sync.WaitGroup
	for i, v := range voters {
		wg.Add(1)
		go func(i int, v *models.Voter) {
			defer wg.Done()
			_, err := h.svc.RecordVote(ctx, v.ID, e.ID, cands[i%3].ID)
			assert.NoError(t, err)
		}(i, v)
	}
	wg.Wait()

	results, err := h.svc.GetResults(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, n, results.TotalVotes)
	sum := 0
	for _, c := range results.Candidates {
		assert.Equal(t, 10, c.VoteCount)
		sum += c.VoteCount
	}
	assert.Equal(t, results.TotalVotes, sum)
}

func TestGetResults(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	t.Run("no votes lists every candidate at zero", func(t *testing.T) {
		e, _ := h.election(t, "Quiet", "Ann", "Ben")
		results, err := h.svc.GetResults(ctx, e.ID)
		require.NoError(t, err)
		assert.Zero(t, results.TotalVotes)
		require.Len(t, results.Candidates, 2)
		for _, c := range results.Candidates {
			assert.Zero(t, c.VoteCount)
			assert.Zero(t, c.Percentage)
		}
	})

	t.Run("no candidates", func(t *testing.T) {
		e, _ := h.election(t, "Empty")
		results, err := h.svc.GetResults(ctx, e.ID)
		require.NoError(t, err)
		assert.Empty(t, results.Candidates)
		assert.Zero(t, results.TotalVotes)
	})

	t.Run("carries the election with its derived status", func(t *testing.T) {
		e, _ := h.election(t, "Closed", "Ann")
		h.now = base.Add(3 * time.Hour)
		defer func() { h.now = base }()

		results, err := h.svc.GetResults(ctx, e.ID)
		require.NoError(t, err)
		require.NotNil(t, results.Election)
		assert.Equal(t, e.ID, results.Election.ID)
		assert.Equal(t, "Closed", results.Election.Title)
		assert.Equal(t, models.StatusCompleted, results.Election.Status)
	})

	t.Run("unknown election", func(t *testing.T) {
		_, err := h.svc.GetResults(ctx, "missing")
		assert.ErrorIs(t, err, ErrElectionNotFound)
	})
}
