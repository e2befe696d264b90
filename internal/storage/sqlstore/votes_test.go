package sqlstore_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/ballotbox/internal/models"
	"github.com/mmynk/ballotbox/internal/storage"
	"github.com/mmynk/ballotbox/internal/storage/sqlite"
	"github.com/mmynk/ballotbox/internal/storage/sqlstore"
)

// A vote that slips past the HasVoted check, as when two casts race, must
// still come back as ErrDuplicateVote from the unique index.
func TestInsertVoteMapsUniqueViolation(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.New(ctx, filepath.Join(t.TempDir(), "votes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	now := time.Now()
	election := &models.Election{Title: "Board", StartAt: now.Add(-time.Hour), EndAt: now.Add(time.Hour)}
	require.NoError(t, store.CreateElection(ctx, election))
	candidate := &models.Candidate{ElectionID: election.ID, Name: "Ann", Party: "Blue"}
	require.NoError(t, store.CreateCandidate(ctx, candidate))
	voter := &models.Voter{VoterID: "voter01", Name: "Voter", Email: "voter01@example.com", PasswordHash: "h"}
	require.NoError(t, store.CreateVoter(ctx, voter))

	vote := &models.Vote{VoterID: voter.ID, ElectionID: election.ID, CandidateID: candidate.ID}
	require.NoError(t, store.CastVote(ctx, vote, now))

	tests := []struct {
		name string
		vote *models.Vote
		want error
	}{
		{"second vote in election", &models.Vote{VoterID: voter.ID, ElectionID: election.ID, CandidateID: candidate.ID}, storage.ErrDuplicateVote},
		{"unknown voter", &models.Vote{VoterID: "ghost", ElectionID: election.ID, CandidateID: candidate.ID}, storage.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The store holds a single connection, so each case releases its
			// transaction before the next begins.
			tx, err := store.DB().BeginTx(ctx, nil)
			require.NoError(t, err)
			defer tx.Rollback()

			err = sqlstore.InsertVote(store, ctx, tx, uuid.NewString(), tt.vote, now)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
