package tally

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/ballotbox/internal/models"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name         string
		tallies      []models.CandidateTally
		votesCast    int
		wantErr      bool
		validateFunc func(t *testing.T, r *Results)
	}{
		{
			name: "simple two-candidate race",
			tallies: []models.CandidateTally{
				{CandidateID: "c1", Name: "Alice", VoteCount: 3},
				{CandidateID: "c2", Name: "Bob", VoteCount: 1},
			},
			votesCast: 4,
			validateFunc: func(t *testing.T, r *Results) {
				assert.Equal(t, 4, r.TotalVotes)
				require.Len(t, r.Candidates, 2)
				assert.Equal(t, "c1", r.Candidates[0].CandidateID)
				assert.InDelta(t, 75.0, r.Candidates[0].Percentage, 0.001)
				assert.InDelta(t, 25.0, r.Candidates[1].Percentage, 0.001)
			},
		},
		{
			name: "zero-vote election keeps every candidate",
			tallies: []models.CandidateTally{
				{CandidateID: "c1", Name: "Alice"},
				{CandidateID: "c2", Name: "Bob"},
				{CandidateID: "c3", Name: "Carol"},
			},
			votesCast: 0,
			validateFunc: func(t *testing.T, r *Results) {
				assert.Equal(t, 0, r.TotalVotes)
				require.Len(t, r.Candidates, 3)
				for _, c := range r.Candidates {
					assert.Zero(t, c.VoteCount)
					assert.Zero(t, c.Percentage)
				}
				assert.Nil(t, r.Leader())
			},
		},
		{
			name: "percentages round to two decimals",
			tallies: []models.CandidateTally{
				{CandidateID: "c1", Name: "Alice", VoteCount: 1},
				{CandidateID: "c2", Name: "Bob", VoteCount: 1},
				{CandidateID: "c3", Name: "Carol", VoteCount: 1},
			},
			votesCast: 3,
			validateFunc: func(t *testing.T, r *Results) {
				for _, c := range r.Candidates {
					assert.Equal(t, 33.33, c.Percentage)
				}
				// Ties fall back to name order.
				assert.Equal(t, "Alice", r.Candidates[0].Name)
				assert.Len(t, r.Leader(), 3)
			},
		},
		{
			name:      "no candidates",
			tallies:   nil,
			votesCast: 0,
			validateFunc: func(t *testing.T, r *Results) {
				assert.Empty(t, r.Candidates)
				assert.Equal(t, 0, r.TotalVotes)
			},
		},
		{
			name: "sum mismatch is rejected",
			tallies: []models.CandidateTally{
				{CandidateID: "c1", Name: "Alice", VoteCount: 2},
			},
			votesCast: 3,
			wantErr:   true,
		},
		{
			name: "duplicate candidate is rejected",
			tallies: []models.CandidateTally{
				{CandidateID: "c1", Name: "Alice", VoteCount: 1},
				{CandidateID: "c1", Name: "Alice", VoteCount: 1},
			},
			votesCast: 2,
			wantErr:   true,
		},
		{
			name: "negative count is rejected",
			tallies: []models.CandidateTally{
				{CandidateID: "c1", Name: "Alice", VoteCount: -1},
			},
			votesCast: -1,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Compute(tt.tallies, tt.votesCast)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			sum := 0
			for _, c := range r.Candidates {
				sum += c.VoteCount
			}
			assert.Equal(t, r.TotalVotes, sum)

			if tt.validateFunc != nil {
				tt.validateFunc(t, r)
			}
		})
	}
}

func TestLeader(t *testing.T) {
	r, err := Compute([]models.CandidateTally{
		{CandidateID: "c1", Name: "Alice", VoteCount: 2},
		{CandidateID: "c2", Name: "Bob", VoteCount: 5},
		{CandidateID: "c3", Name: "Carol", VoteCount: 0},
	}, 7)
	require.NoError(t, err)

	leaders := r.Leader()
	require.Len(t, leaders, 1)
	assert.Equal(t, "Bob", leaders[0].Name)
}
