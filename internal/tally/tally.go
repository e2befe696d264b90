// Package tally turns per-candidate vote counts into election results.
package tally

import (
	"fmt"
	"math"
	"sort"

	"github.com/mmynk/ballotbox/internal/models"
)

// CandidateResult is one row of an election's results.
type CandidateResult struct {
	CandidateID string
	Name        string
	Party       string
	VoteCount   int
	Percentage  float64 // share of TotalVotes, 0-100, two decimals
}

// Results is the tallied outcome of one election.
type Results struct {
	Candidates []CandidateResult
	TotalVotes int
}

// Leader returns the candidates sharing the highest vote count. It returns nil
// when nobody has voted.
func (r *Results) Leader() []CandidateResult {
	if r.TotalVotes == 0 {
		return nil
	}
	var leaders []CandidateResult
	for _, c := range r.Candidates {
		switch {
		case len(leaders) == 0 || c.VoteCount > leaders[0].VoteCount:
			leaders = []CandidateResult{c}
		case c.VoteCount == leaders[0].VoteCount:
			leaders = append(leaders, c)
		}
	}
	return leaders
}

// Compute builds results from per-candidate counts. votesCast is the number of
// vote rows stored for the election; it must equal the sum of the counts or
// the tally is rejected, since a mismatch means votes point outside the
// election's candidate set.
//
// Every candidate is kept, including those with zero votes. Rows are ordered
// by vote count (highest first), then by name.
func Compute(tallies []models.CandidateTally, votesCast int) (*Results, error) {
	results := &Results{Candidates: make([]CandidateResult, 0, len(tallies))}

	seen := make(map[string]bool, len(tallies))
	for _, t := range tallies {
		if seen[t.CandidateID] {
			return nil, fmt.Errorf("candidate %s tallied twice", t.CandidateID)
		}
		if t.VoteCount < 0 {
			return nil, fmt.Errorf("candidate %s has negative vote count %d", t.CandidateID, t.VoteCount)
		}
		seen[t.CandidateID] = true

		results.TotalVotes += t.VoteCount
		results.Candidates = append(results.Candidates, CandidateResult{
			CandidateID: t.CandidateID,
			Name:        t.Name,
			Party:       t.Party,
			VoteCount:   t.VoteCount,
		})
	}

	if results.TotalVotes != votesCast {
		return nil, fmt.Errorf("tally mismatch: candidates sum to %d votes, %d cast", results.TotalVotes, votesCast)
	}

	for i := range results.Candidates {
		results.Candidates[i].Percentage = percentage(results.Candidates[i].VoteCount, results.TotalVotes)
	}

	sort.SliceStable(results.Candidates, func(i, j int) bool {
		a, b := results.Candidates[i], results.Candidates[j]
		if a.VoteCount != b.VoteCount {
			return a.VoteCount > b.VoteCount
		}
		return a.Name < b.Name
	})

	return results, nil
}

func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)*10000/float64(total)) / 100
}
