package service

import (
	"github.com/mmynk/ballotbox/internal/models"
	"github.com/mmynk/ballotbox/internal/voting"
	"github.com/mmynk/ballotbox/pkg/api"
)

func toAPIElection(e *models.Election) *api.Election {
	return &api.Election{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartAt:     e.StartAt,
		EndAt:       e.EndAt,
		Status:      string(e.Status),
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
	}
}

func toAPIElections(elections []*models.Election) []*api.Election {
	out := make([]*api.Election, len(elections))
	for i, e := range elections {
		out[i] = toAPIElection(e)
	}
	return out
}

func toAPICandidate(c *models.Candidate) *api.Candidate {
	return &api.Candidate{
		ID:          c.ID,
		ElectionID:  c.ElectionID,
		Name:        c.Name,
		Party:       c.Party,
		Description: c.Description,
		PhotoURL:    c.PhotoURL,
		CreatedAt:   c.CreatedAt,
	}
}

func toAPICandidates(candidates []*models.Candidate) []*api.Candidate {
	out := make([]*api.Candidate, len(candidates))
	for i, c := range candidates {
		out[i] = toAPICandidate(c)
	}
	return out
}

func toAPIVoter(v *models.Voter) *api.Voter {
	return &api.Voter{
		ID:            v.ID,
		VoterID:       v.VoterID,
		Name:          v.Name,
		Email:         v.Email,
		EmailVerified: v.EmailVerified,
		CreatedAt:     v.CreatedAt,
	}
}

func toAPIVoterSummaries(voters []*models.VoterSummary) []*api.VoterSummary {
	out := make([]*api.VoterSummary, len(voters))
	for i, v := range voters {
		out[i] = &api.VoterSummary{
			ID:            v.ID,
			VoterID:       v.VoterID,
			Name:          v.Name,
			Email:         v.Email,
			EmailVerified: v.EmailVerified,
			VotesCast:     v.VotesCast,
			CreatedAt:     v.CreatedAt,
		}
	}
	return out
}

func toAPIAdmin(a *models.Admin) *api.Admin {
	return &api.Admin{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
	}
}

func toAPIResults(r *voting.Results) ([]*api.CandidateResult, []string) {
	rows := make([]*api.CandidateResult, len(r.Candidates))
	for i, c := range r.Candidates {
		rows[i] = &api.CandidateResult{
			CandidateID: c.CandidateID,
			Name:        c.Name,
			Party:       c.Party,
			VoteCount:   c.VoteCount,
			Percentage:  c.Percentage,
		}
	}
	leaders := []string{}
	for _, c := range r.Leader() {
		leaders = append(leaders, c.CandidateID)
	}
	return rows, leaders
}

func toAPIVoteRecords(records []*models.VoteRecord) []*api.VoteRecord {
	out := make([]*api.VoteRecord, len(records))
	for i, r := range records {
		out[i] = &api.VoteRecord{
			VoteID:        r.VoteID,
			VoterID:       r.VoterID,
			VoterName:     r.VoterName,
			CandidateID:   r.CandidateID,
			CandidateName: r.CandidateName,
			ElectionID:    r.ElectionID,
			ElectionTitle: r.ElectionTitle,
			CastAt:        r.CastAt,
		}
	}
	return out
}
