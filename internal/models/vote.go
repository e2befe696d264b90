package models

import "time"

// Vote is an immutable record linking one voter, one election and one
// candidate. At most one vote exists per (voter, election).
type Vote struct {
	ID          string
	VoterID     string
	ElectionID  string
	CandidateID string
	CastAt      time.Time
}

// VoteRecord is a vote joined with the names needed for the admin audit view.
type VoteRecord struct {
	VoteID        string
	VoterID       string
	VoterName     string
	CandidateID   string
	CandidateName string
	ElectionID    string
	ElectionTitle string
	CastAt        time.Time
}

// CandidateTally is the number of votes one candidate received.
type CandidateTally struct {
	CandidateID string
	Name        string
	Party       string
	VoteCount   int
}

// Statistics holds system-wide counts for the admin dashboard.
type Statistics struct {
	Elections  int
	Candidates int
	Voters     int
	Votes      int
}
