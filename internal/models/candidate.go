package models

import (
	"strings"
	"time"
)

// Candidate is an option belonging to exactly one election.
type Candidate struct {
	ID string

	// ElectionID is fixed at creation. Updates never move a candidate.
	ElectionID string

	Name        string
	Party       string
	Description string
	PhotoURL    string
	CreatedAt   time.Time
}

// Validate checks the fields required for a candidate to be stored.
func (c *Candidate) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyCandidate
	}
	if strings.TrimSpace(c.Party) == "" {
		return ErrEmptyParty
	}
	return nil
}
