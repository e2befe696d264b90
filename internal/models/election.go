package models

import (
	"errors"
	"strings"
	"time"
)

// Status is the lifecycle state of an election. It is always derived from the
// election window and the current time, never set directly.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is one of the three lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusUpcoming, StatusActive, StatusCompleted:
		return true
	}
	return false
}

// MaxTitleLength bounds Election.Title.
const MaxTitleLength = 200

// MaxStartBackdate is how far in the past a new election may start.
const MaxStartBackdate = 24 * time.Hour

var (
	ErrEmptyTitle     = errors.New("election title is required")
	ErrInvalidWindow  = errors.New("election end must be after its start")
	ErrMissingWindow  = errors.New("election start and end are required")
	ErrTitleTooLong   = errors.New("election title is too long (max 200 characters)")
	ErrEmptyCandidate = errors.New("candidate name is required")
	ErrEmptyParty     = errors.New("candidate party is required")
	ErrStartInPast    = errors.New("election start cannot be in the past")
)

// Election is a time-bounded contest between candidates.
type Election struct {
	// ID is the unique identifier for the election (UUID format).
	ID string

	// Title is the display name of the election.
	Title string

	// Description is optional free text shown to voters.
	Description string

	// StartAt opens the voting window (inclusive).
	StartAt time.Time

	// EndAt closes the voting window (inclusive).
	EndAt time.Time

	// Status is the last derived lifecycle state. It is refreshed on every
	// read and must not be trusted between reads.
	Status Status

	// CreatedBy is the ID of the admin who created the election.
	CreatedBy string

	// CreatedAt is when the election was created.
	CreatedAt time.Time
}

// Validate checks the invariants an election must hold before it is stored.
func (e *Election) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if len(e.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if e.StartAt.IsZero() || e.EndAt.IsZero() {
		return ErrMissingWindow
	}
	if !e.StartAt.Before(e.EndAt) {
		return ErrInvalidWindow
	}
	return nil
}

// ElectionFilter narrows an election listing.
type ElectionFilter struct {
	// Status keeps only elections in the given state. Empty keeps all.
	Status Status
}
