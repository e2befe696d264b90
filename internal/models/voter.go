package models

import "time"

// Voter is a registered identity permitted to cast votes.
type Voter struct {
	// ID is the internal identifier (UUID format) referenced by votes.
	ID string

	// VoterID is the public voter identifier used to log in (unique).
	VoterID string

	// Name is the voter's display name.
	Name string

	// Email is the voter's email address (unique).
	Email string

	// PasswordHash is the bcrypt hash of the voter's password.
	PasswordHash string

	// EmailVerified is set once the voter redeems a verification token.
	EmailVerified bool

	// CreatedAt is when the voter registered.
	CreatedAt time.Time
}

// VoterSummary is a voter as listed to admins: no password hash, plus the
// number of votes cast.
type VoterSummary struct {
	ID            string
	VoterID       string
	Name          string
	Email         string
	EmailVerified bool
	VotesCast     int
	CreatedAt     time.Time
}

// Admin is an account allowed to manage elections and read the vote audit.
type Admin struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
