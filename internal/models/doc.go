// Package models defines the core domain models for ballotbox.
//
// # Models
//
//   - Election: a time-bounded contest whose Status is derived from its window
//   - Candidate: an option belonging to exactly one election
//   - Voter: a registered identity that may cast one vote per election
//   - Admin: an account that manages elections and reads the audit
//   - Vote: an immutable (voter, election, candidate) record
//
// # Relationships
//
//	Election 1──* Candidate
//	Election 1──* Vote
//	Voter    1──* Vote
//	Candidate 1──* Vote
//
// Relationships are expressed as ID strings rather than pointers. Deleting an
// election removes its candidates and votes; deleting a voter removes their
// votes. Votes are never updated.
package models
