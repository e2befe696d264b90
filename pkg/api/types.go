package api

import "time"

// Election is the wire form of an election.
type Election struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	Status      string    `json:"status"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Candidate struct {
	ID          string    `json:"id"`
	ElectionID  string    `json:"election_id"`
	Name        string    `json:"name"`
	Party       string    `json:"party"`
	Description string    `json:"description,omitempty"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Voter never carries the password hash.
type Voter struct {
	ID            string    `json:"id"`
	VoterID       string    `json:"voter_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

type Admin struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type CandidateResult struct {
	CandidateID string  `json:"candidate_id"`
	Name        string  `json:"name"`
	Party       string  `json:"party"`
	VoteCount   int     `json:"vote_count"`
	Percentage  float64 `json:"percentage"`
}

type VoteRecord struct {
	VoteID        string    `json:"vote_id"`
	VoterID       string    `json:"voter_id"`
	VoterName     string    `json:"voter_name"`
	CandidateID   string    `json:"candidate_id"`
	CandidateName string    `json:"candidate_name"`
	ElectionID    string    `json:"election_id"`
	ElectionTitle string    `json:"election_title"`
	CastAt        time.Time `json:"cast_at"`
}

// Empty is the response of operations that return nothing.
type Empty struct{}

// AuthService messages.

type RegisterVoterRequest struct {
	VoterID  string `json:"voter_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterVoterResponse struct {
	Voter *Voter `json:"voter"`
	Token string `json:"token"`
}

type LoginVoterRequest struct {
	VoterID  string `json:"voter_id"`
	Password string `json:"password"`
}

type LoginVoterResponse struct {
	Voter *Voter `json:"voter"`
	Token string `json:"token"`
}

type LoginAdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginAdminResponse struct {
	Admin *Admin `json:"admin"`
	Token string `json:"token"`
}

type ChangeAdminPasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type VerifyEmailRequest struct {
	Token string `json:"token"`
}

type RequestPasswordResetRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// ElectionService messages.

type CreateElectionRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
}

type UpdateElectionRequest struct {
	ElectionID  string    `json:"election_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
}

type ElectionResponse struct {
	Election *Election `json:"election"`
}

type ElectionRef struct {
	ElectionID string `json:"election_id"`
}

type GetElectionResponse struct {
	Election   *Election    `json:"election"`
	Candidates []*Candidate `json:"candidates"`
}

type ListElectionsRequest struct {
	// Status optionally filters by derived status.
	Status string `json:"status,omitempty"`
}

type ListElectionsResponse struct {
	Elections []*Election `json:"elections"`
}

type AddCandidateRequest struct {
	ElectionID  string `json:"election_id"`
	Name        string `json:"name"`
	Party       string `json:"party"`
	Description string `json:"description,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
}

type UpdateCandidateRequest struct {
	CandidateID string `json:"candidate_id"`
	Name        string `json:"name"`
	Party       string `json:"party"`
	Description string `json:"description,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
}

type CandidateResponse struct {
	Candidate *Candidate `json:"candidate"`
}

type CandidateRef struct {
	CandidateID string `json:"candidate_id"`
}

type ListCandidatesResponse struct {
	Candidates []*Candidate `json:"candidates"`
}

type GetStatisticsResponse struct {
	Elections  int `json:"elections"`
	Candidates int `json:"candidates"`
	Voters     int `json:"voters"`
	Votes      int `json:"votes"`
}

type ListVotesRequest struct {
	// ElectionID restricts the audit to one election; empty lists all.
	ElectionID string `json:"election_id,omitempty"`
}

type ListVotesResponse struct {
	Votes []*VoteRecord `json:"votes"`
}

// VoterSummary is a voter as listed to admins.
type VoterSummary struct {
	ID            string    `json:"id"`
	VoterID       string    `json:"voter_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"email_verified"`
	VotesCast     int       `json:"votes_cast"`
	CreatedAt     time.Time `json:"created_at"`
}

type ListVotersResponse struct {
	Voters []*VoterSummary `json:"voters"`
}

type DeleteVoterRequest struct {
	// ID is the voter's internal identifier, not the public voter ID.
	ID string `json:"id"`
}

// VotingService messages.

type DashboardElection struct {
	Election *Election `json:"election"`
	HasVoted bool      `json:"has_voted"`
}

type ListActiveElectionsResponse struct {
	Elections []*DashboardElection `json:"elections"`
}

type CanVoteResponse struct {
	Allowed bool `json:"allowed"`
	// Reason is ElectionNotActive or AlreadyVoted when Allowed is false.
	Reason string `json:"reason,omitempty"`
}

// GetBallotResponse is what a voter sees before casting a vote. It carries
// no counts.
type GetBallotResponse struct {
	Election   *Election    `json:"election"`
	Candidates []*Candidate `json:"candidates"`
}

type CastVoteRequest struct {
	ElectionID  string `json:"election_id"`
	CandidateID string `json:"candidate_id"`
}

type CastVoteResponse struct {
	VoteID string `json:"vote_id"`
}

type GetResultsResponse struct {
	Election   *Election          `json:"election"`
	Candidates []*CandidateResult `json:"candidates"`
	TotalVotes int                `json:"total_votes"`
	// Leaders lists the candidate IDs sharing the highest count; empty
	// when no votes were cast.
	Leaders []string `json:"leaders"`
}
