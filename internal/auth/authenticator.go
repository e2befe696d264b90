package auth

import (
	"context"

	"github.com/mmynk/ballotbox/internal/models"
)

// VoterAuthenticator defines how voters register and sign in.
// This abstraction keeps the service layer independent of the credential
// scheme.
type VoterAuthenticator interface {
	// Register validates the registration and creates the voter account.
	Register(ctx context.Context, reg Registration) (*models.Voter, error)

	// Authenticate verifies the voter ID and credential, returning the voter
	// if they match.
	Authenticate(ctx context.Context, voterID, credential string) (*models.Voter, error)

	// ResetCredential replaces a voter's credential after validating it.
	ResetCredential(ctx context.Context, id, credential string) error

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}

// AdminAuthenticator defines how administrators are provisioned and sign in.
type AdminAuthenticator interface {
	CreateAdmin(ctx context.Context, username, email, credential string) (*models.Admin, error)
	AuthenticateAdmin(ctx context.Context, username, credential string) (*models.Admin, error)

	// ChangeAdminCredential replaces the admin's credential once the current
	// one has been verified.
	ChangeAdminCredential(ctx context.Context, username, current, credential string) error

	// SetAdminCredential replaces the admin's credential without the current
	// one. It is meant for operators with direct access to the server.
	SetAdminCredential(ctx context.Context, username, credential string) error
}

// Registration is the input for a new voter account.
type Registration struct {
	VoterID  string
	Name     string
	Email    string
	Password string
}
