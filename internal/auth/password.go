package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/ballotbox/internal/models"
	"github.com/mmynk/ballotbox/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password must be at least 8 characters and contain a letter and a digit")
	ErrInvalidVoterID     = errors.New("voter ID must be 5-20 letters or digits")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrMissingName        = errors.New("name is required")
	ErrAccountExists      = errors.New("voter ID or email already registered")
	ErrInvalidUsername    = errors.New("username is required")
)

var voterIDPattern = regexp.MustCompile(`^[a-zA-Z0-9]{5,20}$`)

// AccountStorage defines the persistence operations the authenticators need.
// This allows the authenticator to be independent of the storage implementation.
type AccountStorage interface {
	CreateVoter(ctx context.Context, voter *models.Voter) error
	GetVoterByVoterID(ctx context.Context, voterID string) (*models.Voter, error)
	SetVoterPassword(ctx context.Context, id, passwordHash string) error
	CreateAdmin(ctx context.Context, admin *models.Admin) error
	GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error)
	SetAdminPassword(ctx context.Context, id, passwordHash string) error
}

// PasswordAuthenticator implements password-based authentication using bcrypt
// for both voters and admins.
type PasswordAuthenticator struct {
	storage AccountStorage
	cost    int
}

var (
	_ VoterAuthenticator = (*PasswordAuthenticator)(nil)
	_ AdminAuthenticator = (*PasswordAuthenticator)(nil)
)

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage AccountStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
		cost:    bcrypt.DefaultCost,
	}
}

// WithCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (a *PasswordAuthenticator) WithCost(cost int) *PasswordAuthenticator {
	a.cost = cost
	return a
}

// ValidateCredential checks that the password is at least 8 characters and
// mixes letters and digits.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	var letter, digit bool
	for _, r := range credential {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !letter || !digit {
		return ErrWeakPassword
	}
	return nil
}

// ValidateRegistration normalises and checks every registration field.
func (a *PasswordAuthenticator) ValidateRegistration(reg *Registration) error {
	reg.VoterID = strings.TrimSpace(reg.VoterID)
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.ToLower(strings.TrimSpace(reg.Email))

	if !voterIDPattern.MatchString(reg.VoterID) {
		return ErrInvalidVoterID
	}
	if reg.Name == "" {
		return ErrMissingName
	}
	if addr, err := mail.ParseAddress(reg.Email); err != nil || addr.Address != reg.Email {
		return ErrInvalidEmail
	}
	return a.ValidateCredential(reg.Password)
}

func (a *PasswordAuthenticator) hash(credential string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(credential), a.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Register creates a new voter account with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, reg Registration) (*models.Voter, error) {
	if err := a.ValidateRegistration(&reg); err != nil {
		return nil, err
	}

	hashed, err := a.hash(reg.Password)
	if err != nil {
		return nil, err
	}

	voter := &models.Voter{
		VoterID:      reg.VoterID,
		Name:         reg.Name,
		Email:        reg.Email,
		PasswordHash: hashed,
	}
	// The unique indexes on voter_id and email decide races between
	// concurrent registrations.
	if err := a.storage.CreateVoter(ctx, voter); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, ErrAccountExists
		}
		return nil, fmt.Errorf("failed to create voter: %w", err)
	}

	return voter, nil
}

// Authenticate verifies the voter ID and password, returning the voter if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, voterID, credential string) (*models.Voter, error) {
	voter, err := a.storage.GetVoterByVoterID(ctx, strings.TrimSpace(voterID))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// Compare password hash
	if err := bcrypt.CompareHashAndPassword([]byte(voter.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return voter, nil
}

// ResetCredential stores a new password for the voter with the given ID.
func (a *PasswordAuthenticator) ResetCredential(ctx context.Context, id, credential string) error {
	if err := a.ValidateCredential(credential); err != nil {
		return err
	}
	hashed, err := a.hash(credential)
	if err != nil {
		return err
	}
	return a.storage.SetVoterPassword(ctx, id, hashed)
}

// CreateAdmin provisions an administrator account.
func (a *PasswordAuthenticator) CreateAdmin(ctx context.Context, username, email, credential string) (*models.Admin, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" {
		return nil, ErrInvalidUsername
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	hashed, err := a.hash(credential)
	if err != nil {
		return nil, err
	}
	admin := &models.Admin{Username: username, Email: email, PasswordHash: hashed}
	if err := a.storage.CreateAdmin(ctx, admin); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, ErrAccountExists
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, nil
}

// AuthenticateAdmin verifies an administrator's username and password.
func (a *PasswordAuthenticator) AuthenticateAdmin(ctx context.Context, username, credential string) (*models.Admin, error) {
	admin, err := a.storage.GetAdminByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return admin, nil
}

// ChangeAdminCredential verifies the admin's current password before storing
// the new one.
func (a *PasswordAuthenticator) ChangeAdminCredential(ctx context.Context, username, current, credential string) error {
	admin, err := a.AuthenticateAdmin(ctx, username, current)
	if err != nil {
		return err
	}
	return a.setAdminPassword(ctx, admin.ID, credential)
}

// SetAdminCredential stores a new password for the named admin.
func (a *PasswordAuthenticator) SetAdminCredential(ctx context.Context, username, credential string) error {
	admin, err := a.storage.GetAdminByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return err
	}
	return a.setAdminPassword(ctx, admin.ID, credential)
}

func (a *PasswordAuthenticator) setAdminPassword(ctx context.Context, id, credential string) error {
	if err := a.ValidateCredential(credential); err != nil {
		return err
	}
	hashed, err := a.hash(credential)
	if err != nil {
		return err
	}
	return a.storage.SetAdminPassword(ctx, id, hashed)
}
