package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/ballotbox/internal/auth"
	"github.com/mmynk/ballotbox/internal/middleware"
	"github.com/mmynk/ballotbox/internal/models"
	"github.com/mmynk/ballotbox/internal/storage"
	"github.com/mmynk/ballotbox/internal/voting"
	"github.com/mmynk/ballotbox/pkg/api"
)

// Authenticator covers both voter and admin sign-in.
type Authenticator interface {
	auth.VoterAuthenticator
	auth.AdminAuthenticator
}

// AccountStore is the subset of storage the auth flows read and update
// directly.
type AccountStore interface {
	GetVoterByEmail(ctx context.Context, email string) (*models.Voter, error)
	MarkEmailVerified(ctx context.Context, id string) error
}

// Mailer delivers verification and password reset links.
type Mailer interface {
	SendVerification(ctx context.Context, to, name, token string) error
	SendPasswordReset(ctx context.Context, to, name, token string) error
}

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator Authenticator
	accounts      AccountStore
	jwtManager    *auth.JWTManager
	tokens        *auth.TokenStore
	mailer        Mailer
	logger        *slog.Logger
}

var _ api.AuthServiceHandler = (*AuthService)(nil)

// NewAuthService creates a new authentication service.
func NewAuthService(
	authenticator Authenticator,
	accounts AccountStore,
	jwtManager *auth.JWTManager,
	tokens *auth.TokenStore,
	mailer Mailer,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		accounts:      accounts,
		jwtManager:    jwtManager,
		tokens:        tokens,
		mailer:        mailer,
		logger:        logger,
	}
}

// RegisterVoter creates a voter account, signs the voter in and mails an
// email verification link.
func (s *AuthService) RegisterVoter(ctx context.Context, req *connect.Request[api.RegisterVoterRequest]) (*connect.Response[api.RegisterVoterResponse], error) {
	s.logger.Info("RegisterVoter request", "voter_id", req.Msg.VoterID)

	voter, err := s.authenticator.Register(ctx, auth.Registration{
		VoterID:  req.Msg.VoterID,
		Name:     req.Msg.Name,
		Email:    req.Msg.Email,
		Password: req.Msg.Password,
	})
	if err != nil {
		s.logger.Warn("Registration failed", "voter_id", req.Msg.VoterID, "error", err)
		return nil, toConnectError(err)
	}

	token, err := s.jwtManager.Generate(auth.Principal{ID: voter.ID, Name: voter.Name, Role: auth.RoleVoter})
	if err != nil {
		s.logger.Error("Failed to generate token", "id", voter.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	// The account exists either way; a lost email can be requested again
	// through the password reset flow.
	verify := s.tokens.Issue(auth.PurposeVerifyEmail, voter.ID)
	if err := s.mailer.SendVerification(ctx, voter.Email, voter.Name, verify); err != nil {
		s.logger.Error("Failed to send verification email", "id", voter.ID, "error", err)
	}

	s.logger.Info("Voter registered", "id", voter.ID, "voter_id", voter.VoterID)
	return connect.NewResponse(&api.RegisterVoterResponse{Voter: toAPIVoter(voter), Token: token}), nil
}

// LoginVoter authenticates a voter and returns a JWT token.
func (s *AuthService) LoginVoter(ctx context.Context, req *connect.Request[api.LoginVoterRequest]) (*connect.Response[api.LoginVoterResponse], error) {
	s.logger.Info("LoginVoter request", "voter_id", req.Msg.VoterID)

	if req.Msg.VoterID == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	voter, err := s.authenticator.Authenticate(ctx, req.Msg.VoterID, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "voter_id", req.Msg.VoterID, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	token, err := s.jwtManager.Generate(auth.Principal{ID: voter.ID, Name: voter.Name, Role: auth.RoleVoter})
	if err != nil {
		s.logger.Error("Failed to generate token", "id", voter.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("Voter logged in", "id", voter.ID)
	return connect.NewResponse(&api.LoginVoterResponse{Voter: toAPIVoter(voter), Token: token}), nil
}

// LoginAdmin authenticates an administrator and returns a JWT token.
func (s *AuthService) LoginAdmin(ctx context.Context, req *connect.Request[api.LoginAdminRequest]) (*connect.Response[api.LoginAdminResponse], error) {
	s.logger.Info("LoginAdmin request", "username", req.Msg.Username)

	if req.Msg.Username == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	admin, err := s.authenticator.AuthenticateAdmin(ctx, req.Msg.Username, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Admin login failed", "username", req.Msg.Username, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	token, err := s.jwtManager.Generate(auth.Principal{ID: admin.ID, Name: admin.Username, Role: auth.RoleAdmin})
	if err != nil {
		s.logger.Error("Failed to generate token", "id", admin.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("Admin logged in", "id", admin.ID)
	return connect.NewResponse(&api.LoginAdminResponse{Admin: toAPIAdmin(admin), Token: token}), nil
}

// VerifyEmail redeems a verification token.
func (s *AuthService) VerifyEmail(ctx context.Context, req *connect.Request[api.VerifyEmailRequest]) (*connect.Response[api.Empty], error) {
	id, err := s.tokens.Consume(auth.PurposeVerifyEmail, req.Msg.Token)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := s.accounts.MarkEmailVerified(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, toConnectError(voting.ErrVoterNotFound)
		}
		s.logger.Error("Failed to mark email verified", "id", id, "error", err)
		return nil, toConnectError(err)
	}
	s.logger.Info("Email verified", "id", id)
	return connect.NewResponse(&api.Empty{}), nil
}

// RequestPasswordReset mails a reset link when the address belongs to a
// voter. It answers the same way for unknown addresses so accounts cannot be
// enumerated.
func (s *AuthService) RequestPasswordReset(ctx context.Context, req *connect.Request[api.RequestPasswordResetRequest]) (*connect.Response[api.Empty], error) {
	email := strings.ToLower(strings.TrimSpace(req.Msg.Email))
	voter, err := s.accounts.GetVoterByEmail(ctx, email)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.logger.Info("Password reset for unknown email")
	case err != nil:
		s.logger.Error("Failed to look up voter for reset", "error", err)
	default:
		token := s.tokens.Issue(auth.PurposeResetPassword, voter.ID)
		if err := s.mailer.SendPasswordReset(ctx, voter.Email, voter.Name, token); err != nil {
			s.logger.Error("Failed to send reset email", "id", voter.ID, "error", err)
		}
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// ResetPassword redeems a reset token and stores the new password.
func (s *AuthService) ResetPassword(ctx context.Context, req *connect.Request[api.ResetPasswordRequest]) (*connect.Response[api.Empty], error) {
	// Validate first so a weak password does not burn the token.
	if err := s.authenticator.ValidateCredential(req.Msg.NewPassword); err != nil {
		return nil, toConnectError(err)
	}
	id, err := s.tokens.Consume(auth.PurposeResetPassword, req.Msg.Token)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := s.authenticator.ResetCredential(ctx, id, req.Msg.NewPassword); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, toConnectError(voting.ErrVoterNotFound)
		}
		s.logger.Error("Failed to reset password", "id", id, "error", err)
		return nil, toConnectError(err)
	}
	s.logger.Info("Password reset", "id", id)
	return connect.NewResponse(&api.Empty{}), nil
}

// ChangeAdminPassword lets a signed-in admin replace their password. The
// current password must be supplied.
func (s *AuthService) ChangeAdminPassword(ctx context.Context, req *connect.Request[api.ChangeAdminPasswordRequest]) (*connect.Response[api.Empty], error) {
	p := middleware.GetPrincipal(ctx)
	if p == nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	if p.Role != auth.RoleAdmin {
		return nil, connect.NewError(connect.CodePermissionDenied, auth.ErrForbidden)
	}

	err := s.authenticator.ChangeAdminCredential(ctx, p.Name, req.Msg.CurrentPassword, req.Msg.NewPassword)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		s.logger.Warn("Admin password change refused", "id", p.ID)
		return nil, invalidArgument("current password is incorrect")
	case err != nil:
		if !errors.Is(err, auth.ErrWeakPassword) {
			s.logger.Error("Failed to change admin password", "id", p.ID, "error", err)
		}
		return nil, toConnectError(err)
	}
	s.logger.Info("Admin password changed", "id", p.ID)
	return connect.NewResponse(&api.Empty{}), nil
}
