package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// AuthServiceName is the fully-qualified name of the AuthService service.
const AuthServiceName = "ballot.v1.AuthService"

const (
	AuthServiceRegisterVoterProcedure        = "/ballot.v1.AuthService/RegisterVoter"
	AuthServiceLoginVoterProcedure           = "/ballot.v1.AuthService/LoginVoter"
	AuthServiceLoginAdminProcedure           = "/ballot.v1.AuthService/LoginAdmin"
	AuthServiceVerifyEmailProcedure          = "/ballot.v1.AuthService/VerifyEmail"
	AuthServiceRequestPasswordResetProcedure = "/ballot.v1.AuthService/RequestPasswordReset"
	AuthServiceResetPasswordProcedure        = "/ballot.v1.AuthService/ResetPassword"
	AuthServiceChangeAdminPasswordProcedure  = "/ballot.v1.AuthService/ChangeAdminPassword"
)

// AuthServiceHandler is implemented by the server side of ballot.v1.AuthService.
type AuthServiceHandler interface {
	RegisterVoter(context.Context, *connect.Request[RegisterVoterRequest]) (*connect.Response[RegisterVoterResponse], error)
	LoginVoter(context.Context, *connect.Request[LoginVoterRequest]) (*connect.Response[LoginVoterResponse], error)
	LoginAdmin(context.Context, *connect.Request[LoginAdminRequest]) (*connect.Response[LoginAdminResponse], error)
	VerifyEmail(context.Context, *connect.Request[VerifyEmailRequest]) (*connect.Response[Empty], error)
	RequestPasswordReset(context.Context, *connect.Request[RequestPasswordResetRequest]) (*connect.Response[Empty], error)
	ResetPassword(context.Context, *connect.Request[ResetPasswordRequest]) (*connect.Response[Empty], error)
	ChangeAdminPassword(context.Context, *connect.Request[ChangeAdminPasswordRequest]) (*connect.Response[Empty], error)
}

// NewAuthServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	mux := http.NewServeMux()
	mux.Handle(AuthServiceRegisterVoterProcedure, connect.NewUnaryHandler(AuthServiceRegisterVoterProcedure, svc.RegisterVoter, opts...))
	mux.Handle(AuthServiceLoginVoterProcedure, connect.NewUnaryHandler(AuthServiceLoginVoterProcedure, svc.LoginVoter, opts...))
	mux.Handle(AuthServiceLoginAdminProcedure, connect.NewUnaryHandler(AuthServiceLoginAdminProcedure, svc.LoginAdmin, opts...))
	mux.Handle(AuthServiceVerifyEmailProcedure, connect.NewUnaryHandler(AuthServiceVerifyEmailProcedure, svc.VerifyEmail, opts...))
	mux.Handle(AuthServiceRequestPasswordResetProcedure, connect.NewUnaryHandler(AuthServiceRequestPasswordResetProcedure, svc.RequestPasswordReset, opts...))
	mux.Handle(AuthServiceResetPasswordProcedure, connect.NewUnaryHandler(AuthServiceResetPasswordProcedure, svc.ResetPassword, opts...))
	mux.Handle(AuthServiceChangeAdminPasswordProcedure, connect.NewUnaryHandler(AuthServiceChangeAdminPasswordProcedure, svc.ChangeAdminPassword, opts...))
	return "/" + AuthServiceName + "/", mux
}

// AuthServiceClient is a client for ballot.v1.AuthService.
type AuthServiceClient struct {
	registerVoter        *connect.Client[RegisterVoterRequest, RegisterVoterResponse]
	loginVoter           *connect.Client[LoginVoterRequest, LoginVoterResponse]
	loginAdmin           *connect.Client[LoginAdminRequest, LoginAdminResponse]
	verifyEmail          *connect.Client[VerifyEmailRequest, Empty]
	requestPasswordReset *connect.Client[RequestPasswordResetRequest, Empty]
	resetPassword        *connect.Client[ResetPasswordRequest, Empty]
	changeAdminPassword  *connect.Client[ChangeAdminPasswordRequest, Empty]
}

// NewAuthServiceClient constructs a client for ballot.v1.AuthService at
// baseURL (for example, http://localhost:8080).
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &AuthServiceClient{
		registerVoter:        connect.NewClient[RegisterVoterRequest, RegisterVoterResponse](httpClient, baseURL+AuthServiceRegisterVoterProcedure, opts...),
		loginVoter:           connect.NewClient[LoginVoterRequest, LoginVoterResponse](httpClient, baseURL+AuthServiceLoginVoterProcedure, opts...),
		loginAdmin:           connect.NewClient[LoginAdminRequest, LoginAdminResponse](httpClient, baseURL+AuthServiceLoginAdminProcedure, opts...),
		verifyEmail:          connect.NewClient[VerifyEmailRequest, Empty](httpClient, baseURL+AuthServiceVerifyEmailProcedure, opts...),
		requestPasswordReset: connect.NewClient[RequestPasswordResetRequest, Empty](httpClient, baseURL+AuthServiceRequestPasswordResetProcedure, opts...),
		resetPassword:        connect.NewClient[ResetPasswordRequest, Empty](httpClient, baseURL+AuthServiceResetPasswordProcedure, opts...),
		changeAdminPassword:  connect.NewClient[ChangeAdminPasswordRequest, Empty](httpClient, baseURL+AuthServiceChangeAdminPasswordProcedure, opts...),
	}
}

func (c *AuthServiceClient) RegisterVoter(ctx context.Context, req *connect.Request[RegisterVoterRequest]) (*connect.Response[RegisterVoterResponse], error) {
	return c.registerVoter.CallUnary(ctx, req)
}

func (c *AuthServiceClient) LoginVoter(ctx context.Context, req *connect.Request[LoginVoterRequest]) (*connect.Response[LoginVoterResponse], error) {
	return c.loginVoter.CallUnary(ctx, req)
}

func (c *AuthServiceClient) LoginAdmin(ctx context.Context, req *connect.Request[LoginAdminRequest]) (*connect.Response[LoginAdminResponse], error) {
	return c.loginAdmin.CallUnary(ctx, req)
}

func (c *AuthServiceClient) VerifyEmail(ctx context.Context, req *connect.Request[VerifyEmailRequest]) (*connect.Response[Empty], error) {
	return c.verifyEmail.CallUnary(ctx, req)
}

func (c *AuthServiceClient) RequestPasswordReset(ctx context.Context, req *connect.Request[RequestPasswordResetRequest]) (*connect.Response[Empty], error) {
	return c.requestPasswordReset.CallUnary(ctx, req)
}

func (c *AuthServiceClient) ResetPassword(ctx context.Context, req *connect.Request[ResetPasswordRequest]) (*connect.Response[Empty], error) {
	return c.resetPassword.CallUnary(ctx, req)
}

func (c *AuthServiceClient) ChangeAdminPassword(ctx context.Context, req *connect.Request[ChangeAdminPasswordRequest]) (*connect.Response[Empty], error) {
	return c.changeAdminPassword.CallUnary(ctx, req)
}
