package middleware

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/ballotbox/pkg/api"
)

// serverFault reports whether code signals a failure on our side rather than
// a request the caller can fix.
func serverFault(code connect.Code) bool {
	switch code {
	case connect.CodeInternal, connect.CodeUnknown, connect.CodeUnavailable,
		connect.CodeDataLoss, connect.CodeUnimplemented, connect.CodeDeadlineExceeded:
		return true
	}
	return false
}

// LoggingInterceptor returns a Connect interceptor that logs one line per RPC
// with the procedure, the principal when one is attached, the duration and
// the error code and reason. Server faults log at Error; rejected requests
// log at Info since the layer that rejected them already logged why. Place
// it inside the auth interceptor to see the principal.
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []any{
				"procedure", req.Spec().Procedure,
				"user_id", GetUserID(ctx),
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if err == nil {
				logger.Info("RPC ok", attrs...)
				return resp, nil
			}

			code := connect.CodeOf(err)
			attrs = append(attrs, "code", code.String(), "reason", api.ErrorReason(err), "error", err)
			if serverFault(code) {
				logger.Error("RPC failed", attrs...)
			} else {
				logger.Info("RPC rejected", attrs...)
			}
			return resp, err
		}
	}
}
