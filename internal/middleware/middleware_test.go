package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/ballotbox/internal/auth"
	"github.com/mmynk/ballotbox/pkg/api"
)

const (
	whoamiProcedure = "/test.v1.EchoService/Whoami"
	publicProcedure = "/test.v1.EchoService/Public"
)

type whoami struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

func newEchoServer(t *testing.T, interceptors ...connect.Interceptor) string {
	t.Helper()
	handle := func(ctx context.Context, _ *connect.Request[api.Empty]) (*connect.Response[whoami], error) {
		out := &whoami{}
		if p := GetPrincipal(ctx); p != nil {
			out.ID, out.Role = p.ID, string(p.Role)
		}
		return connect.NewResponse(out), nil
	}
	opts := []connect.HandlerOption{api.WithJSON(), connect.WithInterceptors(interceptors...)}

	mux := http.NewServeMux()
	mux.Handle(whoamiProcedure, connect.NewUnaryHandler(whoamiProcedure, handle, opts...))
	mux.Handle(publicProcedure, connect.NewUnaryHandler(publicProcedure, handle, opts...))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv.URL
}

func call(url, procedure, token string) (*whoami, error) {
	client := connect.NewClient[api.Empty, whoami](http.DefaultClient, url+procedure, api.WithJSON())
	req := connect.NewRequest(&api.Empty{})
	if token != "" {
		req.Header().Set("Authorization", "Bearer "+token)
	}
	resp, err := client.CallUnary(context.Background(), req)
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func TestRequireRole(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	url := newEchoServer(t, RequireRole(jwtManager, auth.RoleAdmin, publicProcedure))

	adminToken, err := jwtManager.Generate(auth.Principal{ID: "admin-1", Role: auth.RoleAdmin})
	require.NoError(t, err)
	voterToken, err := jwtManager.Generate(auth.Principal{ID: "voter-1", Role: auth.RoleVoter})
	require.NoError(t, err)

	tests := []struct {
		name      string
		procedure string
		token     string
		wantCode  connect.Code
		wantID    string
	}{
		{"admin allowed", whoamiProcedure, adminToken, 0, "admin-1"},
		{"no token", whoamiProcedure, "", connect.CodeUnauthenticated, ""},
		{"garbage token", whoamiProcedure, "garbage", connect.CodeUnauthenticated, ""},
		{"wrong role", whoamiProcedure, voterToken, connect.CodePermissionDenied, ""},
		{"public anonymous", publicProcedure, "", 0, ""},
		{"public with session", publicProcedure, voterToken, 0, "voter-1"},
		{"public with garbage", publicProcedure, "garbage", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := call(url, tt.procedure, tt.token)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, connect.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestMalformedAuthorizationHeader(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	url := newEchoServer(t, RequireRole(jwtManager, auth.RoleVoter))

	client := connect.NewClient[api.Empty, whoami](http.DefaultClient, url+whoamiProcedure, api.WithJSON())
	req := connect.NewRequest(&api.Empty{})
	req.Header().Set("Authorization", "Token abc")
	_, err := client.CallUnary(context.Background(), req)
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
}

type recordingObserver struct {
	mu    sync.Mutex
	codes map[string]string
}

func (r *recordingObserver) ObserveRPC(procedure, code string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes[procedure] = code
}

func TestMetricsInterceptor(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	observer := &recordingObserver{codes: map[string]string{}}
	url := newEchoServer(t,
		MetricsInterceptor(observer),
		LoggingInterceptor(slog.New(slog.NewTextHandler(io.Discard, nil))),
		RequireRole(jwtManager, auth.RoleAdmin, publicProcedure),
	)

	_, err := call(url, publicProcedure, "")
	require.NoError(t, err)
	_, err = call(url, whoamiProcedure, "")
	require.Error(t, err)

	observer.mu.Lock()
	defer observer.mu.Unlock()
	assert.Equal(t, "ok", observer.codes[publicProcedure])
	assert.Equal(t, "unauthenticated", observer.codes[whoamiProcedure])
}

func TestOptionalAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	url := newEchoServer(t, OptionalAuth(jwtManager))

	voterToken, err := jwtManager.Generate(auth.Principal{ID: "voter-1", Role: auth.RoleVoter})
	require.NoError(t, err)

	got, err := call(url, whoamiProcedure, voterToken)
	require.NoError(t, err)
	assert.Equal(t, "voter-1", got.ID)
	assert.Equal(t, string(auth.RoleVoter), got.Role)

	got, err = call(url, whoamiProcedure, "")
	require.NoError(t, err)
	assert.Empty(t, got.ID)

	got, err = call(url, whoamiProcedure, "garbage")
	require.NoError(t, err, "invalid tokens are ignored")
	assert.Empty(t, got.ID)
}

// lockedBuffer lets the server goroutine write logs the test reads.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) entries(t *testing.T) []map[string]any {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []map[string]any
	dec := json.NewDecoder(bytes.NewReader(b.buf.Bytes()))
	for dec.More() {
		var entry map[string]any
		require.NoError(t, dec.Decode(&entry))
		out = append(out, entry)
	}
	return out
}

func TestLoggingInterceptor(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	var logs lockedBuffer
	logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	url := newEchoServer(t, RequireRole(jwtManager, auth.RoleAdmin, publicProcedure), LoggingInterceptor(logger))

	adminToken, err := jwtManager.Generate(auth.Principal{ID: "admin-1", Role: auth.RoleAdmin})
	require.NoError(t, err)
	voterToken, err := jwtManager.Generate(auth.Principal{ID: "voter-1", Role: auth.RoleVoter})
	require.NoError(t, err)

	_, err = call(url, whoamiProcedure, adminToken)
	require.NoError(t, err)
	_, err = call(url, publicProcedure, voterToken)
	require.NoError(t, err)

	entries := logs.entries(t)
	require.Len(t, entries, 2)
	assert.Equal(t, "RPC ok", entries[0]["msg"])
	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, whoamiProcedure, entries[0]["procedure"])
	assert.Equal(t, "admin-1", entries[0]["user_id"])
	assert.Equal(t, "voter-1", entries[1]["user_id"])

	t.Run("client errors log at info", func(t *testing.T) {
		var logs lockedBuffer
		logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
		url := newEchoServer(t, LoggingInterceptor(logger), RequireRole(jwtManager, auth.RoleAdmin))

		_, err := call(url, whoamiProcedure, voterToken)
		require.Error(t, err)

		entries := logs.entries(t)
		require.Len(t, entries, 1)
		assert.Equal(t, "RPC rejected", entries[0]["msg"])
		assert.Equal(t, "INFO", entries[0]["level"])
		assert.Equal(t, connect.CodePermissionDenied.String(), entries[0]["code"])
	})
}

func TestServerFault(t *testing.T) {
	assert.True(t, serverFault(connect.CodeInternal))
	assert.True(t, serverFault(connect.CodeUnavailable))
	assert.False(t, serverFault(connect.CodeFailedPrecondition))
	assert.False(t, serverFault(connect.CodeAlreadyExists))
	assert.False(t, serverFault(connect.CodeUnauthenticated))
}
