package auth

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/ballotbox/internal/storage"
	"github.com/mmynk/ballotbox/internal/storage/sqlite"
)

func newAuthenticator(t *testing.T) *PasswordAuthenticator {
	t.Helper()
	store, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
}

func TestValidateRegistration(t *testing.T) {
	a := NewPasswordAuthenticator(nil)
	valid := Registration{VoterID: "alice01", Name: "Alice", Email: "alice@example.com", Password: "secret123"}

	tests := []struct {
		name    string
		mutate  func(r *Registration)
		wantErr error
	}{
		{"valid", func(r *Registration) {}, nil},
		{"voter id too short", func(r *Registration) { r.VoterID = "abcd" }, ErrInvalidVoterID},
		{"voter id too long", func(r *Registration) { r.VoterID = "abcdefghijklmnopqrstu" }, ErrInvalidVoterID},
		{"voter id symbols", func(r *Registration) { r.VoterID = "alice_01" }, ErrInvalidVoterID},
		{"voter id trimmed", func(r *Registration) { r.VoterID = "  alice01 " }, nil},
		{"missing name", func(r *Registration) { r.Name = " " }, ErrMissingName},
		{"bad email", func(r *Registration) { r.Email = "alice" }, ErrInvalidEmail},
		{"display name email", func(r *Registration) { r.Email = "Alice <alice@example.com>" }, ErrInvalidEmail},
		{"short password", func(r *Registration) { r.Password = "abc123" }, ErrWeakPassword},
		{"letters only", func(r *Registration) { r.Password = "abcdefghij" }, ErrWeakPassword},
		{"digits only", func(r *Registration) { r.Password = "1234567890" }, ErrWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := valid
			tt.mutate(&reg)
			err := a.ValidateRegistration(&reg)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	a := newAuthenticator(t)
	ctx := context.Background()

	voter, err := a.Register(ctx, Registration{VoterID: "alice01", Name: "Alice", Email: "Alice@Example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, voter.ID)
	assert.Equal(t, "alice@example.com", voter.Email)
	assert.NotEqual(t, "secret123", voter.PasswordHash)

	t.Run("duplicate voter id", func(t *testing.T) {
		_, err := a.Register(ctx, Registration{VoterID: "alice01", Name: "A", Email: "other@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, ErrAccountExists)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := a.Register(ctx, Registration{VoterID: "other01", Name: "A", Email: "alice@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, ErrAccountExists)
	})

	t.Run("login", func(t *testing.T) {
		got, err := a.Authenticate(ctx, "alice01", "secret123")
		require.NoError(t, err)
		assert.Equal(t, voter.ID, got.ID)

		_, err = a.Authenticate(ctx, "alice01", "wrong1234")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = a.Authenticate(ctx, "nobody", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("reset", func(t *testing.T) {
		assert.ErrorIs(t, a.ResetCredential(ctx, voter.ID, "short"), ErrWeakPassword)
		require.NoError(t, a.ResetCredential(ctx, voter.ID, "newpass99"))

		_, err := a.Authenticate(ctx, "alice01", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = a.Authenticate(ctx, "alice01", "newpass99")
		assert.NoError(t, err)
	})
}

func TestAdminAccounts(t *testing.T) {
	a := newAuthenticator(t)
	ctx := context.Background()

	admin, err := a.CreateAdmin(ctx, "root", "root@example.com", "rootpass1")
	require.NoError(t, err)

	_, err = a.CreateAdmin(ctx, "root", "x@example.com", "rootpass1")
	assert.ErrorIs(t, err, ErrAccountExists)
	_, err = a.CreateAdmin(ctx, "", "x@example.com", "rootpass1")
	assert.ErrorIs(t, err, ErrInvalidUsername)

	got, err := a.AuthenticateAdmin(ctx, "root", "rootpass1")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)

	_, err = a.AuthenticateAdmin(ctx, "root", "nope12345")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminCredentialChange(t *testing.T) {
	a := newAuthenticator(t)
	ctx := context.Background()
	_, err := a.CreateAdmin(ctx, "root", "root@example.com", "rootpass1")
	require.NoError(t, err)

	assert.ErrorIs(t, a.ChangeAdminCredential(ctx, "root", "wrongpass1", "newpass22"), ErrInvalidCredentials)
	assert.ErrorIs(t, a.ChangeAdminCredential(ctx, "root", "rootpass1", "short"), ErrWeakPassword)

	require.NoError(t, a.ChangeAdminCredential(ctx, "root", "rootpass1", "newpass22"))
	_, err = a.AuthenticateAdmin(ctx, "root", "rootpass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = a.AuthenticateAdmin(ctx, "root", "newpass22")
	require.NoError(t, err)

	require.NoError(t, a.SetAdminCredential(ctx, " root ", "operator9"))
	_, err = a.AuthenticateAdmin(ctx, "root", "operator9")
	require.NoError(t, err)

	assert.ErrorIs(t, a.SetAdminCredential(ctx, "ghost", "operator9"), storage.ErrNotFound)
}
