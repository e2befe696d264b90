package auth

import (
	"errors"
	"time"

	"github.com/erni27/imcache"
	"github.com/google/uuid"
)

// ErrUnknownToken is returned for tokens that were never issued, have expired
// or were already used.
var ErrUnknownToken = errors.New("token is invalid or has expired")

// Purpose scopes a token to one flow so a reset token cannot verify an email.
type Purpose string

const (
	PurposeVerifyEmail   Purpose = "verify-email"
	PurposeResetPassword Purpose = "reset-password"
)

type tokenKey struct {
	purpose Purpose
	token   string
}

// TokenStore keeps single-use tokens in memory until they expire. Tokens do
// not survive a restart.
type TokenStore struct {
	cache *imcache.Cache[tokenKey, string]
	ttl   time.Duration
}

// NewTokenStore creates a store whose tokens live for ttl. Expired entries
// are swept every cleanup interval.
func NewTokenStore(ttl, cleanup time.Duration) *TokenStore {
	return &TokenStore{
		cache: imcache.New[tokenKey, string](imcache.WithCleanerOption[tokenKey, string](cleanup)),
		ttl:   ttl,
	}
}

// Issue creates a token for subject.
func (s *TokenStore) Issue(purpose Purpose, subject string) string {
	token := uuid.NewString()
	s.cache.Set(tokenKey{purpose: purpose, token: token}, subject, imcache.WithExpiration(s.ttl))
	return token
}

// Consume returns the token's subject and invalidates the token.
func (s *TokenStore) Consume(purpose Purpose, token string) (string, error) {
	key := tokenKey{purpose: purpose, token: token}
	subject, ok := s.cache.Get(key)
	if !ok {
		return "", ErrUnknownToken
	}
	// Two concurrent consumers may both read the entry; only the one that
	// removes it wins.
	if !s.cache.Remove(key) {
		return "", ErrUnknownToken
	}
	return subject, nil
}

// Close stops the background cleaner.
func (s *TokenStore) Close() {
	s.cache.Close()
}
