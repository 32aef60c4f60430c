// Package session holds the access/refresh token pair for the logged-in user
// and keeps it in sync with local storage
package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/neuroverse/neuroverse-cli/internal/models"
)

// TokenStore persists the token pair between runs.
type TokenStore interface {
	SaveTokens(pair models.TokenPair) error
	Tokens() (models.TokenPair, error)
	ClearTokens() error
}

// Session is the process-wide authentication state. All access goes through
// an instance so tests can substitute an isolated store.
type Session struct {
	store TokenStore
	mu    sync.Mutex
	pair  models.TokenPair
}

// New returns a session primed with whatever token pair is currently in the
// store.
func New(store TokenStore) (*Session, error) {
	pair, err := store.Tokens()
	if err != nil {
		return nil, err
	}

	return &Session{
		store: store,
		pair:  pair,
	}, nil
}

// IsLoggedIn reports whether an access token is present.
func (s *Session) IsLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pair.AccessToken != ""
}

// AccessToken returns the current access token, or "" when logged out.
func (s *Session) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pair.AccessToken
}

// RefreshToken returns the current refresh token, or "" when logged out.
func (s *Session) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pair.RefreshToken
}

// Set persists a new token pair and updates the in-memory copy. The pair is
// always written together.
func (s *Session) Set(pair models.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.store.SaveTokens(pair)
	if err != nil {
		return err
	}

	s.pair = pair

	return nil
}

// Clear removes both tokens from memory and storage.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pair = models.TokenPair{}

	return s.store.ClearTokens()
}

// ExpiresAt reports the expiry of the access token as recorded in its exp
// claim. The token is decoded without signature verification since the
// client does not hold the signing key. ok is false when logged out or when
// the token cannot be decoded.
func (s *Session) ExpiresAt() (expiry time.Time, ok bool) {
	s.mu.Lock()
	access := s.pair.AccessToken
	s.mu.Unlock()

	if access == "" {
		return time.Time{}, false
	}

	token, _, err := jwt.NewParser().ParseUnverified(
		access,
		jwt.MapClaims{},
	)
	if err != nil {
		return time.Time{}, false
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}
