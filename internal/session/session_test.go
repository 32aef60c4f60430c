package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/neuroverse/neuroverse-cli/internal/models"
)

// memStore is an in-memory TokenStore.
type memStore struct {
	pair models.TokenPair
}

func (m *memStore) SaveTokens(pair models.TokenPair) error {
	m.pair = pair
	return nil
}

func (m *memStore) Tokens() (models.TokenPair, error) {
	return m.pair, nil
}

func (m *memStore) ClearTokens() error {
	m.pair = models.TokenPair{}
	return nil
}

func signedToken(t *testing.T, expiry time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "42",
		"exp": expiry.Unix(),
	})

	str, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}

	return str
}

func TestSessionLoadsStoredPair(t *testing.T) {
	store := &memStore{
		pair: models.TokenPair{
			AccessToken:  "access",
			RefreshToken: "refresh",
		},
	}

	sess, err := New(store)
	if err != nil {
		t.Fatal(err)
	}

	if !sess.IsLoggedIn() {
		t.Fatal("expected a stored pair to count as logged in")
	}

	if got := sess.RefreshToken(); got != "refresh" {
		t.Fatalf("unexpected refresh token: %s", got)
	}
}

func TestSessionSetAndClear(t *testing.T) {
	store := &memStore{}

	sess, err := New(store)
	if err != nil {
		t.Fatal(err)
	}

	if sess.IsLoggedIn() {
		t.Fatal("an empty store must not count as logged in")
	}

	pair := models.TokenPair{
		AccessToken:  "access",
		RefreshToken: "refresh",
	}

	err = sess.Set(pair)
	if err != nil {
		t.Fatal(err)
	}

	if store.pair != pair {
		t.Fatal("expected the pair to be persisted to the store")
	}

	err = sess.Clear()
	if err != nil {
		t.Fatal(err)
	}

	if sess.IsLoggedIn() {
		t.Fatal("expected the session to be logged out after clear")
	}

	if !store.pair.IsZero() {
		t.Fatal("expected the store to be cleared")
	}
}

func TestSessionExpiresAt(t *testing.T) {
	expiry := time.Now().Add(30 * time.Minute).Truncate(time.Second)

	store := &memStore{
		pair: models.TokenPair{
			AccessToken: signedToken(t, expiry),
		},
	}

	sess, err := New(store)
	if err != nil {
		t.Fatal(err)
	}

	got, ok := sess.ExpiresAt()
	if !ok {
		t.Fatal("expected an expiry from a well-formed token")
	}

	if !got.Equal(expiry) {
		t.Fatalf("expected expiry %v, got: %v", expiry, got)
	}
}

func TestSessionExpiresAtMalformed(t *testing.T) {
	table := []struct {
		name        string
		accessToken string
	}{
		{"logged out", ""},
		{"not a jwt", "opaque-token"},
	}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			store := &memStore{
				pair: models.TokenPair{AccessToken: tc.accessToken},
			}

			sess, err := New(store)
			if err != nil {
				t.Fatal(err)
			}

			if _, ok := sess.ExpiresAt(); ok {
				t.Fatal("expected no expiry")
			}
		})
	}
}
