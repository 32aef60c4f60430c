package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/neuroverse/neuroverse-cli/internal/models"
	"github.com/neuroverse/neuroverse-cli/internal/session"
	"github.com/neuroverse/neuroverse-cli/store"
)

func newTestSession(t *testing.T) *session.Session {
	t.Helper()

	db, err := store.NewClient(filepath.Join(t.TempDir(), "neuroverse.db"))
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	sess, err := session.New(db)
	if err != nil {
		t.Fatal(err)
	}

	return sess
}

func newTestClient(
	t *testing.T,
	handler http.Handler,
) (*Client, *session.Session) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sess := newTestSession(t)

	return New(srv.URL, sess), sess
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		t.Error(err)
	}
}

func TestLoginPersistsTokens(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string

		err := json.NewDecoder(r.Body).Decode(&body)
		if err != nil {
			t.Error(err)
			return
		}

		if body["email"] != "ada@example.com" || body["password"] != "hunter2" {
			writeJSON(t, w, http.StatusUnauthorized, map[string]string{
				"detail": "Incorrect email or password",
			})

			return
		}

		writeJSON(t, w, http.StatusOK, LoginResponse{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			TokenType:    "bearer",
			User:         UserResponse{FirstName: "Ada"},
		})
	})

	client, sess := newTestClient(t, mux)

	result := client.Login(context.Background(), "ada@example.com", "hunter2")
	if !result.Success {
		t.Fatalf("expected login to succeed, got: %s", result.Error)
	}

	if got := sess.AccessToken(); got != "access-1" {
		t.Fatalf("unexpected access token: %s", got)
	}

	if got := sess.RefreshToken(); got != "refresh-1" {
		t.Fatalf("unexpected refresh token: %s", got)
	}
}

func TestLoginFailureSurfacesDetail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{
			"detail": "Incorrect email or password",
		})
	})

	client, sess := newTestClient(t, mux)

	result := client.Login(context.Background(), "ada@example.com", "wrong")
	if result.Success {
		t.Fatal("expected login to fail")
	}

	if result.Error != "Incorrect email or password" {
		t.Fatalf("unexpected error message: %s", result.Error)
	}

	if sess.IsLoggedIn() {
		t.Fatal("a failed login must not persist tokens")
	}
}

func TestErrorMessageFallback(t *testing.T) {
	table := []struct {
		name   string
		body   string
		status int
		want   string
	}{
		{
			"string detail",
			`{"detail": "Session not found"}`,
			http.StatusNotFound,
			"Session not found",
		},
		{
			"structured detail",
			`{"detail": [{"loc": ["body", "email"], "msg": "invalid"}]}`,
			http.StatusUnprocessableEntity,
			"Request failed with status 422",
		},
		{
			"not json",
			"<html>bad gateway</html>",
			http.StatusBadGateway,
			"Request failed with status 502",
		},
	}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			got := errorMessage([]byte(tc.body), tc.status)
			if got != tc.want {
				t.Fatalf("expected %q, got: %q", tc.want, got)
			}
		})
	}
}

func TestUnauthorizedTriggersSingleRefresh(t *testing.T) {
	var refreshCalls int

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/users/me", func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "Bearer stale" {
			writeJSON(t, w, http.StatusUnauthorized, map[string]string{
				"detail": "Could not validate credentials",
			})

			return
		}

		writeJSON(t, w, http.StatusOK, UserResponse{FirstName: "Ada"})
	})
	mux.HandleFunc("/api/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++

		var body map[string]string

		err := json.NewDecoder(r.Body).Decode(&body)
		if err != nil {
			t.Error(err)
			return
		}

		if body["refresh_token"] != "refresh-1" {
			writeJSON(t, w, http.StatusUnauthorized, map[string]string{
				"detail": "Invalid refresh token",
			})

			return
		}

		writeJSON(t, w, http.StatusOK, models.TokenPair{
			AccessToken:  "access-2",
			RefreshToken: "refresh-2",
		})
	})

	client, sess := newTestClient(t, mux)

	err := sess.Set(models.TokenPair{
		AccessToken:  "stale",
		RefreshToken: "refresh-1",
	})
	if err != nil {
		t.Fatal(err)
	}

	// the original call still fails; the refreshed pair serves the retry
	result := client.CurrentUser(context.Background())
	if result.Success {
		t.Fatal("expected the original call to be reported as failed")
	}

	if refreshCalls != 1 {
		t.Fatalf("expected exactly one refresh call, got: %d", refreshCalls)
	}

	if got := sess.AccessToken(); got != "access-2" {
		t.Fatalf("expected the refreshed access token, got: %s", got)
	}

	result = client.CurrentUser(context.Background())
	if !result.Success {
		t.Fatalf("expected the retry to succeed, got: %s", result.Error)
	}
}

func TestConcurrentUnauthorizedSharesOneRefresh(t *testing.T) {
	var refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer stale" {
			writeJSON(t, w, http.StatusUnauthorized, map[string]string{
				"detail": "Could not validate credentials",
			})

			return
		}

		writeJSON(t, w, http.StatusOK, UserResponse{FirstName: "Ada"})
	})
	mux.HandleFunc("/api/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)

		// keep the refresh slow enough for the other caller to queue up
		time.Sleep(50 * time.Millisecond)

		writeJSON(t, w, http.StatusOK, models.TokenPair{
			AccessToken:  "access-2",
			RefreshToken: "refresh-2",
		})
	})

	client, sess := newTestClient(t, mux)

	err := sess.Set(models.TokenPair{
		AccessToken:  "stale",
		RefreshToken: "refresh-1",
	})
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup

	for i := 0; i < 4; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			client.CurrentUser(context.Background())
		}()
	}

	wg.Wait()

	if got := refreshCalls.Load(); got != 1 {
		t.Fatalf("expected a single refresh for a concurrent 401 burst, got: %d", got)
	}

	if got := sess.AccessToken(); got != "access-2" {
		t.Fatalf("expected the refreshed access token, got: %s", got)
	}
}

func TestFailedRefreshClearsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/users/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{
			"detail": "Could not validate credentials",
		})
	})
	mux.HandleFunc("/api/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{
			"detail": "Invalid refresh token",
		})
	})

	client, sess := newTestClient(t, mux)

	err := sess.Set(models.TokenPair{
		AccessToken:  "stale",
		RefreshToken: "expired",
	})
	if err != nil {
		t.Fatal(err)
	}

	result := client.CurrentUser(context.Background())
	if result.Success {
		t.Fatal("expected the call to fail")
	}

	if sess.IsLoggedIn() {
		t.Fatal("a failed refresh must clear the session")
	}
}

func TestUnauthorizedWithoutRefreshTokenClearsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/users/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{
			"detail": "Could not validate credentials",
		})
	})

	client, sess := newTestClient(t, mux)

	err := sess.Set(models.TokenPair{AccessToken: "stale"})
	if err != nil {
		t.Fatal(err)
	}

	result := client.CurrentUser(context.Background())
	if result.Success {
		t.Fatal("expected the call to fail")
	}

	if sess.IsLoggedIn() {
		t.Fatal("expected the session to be cleared")
	}
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusInternalServerError, map[string]string{
			"detail": "backend exploded",
		})
	})

	client, sess := newTestClient(t, mux)

	err := sess.Set(models.TokenPair{
		AccessToken:  "access",
		RefreshToken: "refresh",
	})
	if err != nil {
		t.Fatal(err)
	}

	result := client.Logout(context.Background())
	if !result.Success {
		t.Fatal("logout must always report success")
	}

	if sess.IsLoggedIn() {
		t.Fatal("logout must clear the local session")
	}
}

func TestConnectionFailure(t *testing.T) {
	sess := newTestSession(t)

	// nothing listens on this port
	client := New("http://127.0.0.1:1", sess)

	result := client.Health(context.Background())
	if result.Success {
		t.Fatal("expected the health check to fail")
	}

	if !strings.HasPrefix(result.Error, "Connection failed: ") {
		t.Fatalf("unexpected error message: %s", result.Error)
	}
}

func TestSubmitFeedbackValidatesLocally(t *testing.T) {
	var requests int

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/feedback/", func(w http.ResponseWriter, r *http.Request) {
		requests++

		writeJSON(t, w, http.StatusOK, map[string]string{"status": "ok"})
	})

	client, sess := newTestClient(t, mux)

	err := sess.Set(models.TokenPair{AccessToken: "access"})
	if err != nil {
		t.Fatal(err)
	}

	result := client.SubmitFeedback(context.Background(), FeedbackParams{
		Message: "  hi  ",
	})
	if result.Success {
		t.Fatal("expected a too-short message to be rejected")
	}

	if requests != 0 {
		t.Fatal("a rejected message must not reach the backend")
	}

	result = client.SubmitFeedback(context.Background(), FeedbackParams{
		Message: "The recall test froze on me once.",
	})
	if !result.Success {
		t.Fatalf("expected feedback to be accepted, got: %s", result.Error)
	}
}

func TestHealthOutsideAPIPrefix(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	client, _ := newTestClient(t, mux)

	result := client.Health(context.Background())
	if !result.Success {
		t.Fatalf("expected the health check to succeed, got: %s", result.Error)
	}
}
