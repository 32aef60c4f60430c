// Package api is the HTTP client for the NeuroVerse backend. Every
// operation returns a uniform Result value instead of an error so command
// code never has to distinguish transport failures from server rejections.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/neuroverse/neuroverse-cli/internal/models"
	"github.com/neuroverse/neuroverse-cli/internal/session"
)

const apiPrefix = "/api/v1"

const defaultTimeout = 30 * time.Second

// Result is the outcome of an API call. Exactly one of Data and Error is
// meaningful: Data holds the parsed response body on success, Error holds a
// user-facing message otherwise.
type Result struct {
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Success bool            `json:"success"`
}

// Decode unmarshals the response data into v.
func (r Result) Decode(v any) error {
	if !r.Success {
		return fmt.Errorf("cannot decode a failed result: %s", r.Error)
	}

	return json.Unmarshal(r.Data, v)
}

func failure(msg string) Result {
	return Result{Error: msg}
}

func connectionFailure(err error) Result {
	return failure("Connection failed: " + err.Error())
}

// Client issues authenticated requests against the backend and manages the
// bearer token lifecycle.
type Client struct {
	httpClient *http.Client
	sess       *session.Session
	baseURL    string
	// refreshMu serializes token refreshes so concurrent 401s trigger at
	// most one refresh attempt.
	refreshMu sync.Mutex
}

// New returns a client for the backend at baseURL. The session supplies the
// bearer tokens and receives refreshed ones.
func New(baseURL string, sess *session.Session) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		sess:    sess,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// Session exposes the authentication state backing this client.
func (c *Client) Session() *session.Session {
	return c.sess
}

// endpoint joins the base URL, the API prefix, and the given path. Query
// values are appended when present.
func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + apiPrefix + path

	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	return u
}

// request performs a JSON API call. A nil body sends no payload. Transport
// and decoding failures are converted to the Result error shape, never
// returned as Go errors.
func (c *Client) request(
	ctx context.Context,
	method, path string,
	query url.Values,
	body any,
	requiresAuth bool,
) Result {
	var reader io.Reader

	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return failure("Connection failed: " + err.Error())
		}

		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		method,
		c.endpoint(path, query),
		reader,
	)
	if err != nil {
		return connectionFailure(err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, requiresAuth)
}

// send executes a prepared request, applying the bearer token and the
// refresh-on-401 flow.
func (c *Client) send(req *http.Request, requiresAuth bool) Result {
	var access string

	if requiresAuth {
		access = c.sess.AccessToken()
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return connectionFailure(err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return connectionFailure(err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return Result{
			Success: true,
			Data:    respBody,
		}
	}

	if resp.StatusCode == http.StatusUnauthorized && requiresAuth {
		// the original call is still reported as a failure: callers decide
		// whether to retry with the refreshed token
		c.refreshTokens(req.Context(), access)
	}

	return failure(errorMessage(respBody, resp.StatusCode))
}

// errorMessage extracts the server-provided detail from an error body, or
// falls back to a generic message.
func errorMessage(body []byte, status int) string {
	var payload struct {
		Detail any `json:"detail"`
	}

	if err := json.Unmarshal(body, &payload); err == nil {
		if detail, ok := payload.Detail.(string); ok && detail != "" {
			return detail
		}
	}

	return fmt.Sprintf("Request failed with status %d", status)
}

// refreshTokens exchanges the stored refresh token for a new pair. stale is
// the access token that was rejected: a burst of concurrent 401s yields a
// single refresh because every waiter whose stale token has already been
// replaced returns without issuing its own request. A failed refresh clears
// the session entirely.
func (c *Client) refreshTokens(ctx context.Context, stale string) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if c.sess.AccessToken() != stale {
		return
	}

	refresh := c.sess.RefreshToken()
	if refresh == "" {
		_ = c.sess.Clear()
		return
	}

	result := c.request(
		ctx,
		http.MethodPost,
		"/auth/refresh",
		nil,
		map[string]string{"refresh_token": refresh},
		false,
	)
	if !result.Success {
		slog.Warn("token refresh failed, clearing session",
			"error", result.Error,
		)

		_ = c.sess.Clear()

		return
	}

	var pair models.TokenPair

	err := result.Decode(&pair)
	if err != nil || pair.AccessToken == "" {
		_ = c.sess.Clear()
		return
	}

	err = c.sess.Set(pair)
	if err != nil {
		slog.Warn("unable to persist refreshed tokens", "error", err)
	}
}

// Health checks the availability of the backend. The health endpoint lives
// outside the API prefix.
func (c *Client) Health(ctx context.Context) Result {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"/health",
		nil,
	)
	if err != nil {
		return connectionFailure(err)
	}

	return c.send(req, false)
}
