package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// TestSessionResponse is a single test session as returned by the backend.
type TestSessionResponse struct {
	Category    string `json:"category"`
	Status      string `json:"status"`
	StartedAt   string `json:"started_at"`
	CompletedAt string `json:"completed_at"`
	CreatedAt   string `json:"created_at"`
	ID          int    `json:"id"`
	UserID      int    `json:"user_id"`
	ItemsCount  int    `json:"items_count"`
}

// ListTestSessionsParams filter the session listing. Nil fields are not
// sent.
type ListTestSessionsParams struct {
	Category *string
	Status   *string
	Limit    int
	Offset   int
}

// TestItemParams is a single completed test item within a session.
type TestItemParams struct {
	ItemName string `json:"item_name"`
	ItemType string `json:"item_type,omitempty"`
	Data     any    `json:"data,omitempty"`
}

// CreateTestSession opens a new test session in the given category.
func (c *Client) CreateTestSession(ctx context.Context, category string) Result {
	return c.request(
		ctx,
		http.MethodPost,
		"/tests/",
		nil,
		map[string]string{"category": category},
		true,
	)
}

// ListTestSessions returns the user's test sessions, newest first.
func (c *Client) ListTestSessions(
	ctx context.Context,
	params ListTestSessionsParams,
) Result {
	query := url.Values{}

	if params.Category != nil {
		query.Set("category", *params.Category)
	}

	if params.Status != nil {
		query.Set("status", *params.Status)
	}

	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}

	if params.Offset > 0 {
		query.Set("offset", strconv.Itoa(params.Offset))
	}

	return c.request(ctx, http.MethodGet, "/tests/", query, nil, true)
}

// GetTestSession fetches one session with its items.
func (c *Client) GetTestSession(ctx context.Context, sessionID int) Result {
	return c.request(
		ctx,
		http.MethodGet,
		fmt.Sprintf("/tests/%d", sessionID),
		nil,
		nil,
		true,
	)
}

// StartTestSession moves a session from created to in-progress.
func (c *Client) StartTestSession(ctx context.Context, sessionID int) Result {
	return c.request(
		ctx,
		http.MethodPost,
		fmt.Sprintf("/tests/%d/start", sessionID),
		nil,
		nil,
		true,
	)
}

// AddTestItem attaches a completed test item to a session.
func (c *Client) AddTestItem(
	ctx context.Context,
	sessionID int,
	item TestItemParams,
) Result {
	return c.request(
		ctx,
		http.MethodPost,
		fmt.Sprintf("/tests/%d/items", sessionID),
		nil,
		item,
		true,
	)
}

// CompleteTestSession finalizes a session and triggers scoring.
func (c *Client) CompleteTestSession(ctx context.Context, sessionID int) Result {
	return c.request(
		ctx,
		http.MethodPost,
		fmt.Sprintf("/tests/%d/complete", sessionID),
		nil,
		nil,
		true,
	)
}

// CancelTestSession deletes an unfinished session.
func (c *Client) CancelTestSession(ctx context.Context, sessionID int) Result {
	return c.request(
		ctx,
		http.MethodDelete,
		fmt.Sprintf("/tests/%d", sessionID),
		nil,
		nil,
		true,
	)
}

// TestDashboard returns the per-category test overview.
func (c *Client) TestDashboard(ctx context.Context) Result {
	return c.request(ctx, http.MethodGet, "/tests/dashboard", nil, nil, true)
}
