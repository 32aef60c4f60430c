package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const minFeedbackLength = 5

// FeedbackParams are the fields of a feedback submission.
type FeedbackParams struct {
	Category   string  `json:"category"`
	Message    string  `json:"message"`
	Rating     *int    `json:"rating,omitempty"`
	AppVersion *string `json:"app_version,omitempty"`
	DeviceInfo *string `json:"device_info,omitempty"`
}

// SubmitFeedback sends user feedback. The message is validated locally
// before any request is made.
func (c *Client) SubmitFeedback(
	ctx context.Context,
	params FeedbackParams,
) Result {
	params.Message = strings.TrimSpace(params.Message)

	if len(params.Message) < minFeedbackLength {
		return failure(
			fmt.Sprintf(
				"Feedback message must be at least %d characters",
				minFeedbackLength,
			),
		)
	}

	if params.Category == "" {
		params.Category = "general"
	}

	return c.request(ctx, http.MethodPost, "/feedback/", nil, params, true)
}

// ListFeedback returns the user's own feedback submissions.
func (c *Client) ListFeedback(ctx context.Context, page, perPage int) Result {
	query := url.Values{}

	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}

	if perPage > 0 {
		query.Set("per_page", strconv.Itoa(perPage))
	}

	return c.request(ctx, http.MethodGet, "/feedback/me", query, nil, true)
}

// DeleteFeedback removes one of the user's feedback submissions.
func (c *Client) DeleteFeedback(ctx context.Context, feedbackID int) Result {
	return c.request(
		ctx,
		http.MethodDelete,
		fmt.Sprintf("/feedback/%d", feedbackID),
		nil,
		nil,
		true,
	)
}
