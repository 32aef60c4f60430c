package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ReportResponse is a generated report as returned by the backend.
type ReportResponse struct {
	Title       string  `json:"title"`
	ReportType  string  `json:"report_type"`
	ADStage     string  `json:"ad_stage"`
	CreatedAt   string  `json:"created_at"`
	ID          int     `json:"id"`
	UserID      int     `json:"user_id"`
	ADRiskScore float64 `json:"ad_risk_score"`
	PDRiskScore float64 `json:"pd_risk_score"`
}

// CreateReportParams configure report generation. Nil fields are omitted.
type CreateReportParams struct {
	Title           *string `json:"title,omitempty"`
	ReportType      string  `json:"report_type,omitempty"`
	Category        *string `json:"category,omitempty"`
	DateRangeStart  *string `json:"date_range_start,omitempty"`
	DateRangeEnd    *string `json:"date_range_end,omitempty"`
	SessionIDs      []int   `json:"session_ids,omitempty"`
	IncludeWellness bool    `json:"include_wellness,omitempty"`
}

// ListReports returns the user's reports.
func (c *Client) ListReports(ctx context.Context, limit, offset int) Result {
	query := url.Values{}

	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}

	return c.request(ctx, http.MethodGet, "/reports/", query, nil, true)
}

// CreateReport requests generation of a new report.
func (c *Client) CreateReport(
	ctx context.Context,
	params CreateReportParams,
) Result {
	return c.request(ctx, http.MethodPost, "/reports/", nil, params, true)
}

// GetReport fetches a single report with its detail sections.
func (c *Client) GetReport(ctx context.Context, reportID int) Result {
	return c.request(
		ctx,
		http.MethodGet,
		fmt.Sprintf("/reports/%d", reportID),
		nil,
		nil,
		true,
	)
}

// DeleteReport permanently removes a report.
func (c *Client) DeleteReport(ctx context.Context, reportID int) Result {
	return c.request(
		ctx,
		http.MethodDelete,
		fmt.Sprintf("/reports/%d", reportID),
		nil,
		nil,
		true,
	)
}
