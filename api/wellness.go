package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// WellnessEntryParams are the daily tracking fields. Every field is
// optional; nil fields are omitted from the payload rather than sent as
// null.
type WellnessEntryParams struct {
	SleepHours              *float64 `json:"sleep_hours,omitempty"`
	SleepQuality            *string  `json:"sleep_quality,omitempty"`
	ScreenTimeHours         *float64 `json:"screen_time_hours,omitempty"`
	GamingHours             *float64 `json:"gaming_hours,omitempty"`
	StressLevel             *int     `json:"stress_level,omitempty"`
	Mood                    *string  `json:"mood,omitempty"`
	AnxietyLevel            *int     `json:"anxiety_level,omitempty"`
	PhysicalActivityMinutes *int     `json:"physical_activity_minutes,omitempty"`
	ExerciseType            *string  `json:"exercise_type,omitempty"`
	WaterIntakeGlasses      *int     `json:"water_intake_glasses,omitempty"`
	Notes                   *string  `json:"notes,omitempty"`
	EntryDate               *string  `json:"entry_date,omitempty"`
}

// CreateWellnessEntry records today's wellness data (or the date given in
// params).
func (c *Client) CreateWellnessEntry(
	ctx context.Context,
	params WellnessEntryParams,
) Result {
	return c.request(ctx, http.MethodPost, "/wellness/data", nil, params, true)
}

// UpdateWellnessEntry applies a partial update to an existing entry.
func (c *Client) UpdateWellnessEntry(
	ctx context.Context,
	entryID int,
	params WellnessEntryParams,
) Result {
	return c.request(
		ctx,
		http.MethodPatch,
		fmt.Sprintf("/wellness/%d", entryID),
		nil,
		params,
		true,
	)
}

// WellnessHistory returns up to limit entries from the last given number of
// days.
func (c *Client) WellnessHistory(ctx context.Context, days, limit int) Result {
	query := url.Values{}

	if days > 0 {
		query.Set("days", strconv.Itoa(days))
	}

	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	return c.request(ctx, http.MethodGet, "/wellness/history", query, nil, true)
}

// TodayWellnessEntry returns today's entry if one exists.
func (c *Client) TodayWellnessEntry(ctx context.Context) Result {
	return c.request(ctx, http.MethodGet, "/wellness/today", nil, nil, true)
}

// WellnessDashboard returns aggregate wellness insights.
func (c *Client) WellnessDashboard(ctx context.Context) Result {
	return c.request(ctx, http.MethodGet, "/wellness/dashboard", nil, nil, true)
}
