package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// UserResponse is the profile data returned by the user endpoints.
type UserResponse struct {
	Email            string  `json:"email"`
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	Phone            string  `json:"phone"`
	DateOfBirth      string  `json:"date_of_birth"`
	Gender           string  `json:"gender"`
	ProfileImagePath string  `json:"profile_image_path"`
	ADStage          string  `json:"ad_stage"`
	PDStage          string  `json:"pd_stage"`
	ID               int     `json:"id"`
	ADRiskScore      float64 `json:"ad_risk_score"`
	PDRiskScore      float64 `json:"pd_risk_score"`
	CognitiveScore   float64 `json:"cognitive_score"`
	SpeechScore      float64 `json:"speech_score"`
	MotorScore       float64 `json:"motor_score"`
	GaitScore        float64 `json:"gait_score"`
	FacialScore      float64 `json:"facial_score"`
	IsVerified       bool    `json:"is_verified"`
}

// UpdateProfileParams are the mutable profile fields. Fields left nil are
// omitted from the request entirely.
type UpdateProfileParams struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
	Gender      *string `json:"gender,omitempty"`
}

// CurrentUser fetches the profile of the logged-in user.
func (c *Client) CurrentUser(ctx context.Context) Result {
	return c.request(ctx, http.MethodGet, "/users/me", nil, nil, true)
}

// UpdateProfile applies a partial update to the current user's profile.
func (c *Client) UpdateProfile(
	ctx context.Context,
	params UpdateProfileParams,
) Result {
	return c.request(ctx, http.MethodPatch, "/users/me", nil, params, true)
}

// UploadProfileImage sends the image at path as a multipart upload. The
// response follows the same success/failure shape as every other call.
func (c *Client) UploadProfileImage(ctx context.Context, path string) Result {
	f, err := os.Open(path)
	if err != nil {
		return failure("Unable to open image: " + err.Error())
	}

	defer f.Close()

	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return failure("Unable to prepare upload: " + err.Error())
	}

	_, err = io.Copy(part, f)
	if err != nil {
		return failure("Unable to prepare upload: " + err.Error())
	}

	err = writer.Close()
	if err != nil {
		return failure("Unable to prepare upload: " + err.Error())
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.endpoint("/users/profile-image", nil),
		&buf,
	)
	if err != nil {
		return connectionFailure(err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.send(req, true)
}
