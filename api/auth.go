package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/neuroverse/neuroverse-cli/internal/models"
)

// RegisterParams are the fields accepted by the registration endpoint.
// Optional fields are omitted from the payload when nil.
type RegisterParams struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Phone       *string `json:"phone,omitempty"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
	Gender      *string `json:"gender,omitempty"`
}

// LoginResponse is returned by the login and OTP verification endpoints.
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	User         UserResponse `json:"user"`
}

// Register creates a new account. An OTP is sent to the given email address
// for verification.
func (c *Client) Register(ctx context.Context, params RegisterParams) Result {
	return c.request(
		ctx,
		http.MethodPost,
		"/auth/register",
		nil,
		params,
		false,
	)
}

// persistTokens stores the token pair from a login-shaped response. The
// original result is returned untouched unless persistence fails.
func (c *Client) persistTokens(result Result) Result {
	if !result.Success {
		return result
	}

	var login LoginResponse

	err := result.Decode(&login)
	if err != nil {
		return failure("Unable to parse the authentication response")
	}

	err = c.sess.Set(models.TokenPair{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	if err != nil {
		return failure("Unable to save the session: " + err.Error())
	}

	return result
}

// VerifyOTP confirms the OTP sent after registration and persists the
// returned token pair.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) Result {
	result := c.request(
		ctx,
		http.MethodPost,
		"/auth/verify-otp",
		nil,
		map[string]string{
			"email": email,
			"otp":   otp,
		},
		false,
	)

	return c.persistTokens(result)
}

// ResendOTP requests a fresh OTP, invalidating the previous one.
func (c *Client) ResendOTP(ctx context.Context, email string) Result {
	return c.request(
		ctx,
		http.MethodPost,
		"/auth/resend-otp",
		nil,
		map[string]string{"email": email},
		false,
	)
}

// Login exchanges credentials for a token pair and persists it.
func (c *Client) Login(ctx context.Context, email, password string) Result {
	result := c.request(
		ctx,
		http.MethodPost,
		"/auth/login",
		nil,
		map[string]string{
			"email":    email,
			"password": password,
		},
		false,
	)

	return c.persistTokens(result)
}

// Logout notifies the backend best-effort and unconditionally clears the
// local session. It always reports success.
func (c *Client) Logout(ctx context.Context) Result {
	// failure is ignored: the backend treats logout as client-side
	_ = c.request(ctx, http.MethodPost, "/auth/logout", nil, nil, true)

	_ = c.sess.Clear()

	return Result{Success: true}
}

// ForgotPassword requests a password-reset OTP for the given email address.
func (c *Client) ForgotPassword(ctx context.Context, email string) Result {
	return c.request(
		ctx,
		http.MethodPost,
		"/auth/forgot-password",
		nil,
		map[string]string{"email": email},
		false,
	)
}

// ResetPassword sets a new password using the OTP from ForgotPassword. The
// endpoint takes its arguments as query parameters.
func (c *Client) ResetPassword(
	ctx context.Context,
	email, otp, newPassword string,
) Result {
	query := url.Values{}
	query.Set("email", email)
	query.Set("otp", otp)
	query.Set("new_password", newPassword)

	return c.request(
		ctx,
		http.MethodPost,
		"/auth/reset-password",
		query,
		nil,
		false,
	)
}
