package api

import (
	"context"

	"github.com/Stay03/transcribeThis/internal/client/models"
)

// AuthResponse is returned by the credential endpoints.
type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	User        models.User `json:"user"`
}

// ProfileResponse is returned by GET /auth/profile.
type ProfileResponse struct {
	User        models.User  `json:"user"`
	CurrentPlan *models.Plan `json:"current_plan"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, name, email, password, passwordConfirmation string) (*AuthResponse, error) {
	body := registerRequest{
		Name:                 name,
		Email:                email,
		Password:             password,
		PasswordConfirmation: passwordConfirmation,
	}
	var out AuthResponse
	if err := c.post(ctx, "/auth/register", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", nil, nil)
}

func (c *Client) Profile(ctx context.Context) (*ProfileResponse, error) {
	var out ProfileResponse
	if err := c.get(ctx, "/auth/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GoogleRedirectURL fetches the OAuth handoff URL the user should open in
// a browser. The provider will redirect back with a token and user payload.
func (c *Client) GoogleRedirectURL(ctx context.Context) (string, error) {
	var out struct {
		RedirectURL string `json:"redirect_url"`
	}
	if err := c.get(ctx, "/auth/google/redirect", nil, &out); err != nil {
		return "", err
	}
	return out.RedirectURL, nil
}
