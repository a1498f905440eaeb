package api

import (
	"context"

	"github.com/Stay03/transcribeThis/internal/client/models"
)

// ProfileUpdate carries the mutable account fields.
type ProfileUpdate struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// PasswordChange carries a password rotation request.
type PasswordChange struct {
	CurrentPassword      string `json:"current_password"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// AccountStats summarizes the account's lifetime usage.
type AccountStats struct {
	TotalTranscriptions int     `json:"total_transcriptions"`
	TotalPrompts        int     `json:"total_prompts"`
	TotalFileSizeMB     float64 `json:"total_file_size_mb"`
	MemberSince         string  `json:"member_since"`
}

func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*models.User, error) {
	var out struct {
		User models.User `json:"user"`
	}
	if err := c.put(ctx, "/account/profile", update, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) ChangePassword(ctx context.Context, change PasswordChange) error {
	return c.put(ctx, "/account/password", change, nil)
}

func (c *Client) GetAccountStats(ctx context.Context) (*AccountStats, error) {
	var out struct {
		Stats AccountStats `json:"stats"`
	}
	if err := c.get(ctx, "/account/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out.Stats, nil
}
