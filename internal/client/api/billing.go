package api

import (
	"context"

	"github.com/Stay03/transcribeThis/internal/client/models"
)

func (c *Client) Plans(ctx context.Context) ([]models.Plan, error) {
	var out struct {
		Plans []models.Plan `json:"plans"`
	}
	if err := c.get(ctx, "/plans", nil, &out); err != nil {
		return nil, err
	}
	return out.Plans, nil
}

func (c *Client) Subscribe(ctx context.Context, planID int64) (*models.Subscription, error) {
	body := struct {
		PlanID int64 `json:"plan_id"`
	}{PlanID: planID}

	var out struct {
		Subscription models.Subscription `json:"subscription"`
	}
	if err := c.post(ctx, "/subscribe", body, &out); err != nil {
		return nil, err
	}
	return &out.Subscription, nil
}

func (c *Client) CurrentSubscription(ctx context.Context) (*models.Subscription, error) {
	var out struct {
		Subscription models.Subscription `json:"subscription"`
	}
	if err := c.get(ctx, "/subscription/current", nil, &out); err != nil {
		return nil, err
	}
	return &out.Subscription, nil
}

func (c *Client) UsageStats(ctx context.Context) (*models.UsageStats, error) {
	var out struct {
		Usage models.UsageStats `json:"usage"`
	}
	if err := c.get(ctx, "/subscription/usage", nil, &out); err != nil {
		return nil, err
	}
	return &out.Usage, nil
}

func (c *Client) CancelSubscription(ctx context.Context) error {
	return c.post(ctx, "/subscription/cancel", nil, nil)
}
