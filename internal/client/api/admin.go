package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Stay03/transcribeThis/internal/client/models"
)

// ListFilters are the common query parameters of admin list endpoints.
// Zero values are omitted from the query string.
type ListFilters struct {
	Page    int
	PerPage int
	Search  string
	Status  string
	Role    string
}

func (f ListFilters) query() url.Values {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(f.PerPage))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Role != "" {
		q.Set("role", f.Role)
	}
	return q
}

// AdminUserPage is one filtered page of accounts.
type AdminUserPage struct {
	Users []models.AdminUser `json:"users"`
	Meta  *models.Pagination `json:"meta"`
}

// AdminPlanPage is one filtered page of plans.
type AdminPlanPage struct {
	Plans []models.Plan      `json:"plans"`
	Meta  *models.Pagination `json:"meta"`
}

// AdminTranscriptionPage is one filtered page of transcriptions across users.
type AdminTranscriptionPage struct {
	Transcriptions []models.Transcription `json:"transcriptions"`
	Meta           *models.Pagination     `json:"meta"`
}

// SettingsResponse couples mutable settings with the read-only system snapshot.
type SettingsResponse struct {
	Settings   []models.Setting   `json:"settings"`
	SystemInfo *models.SystemInfo `json:"system_info"`
}

// Dashboard

func (c *Client) AdminDashboardOverview(ctx context.Context) (*models.DashboardOverview, error) {
	var out struct {
		Data models.DashboardOverview `json:"data"`
	}
	if err := c.get(ctx, "/admin/dashboard/overview", nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) AdminDashboardStats(ctx context.Context, periodDays int) (*models.DashboardStats, error) {
	q := url.Values{"period": {strconv.Itoa(periodDays)}}
	var out struct {
		Data models.DashboardStats `json:"data"`
	}
	if err := c.get(ctx, "/admin/dashboard/stats", q, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// User management

func (c *Client) AdminUsers(ctx context.Context, filters ListFilters) (*AdminUserPage, error) {
	var out AdminUserPage
	if err := c.get(ctx, "/admin/users", filters.query(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminUser(ctx context.Context, id int64) (*models.AdminUser, error) {
	var out struct {
		User models.AdminUser `json:"user"`
	}
	if err := c.get(ctx, fmt.Sprintf("/admin/users/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// AdminUserUpdate carries the account fields an admin may edit.
type AdminUserUpdate struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

func (c *Client) UpdateAdminUser(ctx context.Context, id int64, update AdminUserUpdate) error {
	return c.put(ctx, fmt.Sprintf("/admin/users/%d", id), update, nil)
}

func (c *Client) DeleteAdminUser(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/admin/users/%d", id))
}

func (c *Client) ChangeUserPlan(ctx context.Context, userID, planID int64) error {
	body := struct {
		PlanID int64 `json:"plan_id"`
	}{PlanID: planID}
	return c.post(ctx, fmt.Sprintf("/admin/users/%d/change-plan", userID), body, nil)
}

// Plan management

func (c *Client) AdminPlans(ctx context.Context, filters ListFilters) (*AdminPlanPage, error) {
	var out AdminPlanPage
	if err := c.get(ctx, "/admin/plans", filters.query(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminPlan(ctx context.Context, id int64) (*models.Plan, error) {
	var out struct {
		Plan models.Plan `json:"plan"`
	}
	if err := c.get(ctx, fmt.Sprintf("/admin/plans/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Plan, nil
}

func (c *Client) CreateAdminPlan(ctx context.Context, plan models.Plan) (*models.Plan, error) {
	var out struct {
		Plan models.Plan `json:"plan"`
	}
	if err := c.post(ctx, "/admin/plans", plan, &out); err != nil {
		return nil, err
	}
	return &out.Plan, nil
}

func (c *Client) UpdateAdminPlan(ctx context.Context, id int64, plan models.Plan) error {
	return c.put(ctx, fmt.Sprintf("/admin/plans/%d", id), plan, nil)
}

func (c *Client) DeleteAdminPlan(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/admin/plans/%d", id))
}

// Transcription management

func (c *Client) AdminTranscriptions(ctx context.Context, filters ListFilters) (*AdminTranscriptionPage, error) {
	var out AdminTranscriptionPage
	if err := c.get(ctx, "/admin/transcriptions", filters.query(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminTranscription(ctx context.Context, id int64) (*models.Transcription, error) {
	var out struct {
		Transcription models.Transcription `json:"transcription"`
	}
	if err := c.get(ctx, fmt.Sprintf("/admin/transcriptions/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Transcription, nil
}

func (c *Client) DeleteAdminTranscription(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/admin/transcriptions/%d", id))
}

// Activity

func (c *Client) ActivityAnalytics(ctx context.Context) (*models.ActivityAnalytics, error) {
	var out struct {
		Data models.ActivityAnalytics `json:"data"`
	}
	if err := c.get(ctx, "/admin/activity/analytics", nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) OnlineUsers(ctx context.Context) (*models.OnlineUsers, error) {
	var out struct {
		Data models.OnlineUsers `json:"data"`
	}
	if err := c.get(ctx, "/admin/activity/online", nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) ActivityTrends(ctx context.Context, days int) ([]models.TrendPoint, error) {
	q := url.Values{"days": {strconv.Itoa(days)}}
	var out struct {
		Data []models.TrendPoint `json:"data"`
	}
	if err := c.get(ctx, "/admin/activity/trends", q, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) ActivityUsers(ctx context.Context, filters ListFilters) (*AdminUserPage, error) {
	var out AdminUserPage
	if err := c.get(ctx, "/admin/activity/users", filters.query(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Settings & maintenance

func (c *Client) AdminSettings(ctx context.Context) (*SettingsResponse, error) {
	var out SettingsResponse
	if err := c.get(ctx, "/admin/settings", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAdminSettings(ctx context.Context, settings []models.Setting) error {
	body := struct {
		Settings []models.Setting `json:"settings"`
	}{Settings: settings}
	return c.put(ctx, "/admin/settings", body, nil)
}

type maintenanceRequest struct {
	Backup bool `json:"backup"`
}

// ClearCache wipes the server-side cache. With backup set, the server snapshots
// the cache contents before clearing.
func (c *Client) ClearCache(ctx context.Context, backup bool) (*models.MaintenanceResult, error) {
	var out models.MaintenanceResult
	if err := c.post(ctx, "/admin/maintenance/cache/clear", maintenanceRequest{Backup: backup}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClearLogs rotates the server-side logs, optionally archiving them first.
func (c *Client) ClearLogs(ctx context.Context, backup bool) (*models.MaintenanceResult, error) {
	var out models.MaintenanceResult
	if err := c.post(ctx, "/admin/maintenance/logs/clear", maintenanceRequest{Backup: backup}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
