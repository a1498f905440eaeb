package resources

import (
	"context"
	"sync"

	"github.com/Stay03/transcribeThis/internal/client/api"
	"github.com/Stay03/transcribeThis/internal/client/models"
)

// Dashboard holds the admin overview cards and the period stats.
type Dashboard struct {
	api *api.Client
	mu  sync.Mutex

	overview *models.DashboardOverview
	stats    *models.DashboardStats
	loading  bool
	err      error
}

type DashboardState struct {
	Overview *models.DashboardOverview
	Stats    *models.DashboardStats
	Loading  bool
	Err      error
}

func NewDashboard(client *api.Client) *Dashboard {
	return &Dashboard{api: client}
}

func (d *Dashboard) State() DashboardState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return DashboardState{Overview: d.overview, Stats: d.stats, Loading: d.loading, Err: d.err}
}

// Fetch loads the overview and the stats for the given period in days.
func (d *Dashboard) Fetch(ctx context.Context, periodDays int) error {
	d.mu.Lock()
	d.loading = true
	d.err = nil
	d.mu.Unlock()

	overview, err := d.api.AdminDashboardOverview(ctx)
	var stats *models.DashboardStats
	if err == nil {
		stats, err = d.api.AdminDashboardStats(ctx, periodDays)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.loading = false
	if err != nil {
		d.err = err
		return err
	}
	d.overview = overview
	d.stats = stats
	return nil
}
