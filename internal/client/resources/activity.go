package resources

import (
	"context"
	"sync"
	"time"

	"github.com/Stay03/transcribeThis/internal/client/api"
	"github.com/Stay03/transcribeThis/internal/client/models"
	"github.com/Stay03/transcribeThis/internal/logging"
)

// Activity is the admin activity view: analytics, trends, and the online-user
// slice, which can be kept fresh by a background watcher.
type Activity struct {
	api *api.Client
	log logging.Logger
	mu  sync.Mutex

	analytics *models.ActivityAnalytics
	trends    []models.TrendPoint
	loading   bool
	err       error
	updatedAt time.Time
}

type ActivityState struct {
	Analytics *models.ActivityAnalytics
	Trends    []models.TrendPoint
	Loading   bool
	Err       error
	UpdatedAt time.Time
}

func NewActivity(client *api.Client, log logging.Logger) *Activity {
	if log == nil {
		log = logging.NewConsoleLogger(nil, "info")
	}
	return &Activity{api: client, log: log.With("component", "activity")}
}

func (a *Activity) State() ActivityState {
	a.mu.Lock()
	defer a.mu.Unlock()
	trends := make([]models.TrendPoint, len(a.trends))
	copy(trends, a.trends)
	return ActivityState{Analytics: a.analytics, Trends: trends, Loading: a.loading, Err: a.err, UpdatedAt: a.updatedAt}
}

// Fetch loads analytics and the trend series for the given number of days.
func (a *Activity) Fetch(ctx context.Context, trendDays int) error {
	a.mu.Lock()
	a.loading = true
	a.err = nil
	a.mu.Unlock()

	analytics, err := a.api.ActivityAnalytics(ctx)
	var trends []models.TrendPoint
	if err == nil {
		trends, err = a.api.ActivityTrends(ctx, trendDays)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.loading = false
	if err != nil {
		a.err = err
		return err
	}
	a.analytics = analytics
	a.trends = trends
	a.updatedAt = time.Now()
	return nil
}

// RefreshOnline re-fetches only the online-user slice, leaving the rest of
// the analytics untouched. A failure keeps the previous slice.
func (a *Activity) RefreshOnline(ctx context.Context) error {
	online, err := a.api.OnlineUsers(ctx)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.analytics != nil {
		a.analytics.Online = *online
	}
	a.updatedAt = time.Now()
	return nil
}

// Users fetches one page of the per-user activity list.
func (a *Activity) Users(ctx context.Context, filters api.ListFilters) (*api.AdminUserPage, error) {
	return a.api.ActivityUsers(ctx, filters)
}

// defaultWatchInterval backstops a zero or negative configured interval,
// which time.NewTicker would reject.
const defaultWatchInterval = 30 * time.Second

// Watch refreshes the online-user slice on the given interval until ctx is
// cancelled. Refresh failures are logged and the loop keeps going.
func (a *Activity) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultWatchInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			refreshCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			if err := a.RefreshOnline(refreshCtx); err != nil {
				a.log.Warn(ctx, "online users refresh failed", "error", err)
			}
			cancel()
		case <-ctx.Done():
			return
		}
	}
}
