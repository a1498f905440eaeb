package resources

import (
	"context"
	"sync"

	"github.com/Stay03/transcribeThis/internal/client/api"
	"github.com/Stay03/transcribeThis/internal/client/models"
)

// Settings holds the admin settings page: configurable settings plus the
// read-only system info block.
type Settings struct {
	api *api.Client
	mu  sync.Mutex

	settings []models.Setting
	system   *models.SystemInfo
	loading  bool
	err      error
}

type SettingsState struct {
	Settings []models.Setting
	System   *models.SystemInfo
	Loading  bool
	Err      error
}

func NewSettings(client *api.Client) *Settings {
	return &Settings{api: client}
}

func (s *Settings) State() SettingsState {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings := make([]models.Setting, len(s.settings))
	copy(settings, s.settings)
	return SettingsState{Settings: settings, System: s.system, Loading: s.loading, Err: s.err}
}

func (s *Settings) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.err = nil
	s.mu.Unlock()

	resp, err := s.api.AdminSettings(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err
		return err
	}
	s.settings = resp.Settings
	s.system = resp.SystemInfo
	return nil
}

// Update pushes the given settings and re-fetches on success.
func (s *Settings) Update(ctx context.Context, settings []models.Setting) error {
	if err := s.api.UpdateAdminSettings(ctx, settings); err != nil {
		return err
	}
	return s.Fetch(ctx)
}

func (s *Settings) ClearCache(ctx context.Context, backup bool) (*models.MaintenanceResult, error) {
	return s.api.ClearCache(ctx, backup)
}

func (s *Settings) ClearLogs(ctx context.Context, backup bool) (*models.MaintenanceResult, error) {
	return s.api.ClearLogs(ctx, backup)
}
