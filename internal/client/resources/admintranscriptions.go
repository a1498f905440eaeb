package resources

import (
	"context"
	"sync"

	"github.com/Stay03/transcribeThis/internal/client/api"
	"github.com/Stay03/transcribeThis/internal/client/models"
)

// AdminTranscriptions is the cross-user transcription list of the admin
// console.
type AdminTranscriptions struct {
	api     *api.Client
	mu      sync.Mutex
	filters api.ListFilters

	items      []models.Transcription
	pagination *models.Pagination
	loading    bool
	err        error
}

type AdminTranscriptionsState struct {
	Items      []models.Transcription
	Pagination *models.Pagination
	Loading    bool
	Err        error
}

func NewAdminTranscriptions(client *api.Client, filters api.ListFilters) *AdminTranscriptions {
	return &AdminTranscriptions{api: client, filters: filters}
}

func (t *AdminTranscriptions) State() AdminTranscriptionsState {
	t.mu.Lock()
	defer t.mu.Unlock()
	items := make([]models.Transcription, len(t.items))
	copy(items, t.items)
	return AdminTranscriptionsState{Items: items, Pagination: t.pagination, Loading: t.loading, Err: t.err}
}

func (t *AdminTranscriptions) SetFilters(filters api.ListFilters) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.filters = filters
}

func (t *AdminTranscriptions) Fetch(ctx context.Context) error {
	t.mu.Lock()
	t.loading = true
	t.err = nil
	filters := t.filters
	t.mu.Unlock()

	page, err := t.api.AdminTranscriptions(ctx, filters)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.loading = false
	if err != nil {
		t.err = err
		return err
	}
	t.items = page.Transcriptions
	t.pagination = page.Meta
	return nil
}

func (t *AdminTranscriptions) Delete(ctx context.Context, id int64) error {
	if err := t.api.DeleteAdminTranscription(ctx, id); err != nil {
		return err
	}
	return t.Fetch(ctx)
}
