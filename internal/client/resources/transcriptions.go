// Package resources contains per-entity fetch state layered on the API
// client: each type mirrors one backend entity and tracks data, loading,
// error, and pagination. Mutations re-fetch on success and always return an
// explicit error for the caller to surface; nothing is swallowed here.
//
// Concurrent fetches on the same resource are not deduplicated; each GET is
// idempotent and last-write-wins on the state slice.
package resources

import (
	"context"
	"sync"

	"github.com/Stay03/transcribeThis/internal/client/api"
	"github.com/Stay03/transcribeThis/internal/client/models"
)

// Transcriptions is one page of the caller's transcription history.
type Transcriptions struct {
	api     *api.Client
	mu      sync.Mutex
	page    int
	perPage int

	items      []models.Transcription
	pagination *models.Pagination
	loading    bool
	err        error
}

// TranscriptionsState is a copy of the current hook state.
type TranscriptionsState struct {
	Items      []models.Transcription
	Pagination *models.Pagination
	Loading    bool
	Err        error
}

func NewTranscriptions(client *api.Client, page, perPage int) *Transcriptions {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	return &Transcriptions{api: client, page: page, perPage: perPage}
}

func (t *Transcriptions) State() TranscriptionsState {
	t.mu.Lock()
	defer t.mu.Unlock()
	items := make([]models.Transcription, len(t.items))
	copy(items, t.items)
	return TranscriptionsState{Items: items, Pagination: t.pagination, Loading: t.loading, Err: t.err}
}

// SetPage changes the requested page; call Fetch to load it.
func (t *Transcriptions) SetPage(page int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if page >= 1 {
		t.page = page
	}
}

func (t *Transcriptions) Fetch(ctx context.Context) error {
	t.mu.Lock()
	t.loading = true
	t.err = nil
	page, perPage := t.page, t.perPage
	t.mu.Unlock()

	result, err := t.api.Transcriptions(ctx, page, perPage)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.loading = false
	if err != nil {
		t.err = err
		return err
	}
	t.items = result.Transcriptions
	t.pagination = result.Pagination
	return nil
}

// Delete removes a transcription server-side and drops it from the local
// slice on success, mirroring the optimistic removal of the original view.
func (t *Transcriptions) Delete(ctx context.Context, id int64) error {
	if err := t.api.DeleteTranscription(ctx, id); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	kept := t.items[:0]
	for _, item := range t.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	t.items = kept
	return nil
}

// Prepend inserts a freshly created transcription at the top of the list
// without a round-trip.
func (t *Transcriptions) Prepend(tr models.Transcription) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = append([]models.Transcription{tr}, t.items...)
}
