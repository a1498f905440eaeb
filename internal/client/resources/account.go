package resources

import (
	"context"
	"sync"

	"github.com/Stay03/transcribeThis/internal/client/api"
)

// Account exposes the non-session account operations: password rotation and
// lifetime stats. Profile edits live on the session store because they
// mutate the session's user.
type Account struct {
	api *api.Client
	mu  sync.Mutex

	stats   *api.AccountStats
	loading bool
	err     error
}

type AccountState struct {
	Stats   *api.AccountStats
	Loading bool
	Err     error
}

func NewAccount(client *api.Client) *Account {
	return &Account{api: client}
}

func (a *Account) State() AccountState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return AccountState{Stats: a.stats, Loading: a.loading, Err: a.err}
}

func (a *Account) Fetch(ctx context.Context) error {
	a.mu.Lock()
	a.loading = true
	a.err = nil
	a.mu.Unlock()

	stats, err := a.api.GetAccountStats(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.loading = false
	if err != nil {
		a.err = err
		return err
	}
	a.stats = stats
	return nil
}

func (a *Account) ChangePassword(ctx context.Context, current, password, confirmation string) error {
	return a.api.ChangePassword(ctx, api.PasswordChange{
		CurrentPassword:      current,
		Password:             password,
		PasswordConfirmation: confirmation,
	})
}
