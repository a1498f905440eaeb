package resources

import (
	"context"
	"sync"

	"github.com/Stay03/transcribeThis/internal/client/api"
	"github.com/Stay03/transcribeThis/internal/client/models"
)

// AdminUsers is the admin console's filtered, paginated account list.
// Mutations re-fetch the current page on success so the table reflects
// server truth.
type AdminUsers struct {
	api     *api.Client
	mu      sync.Mutex
	filters api.ListFilters

	users      []models.AdminUser
	pagination *models.Pagination
	loading    bool
	err        error
}

type AdminUsersState struct {
	Users      []models.AdminUser
	Pagination *models.Pagination
	Loading    bool
	Err        error
}

func NewAdminUsers(client *api.Client, filters api.ListFilters) *AdminUsers {
	return &AdminUsers{api: client, filters: filters}
}

func (u *AdminUsers) State() AdminUsersState {
	u.mu.Lock()
	defer u.mu.Unlock()
	users := make([]models.AdminUser, len(u.users))
	copy(users, u.users)
	return AdminUsersState{Users: users, Pagination: u.pagination, Loading: u.loading, Err: u.err}
}

// SetFilters replaces the query filters; call Fetch to apply them.
func (u *AdminUsers) SetFilters(filters api.ListFilters) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.filters = filters
}

func (u *AdminUsers) Fetch(ctx context.Context) error {
	u.mu.Lock()
	u.loading = true
	u.err = nil
	filters := u.filters
	u.mu.Unlock()

	page, err := u.api.AdminUsers(ctx, filters)

	u.mu.Lock()
	defer u.mu.Unlock()
	u.loading = false
	if err != nil {
		u.err = err
		return err
	}
	u.users = page.Users
	u.pagination = page.Meta
	return nil
}

func (u *AdminUsers) Update(ctx context.Context, id int64, update api.AdminUserUpdate) error {
	if err := u.api.UpdateAdminUser(ctx, id, update); err != nil {
		return err
	}
	return u.Fetch(ctx)
}

func (u *AdminUsers) Delete(ctx context.Context, id int64) error {
	if err := u.api.DeleteAdminUser(ctx, id); err != nil {
		return err
	}
	return u.Fetch(ctx)
}

func (u *AdminUsers) ChangePlan(ctx context.Context, userID, planID int64) error {
	if err := u.api.ChangeUserPlan(ctx, userID, planID); err != nil {
		return err
	}
	return u.Fetch(ctx)
}
