package resources

import (
	"context"
	"sync"

	"github.com/Stay03/transcribeThis/internal/client/api"
	"github.com/Stay03/transcribeThis/internal/client/models"
)

// AdminPlans manages the plan catalog from the admin console.
type AdminPlans struct {
	api     *api.Client
	mu      sync.Mutex
	filters api.ListFilters

	plans      []models.Plan
	pagination *models.Pagination
	loading    bool
	err        error
}

type AdminPlansState struct {
	Plans      []models.Plan
	Pagination *models.Pagination
	Loading    bool
	Err        error
}

func NewAdminPlans(client *api.Client, filters api.ListFilters) *AdminPlans {
	return &AdminPlans{api: client, filters: filters}
}

func (p *AdminPlans) State() AdminPlansState {
	p.mu.Lock()
	defer p.mu.Unlock()
	plans := make([]models.Plan, len(p.plans))
	copy(plans, p.plans)
	return AdminPlansState{Plans: plans, Pagination: p.pagination, Loading: p.loading, Err: p.err}
}

func (p *AdminPlans) Fetch(ctx context.Context) error {
	p.mu.Lock()
	p.loading = true
	p.err = nil
	filters := p.filters
	p.mu.Unlock()

	page, err := p.api.AdminPlans(ctx, filters)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		p.err = err
		return err
	}
	p.plans = page.Plans
	p.pagination = page.Meta
	return nil
}

func (p *AdminPlans) Create(ctx context.Context, plan models.Plan) error {
	if _, err := p.api.CreateAdminPlan(ctx, plan); err != nil {
		return err
	}
	return p.Fetch(ctx)
}

func (p *AdminPlans) Update(ctx context.Context, id int64, plan models.Plan) error {
	if err := p.api.UpdateAdminPlan(ctx, id, plan); err != nil {
		return err
	}
	return p.Fetch(ctx)
}

func (p *AdminPlans) Delete(ctx context.Context, id int64) error {
	if err := p.api.DeleteAdminPlan(ctx, id); err != nil {
		return err
	}
	return p.Fetch(ctx)
}
