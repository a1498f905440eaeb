package resources

import (
	"context"
	"sync"

	"github.com/Stay03/transcribeThis/internal/client/api"
	"github.com/Stay03/transcribeThis/internal/client/models"
)

// Billing tracks the public plan catalog plus the caller's subscription
// and usage.
type Billing struct {
	api *api.Client
	mu  sync.Mutex

	plans        []models.Plan
	subscription *models.Subscription
	usage        *models.UsageStats
	loading      bool
	err          error
}

type BillingState struct {
	Plans        []models.Plan
	Subscription *models.Subscription
	Usage        *models.UsageStats
	Loading      bool
	Err          error
}

func NewBilling(client *api.Client) *Billing {
	return &Billing{api: client}
}

func (b *Billing) State() BillingState {
	b.mu.Lock()
	defer b.mu.Unlock()
	plans := make([]models.Plan, len(b.plans))
	copy(plans, b.plans)
	return BillingState{Plans: plans, Subscription: b.subscription, Usage: b.usage, Loading: b.loading, Err: b.err}
}

// Fetch loads the plan catalog, current subscription, and usage counters.
func (b *Billing) Fetch(ctx context.Context) error {
	b.mu.Lock()
	b.loading = true
	b.err = nil
	b.mu.Unlock()

	plans, err := b.api.Plans(ctx)
	if err == nil {
		var sub *models.Subscription
		sub, err = b.api.CurrentSubscription(ctx)
		if err == nil {
			var usage *models.UsageStats
			usage, err = b.api.UsageStats(ctx)
			if err == nil {
				b.mu.Lock()
				b.plans = plans
				b.subscription = sub
				b.usage = usage
				b.loading = false
				b.mu.Unlock()
				return nil
			}
		}
	}

	b.mu.Lock()
	b.loading = false
	b.err = err
	b.mu.Unlock()
	return err
}

// Subscribe switches the caller to a plan and refreshes on success.
func (b *Billing) Subscribe(ctx context.Context, planID int64) error {
	if _, err := b.api.Subscribe(ctx, planID); err != nil {
		return err
	}
	return b.Fetch(ctx)
}

// Cancel drops the paid subscription and refreshes on success.
func (b *Billing) Cancel(ctx context.Context) error {
	if err := b.api.CancelSubscription(ctx); err != nil {
		return err
	}
	return b.Fetch(ctx)
}
