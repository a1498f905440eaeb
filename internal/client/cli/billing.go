package cli

import (
	"context"
	"fmt"
	"strconv"
)

// Plans lists the public plan catalog with limits and prices.
func (a *App) Plans(ctx context.Context) error {
	if !a.requireAuth() {
		return nil
	}

	if err := a.billing.Fetch(ctx); err != nil {
		return err
	}

	state := a.billing.State()
	for _, plan := range state.Plans {
		price := "free"
		if !plan.IsFree {
			price = fmt.Sprintf("$%.2f/mo", plan.Price)
		}
		fmt.Fprintf(a.out, "%4d  %-12s  %-10s  %d transcriptions/mo, %d prompts, %d MB max\n",
			plan.ID, plan.Name, price,
			plan.Limits.MonthlyTranscriptions, plan.Limits.TotalPrompts, plan.Limits.MaxFileSizeMB)
	}
	if sub := state.Subscription; sub != nil && sub.Plan != nil {
		fmt.Fprintf(a.out, "Current plan: %s (%s)\n", sub.Plan.Name, sub.Status)
	}
	return nil
}

// Subscribe switches the account to the given plan.
func (a *App) Subscribe(ctx context.Context, args []string) error {
	if !a.requireAuth() {
		return nil
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: subscribe <plan-id>")
		return nil
	}
	planID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: subscribe <plan-id>")
		return nil
	}

	if err := a.billing.Subscribe(ctx, planID); err != nil {
		return err
	}
	if err := a.session.RefreshProfile(ctx); err != nil {
		a.log.Warn(ctx, "profile refresh after plan change failed", "error", err)
	}
	fmt.Fprintln(a.out, "Subscribed.")
	return nil
}

// Usage shows consumption against the current plan's limits.
func (a *App) Usage(ctx context.Context) error {
	if !a.requireAuth() {
		return nil
	}

	if err := a.billing.Fetch(ctx); err != nil {
		return err
	}

	state := a.billing.State()
	if state.Usage == nil {
		fmt.Fprintln(a.out, "No usage data.")
		return nil
	}
	fmt.Fprintf(a.out, "Transcriptions used: %d\n", state.Usage.TranscriptionsUsed)
	fmt.Fprintf(a.out, "Prompts used:        %d\n", state.Usage.PromptsUsed)
	fmt.Fprintf(a.out, "Total upload size:   %.1f MB\n", state.Usage.TotalFileSizeMB)
	return nil
}

// CancelPlan cancels the paid subscription.
func (a *App) CancelPlan(ctx context.Context) error {
	if !a.requireAuth() {
		return nil
	}

	confirm, err := getSimpleText(a.reader, "Cancel your subscription? (yes/no)", a.out)
	if err != nil {
		return err
	}
	if confirm != "yes" {
		fmt.Fprintln(a.out, "Kept the subscription.")
		return nil
	}

	if err := a.billing.Cancel(ctx); err != nil {
		return err
	}
	if err := a.session.RefreshProfile(ctx); err != nil {
		a.log.Warn(ctx, "profile refresh after plan change failed", "error", err)
	}
	fmt.Fprintln(a.out, "Subscription cancelled.")
	return nil
}
