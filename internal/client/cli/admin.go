package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Stay03/transcribeThis/internal/client/api"
	"github.com/Stay03/transcribeThis/internal/client/guard"
	"github.com/Stay03/transcribeThis/internal/client/models"
)

const adminUsage = `Admin commands:
  admin dashboard [days]          overview and stats for the last N days (default 30)
  admin users [search]            list accounts
  admin role <id> <user|admin>    change an account's role
  admin deluser <id>              delete an account
  admin chplan <user-id> <plan-id>  move an account to a plan
  admin plans                     list plans
  admin delplan <id>              delete a plan
  admin trans [status]            list transcriptions across accounts
  admin deltrans <id>             delete any transcription
  admin activity                  activity analytics and online users
  admin settings                  show settings and system info
  admin set <key> <value>         update one setting
  admin clearcache [backup]       clear the server cache
  admin clearlogs [backup]        rotate the server logs`

// Admin dispatches the admin console subcommands. Every path is gated on the
// caller's role; non-admins are pointed back to their own views.
func (a *App) Admin(ctx context.Context, args []string) error {
	switch guard.RequiresAdmin(a.session.Snapshot()) {
	case guard.DecisionRender:
	case guard.DecisionLoading:
		fmt.Fprintln(a.out, "Session is still loading, try again in a moment.")
		return nil
	case guard.DecisionRedirectLogin:
		fmt.Fprintln(a.out, "You need to log in first.")
		return nil
	default:
		fmt.Fprintln(a.out, "Admin access required.")
		return nil
	}

	if len(args) == 0 {
		fmt.Fprintln(a.out, adminUsage)
		return nil
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "dashboard":
		return a.adminDashboard(ctx, rest)
	case "users":
		return a.adminListUsers(ctx, rest)
	case "role":
		return a.adminChangeRole(ctx, rest)
	case "deluser":
		return a.adminDeleteUser(ctx, rest)
	case "chplan":
		return a.adminChangePlan(ctx, rest)
	case "plans":
		return a.adminListPlans(ctx)
	case "delplan":
		return a.adminDeletePlan(ctx, rest)
	case "trans":
		return a.adminListTranscriptions(ctx, rest)
	case "deltrans":
		return a.adminDeleteTranscription(ctx, rest)
	case "activity":
		return a.adminActivity(ctx)
	case "settings":
		return a.adminSettings(ctx)
	case "set":
		return a.adminUpdateSetting(ctx, rest)
	case "clearcache":
		return a.adminClearCache(ctx, rest)
	case "clearlogs":
		return a.adminClearLogs(ctx, rest)
	default:
		fmt.Fprintln(a.out, adminUsage)
		return nil
	}
}

func (a *App) adminDashboard(ctx context.Context, args []string) error {
	days := 30
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			fmt.Fprintln(a.out, "Usage: admin dashboard [days]")
			return nil
		}
		days = n
	}

	if err := a.dashboard.Fetch(ctx, days); err != nil {
		return err
	}

	state := a.dashboard.State()
	if o := state.Overview; o != nil {
		fmt.Fprintf(a.out, "Users: %d   Transcriptions: %d   Active subscriptions: %d\n",
			o.TotalUsers, o.TotalTranscriptions, o.ActiveSubscriptions)
	}
	if s := state.Stats; s != nil {
		fmt.Fprintf(a.out, "Last %d days: %d new users, %d transcriptions\n",
			s.PeriodDays, s.NewUsers, s.TotalTranscriptions)
		fmt.Fprintf(a.out, "Today: %d completed, %d failed, %d processing\n",
			s.CompletedToday, s.FailedToday, s.ProcessingCount)
	}
	return nil
}

func (a *App) adminListUsers(ctx context.Context, args []string) error {
	filters := api.ListFilters{PerPage: 20}
	if len(args) > 0 {
		filters.Search = args[0]
	}
	a.adminUsers.SetFilters(filters)

	if err := a.adminUsers.Fetch(ctx); err != nil {
		return err
	}

	state := a.adminUsers.State()
	for _, u := range state.Users {
		plan := "-"
		if u.Plan != nil {
			plan = u.Plan.Name
		}
		fmt.Fprintf(a.out, "%6d  %-6s  %-28s  %-12s  %d transcriptions\n",
			u.ID, u.Role, u.Email, plan, u.TranscriptionCount)
	}
	if p := state.Pagination; p != nil {
		fmt.Fprintf(a.out, "Page %d of %d (%d total)\n", p.CurrentPage, p.LastPage, p.Total)
	}
	return nil
}

func (a *App) adminChangeRole(ctx context.Context, args []string) error {
	if len(args) != 2 || (args[1] != models.RoleUser && args[1] != models.RoleAdmin) {
		fmt.Fprintln(a.out, "Usage: admin role <id> <user|admin>")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: admin role <id> <user|admin>")
		return nil
	}

	if err := a.adminUsers.Update(ctx, id, api.AdminUserUpdate{Role: args[1]}); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Role updated.")
	return nil
}

func (a *App) adminDeleteUser(ctx context.Context, args []string) error {
	id, ok := a.parseID(args, "Usage: admin deluser <id>")
	if !ok {
		return nil
	}
	if err := a.adminUsers.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "User deleted.")
	return nil
}

func (a *App) adminChangePlan(ctx context.Context, args []string) error {
	if len(args) != 2 {
		fmt.Fprintln(a.out, "Usage: admin chplan <user-id> <plan-id>")
		return nil
	}
	userID, err1 := strconv.ParseInt(args[0], 10, 64)
	planID, err2 := strconv.ParseInt(args[1], 10, 64)
	if err1 != nil || err2 != nil {
		fmt.Fprintln(a.out, "Usage: admin chplan <user-id> <plan-id>")
		return nil
	}

	if err := a.adminUsers.ChangePlan(ctx, userID, planID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Plan changed.")
	return nil
}

func (a *App) adminListPlans(ctx context.Context) error {
	if err := a.adminPlans.Fetch(ctx); err != nil {
		return err
	}
	for _, p := range a.adminPlans.State().Plans {
		fmt.Fprintf(a.out, "%4d  %-12s  $%.2f  %d/mo\n", p.ID, p.Name, p.Price, p.Limits.MonthlyTranscriptions)
	}
	return nil
}

func (a *App) adminDeletePlan(ctx context.Context, args []string) error {
	id, ok := a.parseID(args, "Usage: admin delplan <id>")
	if !ok {
		return nil
	}
	if err := a.adminPlans.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Plan deleted.")
	return nil
}

func (a *App) adminListTranscriptions(ctx context.Context, args []string) error {
	filters := api.ListFilters{PerPage: 20}
	if len(args) > 0 {
		filters.Status = args[0]
	}
	a.adminTrans.SetFilters(filters)

	if err := a.adminTrans.Fetch(ctx); err != nil {
		return err
	}
	for _, tr := range a.adminTrans.State().Items {
		fmt.Fprintf(a.out, "%6d  %-12s  %s\n", tr.ID, tr.Status, tr.OriginalFilename)
	}
	return nil
}

func (a *App) adminDeleteTranscription(ctx context.Context, args []string) error {
	id, ok := a.parseID(args, "Usage: admin deltrans <id>")
	if !ok {
		return nil
	}
	if err := a.adminTrans.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Transcription deleted.")
	return nil
}

func (a *App) adminActivity(ctx context.Context) error {
	if err := a.activity.Fetch(ctx, 7); err != nil {
		return err
	}

	state := a.activity.State()
	if an := state.Analytics; an != nil {
		fmt.Fprintf(a.out, "Online now: %d   Active today: %d   Active this week: %d\n",
			an.Online.Count, an.ActiveToday, an.ActiveWeek)
		for _, u := range an.Online.Users {
			fmt.Fprintf(a.out, "  %s (%s), last seen %s\n", u.Name, u.Email, u.LastSeenAt.Format("15:04:05"))
		}
	}
	if len(state.Trends) > 0 {
		fmt.Fprintln(a.out, "Last 7 days:")
		for _, p := range state.Trends {
			fmt.Fprintf(a.out, "  %s  %d\n", p.Date, p.Count)
		}
	}
	return nil
}

func (a *App) adminSettings(ctx context.Context) error {
	if err := a.settings.Fetch(ctx); err != nil {
		return err
	}

	state := a.settings.State()
	for _, s := range state.Settings {
		fmt.Fprintf(a.out, "%-30s = %s\n", s.Key, s.Value)
	}
	if info := state.System; info != nil {
		fmt.Fprintf(a.out, "App version:  %s\n", info.AppVersion)
		fmt.Fprintf(a.out, "Database:     %s\n", info.DatabaseConnection)
		fmt.Fprintf(a.out, "Disk used:    %.1f%%\n", info.DiskUsage.UsedPercentage)
	}
	return nil
}

func (a *App) adminUpdateSetting(ctx context.Context, args []string) error {
	if len(args) != 2 {
		fmt.Fprintln(a.out, "Usage: admin set <key> <value>")
		return nil
	}
	if err := a.settings.Update(ctx, []models.Setting{{Key: args[0], Value: args[1]}}); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Setting updated.")
	return nil
}

func (a *App) adminClearCache(ctx context.Context, args []string) error {
	backup := len(args) > 0 && args[0] == "backup"
	result, err := a.settings.ClearCache(ctx, backup)
	if err != nil {
		return err
	}
	a.printMaintenance(result)
	return nil
}

func (a *App) adminClearLogs(ctx context.Context, args []string) error {
	backup := len(args) > 0 && args[0] == "backup"
	result, err := a.settings.ClearLogs(ctx, backup)
	if err != nil {
		return err
	}
	a.printMaintenance(result)
	return nil
}

func (a *App) printMaintenance(result *models.MaintenanceResult) {
	fmt.Fprintf(a.out, "Cleared, %.1f MB freed.\n", result.FreedMB)
	if result.BackupPath != "" {
		fmt.Fprintf(a.out, "Backup written to %s\n", result.BackupPath)
	}
}

func (a *App) parseID(args []string, usage string) (int64, bool) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, usage)
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, usage)
		return 0, false
	}
	return id, true
}
