package cli

import (
	"context"
	"fmt"

	"github.com/Stay03/transcribeThis/internal/client/api"
	"github.com/Stay03/transcribeThis/internal/common"
)

// Account prints the signed-in user's lifetime stats.
func (a *App) Account(ctx context.Context) error {
	if !a.requireAuth() {
		return nil
	}

	if err := a.account.Fetch(ctx); err != nil {
		return err
	}

	snap := a.session.Snapshot()
	state := a.account.State()
	fmt.Fprintf(a.out, "Name:   %s\n", snap.User.Name)
	fmt.Fprintf(a.out, "Email:  %s\n", snap.User.Email)
	if stats := state.Stats; stats != nil {
		fmt.Fprintf(a.out, "Transcriptions: %d\n", stats.TotalTranscriptions)
		fmt.Fprintf(a.out, "Prompts:        %d\n", stats.TotalPrompts)
		fmt.Fprintf(a.out, "Uploaded:       %.1f MB\n", stats.TotalFileSizeMB)
		fmt.Fprintf(a.out, "Member since:   %s\n", stats.MemberSince)
	}
	return nil
}

// EditProfile prompts for new name and email. Empty answers keep the current
// values.
func (a *App) EditProfile(ctx context.Context) error {
	if !a.requireAuth() {
		return nil
	}

	name, err := getSimpleText(a.reader, "New name (press Enter to keep)", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "New email (press Enter to keep)", a.out)
	if err != nil {
		return err
	}
	if name == "" && email == "" {
		fmt.Fprintln(a.out, "Nothing to change.")
		return nil
	}

	if err := a.session.UpdateProfile(ctx, api.ProfileUpdate{Name: name, Email: email}); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile updated.")
	return nil
}

// ChangePassword rotates the account password. All three inputs are wiped
// before returning.
func (a *App) ChangePassword(ctx context.Context) error {
	if !a.requireAuth() {
		return nil
	}

	current, err := getPassword(a.out, "Current password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	password, err := getPassword(a.out, "New password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirmation, err := getPassword(a.out, "Confirm new password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirmation)

	if err := a.account.ChangePassword(ctx, string(current), string(password), string(confirmation)); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password changed.")
	return nil
}
