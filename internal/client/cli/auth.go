package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/Stay03/transcribeThis/internal/client/guard"
	"github.com/Stay03/transcribeThis/internal/client/oauth"
	"github.com/Stay03/transcribeThis/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// oauthTimeout bounds how long the CLI waits for the browser round-trip.
const oauthTimeout = 5 * time.Minute

// Register prompts for name, email, and password and attempts to create a new
// account. On success the session is authenticated and persisted.
//
// The password byte slices are wiped before returning. Service errors come
// back with their server message intact.
func (a *App) Register(ctx context.Context) error {
	if d := guard.RequiresAnonymous(a.session.Snapshot()); d != guard.DecisionRender {
		fmt.Fprintln(a.out, "Already signed in. Log out first.")
		return nil
	}

	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirmation, err := getPassword(a.out, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirmation)

	if err := a.session.Register(ctx, name, email, string(password), string(confirmation)); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Account created. You are signed in.")
	return nil
}

// Login prompts for credentials and authenticates against the backend.
// On success the token is persisted locally so the next start restores the
// session without a prompt.
func (a *App) Login(ctx context.Context) error {
	if d := guard.RequiresAnonymous(a.session.Snapshot()); d != guard.DecisionRender {
		fmt.Fprintln(a.out, "Already signed in. Log out first.")
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Signed in.")
	return nil
}

// Google runs the browser sign-in flow: it fetches the provider handoff URL,
// starts a loopback callback listener, and waits for the browser to come
// back with a token and user payload.
func (a *App) Google(ctx context.Context) error {
	if d := guard.RequiresAnonymous(a.session.Snapshot()); d != guard.DecisionRender {
		fmt.Fprintln(a.out, "Already signed in. Log out first.")
		return nil
	}

	redirectURL, err := a.api.GoogleRedirectURL(ctx)
	if err != nil {
		return err
	}

	srv := oauth.NewServer(a.config.OAuthCallbackAddr, a.log)
	callbackURL, err := srv.Start()
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	fmt.Fprintln(a.out, "Open this URL in your browser to sign in:")
	fmt.Fprintln(a.out, "  "+redirectURL)
	fmt.Fprintln(a.out, "Waiting for the callback on "+callbackURL+" ...")

	waitCtx, cancel := context.WithTimeout(ctx, oauthTimeout)
	defer cancel()

	res, err := srv.Wait(waitCtx)
	if err != nil {
		return err
	}

	if err := a.session.SetAuthFromOAuth(ctx, res.Token, res.User); err != nil {
		return err
	}
	if err := a.session.RefreshProfile(ctx); err != nil {
		a.log.Warn(ctx, "profile refresh after sign-in failed", "error", err)
	}

	fmt.Fprintln(a.out, "Signed in as "+res.User.Email+".")
	return nil
}

// Logout revokes the server session on a best-effort basis and always clears
// the local one.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}
