// Package guard decides whether a requested view may render given the
// current session snapshot. Guards perform no fetching and hold no state:
// the same snapshot always yields the same decision.
package guard

import "github.com/Stay03/transcribeThis/internal/client/session"

// Decision is the outcome of evaluating a guard against a snapshot.
type Decision string

const (
	// DecisionLoading means the bootstrap has not resolved yet; render a
	// placeholder and re-evaluate on the next session change.
	DecisionLoading Decision = "loading"

	// DecisionRender allows the requested view.
	DecisionRender Decision = "render"

	// DecisionRedirectLogin sends the user to the login entry point.
	DecisionRedirectLogin Decision = "redirect_login"

	// DecisionRedirectDashboard sends the user to the dashboard.
	DecisionRedirectDashboard Decision = "redirect_dashboard"
)

// RequiresAuth gates views that need a signed-in user.
func RequiresAuth(snap session.Snapshot) Decision {
	if snap.Loading() {
		return DecisionLoading
	}
	if !snap.IsAuthenticated() {
		return DecisionRedirectLogin
	}
	return DecisionRender
}

// RequiresAnonymous gates entry views (login, signup) so an authenticated
// user cannot re-enter them.
func RequiresAnonymous(snap session.Snapshot) Decision {
	if snap.Loading() {
		return DecisionLoading
	}
	if snap.IsAuthenticated() {
		return DecisionRedirectDashboard
	}
	return DecisionRender
}

// RequiresAdmin gates the admin console: anonymous users go to login,
// signed-in non-admins go back to the dashboard.
func RequiresAdmin(snap session.Snapshot) Decision {
	if snap.Loading() {
		return DecisionLoading
	}
	if !snap.IsAuthenticated() {
		return DecisionRedirectLogin
	}
	if !snap.IsAdmin() {
		return DecisionRedirectDashboard
	}
	return DecisionRender
}
