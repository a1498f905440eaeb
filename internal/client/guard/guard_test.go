package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Stay03/transcribeThis/internal/client/models"
	"github.com/Stay03/transcribeThis/internal/client/session"
)

func anonymous() session.Snapshot {
	return session.Snapshot{State: session.StateAnonymous}
}

func bootstrapping() session.Snapshot {
	return session.Snapshot{State: session.StateBootstrapping}
}

func authenticated(role string) session.Snapshot {
	return session.Snapshot{
		State: session.StateAuthenticated,
		Token: "tok",
		User:  &models.User{ID: 1, Email: "a@b.c", Role: role},
	}
}

func TestGuards_LoadingCheckedFirst(t *testing.T) {
	// Even a snapshot that would otherwise redirect must yield loading while
	// the bootstrap is unresolved; anything else flash-redirects on reload.
	snap := bootstrapping()
	assert.Equal(t, DecisionLoading, RequiresAuth(snap))
	assert.Equal(t, DecisionLoading, RequiresAnonymous(snap))
	assert.Equal(t, DecisionLoading, RequiresAdmin(snap))
}

func TestRequiresAuth(t *testing.T) {
	assert.Equal(t, DecisionRedirectLogin, RequiresAuth(anonymous()))
	assert.Equal(t, DecisionRender, RequiresAuth(authenticated(models.RoleUser)))
	assert.Equal(t, DecisionRender, RequiresAuth(authenticated(models.RoleAdmin)))
}

func TestRequiresAuth_TokenWithoutUserIsNotAuthenticated(t *testing.T) {
	snap := session.Snapshot{State: session.StateAnonymous, Token: "orphan"}
	assert.Equal(t, DecisionRedirectLogin, RequiresAuth(snap))
}

func TestRequiresAnonymous(t *testing.T) {
	assert.Equal(t, DecisionRender, RequiresAnonymous(anonymous()))
	assert.Equal(t, DecisionRedirectDashboard, RequiresAnonymous(authenticated(models.RoleUser)))
}

func TestRequiresAdmin(t *testing.T) {
	assert.Equal(t, DecisionRedirectLogin, RequiresAdmin(anonymous()))
	assert.Equal(t, DecisionRedirectDashboard, RequiresAdmin(authenticated(models.RoleUser)))
	assert.Equal(t, DecisionRender, RequiresAdmin(authenticated(models.RoleAdmin)))
}

func TestGuards_Idempotent(t *testing.T) {
	snap := authenticated(models.RoleUser)
	first := RequiresAuth(snap)
	second := RequiresAuth(snap)
	assert.Equal(t, first, second)

	first = RequiresAdmin(snap)
	second = RequiresAdmin(snap)
	assert.Equal(t, first, second)
}
