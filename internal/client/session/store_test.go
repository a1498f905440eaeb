package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stay03/transcribeThis/internal/client/api"
	"github.com/Stay03/transcribeThis/internal/client/models"
	"github.com/Stay03/transcribeThis/internal/common"
)

// ---- fakes ----

type fakeRepo struct {
	mu    sync.Mutex
	token string

	getErr   error
	setErr   error
	clearErr error
}

func (f *fakeRepo) Get(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, f.getErr
}

func (f *fakeRepo) Set(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr == nil {
		f.token = token
	}
	return f.setErr
}

func (f *fakeRepo) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.clearErr == nil {
		f.token = ""
	}
	return f.clearErr
}

type fakeAPI struct {
	loginResp *api.AuthResponse
	loginErr  error

	registerResp *api.AuthResponse
	registerErr  error

	logoutErr    error
	logoutCalled bool

	profileResp  *api.ProfileResponse
	profileErr   error
	profileCalls int
	// profileHook lets a test interleave mutations with an in-flight fetch.
	profileHook func()

	updatedUser *models.User
	updateErr   error
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*api.AuthResponse, error) {
	return f.loginResp, f.loginErr
}

func (f *fakeAPI) Register(ctx context.Context, name, email, password, confirmation string) (*api.AuthResponse, error) {
	return f.registerResp, f.registerErr
}

func (f *fakeAPI) Logout(ctx context.Context) error {
	f.logoutCalled = true
	return f.logoutErr
}

func (f *fakeAPI) Profile(ctx context.Context) (*api.ProfileResponse, error) {
	f.profileCalls++
	if f.profileHook != nil {
		f.profileHook()
	}
	return f.profileResp, f.profileErr
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, update api.ProfileUpdate) (*models.User, error) {
	return f.updatedUser, f.updateErr
}

func userFixture() models.User {
	return models.User{ID: 1, Name: "Alice", Email: "user@example.com", Role: models.RoleUser}
}

func planFixture() *models.Plan {
	return &models.Plan{ID: 2, Name: "Pro", Price: 9.99}
}

func newStore(a *fakeAPI, repo *fakeRepo) *Store {
	return New(a, repo, nil)
}

// ---- tests ----

func TestBootstrap_NoStoredToken(t *testing.T) {
	a := &fakeAPI{}
	repo := &fakeRepo{}
	s := newStore(a, repo)

	require.NoError(t, s.Bootstrap(context.Background()))

	snap := s.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.False(t, snap.Loading())
	assert.False(t, snap.IsAuthenticated())
	assert.Zero(t, a.profileCalls, "no profile call without a stored token")
}

func TestBootstrap_StoredTokenAccepted(t *testing.T) {
	u := userFixture()
	a := &fakeAPI{profileResp: &api.ProfileResponse{User: u, CurrentPlan: planFixture()}}
	repo := &fakeRepo{token: "stored-token"}
	s := newStore(a, repo)

	require.NoError(t, s.Bootstrap(context.Background()))

	snap := s.Snapshot()
	assert.Equal(t, StateAuthenticated, snap.State)
	assert.True(t, snap.IsAuthenticated())
	assert.Equal(t, "stored-token", snap.Token)
	assert.Equal(t, u.Email, snap.User.Email)
	assert.Equal(t, "Pro", snap.CurrentPlan.Name)
}

func TestBootstrap_StoredTokenRejected(t *testing.T) {
	a := &fakeAPI{profileErr: &api.APIError{Kind: api.KindUnauthorized, Status: 401, Message: "expired"}}
	repo := &fakeRepo{token: "stale"}
	s := newStore(a, repo)

	require.NoError(t, s.Bootstrap(context.Background()))

	snap := s.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.Nil(t, snap.User)
	assert.Empty(t, snap.Token)
	assert.Empty(t, repo.token, "stored token must be cleared")
}

func TestBootstrap_Idempotent(t *testing.T) {
	a := &fakeAPI{profileResp: &api.ProfileResponse{User: userFixture()}}
	repo := &fakeRepo{token: "tok"}
	s := newStore(a, repo)

	ctx := context.Background()
	require.NoError(t, s.Bootstrap(ctx))
	require.NoError(t, s.Bootstrap(ctx))
	assert.Equal(t, 1, a.profileCalls)
}

func TestBootstrap_StorageReadFailureTreatedAsAnonymous(t *testing.T) {
	a := &fakeAPI{}
	repo := &fakeRepo{getErr: errors.New("disk gone")}
	s := newStore(a, repo)

	require.NoError(t, s.Bootstrap(context.Background()))
	assert.Equal(t, StateAnonymous, s.Snapshot().State)
	assert.Zero(t, a.profileCalls)
}

func TestLogin_Success(t *testing.T) {
	u := userFixture()
	a := &fakeAPI{
		loginResp:   &api.AuthResponse{AccessToken: "abc", User: u},
		profileResp: &api.ProfileResponse{User: u, CurrentPlan: planFixture()},
	}
	repo := &fakeRepo{}
	s := newStore(a, repo)

	require.NoError(t, s.Login(context.Background(), "user@example.com", "correctpass"))

	snap := s.Snapshot()
	assert.Equal(t, StateAuthenticated, snap.State)
	assert.Equal(t, "abc", snap.Token)
	assert.Equal(t, "abc", repo.token, "token must be persisted")
	assert.Equal(t, "abc", s.Token(), "adapter token source must see the new token")
	assert.Equal(t, "Pro", snap.CurrentPlan.Name, "plan populated by follow-up refresh")
}

func TestLogin_WrongCredentialsLeavesStateUntouched(t *testing.T) {
	a := &fakeAPI{loginErr: &api.APIError{Kind: api.KindValidation, Status: 422, Message: "Invalid credentials"}}
	repo := &fakeRepo{}
	s := newStore(a, repo)
	require.NoError(t, s.Bootstrap(context.Background()))

	err := s.Login(context.Background(), "user@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())

	snap := s.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.Empty(t, snap.Token)
	assert.Empty(t, repo.token)
}

func TestLogin_RefreshFailureKeepsSessionAuthenticated(t *testing.T) {
	u := userFixture()
	a := &fakeAPI{
		loginResp:  &api.AuthResponse{AccessToken: "abc", User: u},
		profileErr: errors.New("slow backend"),
	}
	s := newStore(a, &fakeRepo{})

	require.NoError(t, s.Login(context.Background(), u.Email, "pw"))
	assert.True(t, s.Snapshot().IsAuthenticated())
}

func TestRegister_Success(t *testing.T) {
	u := userFixture()
	a := &fakeAPI{
		registerResp: &api.AuthResponse{AccessToken: "fresh", User: u},
		profileResp:  &api.ProfileResponse{User: u},
	}
	repo := &fakeRepo{}
	s := newStore(a, repo)

	require.NoError(t, s.Register(context.Background(), "Alice", u.Email, "pw", "pw"))
	assert.Equal(t, "fresh", repo.token)
	assert.True(t, s.Snapshot().IsAuthenticated())
}

func TestRegister_ServerMessageSurfacedVerbatim(t *testing.T) {
	a := &fakeAPI{registerErr: &api.APIError{Kind: api.KindValidation, Message: "The email has already been taken."}}
	s := newStore(a, &fakeRepo{})

	err := s.Register(context.Background(), "A", "a@b.c", "pw", "pw")
	require.Error(t, err)
	assert.Equal(t, "The email has already been taken.", err.Error())
}

func TestLogout_ServerFailureStillClearsLocally(t *testing.T) {
	u := userFixture()
	a := &fakeAPI{
		loginResp:   &api.AuthResponse{AccessToken: "abc", User: u},
		profileResp: &api.ProfileResponse{User: u},
		logoutErr:   errors.New("network unreachable"),
	}
	repo := &fakeRepo{}
	s := newStore(a, repo)
	require.NoError(t, s.Login(context.Background(), u.Email, "pw"))

	s.Logout(context.Background())

	snap := s.Snapshot()
	assert.True(t, a.logoutCalled)
	assert.Equal(t, StateAnonymous, snap.State)
	assert.Nil(t, snap.User)
	assert.Empty(t, repo.token)
}

func TestLogout_AnonymousSkipsServerCall(t *testing.T) {
	a := &fakeAPI{}
	s := newStore(a, &fakeRepo{})
	require.NoError(t, s.Bootstrap(context.Background()))

	s.Logout(context.Background())
	assert.False(t, a.logoutCalled)
}

func TestHandleUnauthorized_TearsDownMidSession(t *testing.T) {
	u := userFixture()
	a := &fakeAPI{
		loginResp:   &api.AuthResponse{AccessToken: "abc", User: u},
		profileResp: &api.ProfileResponse{User: u},
	}
	repo := &fakeRepo{}
	s := newStore(a, repo)
	require.NoError(t, s.Login(context.Background(), u.Email, "pw"))

	s.HandleUnauthorized()

	snap := s.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.Nil(t, snap.User)
	assert.Empty(t, repo.token)
}

func TestRefreshProfile_WithoutToken(t *testing.T) {
	s := newStore(&fakeAPI{}, &fakeRepo{})
	err := s.RefreshProfile(context.Background())
	assert.ErrorIs(t, err, common.ErrNotAuthenticated)
}

func TestRefreshProfile_FailureKeepsPreviousSnapshot(t *testing.T) {
	u := userFixture()
	a := &fakeAPI{profileResp: &api.ProfileResponse{User: u, CurrentPlan: planFixture()}}
	repo := &fakeRepo{token: "tok"}
	s := newStore(a, repo)
	require.NoError(t, s.Bootstrap(context.Background()))

	a.profileErr = errors.New("temporarily down")
	a.profileResp = nil
	err := s.RefreshProfile(context.Background())

	require.Error(t, err)
	snap := s.Snapshot()
	assert.True(t, snap.IsAuthenticated(), "refresh failure must not log the user out")
	assert.Equal(t, u.Email, snap.User.Email)
}

func TestRefreshProfile_StaleResponseDiscarded(t *testing.T) {
	u := userFixture()
	stale := models.User{ID: 1, Name: "Stale", Email: u.Email, Role: models.RoleUser}
	a := &fakeAPI{profileResp: &api.ProfileResponse{User: u}}
	repo := &fakeRepo{token: "tok"}
	s := newStore(a, repo)
	require.NoError(t, s.Bootstrap(context.Background()))

	// While the refresh is in flight, a logout supersedes it. The response
	// must be discarded instead of resurrecting an authenticated snapshot.
	a.profileResp = &api.ProfileResponse{User: stale}
	a.profileHook = func() {
		a.profileHook = nil
		s.Logout(context.Background())
	}

	require.NoError(t, s.RefreshProfile(context.Background()))

	snap := s.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.Nil(t, snap.User)
}

func TestUpdateProfile_MutatesSessionUser(t *testing.T) {
	u := userFixture()
	renamed := u
	renamed.Name = "Alice Cooper"
	a := &fakeAPI{
		loginResp:   &api.AuthResponse{AccessToken: "abc", User: u},
		profileResp: &api.ProfileResponse{User: u},
		updatedUser: &renamed,
	}
	s := newStore(a, &fakeRepo{})
	require.NoError(t, s.Login(context.Background(), u.Email, "pw"))

	require.NoError(t, s.UpdateProfile(context.Background(), api.ProfileUpdate{Name: "Alice Cooper"}))
	assert.Equal(t, "Alice Cooper", s.Snapshot().User.Name)
}

func TestSetAuthFromOAuth_RejectsMalformedPayloads(t *testing.T) {
	s := newStore(&fakeAPI{}, &fakeRepo{})
	ctx := context.Background()
	u := userFixture()

	tests := []struct {
		name  string
		token string
		user  *models.User
	}{
		{"empty token", "", &u},
		{"nil user", "tok", nil},
		{"zero user id", "tok", &models.User{Email: "a@b.c"}},
		{"empty email", "tok", &models.User{ID: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.SetAuthFromOAuth(ctx, tt.token, tt.user)
			assert.ErrorIs(t, err, common.ErrInvalidAuthPayload)
			assert.False(t, s.Snapshot().IsAuthenticated(), "session must stay untouched")
		})
	}
}

func TestSetAuthFromOAuth_ThenBootstrapReproducesSession(t *testing.T) {
	u := userFixture()
	u.GoogleID = "google-123"
	u.CurrentPlan = planFixture()

	repo := &fakeRepo{}
	first := newStore(&fakeAPI{}, repo)
	require.NoError(t, first.SetAuthFromOAuth(context.Background(), "oauth-token", &u))

	snap := first.Snapshot()
	assert.True(t, snap.IsAuthenticated())
	assert.Equal(t, "Pro", snap.CurrentPlan.Name)
	assert.Equal(t, "oauth-token", repo.token)

	// simulated reload: fresh store over the same durable token
	a := &fakeAPI{profileResp: &api.ProfileResponse{User: u, CurrentPlan: u.CurrentPlan}}
	second := newStore(a, repo)
	require.NoError(t, second.Bootstrap(context.Background()))

	reloaded := second.Snapshot()
	assert.True(t, reloaded.IsAuthenticated())
	assert.Equal(t, "oauth-token", reloaded.Token)
	assert.Equal(t, u.Email, reloaded.User.Email)
	assert.Equal(t, u.GoogleID, reloaded.User.GoogleID)
}

func TestSubscribe_NotifiedOnTransitions(t *testing.T) {
	u := userFixture()
	a := &fakeAPI{
		loginResp:   &api.AuthResponse{AccessToken: "abc", User: u},
		profileResp: &api.ProfileResponse{User: u},
	}
	s := newStore(a, &fakeRepo{})

	var states []State
	unsubscribe := s.Subscribe(func(snap Snapshot) {
		states = append(states, snap.State)
	})

	require.NoError(t, s.Bootstrap(context.Background()))
	require.NoError(t, s.Login(context.Background(), u.Email, "pw"))
	s.Logout(context.Background())

	unsubscribe()
	s.HandleUnauthorized() // no observer left; must not panic or append

	require.GreaterOrEqual(t, len(states), 3)
	assert.Equal(t, StateAnonymous, states[0])
	assert.Contains(t, states, StateAuthenticated)
	assert.Equal(t, StateAnonymous, states[len(states)-1])
}
