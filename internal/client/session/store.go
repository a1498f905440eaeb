// Package session owns the authentication state of the client. The Store is
// the only component allowed to mutate the in-memory session or the durable
// token copy; everything else observes snapshots.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/Stay03/transcribeThis/internal/client/api"
	"github.com/Stay03/transcribeThis/internal/client/models"
	"github.com/Stay03/transcribeThis/internal/client/tokenstore"
	"github.com/Stay03/transcribeThis/internal/common"
	"github.com/Stay03/transcribeThis/internal/logging"
)

// State is the lifecycle phase of the session.
//
//	Bootstrapping → {Authenticated, Anonymous}
//	Authenticated → Anonymous   (logout, 401)
//	Anonymous     → Authenticated (login, register, OAuth completion)
type State string

const (
	StateBootstrapping State = "bootstrapping"
	StateAuthenticated State = "authenticated"
	StateAnonymous     State = "anonymous"
)

// Snapshot is an immutable copy of the session handed to observers and guards.
type Snapshot struct {
	State       State
	Token       string
	User        *models.User
	CurrentPlan *models.Plan
}

// Loading reports whether the startup reconciliation is still in flight.
// Guards must check this before anything else.
func (s Snapshot) Loading() bool {
	return s.State == StateBootstrapping
}

func (s Snapshot) IsAuthenticated() bool {
	return s.Token != "" && s.User != nil
}

func (s Snapshot) IsAdmin() bool {
	return s.IsAuthenticated() && s.User.IsAdmin()
}

// API is the backend surface the store needs. *api.Client satisfies it.
type API interface {
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
	Register(ctx context.Context, name, email, password, passwordConfirmation string) (*api.AuthResponse, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*api.ProfileResponse, error)
	UpdateProfile(ctx context.Context, update api.ProfileUpdate) (*models.User, error)
}

// Observer receives a snapshot after every state transition.
type Observer func(Snapshot)

// Store is the single owner of session state.
type Store struct {
	api    API
	tokens tokenstore.Repository
	log    logging.Logger

	mu           sync.Mutex
	state        State
	token        string
	user         *models.User
	plan         *models.Plan
	bootstrapped bool

	// gen increments on every auth mutation and every profile fetch start;
	// a fetched profile commits only if its generation is still current, so
	// a slow response can never overwrite newer state.
	gen uint64

	nextObserverID int
	observers      map[int]Observer
}

func New(apiClient API, tokens tokenstore.Repository, log logging.Logger) *Store {
	if log == nil {
		log = logging.NewConsoleLogger(nil, "info")
	}
	return &Store{
		api:       apiClient,
		tokens:    tokens,
		log:       log.With("component", "session"),
		state:     StateBootstrapping,
		observers: make(map[int]Observer),
	}
}

// SetAPI injects the backend client after construction. The store is the
/// client's token source, so the two are built in sequence: store first,
// client second, then this call closes the loop. Must be called before any
// operation that talks to the backend.
func (s *Store) SetAPI(apiClient API) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.api = apiClient
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{State: s.state, Token: s.token, User: s.user, CurrentPlan: s.plan}
}

// Token implements api.TokenSource. It is read fresh on every request and
// never cached by callers.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Subscribe registers an observer for session changes and returns its
// unsubscribe function. The observer is not called with the current state.
func (s *Store) Subscribe(fn Observer) func() {
	s.mu.Lock()
	id := s.nextObserverID
	s.nextObserverID++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	snap := s.snapshotLocked()
	fns := make([]Observer, 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// Bootstrap reconciles the durable token with live server state. It runs its
// work once; later calls return immediately. The session stays in
// StateBootstrapping until this resolves, which is what guards gate on.
func (s *Store) Bootstrap(ctx context.Context) error {
	s.mu.Lock()
	if s.bootstrapped {
		s.mu.Unlock()
		return nil
	}
	s.bootstrapped = true

	stored, err := s.tokens.Get(ctx)
	if err != nil {
		// unreadable storage is treated like an absent token
		s.log.Error(ctx, "stored token read failed", "error", err)
		stored = ""
	}
	if stored == "" {
		s.state = StateAnonymous
		s.mu.Unlock()
		s.notify()
		return nil
	}

	s.token = stored
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	profile, err := s.api.Profile(ctx)
	if err != nil {
		// any failure here means the token cannot be trusted
		s.log.Warn(ctx, "bootstrap profile fetch failed, clearing session", "error", err)
		s.teardown(ctx)
		return nil
	}

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return nil
	}
	s.state = StateAuthenticated
	s.user = &profile.User
	s.plan = profile.CurrentPlan
	s.mu.Unlock()
	s.notify()
	return nil
}

// Login exchanges credentials for a token. On failure the session is left
// untouched and the server's message is returned. Never retried here.
func (s *Store) Login(ctx context.Context, email, password string) error {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("%s", api.ErrorMessage(err))
	}
	s.commitAuth(ctx, resp.AccessToken, &resp.User)

	// populate the current plan; a failure keeps the session authenticated
	if err := s.RefreshProfile(ctx); err != nil {
		s.log.Warn(ctx, "profile refresh after login failed", "error", err)
	}
	return nil
}

// Register creates an account and signs in. Validation (uniqueness, password
// rules) is the server's job; its message is surfaced verbatim.
func (s *Store) Register(ctx context.Context, name, email, password, passwordConfirmation string) error {
	resp, err := s.api.Register(ctx, name, email, password, passwordConfirmation)
	if err != nil {
		return fmt.Errorf("%s", api.ErrorMessage(err))
	}
	s.commitAuth(ctx, resp.AccessToken, &resp.User)

	if err := s.RefreshProfile(ctx); err != nil {
		s.log.Warn(ctx, "profile refresh after register failed", "error", err)
	}
	return nil
}

// Logout notifies the server best-effort and always tears the local session
// down, whatever the server call's outcome.
func (s *Store) Logout(ctx context.Context) {
	if s.Token() != "" {
		if err := s.api.Logout(ctx); err != nil {
			s.log.Warn(ctx, "server logout failed", "error", err)
		}
	}
	s.teardown(ctx)
}

// HandleUnauthorized is wired as the adapter's 401 hook: a 401 on any
// authenticated call means the token is dead server-side, so the local
// session is torn down unconditionally.
func (s *Store) HandleUnauthorized() {
	s.mu.Lock()
	active := s.token != ""
	s.mu.Unlock()
	if active {
		s.teardown(context.Background())
	}
}

// RefreshProfile re-fetches user and plan if a token is present. Unlike
// Bootstrap, a failure here does not log the user out; the previous snapshot
// is kept and the error is returned for the caller to surface. An actual 401
// still tears the session down through the adapter hook.
func (s *Store) RefreshProfile(ctx context.Context) error {
	s.mu.Lock()
	if s.token == "" {
		s.mu.Unlock()
		return common.ErrNotAuthenticated
	}
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	profile, err := s.api.Profile(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.gen != gen {
		// superseded by a newer fetch or auth mutation
		s.mu.Unlock()
		return nil
	}
	s.user = &profile.User
	s.plan = profile.CurrentPlan
	s.mu.Unlock()
	s.notify()
	return nil
}

// UpdateProfile saves account changes and mirrors the returned user into the
// session on success.
func (s *Store) UpdateProfile(ctx context.Context, update api.ProfileUpdate) error {
	s.mu.Lock()
	if s.token == "" {
		s.mu.Unlock()
		return common.ErrNotAuthenticated
	}
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	user, err := s.api.UpdateProfile(ctx, update)
	if err != nil {
		return fmt.Errorf("%s", api.ErrorMessage(err))
	}

	s.mu.Lock()
	if s.gen == gen {
		s.user = user
	}
	s.mu.Unlock()
	s.notify()
	return nil
}

// SetAuthFromOAuth completes the external OAuth redirect flow with a
// token/user pair decoded out-of-band. Malformed payloads are rejected
// before any state is touched.
func (s *Store) SetAuthFromOAuth(ctx context.Context, token string, user *models.User) error {
	if token == "" || user == nil || user.ID == 0 || user.Email == "" {
		return common.ErrInvalidAuthPayload
	}
	s.commitAuth(ctx, token, user)
	return nil
}

// commitAuth transitions to Authenticated and persists the token.
func (s *Store) commitAuth(ctx context.Context, token string, user *models.User) {
	s.mu.Lock()
	s.gen++
	s.state = StateAuthenticated
	s.bootstrapped = true
	s.token = token
	s.user = user
	s.plan = user.CurrentPlan
	s.mu.Unlock()

	if err := s.tokens.Set(ctx, token); err != nil {
		s.log.Error(ctx, "token persist failed", "error", err)
	}
	s.notify()
}

// teardown resets the session to Anonymous and clears the stored token.
// This is the guaranteed path shared by logout, bootstrap failure, and 401.
func (s *Store) teardown(ctx context.Context) {
	s.mu.Lock()
	s.gen++
	s.state = StateAnonymous
	s.bootstrapped = true
	s.token = ""
	s.user = nil
	s.plan = nil
	s.mu.Unlock()

	if err := s.tokens.Clear(ctx); err != nil {
		s.log.Error(ctx, "stored token clear failed", "error", err)
	}
	s.notify()
}
