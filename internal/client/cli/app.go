package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/Stay03/transcribeThis/internal/client/api"
	"github.com/Stay03/transcribeThis/internal/client/config"
	"github.com/Stay03/transcribeThis/internal/client/models"
	"github.com/Stay03/transcribeThis/internal/client/resources"
	"github.com/Stay03/transcribeThis/internal/client/session"
	"github.com/Stay03/transcribeThis/internal/client/tokenstore"
	"github.com/Stay03/transcribeThis/internal/logging"
)

// sessionService is the session surface the CLI needs. *session.Store
// satisfies it; tests can provide a lightweight stub.
type sessionService interface {
	Bootstrap(ctx context.Context) error
	Snapshot() session.Snapshot
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, name, email, password, passwordConfirmation string) error
	Logout(ctx context.Context)
	RefreshProfile(ctx context.Context) error
	UpdateProfile(ctx context.Context, update api.ProfileUpdate) error
	SetAuthFromOAuth(ctx context.Context, token string, user *models.User) error
	Subscribe(fn session.Observer) func()
}

type App struct {
	config  *config.Config
	session sessionService
	api     *api.Client
	log     logging.Logger
	db      *sql.DB
	reader  *bufio.Reader
	out     io.Writer

	transcriptions *resources.Transcriptions
	billing        *resources.Billing
	account        *resources.Account
	dashboard      *resources.Dashboard
	adminUsers     *resources.AdminUsers
	adminPlans     *resources.AdminPlans
	adminTrans     *resources.AdminTranscriptions
	activity       *resources.Activity
	settings       *resources.Settings
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	log := logging.NewConsoleLogger(os.Stderr, c.LogLevel)

	db, err := tokenstore.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	store := session.New(nil, tokenstore.NewSQLiteRepository(db), log)

	apiClient, err := api.New(api.Options{
		BaseURL:        c.APIBaseURL,
		Tokens:         store,
		Logger:         log,
		RequestTimeout: c.RequestTimeout,
		RetryAttempts:  c.RetryAttempts,
		OnUnauthorized: store.HandleUnauthorized,
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	store.SetAPI(apiClient)

	app := &App{
		config:  c,
		session: store,
		api:     apiClient,
		log:     log,
		db:      db,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,

		transcriptions: resources.NewTranscriptions(apiClient, 1, 10),
		billing:        resources.NewBilling(apiClient),
		account:        resources.NewAccount(apiClient),
		dashboard:      resources.NewDashboard(apiClient),
		adminUsers:     resources.NewAdminUsers(apiClient, api.ListFilters{PerPage: 20}),
		adminPlans:     resources.NewAdminPlans(apiClient, api.ListFilters{}),
		adminTrans:     resources.NewAdminTranscriptions(apiClient, api.ListFilters{PerPage: 20}),
		activity:       resources.NewActivity(apiClient, log),
		settings:       resources.NewSettings(apiClient),
	}
	return app, nil
}

// Run reconciles the stored session and drops into the REPL. It blocks until
// the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	if err := a.session.Bootstrap(ctx); err != nil {
		a.log.Warn(ctx, "session bootstrap failed", "error", err)
	}

	stop := a.startActivityWatcher(ctx)
	defer stop()

	fmt.Fprintln(a.out, "transcribeThis CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// startActivityWatcher keeps the online-user poller running exactly while the
// session belongs to an admin: it starts when an admin session appears (at
// bootstrap or after a later login) and cancels on logout or teardown. The
// returned stop function unsubscribes and kills any running poller.
func (a *App) startActivityWatcher(ctx context.Context) func() {
	var mu sync.Mutex
	var cancel context.CancelFunc

	apply := func(snap session.Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		switch {
		case snap.IsAdmin() && cancel == nil:
			var watchCtx context.Context
			watchCtx, cancel = context.WithCancel(ctx)
			go a.activity.Watch(watchCtx, a.config.ActivityRefreshInterval)
		case !snap.IsAdmin() && cancel != nil:
			cancel()
			cancel = nil
		}
	}

	unsubscribe := a.session.Subscribe(apply)
	apply(a.session.Snapshot())

	return func() {
		unsubscribe()
		mu.Lock()
		defer mu.Unlock()
		if cancel != nil {
			cancel()
			cancel = nil
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().IsAuthenticated()
}

func (a *App) isAdmin() bool {
	return a.session.Snapshot().IsAdmin()
}

func (a *App) getStatus() string {
	snap := a.session.Snapshot()
	if snap.Loading() {
		return "(loading)"
	}
	if !snap.IsAuthenticated() {
		return ""
	}
	s := snap.User.Email
	if snap.CurrentPlan != nil {
		s += " " + snap.CurrentPlan.Name
	}
	if snap.IsAdmin() {
		s += " admin"
	}
	return "(" + s + ")"
}
