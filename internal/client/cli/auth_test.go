package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stay03/transcribeThis/internal/client/api"
	"github.com/Stay03/transcribeThis/internal/client/models"
	"github.com/Stay03/transcribeThis/internal/client/session"
	"github.com/Stay03/transcribeThis/internal/logging"
)

type fakeSession struct {
	snap session.Snapshot

	loginEmail    string
	loginPassword string
	loginErr      error

	registerArgs []string
	registerErr  error

	loggedOut    bool
	refreshCalls int
	updates      []api.ProfileUpdate

	oauthToken string
	oauthUser  *models.User
	oauthErr   error

	observers []session.Observer
}

// setSnap replaces the current snapshot and fans it out to observers, the way
// the real store notifies after every transition.
func (f *fakeSession) setSnap(snap session.Snapshot) {
	f.snap = snap
	for _, fn := range f.observers {
		fn(snap)
	}
}

func (f *fakeSession) Subscribe(fn session.Observer) func() {
	f.observers = append(f.observers, fn)
	return func() {}
}

func (f *fakeSession) Bootstrap(ctx context.Context) error { return nil }
func (f *fakeSession) Snapshot() session.Snapshot          { return f.snap }
func (f *fakeSession) Login(ctx context.Context, email, password string) error {
	f.loginEmail = email
	f.loginPassword = password
	if f.loginErr != nil {
		return f.loginErr
	}
	f.setSnap(session.Snapshot{
		State: session.StateAuthenticated,
		Token: "t",
		User:  &models.User{ID: 1, Email: email, Role: models.RoleUser},
	})
	return nil
}
func (f *fakeSession) Register(ctx context.Context, name, email, password, confirmation string) error {
	f.registerArgs = []string{name, email, password, confirmation}
	return f.registerErr
}
func (f *fakeSession) Logout(ctx context.Context) {
	f.loggedOut = true
	f.setSnap(session.Snapshot{State: session.StateAnonymous})
}
func (f *fakeSession) RefreshProfile(ctx context.Context) error { f.refreshCalls++; return nil }
func (f *fakeSession) UpdateProfile(ctx context.Context, update api.ProfileUpdate) error {
	f.updates = append(f.updates, update)
	return nil
}
func (f *fakeSession) SetAuthFromOAuth(ctx context.Context, token string, user *models.User) error {
	f.oauthToken = token
	f.oauthUser = user
	return f.oauthErr
}

func anonymousSnap() session.Snapshot {
	return session.Snapshot{State: session.StateAnonymous}
}

func authedSnap(role string) session.Snapshot {
	return session.Snapshot{
		State: session.StateAuthenticated,
		Token: "t",
		User:  &models.User{ID: 1, Email: "ada@example.com", Role: role},
	}
}

func newTestApp(sess sessionService, input string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		session: sess,
		log:     logging.NewConsoleLogger(&out, "error"),
		reader:  bufio.NewReader(strings.NewReader(input)),
		out:     &out,
	}, &out
}

func stubPassword(t *testing.T, passwords ...string) {
	t.Helper()
	orig := getPassword
	t.Cleanup(func() { getPassword = orig })
	i := 0
	getPassword = func(_ io.Writer, _ string) ([]byte, error) {
		if i >= len(passwords) {
			return nil, errors.New("no more passwords")
		}
		pw := passwords[i]
		i++
		return []byte(pw), nil
	}
}

func TestLogin_PromptsAndAuthenticates(t *testing.T) {
	stubPassword(t, "secret123")

	sess := &fakeSession{snap: anonymousSnap()}
	app, out := newTestApp(sess, "ada@example.com\n")

	require.NoError(t, app.Login(context.Background()))

	assert.Equal(t, "ada@example.com", sess.loginEmail)
	assert.Equal(t, "secret123", sess.loginPassword)
	assert.Contains(t, out.String(), "Signed in.")
}

func TestLogin_FailureReturnsServerMessage(t *testing.T) {
	stubPassword(t, "wrong")

	sess := &fakeSession{snap: anonymousSnap(), loginErr: errors.New("Invalid credentials")}
	app, _ := newTestApp(sess, "ada@example.com\n")

	err := app.Login(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())
}

func TestLogin_SkippedWhenAlreadyAuthenticated(t *testing.T) {
	sess := &fakeSession{snap: authedSnap(models.RoleUser)}
	app, out := newTestApp(sess, "")

	require.NoError(t, app.Login(context.Background()))

	assert.Empty(t, sess.loginEmail, "no login attempt expected")
	assert.Contains(t, out.String(), "Already signed in")
}

func TestRegister_PassesAllFields(t *testing.T) {
	stubPassword(t, "secret123", "secret123")

	sess := &fakeSession{snap: anonymousSnap()}
	app, out := newTestApp(sess, "Ada\nada@example.com\n")

	require.NoError(t, app.Register(context.Background()))

	require.Len(t, sess.registerArgs, 4)
	assert.Equal(t, []string{"Ada", "ada@example.com", "secret123", "secret123"}, sess.registerArgs)
	assert.Contains(t, out.String(), "Account created")
}

func TestLogout_ClearsSession(t *testing.T) {
	sess := &fakeSession{snap: authedSnap(models.RoleUser)}
	app, out := newTestApp(sess, "")

	require.NoError(t, app.Logout(context.Background()))

	assert.True(t, sess.loggedOut)
	assert.Contains(t, out.String(), "Signed out.")
}

func TestAdmin_GatedByRole(t *testing.T) {
	tests := []struct {
		name string
		snap session.Snapshot
		want string
	}{
		{"anonymous goes to login", anonymousSnap(), "You need to log in first."},
		{"regular user is refused", authedSnap(models.RoleUser), "Admin access required."},
		{"loading asks to wait", session.Snapshot{State: session.StateBootstrapping}, "still loading"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := &fakeSession{snap: tt.snap}
			app, out := newTestApp(sess, "")

			require.NoError(t, app.Admin(context.Background(), []string{"dashboard"}))
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestAdmin_NoArgsPrintsUsageForAdmin(t *testing.T) {
	sess := &fakeSession{snap: authedSnap(models.RoleAdmin)}
	app, out := newTestApp(sess, "")

	require.NoError(t, app.Admin(context.Background(), nil))
	assert.Contains(t, out.String(), "Admin commands:")
}

func TestEditProfile_EmptyInputIsNoop(t *testing.T) {
	sess := &fakeSession{snap: authedSnap(models.RoleUser)}
	app, out := newTestApp(sess, "\n\n")

	require.NoError(t, app.EditProfile(context.Background()))

	assert.Empty(t, sess.updates)
	assert.Contains(t, out.String(), "Nothing to change.")
}

func TestEditProfile_SendsUpdate(t *testing.T) {
	sess := &fakeSession{snap: authedSnap(models.RoleUser)}
	app, out := newTestApp(sess, "Ada Lovelace\n\n")

	require.NoError(t, app.EditProfile(context.Background()))

	require.Len(t, sess.updates, 1)
	assert.Equal(t, "Ada Lovelace", sess.updates[0].Name)
	assert.Contains(t, out.String(), "Profile updated.")
}
