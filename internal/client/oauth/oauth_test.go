package oauth

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stay03/transcribeThis/internal/client/models"
)

func encodeUser(t *testing.T, payload string) string {
	t.Helper()
	return base64.StdEncoding.EncodeToString([]byte(payload))
}

func TestDecodeUserParam(t *testing.T) {
	payload := `{"id":5,"name":"Ada","email":"ada@example.com","role":"user"}`

	user, err := DecodeUserParam(base64.StdEncoding.EncodeToString([]byte(payload)))
	require.NoError(t, err)
	assert.Equal(t, int64(5), user.ID)
	assert.Equal(t, "ada@example.com", user.Email)

	// unpadded variant
	user, err = DecodeUserParam(base64.RawStdEncoding.EncodeToString([]byte(payload)))
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)
}

func TestDecodeUserParamRejectsGarbage(t *testing.T) {
	cases := []string{
		"",
		"%%%not-base64%%%",
		base64.StdEncoding.EncodeToString([]byte("not json")),
	}
	for _, raw := range cases {
		_, err := DecodeUserParam(raw)
		assert.Error(t, err, "input %q", raw)
	}
}

func startServer(t *testing.T) (*Server, string) {
	t.Helper()
	srv := NewServer("127.0.0.1:0", nil)
	base, err := srv.Start()
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv, base
}

func TestCallbackSuccess(t *testing.T) {
	srv, base := startServer(t)

	q := url.Values{
		"token": {"oauth-token-123"},
		"user":  {encodeUser(t, `{"id":9,"name":"Ada","email":"ada@example.com","role":"admin"}`)},
	}
	resp, err := http.Get(base + "/auth/success?" + q.Encode())
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	res, err := srv.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "oauth-token-123", res.Token)
	require.NotNil(t, res.User)
	assert.Equal(t, models.RoleAdmin, res.User.Role)
}

func TestCallbackRejectsMissingToken(t *testing.T) {
	srv, base := startServer(t)

	q := url.Values{"user": {encodeUser(t, `{"id":9,"email":"ada@example.com"}`)}}
	resp, err := http.Get(base + "/auth/success?" + q.Encode())
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err = srv.Wait(ctx)
	assert.Error(t, err)
}

func TestCallbackError(t *testing.T) {
	srv, base := startServer(t)

	resp, err := http.Get(base + "/auth/error?message=access+denied")
	require.NoError(t, err)
	resp.Body.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err = srv.Wait(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestFirstCallbackWins(t *testing.T) {
	srv, base := startServer(t)

	q := url.Values{
		"token": {"first"},
		"user":  {encodeUser(t, `{"id":1,"email":"a@example.com"}`)},
	}
	resp, err := http.Get(base + "/auth/success?" + q.Encode())
	require.NoError(t, err)
	resp.Body.Close()

	q.Set("token", "second")
	resp, err = http.Get(base + "/auth/success?" + q.Encode())
	require.NoError(t, err)
	resp.Body.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	res, err := srv.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first", res.Token)
}
