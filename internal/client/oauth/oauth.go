// Package oauth runs the loopback callback endpoint for the Google sign-in
// handoff. The server redirects the browser back to this process with a token
// and a base64-encoded user payload; the first callback wins and the caller
// shuts the listener down.
package oauth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Stay03/transcribeThis/internal/client/models"
	"github.com/Stay03/transcribeThis/internal/common"
	"github.com/Stay03/transcribeThis/internal/logging"
)

// Result is the outcome of one OAuth round-trip.
type Result struct {
	Token string
	User  *models.User
	Err   error
}

// Server is a one-shot loopback HTTP listener for the OAuth callback.
type Server struct {
	addr string
	log  logging.Logger

	httpServer *http.Server
	listener   net.Listener
	results    chan Result
	once       sync.Once
}

func NewServer(addr string, log logging.Logger) *Server {
	if addr == "" {
		addr = "127.0.0.1:0"
	}
	if log == nil {
		log = logging.NewConsoleLogger(nil, "info")
	}
	return &Server{
		addr:    addr,
		log:     log.With("component", "oauth"),
		results: make(chan Result, 1),
	}
}

// Start binds the listener and begins serving the callback routes. It returns
// the base URL the provider should redirect to, e.g. "http://127.0.0.1:53412".
func (s *Server) Start() (string, error) {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return "", fmt.Errorf("oauth: listen on %s: %w", s.addr, err)
	}
	s.listener = ln

	r := chi.NewRouter()
	r.Get("/auth/success", s.handleSuccess)
	r.Get("/auth/error", s.handleError)

	s.httpServer = &http.Server{Handler: r, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Error(context.Background(), "callback server stopped", "error", err)
		}
	}()

	return "http://" + ln.Addr().String(), nil
}

// Wait blocks until the browser hits a callback route or ctx expires.
func (s *Server) Wait(ctx context.Context) (*Result, error) {
	select {
	case res := <-s.results:
		if res.Err != nil {
			return nil, res.Err
		}
		return &res, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleSuccess(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	user, err := DecodeUserParam(r.URL.Query().Get("user"))
	if err == nil && (token == "" || user.ID == 0 || user.Email == "") {
		err = common.ErrInvalidAuthPayload
	}
	if err != nil {
		s.log.Warn(r.Context(), "rejected callback payload", "error", err)
		s.deliver(Result{Err: fmt.Errorf("oauth: %w", err)})
		renderPage(w, http.StatusBadRequest, "Sign-in failed", "The sign-in response was malformed. Return to the terminal and try again.")
		return
	}

	s.deliver(Result{Token: token, User: user})
	renderPage(w, http.StatusOK, "Signed in", "You are signed in. You can close this window and return to the terminal.")
}

func (s *Server) handleError(w http.ResponseWriter, r *http.Request) {
	msg := r.URL.Query().Get("message")
	if msg == "" {
		msg = "authentication was cancelled"
	}
	s.deliver(Result{Err: fmt.Errorf("oauth: %s", msg)})
	renderPage(w, http.StatusOK, "Sign-in failed", "Sign-in did not complete. Return to the terminal and try again.")
}

// deliver hands off the first result; late callbacks are dropped.
func (s *Server) deliver(res Result) {
	s.once.Do(func() { s.results <- res })
}

// DecodeUserParam decodes the base64-wrapped JSON user payload from the
// callback query string. Both padded and unpadded encodings are accepted.
func DecodeUserParam(raw string) (*models.User, error) {
	if raw == "" {
		return nil, common.ErrInvalidAuthPayload
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(raw)
	}
	if err != nil {
		return nil, fmt.Errorf("decode user payload: %w", err)
	}
	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("decode user payload: %w", err)
	}
	return &user, nil
}

func renderPage(w http.ResponseWriter, status int, title, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, "<!doctype html><html><head><title>%s</title></head><body><h1>%s</h1><p>%s</p></body></html>", title, title, body)
}
