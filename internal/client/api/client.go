// Package api is the single point of outbound communication with the
// transcribeThis backend. It attaches the bearer token, serializes JSON and
// multipart bodies, and maps HTTP status codes to a closed error taxonomy.
// It carries no business logic beyond that.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/Stay03/transcribeThis/internal/common"
	"github.com/Stay03/transcribeThis/internal/logging"
)

// TokenSource yields the current bearer token, or "" when anonymous.
//
// The client calls it on every attempt and never caches the result: the token
// can change between calls (login, logout, forced teardown).
type TokenSource interface {
	Token() string
}

// Options configures the API client.
type Options struct {
	BaseURL string
	Tokens  TokenSource
	Logger  logging.Logger

	// HTTPClient overrides the default transport; mainly for tests.
	HTTPClient *http.Client

	// RequestTimeout bounds a single request (default 30s).
	RequestTimeout time.Duration

	// RetryAttempts is the number of retries after the first attempt.
	// Only transport failures and 5xx responses are retried; 4xx never is.
	RetryAttempts int

	// OnUnauthorized runs after any call is classified as a 401. This is the
	// one place the adapter reaches outside its own layer: the session owner
	// uses it to clear the stored token and route back to login.
	OnUnauthorized func()
}

// Client performs HTTP calls against the backend REST API.
type Client struct {
	baseURL        string
	tokens         TokenSource
	httpClient     *http.Client
	log            logging.Logger
	retryAttempts  int
	onUnauthorized func()
}

const defaultRequestTimeout = 30 * time.Second

// retryBase is the initial backoff step between attempts.
const retryBase = 250 * time.Millisecond

func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("api: base URL is required")
	}
	if opts.Tokens == nil {
		return nil, fmt.Errorf("api: token source is required")
	}

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	log := opts.Logger
	if log == nil {
		log = logging.NewConsoleLogger(io.Discard, "info")
	}

	retryAttempts := opts.RetryAttempts
	if retryAttempts < 0 {
		retryAttempts = 0
	}

	return &Client{
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		tokens:         opts.Tokens,
		httpClient:     httpClient,
		log:            log,
		retryAttempts:  retryAttempts,
		onUnauthorized: opts.OnUnauthorized,
	}, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) setCommonHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if token := c.tokens.Token(); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
}

// do runs one JSON request with retry. body (if non-nil) is marshalled once
// and replayed per attempt; out (if non-nil) receives the decoded response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	op := method + " " + path

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return transportError(op, err)
		}
	}

	backoff := retry.WithMaxRetries(uint64(c.retryAttempts), retry.NewExponential(retryBase))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
		if err != nil {
			return transportError(op, err)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		c.setCommonHeaders(req)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			// network failures are retryable
			return retry.RetryableError(transportError(op, err))
		}
		return c.handleResponse(op, resp, out, true)
	})

	if err != nil {
		c.log.Debug(ctx, "request failed", "op", op, "error", err)
		c.noteUnauthorized(err)
	}
	return err
}

// doMultipart runs a single multipart request without retry: the body is a
// one-shot stream and the endpoint (audio upload) is not idempotent.
func (c *Client) doMultipart(ctx context.Context, path string, build func(*multipart.Writer) error, out any) error {
	op := http.MethodPost + " " + path

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := build(mw); err != nil {
		return transportError(op, err)
	}
	if err := mw.Close(); err != nil {
		return transportError(op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), &buf)
	if err != nil {
		return transportError(op, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.setCommonHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(op, err)
	}

	if err := c.handleResponse(op, resp, out, false); err != nil {
		c.log.Debug(ctx, "upload failed", "op", op, "error", err)
		c.noteUnauthorized(err)
		return err
	}
	return nil
}

// handleResponse classifies non-2xx statuses and decodes successful bodies.
// When retrying is true the caller is do's retry loop, and 5xx results (plus
// body-read failures) come back wrapped as retryable so the loop takes
// another pass; single-shot callers get the bare classified error. All 4xx
// are permanent either way.
func (c *Client) handleResponse(op string, resp *http.Response, out any, retrying bool) error {
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if retrying {
			return retry.RetryableError(transportError(op, err))
		}
		return transportError(op, err)
	}

	if resp.StatusCode >= 400 {
		var env errorEnvelope
		_ = json.Unmarshal(data, &env) // a non-JSON error body keeps the default message
		apiErr := classify(resp.StatusCode, env)
		if apiErr.Kind == KindServer && retrying {
			return retry.RetryableError(apiErr)
		}
		return apiErr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return transportError(op, err)
		}
	}
	return nil
}

func (c *Client) noteUnauthorized(err error) {
	if c.onUnauthorized != nil && IsUnauthorized(err) {
		c.onUnauthorized()
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
