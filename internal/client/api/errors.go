package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies an HTTP-level failure. The set is closed: every
// non-2xx response maps to exactly one kind.
type ErrorKind string

const (
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindNotFound     ErrorKind = "not_found"
	KindValidation   ErrorKind = "validation"
	KindRateLimit    ErrorKind = "rate_limit"
	KindServer       ErrorKind = "server_error"
	KindGeneric      ErrorKind = "generic"
)

// Default user-facing messages per kind, used when the response body carries
// no error/message field of its own.
var defaultMessages = map[ErrorKind]string{
	KindUnauthorized: "Your session has expired. Please log in again.",
	KindForbidden:    "You do not have permission to perform this action.",
	KindNotFound:     "The requested resource was not found.",
	KindValidation:   "Please check your input and try again.",
	KindRateLimit:    "Too many requests. Please wait a moment and try again.",
	KindServer:       "Network error. Please check your connection and try again.",
	KindGeneric:      "Something went wrong. Please try again.",
}

// APIError is a classified HTTP failure. Transport-level problems (connection
// refused, malformed body) are deliberately NOT APIErrors; they propagate as
// plain wrapped errors so callers can tell the two apart.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// AsAPIError unwraps err into an *APIError if one is in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnauthorized reports whether err is a classified 401.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Kind == KindUnauthorized
}

// ErrorMessage returns the human-readable message for any core error:
// the classified message for APIErrors, err.Error() otherwise.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Message
	}
	return err.Error()
}

// errorEnvelope is the error body shape the server uses. Either field may
// carry the message; "error" wins when both are present.
type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (env errorEnvelope) message() string {
	if env.Error != "" {
		return env.Error
	}
	return env.Message
}

// classify maps a status code and decoded error body to an APIError.
// The mapping is total: any unlisted status becomes KindGeneric.
func classify(status int, env errorEnvelope) *APIError {
	var kind ErrorKind
	switch {
	case status == http.StatusUnauthorized:
		kind = KindUnauthorized
	case status == http.StatusForbidden:
		kind = KindForbidden
	case status == http.StatusNotFound:
		kind = KindNotFound
	case status == http.StatusUnprocessableEntity:
		kind = KindValidation
	case status == http.StatusTooManyRequests:
		kind = KindRateLimit
	case status >= 500:
		kind = KindServer
	default:
		kind = KindGeneric
	}

	msg := env.message()
	if msg == "" {
		msg = defaultMessages[kind]
	}
	return &APIError{Kind: kind, Status: status, Message: msg}
}

// transportError wraps an unclassified failure (network, body decode) so the
// path that failed is visible in logs.
func transportError(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
