// Package common defines shared constants and sentinel errors used across
// the transcribeThis client layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Session-level errors.
	ErrNotAuthenticated = errors.New("not authenticated")

	// OAuth completion errors (malformed redirect payload).
	ErrInvalidAuthPayload = errors.New("invalid authentication payload")
)
