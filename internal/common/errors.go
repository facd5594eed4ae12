// Package common defines shared constants and sentinel errors used across
// the client and server layers of the invoice tracker. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("server unavailable")

	// ErrRejected marks a business-rule rejection returned by the remote
	// service (e.g. non-positive payment amount, unknown invoice).
	ErrRejected = errors.New("rejected by server")

	// ErrValidation marks input rejected locally before any network call.
	ErrValidation = errors.New("validation error")

	// Auth/token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
