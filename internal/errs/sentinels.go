// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across storage/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates failed authentication/authorization.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAlreadyExists indicates a uniqueness violation (e.g., username taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnreachable indicates the remote API could not be reached at the
	// transport level (distinct from an application error it returned).
	ErrUnreachable = errors.New("network unreachable")
)
