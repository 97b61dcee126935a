// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique constraint violation
	// (duplicate sentence pair or duplicate user name).
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidArgument indicates malformed or empty caller input.
	ErrInvalidArgument = errors.New("invalid argument")
)
