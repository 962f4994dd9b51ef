package domain

import "errors"

var (
	// ErrValidation marks bad input: missing required option,
	// non-positive quantity, stock exceeded. The operation is not
	// attempted.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a missing or inactive product, or a missing
	// row on update.
	ErrNotFound = errors.New("not found")

	// ErrRemote marks a backend failure. Retryable at the caller's
	// discretion; local state is unchanged.
	ErrRemote = errors.New("remote store unavailable")

	// ErrAuthRequired marks a mutating operation attempted without a
	// resolved identity.
	ErrAuthRequired = errors.New("authentication required")
)
