package extstore

import "errors"

var (
	// ErrUserNotFound is returned when no user with the given login name
	// exists in the membership store.
	ErrUserNotFound = errors.New("user not found in membership store")

	// ErrStoreUnavailable is returned when the membership store cannot be
	// queried. Connectivity problems are never reported as empty results.
	ErrStoreUnavailable = errors.New("membership store unavailable")
)
