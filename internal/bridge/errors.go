package bridge

import "errors"

var (
	// ErrEmptySecret is returned when a login attempt carries an empty secret.
	// Rejected before any store access.
	ErrEmptySecret = errors.New("empty password is not allowed")

	// ErrMissingEmail is returned when the external profile has no email
	// address. Host systems require one, so authentication fails with an
	// operator-actionable message instead of a generic credential error.
	ErrMissingEmail = errors.New("external profile has no email address; add one in the membership store's profile administration")

	// ErrInvalidEmail is returned when the external profile's email address
	// is present but not a valid address.
	ErrInvalidEmail = errors.New("external profile email address is not valid")

	// ErrPartialProvisioning is returned when the host user was created but
	// a later provisioning step (group synchronization) failed. Never masked
	// as success; the sync is safe to retry.
	ErrPartialProvisioning = errors.New("host user provisioned but group synchronization failed")
)

// ErrorKind classifies a failed authentication or provisioning attempt in
// the response wire contract.
type ErrorKind string

// Error kinds carried in AuthResponse.
const (
	KindNone                ErrorKind = ""
	KindEmptySecret         ErrorKind = "EmptySecret"
	KindUnknownUser         ErrorKind = "UnknownUser"
	KindBadPassword         ErrorKind = "BadPassword"
	KindMissingProfileField ErrorKind = "MissingProfileField"
	KindStoreUnavailable    ErrorKind = "StoreUnavailable"
	KindPartialProvisioning ErrorKind = "PartialProvisioning"
)
