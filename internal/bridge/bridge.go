package bridge

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/admidio-bridge/admidio-bridge/internal/extstore"
)

// Messages returned to the dispatcher. Unknown user and wrong password share
// one generic message so the response content leaks nothing; the two cases
// stay distinguishable through ErrorKind and the logs.
const (
	msgEmptySecret        = "empty password is not allowed"
	msgInvalidCredentials = "invalid username or password"
	msgStoreUnavailable   = "authentication service is currently unavailable"
)

// Status of an authentication attempt.
type Status string

// Authentication attempt outcomes.
const (
	StatusSuccess Status = "SUCCESS"
	StatusFailure Status = "FAILURE"
)

// Credentials is one submitted login attempt. Never persisted; it exists
// only for the duration of a single Authenticate call.
type Credentials struct {
	Username string `json:"username" form:"username"`
	Secret   string `json:"password" form:"password"`
}

// Response is the sole wire contract with the dispatcher.
type Response struct {
	Status      Status    `json:"status"`
	ErrorKind   ErrorKind `json:"errorKind,omitempty"`
	Message     string    `json:"message,omitempty"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"displayName,omitempty"`
	// Type tags this bridge as the authenticator of record so the
	// dispatcher can route the post-login sync back to it.
	Type string `json:"responseType"`
}

// ExternalStore is the read-only slice of the membership store the bridge
// needs. Satisfied by extstore.Client.
type ExternalStore interface {
	FindUserByUsername(username string) (*extstore.UserRecord, error)
	ProfileFields(userID int64) (map[extstore.FieldKey]string, error)
	RoleNames(username string) ([]string, error)
}

// Bridge verifies credentials against the external membership store and
// keeps host users and group memberships in sync with it.
type Bridge struct {
	ext          ExternalStore
	verifier     *Verifier
	provisioner  *Provisioner
	responseType string
}

// New creates an authentication bridge.
func New(ext ExternalStore, verifier *Verifier, provisioner *Provisioner, responseType string) *Bridge {
	return &Bridge{
		ext:          ext,
		verifier:     verifier,
		provisioner:  provisioner,
		responseType: responseType,
	}
}

// fail builds a FAILURE response with the given kind and dispatcher message.
func (b *Bridge) fail(kind ErrorKind, message string) Response {
	return Response{
		Status:    StatusFailure,
		ErrorKind: kind,
		Message:   message,
		Type:      b.responseType,
	}
}

// Authenticate verifies one credential against the external membership store
// and returns a structured response. Authentication failures never surface
// as Go errors; every terminal state maps to exactly one Response.
func (b *Bridge) Authenticate(creds Credentials) Response {
	// Input error: rejected before any store access.
	if creds.Secret == "" {
		return b.fail(KindEmptySecret, msgEmptySecret)
	}

	record, err := b.ext.FindUserByUsername(creds.Username)

	switch {
	case errors.Is(err, extstore.ErrUserNotFound):
		// Hash the submitted secret anyway so the response latency matches
		// a wrong-password attempt (user enumeration resistance).
		b.verifier.ConsumeDummy(creds.Secret)

		log.Info().Str("username", creds.Username).Msg("authentication failed: unknown user")

		return b.fail(KindUnknownUser, msgInvalidCredentials)
	case err != nil:
		log.Error().Err(err).Msg("membership store lookup failed")

		return b.fail(KindStoreUnavailable, msgStoreUnavailable)
	}

	if !b.verifier.Verify(creds.Secret, record.PasswordHash) {
		log.Info().Str("username", creds.Username).Msg("authentication failed: invalid password")

		return b.fail(KindBadPassword, msgInvalidCredentials)
	}

	fields, err := b.ext.ProfileFields(record.ID)
	if err != nil {
		log.Error().Err(err).Msg("membership store profile lookup failed")

		return b.fail(KindStoreUnavailable, msgStoreUnavailable)
	}

	profile, err := BuildProfile(fields)
	if err != nil {
		log.Warn().Err(err).Str("username", creds.Username).Msg("authentication failed: incomplete external profile")

		return b.fail(KindMissingProfileField, err.Error())
	}

	return Response{
		Status:      StatusSuccess,
		Email:       profile.Email,
		DisplayName: profile.DisplayName(),
		Type:        b.responseType,
	}
}

// SyncFailure maps a SyncAuthorization error onto the response wire contract
// so the dispatcher receives the same structure for sync failures as for
// authentication failures.
func (b *Bridge) SyncFailure(err error) Response {
	if errors.Is(err, ErrPartialProvisioning) {
		return b.fail(KindPartialProvisioning, ErrPartialProvisioning.Error())
	}

	return b.fail(KindStoreUnavailable, msgStoreUnavailable)
}

// SyncAuthorization provisions the host user and reconciles its group
// memberships from the user's current external roles. Invoked only after a
// successful authentication; idempotent and safe to retry. Infrastructure
// errors are returned to the dispatcher, never swallowed.
func (b *Bridge) SyncAuthorization(username string) error {
	record, err := b.ext.FindUserByUsername(username)
	if err != nil {
		return fmt.Errorf("failed to re-read external user: %w", err)
	}

	fields, err := b.ext.ProfileFields(record.ID)
	if err != nil {
		return fmt.Errorf("failed to re-read external profile: %w", err)
	}

	profile, err := BuildProfile(fields)
	if err != nil {
		return fmt.Errorf("cannot provision host user: %w", err)
	}

	roleNames, err := b.ext.RoleNames(username)
	if err != nil {
		return fmt.Errorf("failed to read external roles: %w", err)
	}

	groups, err := b.provisioner.store.ListGroups()
	if err != nil {
		return fmt.Errorf("failed to list host groups: %w", err)
	}

	user, err := b.provisioner.EnsureUser(username, profile)
	if err != nil {
		return fmt.Errorf("failed to provision host user: %w", err)
	}

	if err := b.provisioner.SyncGroups(user, MapGroups(roleNames, groups)); err != nil {
		// The user record exists but its memberships do not reflect the
		// external roles yet. Reported distinctly so callers can retry.
		return fmt.Errorf("%w: %v", ErrPartialProvisioning, err)
	}

	log.Debug().Str("username", username).Int("roles", len(roleNames)).Msg("authorization synchronized")

	return nil
}
