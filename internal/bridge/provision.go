package bridge

import (
	"errors"
	"fmt"
	"sync"

	"github.com/admidio-bridge/admidio-bridge/internal/db/models"
	"github.com/admidio-bridge/admidio-bridge/internal/hoststore"
	"github.com/admidio-bridge/admidio-bridge/internal/uniuri"
)

// HostStore is the slice of the host identity store the provisioner needs.
// Satisfied by hoststore.Store.
type HostStore interface {
	FindUserByUsername(username string) (*models.User, error)
	CreateUser(username, displayName, email, hashedSecret string) (*models.User, error)
	UpdateProfile(userID uint64, displayName, email string) error
	ListGroups() ([]models.Group, error)
	SetUserGroups(userID uint64, groupIDs []uint) error
}

// userLock is one per-username mutex with a waiter count, so the lock table
// can shrink again once the last concurrent login for a username finished.
type userLock struct {
	mu   sync.Mutex
	refs int
}

// Provisioner creates host users just in time and keeps their group
// memberships synchronized with the external role assignments.
type Provisioner struct {
	store HostStore

	// newSecret issues the placeholder secret for JIT-created users.
	newSecret func() string

	mu    sync.Mutex
	locks map[string]*userLock
}

// NewProvisioner creates a Provisioner on top of the given host store.
func NewProvisioner(store HostStore) *Provisioner {
	return &Provisioner{
		store:     store,
		newSecret: func() string { return uniuri.NewLen(uniuri.SecretLen) },
		locks:     make(map[string]*userLock),
	}
}

// acquire takes the per-username mutex, creating it on first use. Serializes
// lookup-then-create and group reconciliation for one username so duplicate
// rapid logins cannot interleave.
func (p *Provisioner) acquire(username string) *userLock {
	p.mu.Lock()

	l, ok := p.locks[username]
	if !ok {
		l = &userLock{}
		p.locks[username] = l
	}

	l.refs++
	p.mu.Unlock()

	l.mu.Lock()

	return l
}

// release unlocks the per-username mutex and drops it from the table once no
// other login for that username is holding or waiting on it.
func (p *Provisioner) release(username string, l *userLock) {
	l.mu.Unlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	l.refs--
	if l.refs == 0 {
		delete(p.locks, username)
	}
}

// EnsureUser returns the host user for the given external username, creating
// it when absent. Idempotent: an existing user keeps its id and stored
// secret; only display name and email are refreshed from the current
// external profile. A create losing the race against a concurrent request
// re-fetches the winner's record instead of failing.
func (p *Provisioner) EnsureUser(username string, profile Profile) (*models.User, error) {
	l := p.acquire(username)
	defer p.release(username, l)

	user, err := p.store.FindUserByUsername(username)
	if err == nil {
		if errUpdate := p.store.UpdateProfile(user.ID, profile.DisplayName(), profile.Email); errUpdate != nil {
			return nil, fmt.Errorf("failed to refresh host user profile: %w", errUpdate)
		}

		user.DisplayName = profile.DisplayName()
		user.Email = profile.Email

		return user, nil
	}

	if !errors.Is(err, hoststore.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up host user: %w", err)
	}

	created, errCreate := p.store.CreateUser(
		username,
		profile.DisplayName(),
		profile.Email,
		models.HashPassword(p.newSecret()),
	)
	if errCreate == nil {
		return created, nil
	}

	// Lost a create race against a concurrent request: the row exists now,
	// so the existing record is the answer.
	existing, errRefetch := p.store.FindUserByUsername(username)
	if errRefetch != nil {
		return nil, errors.Join(
			fmt.Errorf("failed to create host user: %w", errCreate),
			errRefetch,
		)
	}

	return existing, nil
}

// SyncGroups replaces the user's host group memberships with exactly the
// desired set. Full reconciliation: revoked external roles are reflected by
// removal. Safe to retry. Serialized per username so two concurrent logins
// cannot interleave their reconciliation transactions; the final set always
// reflects one consistent read of the external roles.
func (p *Provisioner) SyncGroups(user *models.User, desiredGroupIDs []uint) error {
	l := p.acquire(user.Username)
	defer p.release(user.Username, l)

	if err := p.store.SetUserGroups(user.ID, desiredGroupIDs); err != nil {
		return fmt.Errorf("failed to sync groups for %q: %w", user.Username, err)
	}

	return nil
}
