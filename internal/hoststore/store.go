// Package hoststore implements the narrow slice of the host application's
// user and group persistence the bridge needs: user lookup and creation,
// group listing and full replacement of a user's group memberships.
package hoststore

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/admidio-bridge/admidio-bridge/internal/db/models"
)

var (
	// ErrUserNotFound is returned when no host user with the given username exists.
	ErrUserNotFound = errors.New("host user not found")

	// ErrUserExists is returned when creating a user whose username is
	// already taken, typically by a concurrent provisioning request.
	ErrUserExists = errors.New("host user already exists")
)

// Store provides the host identity store operations.
type Store struct {
	db *gorm.DB
}

// NewStore creates a host identity store accessor.
// The gorm connection must be opened with TranslateError enabled so unique
// constraint violations surface as gorm.ErrDuplicatedKey.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindUserByUsername retrieves a host user by exact username.
func (s *Store) FindUserByUsername(username string) (*models.User, error) {
	var user models.User

	err := s.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query host user: %w", err)
	}

	return &user, nil
}

// CreateUser inserts a new host user. The initial secret must already be
// hashed; the bridge passes an Argon2id placeholder, never the submitted
// credential. Returns ErrUserExists when the username is already taken.
func (s *Store) CreateUser(username, displayName, email, hashedSecret string) (*models.User, error) {
	user := models.User{
		Username:    username,
		DisplayName: displayName,
		Email:       email,
		Password:    hashedSecret,
	}

	err := s.db.Create(&user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrUserExists
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create host user: %w", err)
	}

	return &user, nil
}

// UpdateProfile refreshes the display name and email of an existing user.
// The stored password column is deliberately left untouched.
func (s *Store) UpdateProfile(userID uint64, displayName, email string) error {
	err := s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"display_name": displayName,
			"email":        email,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update host user profile: %w", err)
	}

	return nil
}

// ListGroups returns all host groups ordered by id.
func (s *Store) ListGroups() ([]models.Group, error) {
	var groups []models.Group

	if err := s.db.Order("id").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("failed to list host groups: %w", err)
	}

	return groups, nil
}

// UserGroupIDs returns the ids of all groups the user currently belongs to.
func (s *Store) UserGroupIDs(userID uint64) ([]uint, error) {
	var ids []uint

	err := s.db.Model(&models.UserGroup{}).
		Where("user_id = ?", userID).
		Order("group_id").
		Pluck("group_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list group memberships: %w", err)
	}

	return ids, nil
}

// SetUserGroups replaces the user's group memberships with exactly the given
// set. Additions and removals are applied in one transaction so a revoked
// external role is reflected by removal on the host side.
func (s *Store) SetUserGroups(userID uint64, groupIDs []uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(groupIDs) == 0 {
			if err := tx.Where("user_id = ?", userID).
				Delete(&models.UserGroup{}).Error; err != nil {
				return fmt.Errorf("failed to remove group memberships: %w", err)
			}

			return nil
		}

		if err := tx.Where("user_id = ?", userID).
			Where("group_id NOT IN ?", groupIDs).
			Delete(&models.UserGroup{}).Error; err != nil {
			return fmt.Errorf("failed to remove old group memberships: %w", err)
		}

		var current []uint
		if err := tx.Model(&models.UserGroup{}).
			Where("user_id = ?", userID).
			Pluck("group_id", &current).Error; err != nil {
			return fmt.Errorf("failed to read group memberships: %w", err)
		}

		have := make(map[uint]bool, len(current))
		for _, id := range current {
			have[id] = true
		}

		for _, groupID := range groupIDs {
			if have[groupID] {
				continue
			}

			if err := tx.Create(&models.UserGroup{
				UserID:  userID,
				GroupID: groupID,
			}).Error; err != nil {
				return fmt.Errorf("failed to add group membership: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("group sync failed: %w", err)
	}

	return nil
}
