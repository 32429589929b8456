package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// User represents a user account in the host identity store.
// Accounts are created by the bridge on first successful authentication
// against the external membership store (JIT provisioning). The bridge never
// deletes users and never rewrites the stored password of an existing user.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey"`
	// Username is the unique username for login, always equal to the
	// external store's login name.
	Username string `gorm:"unique;size:100;not null"`
	// Email is the user's email address. Host systems require it, so the
	// bridge refuses to provision a user without one.
	Email string `gorm:"size:255;not null"`
	// DisplayName is the user's full name as composed from the external
	// profile (first name, space, last name).
	DisplayName string `gorm:"size:255"`
	// Password is an Argon2id hashed placeholder secret. The external store
	// remains the authority for credential checks; this value only satisfies
	// host systems that insist on a non-empty password column.
	Password string `gorm:"size:255"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
// Used for the placeholder secret issued to JIT-created users.
func HashPassword(password string) string {
	hashedPassword, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash password: %v", err)
	}

	return hashedPassword
}
