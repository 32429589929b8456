// Package extstore implements read-only access to an Admidio membership
// database: user records, profile field values and role assignments.
//
// The bridge never writes to these tables. All lookups are exact-match,
// mirroring the membership store's own query semantics, and results are
// never cached across calls.
package extstore

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// FieldKey identifies a profile field definition by its internal name.
// Admidio keeps field definitions in its user_fields table; keying by the
// installation's usf_name_intern values avoids coupling to the numeric field
// ids, which differ between installations.
type FieldKey string

// Well-known profile field keys.
const (
	FieldEmail     FieldKey = "EMAIL"
	FieldFirstName FieldKey = "FIRST_NAME"
	FieldLastName  FieldKey = "LAST_NAME"
)

// UserRecord is one row of the membership store's user table.
type UserRecord struct {
	// ID is the membership store's user id (usr_id).
	ID int64
	// Username is the login name (usr_login_name).
	Username string
	// PasswordHash is the stored credential hash (usr_password).
	// Admidio writes PHP password_hash output, i.e. bcrypt.
	PasswordHash string
}

// Client provides read-only queries against one Admidio database.
type Client struct {
	db     *gorm.DB
	prefix string
}

// NewClient creates a membership store client. The prefix is prepended to
// every table name (Admidio installs default to "adm_").
func NewClient(db *gorm.DB, prefix string) *Client {
	return &Client{db: db, prefix: prefix}
}

// FindUserByUsername looks up a user record by its exact login name.
// Returns ErrUserNotFound when no such user exists and ErrStoreUnavailable
// when the store cannot be queried.
func (c *Client) FindUserByUsername(username string) (*UserRecord, error) {
	var row struct {
		UsrID        int64
		UsrLoginName string
		UsrPassword  string
	}

	err := c.db.Table(c.prefix+"users").
		Select("usr_id, usr_login_name, usr_password").
		Where("usr_login_name = ?", username).
		Take(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("%w: failed to query user: %v", ErrStoreUnavailable, err)
	}

	return &UserRecord{
		ID:           row.UsrID,
		Username:     row.UsrLoginName,
		PasswordHash: row.UsrPassword,
	}, nil
}

// ProfileFields returns all profile field values of a user, keyed by the
// field definition's internal name. The result is sparse: a field that was
// never filled in simply has no entry.
func (c *Client) ProfileFields(userID int64) (map[FieldKey]string, error) {
	var rows []struct {
		UsfNameIntern string
		UsdValue      string
	}

	err := c.db.Table(c.prefix+"user_data").
		Select("usf_name_intern, usd_value").
		Joins(fmt.Sprintf("JOIN %suser_fields ON usd_usf_id = usf_id", c.prefix)).
		Where("usd_usr_id = ?", userID).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query profile fields: %v", ErrStoreUnavailable, err)
	}

	fields := make(map[FieldKey]string, len(rows))
	for _, row := range rows {
		fields[FieldKey(row.UsfNameIntern)] = row.UsdValue
	}

	return fields, nil
}

// RoleNames returns the names of all roles assigned to the user with the
// given login name. A user without role assignments yields an empty set,
// which is a valid state and not an error.
func (c *Client) RoleNames(username string) ([]string, error) {
	var names []string

	err := c.db.Table(c.prefix+"members").
		Select("rol_name").
		Joins(fmt.Sprintf("JOIN %sroles ON mem_rol_id = rol_id", c.prefix)).
		Joins(fmt.Sprintf("JOIN %susers ON mem_usr_id = usr_id", c.prefix)).
		Where("usr_login_name = ?", username).
		Pluck("rol_name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query role assignments: %v", ErrStoreUnavailable, err)
	}

	return names, nil
}
