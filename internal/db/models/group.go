package models

import "time"

// Group represents a user group in the host identity store.
// Groups are owned by the host application; the bridge only reads them to
// resolve external role names to group ids by exact title match. It never
// creates groups for unmatched role names.
type Group struct {
	// ID is the unique identifier for the group.
	ID uint `gorm:"primaryKey"`
	// Title is the display name of the group. Matching against external role
	// names is exact and case sensitive.
	Title string `gorm:"size:100;not null"`
	// CreatedAt is the timestamp when the group was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the group was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Group model.
// This overrides GORM's default pluralized table naming.
func (Group) TableName() string {
	return "groups"
}
