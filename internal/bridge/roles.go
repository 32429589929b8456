package bridge

import (
	"github.com/admidio-bridge/admidio-bridge/internal/db/models"
)

// MapGroups translates external role names into host group ids: every host
// group whose title exactly, case-sensitively matches one of the role names
// is included. Implemented as a single set intersection over the enumerated
// group list, so an unmatched role name is structurally a non-event rather
// than a failed per-role query. No fallback group; zero matches yield an
// empty set, which is a valid outcome.
func MapGroups(roleNames []string, groups []models.Group) []uint {
	if len(roleNames) == 0 || len(groups) == 0 {
		return nil
	}

	wanted := make(map[string]bool, len(roleNames))
	for _, name := range roleNames {
		wanted[name] = true
	}

	var ids []uint

	for _, group := range groups {
		if wanted[group.Title] {
			ids = append(ids, group.ID)
		}
	}

	return ids
}
