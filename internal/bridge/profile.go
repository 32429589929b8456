package bridge

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/admidio-bridge/admidio-bridge/internal/extstore"
)

var validate = validator.New() //nolint:gochecknoglobals

// Profile holds the validated identity fields extracted from an external
// user's sparse profile data.
type Profile struct {
	Email     string
	FirstName string
	LastName  string
}

// DisplayName composes the host-side display name: first name, a single
// space, last name. Missing name parts render as empty segments; the join is
// kept verbatim so host records line up with the membership store's own
// rendering.
func (p Profile) DisplayName() string {
	return p.FirstName + " " + p.LastName
}

// BuildProfile validates the required profile fields and returns a Profile.
// An absent, empty or malformed email fails with a message operators can act
// on, distinct from any credential error. Missing name fields are tolerated.
func BuildProfile(fields map[extstore.FieldKey]string) (Profile, error) {
	email := fields[extstore.FieldEmail]
	if email == "" {
		return Profile{}, ErrMissingEmail
	}

	if err := validate.Var(email, "email"); err != nil {
		return Profile{}, fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}

	return Profile{
		Email:     email,
		FirstName: fields[extstore.FieldFirstName],
		LastName:  fields[extstore.FieldLastName],
	}, nil
}
