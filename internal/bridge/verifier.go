package bridge

import (
	"strings"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/admidio-bridge/admidio-bridge/internal/uniuri"
)

// dummyHash is compared against when no matching user exists, so unknown-user
// and wrong-password attempts burn comparable time. Generated once from a
// random secret nobody knows.
var dummyHash = func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte(uniuri.NewLen(uniuri.SecretLen)), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Msgf("failed to create dummy hash: %v", err)
	}

	return hash
}()

// Verifier checks a submitted secret against a stored credential hash.
// Admidio writes PHP password_hash output (bcrypt, "$2y$" prefix); newer
// installations may carry argon2id hashes. Both formats are supported.
//
// The comparison functions are struct fields so tests can count invocations
// when asserting the enumeration-resistance behavior.
type Verifier struct {
	compareBcrypt   func(hashedPassword, password []byte) error
	compareArgon2id func(password, hash string) (bool, error)
}

// NewVerifier creates a Verifier with the real comparison functions.
func NewVerifier() *Verifier {
	return &Verifier{
		compareBcrypt:   bcrypt.CompareHashAndPassword,
		compareArgon2id: argon2id.ComparePasswordAndHash,
	}
}

// Verify reports whether secret matches the stored hash.
func (v *Verifier) Verify(secret, storedHash string) bool {
	if secret == "" || storedHash == "" {
		return false
	}

	if strings.HasPrefix(storedHash, "$argon2id$") {
		match, err := v.compareArgon2id(secret, storedHash)
		if err != nil {
			log.Error().Msgf("failed to verify argon2id hash: %v", err)
			return false
		}

		return match
	}

	// PHP emits "$2y$"; Go's bcrypt only accepts the "$2a$"/"$2b$" minor
	// versions, which share the identical algorithm.
	if strings.HasPrefix(storedHash, "$2y$") {
		storedHash = "$2a$" + storedHash[len("$2y$"):]
	}

	return v.compareBcrypt([]byte(storedHash), []byte(secret)) == nil
}

// ConsumeDummy performs one hash comparison against a throwaway hash.
// Called on the unknown-user path to equalize response latency with a real
// wrong-password verification (user enumeration resistance).
func (v *Verifier) ConsumeDummy(secret string) {
	_ = v.compareBcrypt(dummyHash, []byte(secret))
}
