package password

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// MaxLength is the longest input bcrypt accepts, in bytes.
const MaxLength = 72

var (
	ErrEmpty     = errors.New("password cannot be empty")
	ErrTooLong   = errors.New("password exceeds 72 bytes")
	ErrMismatch  = errors.New("password does not match")
	ErrHashing   = errors.New("error hashing password")
	ErrVerifying = errors.New("error verifying password")
)

var placeholder = sync.OnceValue(func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("placeholder"), bcrypt.DefaultCost)

	return hash
})

// Hash returns a salted bcrypt digest of plain.
func Hash(plain string) (string, error) {
	switch {
	case plain == "":
		return "", ErrEmpty
	case len(plain) > MaxLength:
		return "", ErrTooLong
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashing, err)
	}

	return string(digest), nil
}

// Verify returns ErrMismatch unless plain hashes to digest.
func Verify(plain, digest string) error {
	if plain == "" || digest == "" {
		return ErrMismatch
	}

	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrMismatch
	default:
		return fmt.Errorf("%w: %w", ErrVerifying, err)
	}
}

// Burn spends the same bcrypt work as a real Verify. Login calls it for
// unknown emails so response time does not reveal which accounts exist.
func Burn(plain string) {
	_ = bcrypt.CompareHashAndPassword(placeholder(), []byte(plain))
}
