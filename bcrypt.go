package calendarx

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword will generate a salted password hash. The same input
// produces a different hash on every call; the salt travels inside the
// output string. bcrypt only reads the first 72 bytes of input, so
// anything longer is rejected up front instead of being silently
// truncated.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost())
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", err
	}

	return string(h), nil
}

// ComparePasswordAndHash will validate the given cleartext password
// matches the hashed password. Any bcrypt failure, including a corrupt
// hash string, comes back as the invalid-credentials sentinel so callers
// never crash on stored garbage.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrMismatchedHashAndPassword
	}
	return nil
}
