package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned when an empty plaintext is submitted for hashing.
var ErrEmptyPassword = errors.New("password must not be empty")

// HashPassword generates a salted bcrypt hash for the given plaintext.
// Hashing the same plaintext twice yields different strings because bcrypt
// embeds a random salt in the output.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// VerifyPassword reports whether the plaintext matches the stored hash.
// Malformed hashes verify as false rather than erroring out, so callers can
// treat any mismatch uniformly as a failed credential check.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
