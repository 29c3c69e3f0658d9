package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxLength is the number of bytes bcrypt reads from a password.
const MaxLength = 72

var (
	ErrEmpty         = errors.New("password cannot be empty")
	ErrTooLong       = fmt.Errorf("password cannot exceed %d bytes", MaxLength)
	ErrMismatch      = errors.New("password does not match")
	ErrMalformedHash = errors.New("stored password hash is malformed")
)

// Hash returns the bcrypt hash of plain at the default cost.
func Hash(plain string) (string, error) {
	switch {
	case plain == "":
		return "", ErrEmpty
	case len(plain) > MaxLength:
		return "", ErrTooLong
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	return string(hashed), nil
}

// Verify returns nil when plain matches hash and ErrMismatch when it does
// not. A hash bcrypt cannot read is reported as ErrMalformedHash.
func Verify(plain, hash string) error {
	if plain == "" || hash == "" {
		return ErrMismatch
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrMismatch
	default:
		return fmt.Errorf("%w: %w", ErrMalformedHash, err)
	}
}
