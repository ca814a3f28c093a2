package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Password hashing modes accepted by NewPasswordHasher.
const (
	HashingBcrypt    = "bcrypt"
	HashingPlaintext = "plaintext"
)

// PasswordHasher derives stored credentials from passwords and compares them.
type PasswordHasher interface {
	// Hash returns the credential to store for password.
	Hash(password string) (string, error)

	// Compare returns nil when password matches stored, ErrPasswordMismatch
	// when it does not, or another error if the comparison could not run.
	Compare(stored, password string) error
}

// NewPasswordHasher returns the hasher for the configured mode.
func NewPasswordHasher(mode string, bcryptCost int) (PasswordHasher, error) {
	switch mode {
	case HashingBcrypt, "":
		return NewBcryptHasher(bcryptCost), nil
	case HashingPlaintext:
		return PlaintextHasher{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHashing, mode)
	}
}

// BcryptHasher implements PasswordHasher using bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher. Out-of-range costs fall back to
// bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash implements PasswordHasher.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare implements PasswordHasher.
func (h *BcryptHasher) Compare(stored, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return err
}

// PlaintextHasher stores passwords verbatim. It reads credentials written by
// the legacy deployment and must not be used for new installations.
type PlaintextHasher struct{}

// Hash implements PasswordHasher.
func (PlaintextHasher) Hash(password string) (string, error) {
	return password, nil
}

// Compare implements PasswordHasher.
func (PlaintextHasher) Compare(stored, password string) error {
	if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}
