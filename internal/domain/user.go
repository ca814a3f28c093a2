package domain

import (
	"fmt"
	"strings"
)

// User validation errors
var (
	ErrEmptyEmail          = fmt.Errorf("%w: email cannot be empty", ErrValidation)
	ErrEmptyPassword       = fmt.Errorf("%w: password cannot be empty", ErrValidation)
	ErrEmptyHashedPassword = fmt.Errorf("%w: stored password cannot be empty", ErrValidation)
	ErrPasswordTooLong     = fmt.Errorf("%w: password exceeds %d bytes", ErrValidation, MaxPasswordLength)
)

// MaxPasswordLength is the longest password bcrypt can hash.
const MaxPasswordLength = 72

// User represents a registered author.
type User struct {
	ID    int64   `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`

	// Password is the plaintext password, present only while a signup is
	// being processed.
	Password string `json:"-"`
	// HashedPassword is the stored credential. Depending on the configured
	// password strategy it may be a bcrypt hash or, for legacy rows, the
	// plaintext value itself.
	HashedPassword string `json:"-"`
}

// NewUser creates a User from signup input. The ID is assigned by the store.
// The caller is responsible for deriving HashedPassword before storing the user.
func NewUser(email, password string, name *string) (*User, error) {
	user := &User{
		Email:    strings.TrimSpace(email),
		Password: password,
		Name:     normalizeName(name),
	}

	if user.Email == "" {
		return nil, ErrEmptyEmail
	}
	if user.Password == "" {
		return nil, ErrEmptyPassword
	}
	if len(user.Password) > MaxPasswordLength {
		return nil, ErrPasswordTooLong
	}

	return user, nil
}

// Validate checks that the user can be persisted.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Email) == "" {
		return ErrEmptyEmail
	}
	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	return nil
}

func normalizeName(name *string) *string {
	if name == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*name)
	return &trimmed
}
