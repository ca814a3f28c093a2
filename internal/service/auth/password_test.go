package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewPasswordHasher(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mode     string
		wantType PasswordHasher
		wantErr  error
	}{
		{name: "bcrypt", mode: HashingBcrypt, wantType: &BcryptHasher{}},
		{name: "empty defaults to bcrypt", mode: "", wantType: &BcryptHasher{}},
		{name: "plaintext", mode: HashingPlaintext, wantType: PlaintextHasher{}},
		{name: "unknown", mode: "md5", wantErr: ErrUnknownHashing},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, err := NewPasswordHasher(tt.mode, bcrypt.MinCost)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, h)
		})
	}
}

func TestPasswordHashers(t *testing.T) {
	t.Parallel()

	hashers := map[string]PasswordHasher{
		"bcrypt":    NewBcryptHasher(bcrypt.MinCost),
		"plaintext": PlaintextHasher{},
	}

	for name, h := range hashers {
		h := h
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			stored, err := h.Hash("correct horse")
			require.NoError(t, err)
			require.NotEmpty(t, stored)

			assert.NoError(t, h.Compare(stored, "correct horse"))
			assert.ErrorIs(t, h.Compare(stored, "battery staple"), ErrPasswordMismatch)
		})
	}
}

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	t.Run("does not store the password verbatim", func(t *testing.T) {
		t.Parallel()
		stored, err := NewBcryptHasher(bcrypt.MinCost).Hash("secret")
		require.NoError(t, err)
		assert.NotEqual(t, "secret", stored)
	})

	t.Run("out of range cost falls back to default", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(1).cost)
		assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99).cost)
	})

	t.Run("malformed stored hash is not a mismatch", func(t *testing.T) {
		t.Parallel()
		err := NewBcryptHasher(bcrypt.MinCost).Compare("not-a-hash", "secret")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrPasswordMismatch)
	})
}
