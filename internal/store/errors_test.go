package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"generic error", errors.New("some error"), false},
		{"ErrNotFound", ErrNotFound, true},
		{"ErrUserNotFound", ErrUserNotFound, true},
		{"wrapped ErrBlogNotFound", fmt.Errorf("get blog 7: %w", ErrBlogNotFound), true},
		{"duplicate is not not-found", ErrEmailExists, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(ErrEmailExists))
	assert.True(t, IsDuplicateError(fmt.Errorf("signup: %w", ErrDuplicate)))
	assert.False(t, IsDuplicateError(ErrBlogNotFound))
	assert.False(t, IsDuplicateError(nil))
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewStoreError("blog", "update", "exec failed", cause)

	assert.Equal(t, "update operation on blog failed: exec failed: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewStoreError("user", "create", "no rows returned", nil)
	assert.Equal(t, "create operation on user failed: no rows returned", bare.Error())
	assert.NoError(t, bare.Unwrap())
}
