package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBlog(t *testing.T) {
	blog, err := NewBlog(" Hi ", "World", 1)
	require.NoError(t, err)
	assert.Equal(t, "Hi", blog.Title)
	assert.Equal(t, "World", blog.Content)
	assert.Equal(t, int64(1), blog.AuthorID)
	assert.False(t, blog.Published)

	tests := []struct {
		name     string
		title    string
		content  string
		authorID int64
		wantErr  error
	}{
		{"empty title", "", "World", 1, ErrEmptyTitle},
		{"blank content", "Hi", " \n", 1, ErrEmptyContent},
		{"zero author", "Hi", "World", 0, ErrEmptyAuthorID},
		{"negative author", "Hi", "World", -4, ErrEmptyAuthorID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blog, err := NewBlog(tt.title, tt.content, tt.authorID)
			assert.Nil(t, blog)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}
