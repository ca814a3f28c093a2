package domain

import (
	"fmt"
	"strings"
)

// Blog validation errors
var (
	ErrEmptyTitle    = fmt.Errorf("%w: title cannot be empty", ErrValidation)
	ErrEmptyContent  = fmt.Errorf("%w: content cannot be empty", ErrValidation)
	ErrEmptyAuthorID = fmt.Errorf("%w: author ID must be positive", ErrValidation)
)

// Blog is a post written by a user.
type Blog struct {
	ID        int64
	Title     string
	Content   string
	AuthorID  int64
	Published bool
}

// NewBlog creates an unpublished Blog owned by authorID. The ID is assigned
// by the store.
func NewBlog(title, content string, authorID int64) (*Blog, error) {
	blog := &Blog{
		Title:    strings.TrimSpace(title),
		Content:  content,
		AuthorID: authorID,
	}

	if err := blog.Validate(); err != nil {
		return nil, err
	}

	return blog, nil
}

// Validate checks if the Blog has valid data.
func (b *Blog) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(b.Content) == "" {
		return ErrEmptyContent
	}
	if b.AuthorID <= 0 {
		return ErrEmptyAuthorID
	}
	return nil
}

// BlogWithAuthor is the read projection of a blog joined with its author.
type BlogWithAuthor struct {
	ID         int64
	Title      string
	Content    string
	AuthorName *string
}
