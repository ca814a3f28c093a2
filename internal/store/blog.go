package store

import (
	"context"

	"github.com/phrazzld/blog-api/internal/domain"
)

// BlogStore defines the interface for blog post persistence.
type BlogStore interface {
	// Create saves a new blog and sets blog.ID to the generated identifier.
	// Returns ErrInvalidEntity if blog.AuthorID does not reference a user.
	Create(ctx context.Context, blog *domain.Blog) error

	// Update replaces the title and content of the blog identified by blog.ID.
	// Ownership is not checked: any authenticated caller may edit any post.
	// Returns ErrBlogNotFound if no such blog exists.
	Update(ctx context.Context, blog *domain.Blog) error

	// GetByID returns the blog joined with its author's name.
	// Returns ErrBlogNotFound if no such blog exists.
	GetByID(ctx context.Context, id int64) (*domain.BlogWithAuthor, error)

	// List returns every blog joined with its author's name, ordered by ID.
	// The result is never nil.
	List(ctx context.Context) ([]domain.BlogWithAuthor, error)
}
