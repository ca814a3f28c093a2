package api

import (
	"strings"

	"github.com/phrazzld/blog-api/internal/domain"
)

// SignupRequest defines the payload for POST /user/signup.
type SignupRequest struct {
	Email    string  `json:"email"    validate:"required,email"`
	Password string  `json:"password" validate:"required,max=72"`
	Name     *string `json:"name"`
}

// Normalize trims surrounding whitespace from the email and name.
func (r *SignupRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
}

// SigninRequest defines the payload for POST /user/signin.
type SigninRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Normalize trims surrounding whitespace from the email.
func (r *SigninRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

// CreateBlogRequest defines the payload for POST /blog.
type CreateBlogRequest struct {
	Title   string `json:"title"   validate:"required"`
	Content string `json:"content" validate:"required"`
}

// Normalize trims surrounding whitespace from the title.
func (r *CreateBlogRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
}

// UpdateBlogRequest defines the payload for PUT /blog.
type UpdateBlogRequest struct {
	ID      int64  `json:"id"      validate:"required,gt=0"`
	Title   string `json:"title"   validate:"required"`
	Content string `json:"content" validate:"required"`
}

// Normalize trims surrounding whitespace from the title.
func (r *UpdateBlogRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
}

// AuthResponse is returned by signup and signin.
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// BlogMutationResponse is returned by blog create and update.
type BlogMutationResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// AuthorResponse is the public projection of a blog's author.
type AuthorResponse struct {
	Name *string `json:"name"`
}

// BlogResponse is the public projection of a blog.
type BlogResponse struct {
	ID      int64          `json:"id"`
	Title   string         `json:"title"`
	Content string         `json:"content"`
	Author  AuthorResponse `json:"author"`
}

// BlogEnvelope wraps a single blog: {"blog": {...}}.
type BlogEnvelope struct {
	Blog BlogResponse `json:"blog"`
}

// BlogListResponse wraps all blogs: {"blogs": [...]}.
type BlogListResponse struct {
	Blogs []BlogResponse `json:"blogs"`
}

func blogToResponse(b domain.BlogWithAuthor) BlogResponse {
	return BlogResponse{
		ID:      b.ID,
		Title:   b.Title,
		Content: b.Content,
		Author:  AuthorResponse{Name: b.AuthorName},
	}
}

func blogsToResponse(blogs []domain.BlogWithAuthor) []BlogResponse {
	out := make([]BlogResponse, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, blogToResponse(b))
	}
	return out
}
