package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/blog-api/internal/api/middleware"
	"github.com/phrazzld/blog-api/internal/api/shared"
	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/phrazzld/blog-api/internal/store"
)

// BlogHandler handles blog post requests. Every route it serves sits behind
// the auth middleware.
type BlogHandler struct {
	blogStore store.BlogStore
	validator *RequestValidator
	logger    *slog.Logger
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(blogStore store.BlogStore, logger *slog.Logger) *BlogHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for BlogHandler")
	}

	return &BlogHandler{
		blogStore: blogStore,
		validator: NewRequestValidator(),
		logger:    logger.With(slog.String("component", "blog_handler")),
	}
}

// Create handles POST /blog. The author is the authenticated user.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := middleware.GetUserID(r)
	if !ok {
		log.Warn("user ID not found in request context")
		middleware.RespondUnauthorized(w, r)
		return
	}

	var req CreateBlogRequest
	if issues := h.validator.DecodeAndValidate(r, &req); len(issues) > 0 {
		respondInvalidInput(w, r, issues)
		return
	}

	blog, err := domain.NewBlog(req.Title, req.Content, userID)
	if err != nil {
		respondInvalidInput(w, r, []Issue{domainIssue(err)})
		return
	}

	if err := h.blogStore.Create(r.Context(), blog); err != nil {
		respondPersistenceFailure(w, r, MsgBlogCreateFailed, err)
		return
	}

	log.Info("blog created", slog.Int64("blog_id", blog.ID), slog.Int64("author_id", userID))
	shared.RespondWithJSON(w, r, http.StatusOK, BlogMutationResponse{
		ID:      blog.ID,
		Message: MsgBlogCreated,
	})
}

// Update handles PUT /blog. Any authenticated user may update any blog.
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := middleware.GetUserID(r)
	if !ok {
		log.Warn("user ID not found in request context")
		middleware.RespondUnauthorized(w, r)
		return
	}

	var req UpdateBlogRequest
	if issues := h.validator.DecodeAndValidate(r, &req); len(issues) > 0 {
		respondInvalidInput(w, r, issues)
		return
	}

	// The author is only needed to pass domain validation; the store does
	// not change it.
	blog, err := domain.NewBlog(req.Title, req.Content, userID)
	if err != nil {
		respondInvalidInput(w, r, []Issue{domainIssue(err)})
		return
	}
	blog.ID = req.ID

	if err := h.blogStore.Update(r.Context(), blog); err != nil {
		respondPersistenceFailure(w, r, MsgBlogUpdateFailed, err)
		return
	}

	log.Info("blog updated", slog.Int64("blog_id", blog.ID), slog.Int64("editor_id", userID))
	shared.RespondWithJSON(w, r, http.StatusOK, BlogMutationResponse{
		ID:      blog.ID,
		Message: MsgBlogUpdated,
	})
}

// List handles GET /blog/bulk.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogStore.List(r.Context())
	if err != nil {
		respondPersistenceFailure(w, r, MsgBlogsFetchFailed, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, BlogListResponse{
		Blogs: blogsToResponse(blogs),
	})
}

// Get handles GET /blog/{id}.
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	rawID := chi.URLParam(r, "id")
	id, err := domain.ParseID(rawID)
	if err != nil {
		log.Debug("invalid blog id", slog.String("value", rawID))
		respondInvalidInput(w, r, []Issue{domainIssue(err)})
		return
	}

	blog, err := h.blogStore.GetByID(r.Context(), id)
	if err != nil {
		if store.IsNotFoundError(err) {
			shared.RespondWithError(w, r, http.StatusNotFound, MsgBlogNotFound)
			return
		}
		respondPersistenceFailure(w, r, MsgBlogFetchFailed, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, BlogEnvelope{Blog: blogToResponse(*blog)})
}
