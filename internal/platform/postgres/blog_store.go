package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/phrazzld/blog-api/internal/redact"
	"github.com/phrazzld/blog-api/internal/store"
)

const selectBlogWithAuthor = `
	SELECT b.id, b.title, b.content, u.name
	FROM blogs b
	JOIN users u ON u.id = b.author_id
`

// PostgresBlogStore implements the store.BlogStore interface
// using a PostgreSQL database as the storage backend.
type PostgresBlogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBlogStore creates a new PostgreSQL implementation of the BlogStore interface.
func NewPostgresBlogStore(db store.DBTX, logger *slog.Logger) *PostgresBlogStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresBlogStore{
		db:     db,
		logger: logger.With(slog.String("component", "blog_store")),
	}
}

// Ensure PostgresBlogStore implements store.BlogStore interface
var _ store.BlogStore = (*PostgresBlogStore)(nil)

// Create implements store.BlogStore.Create
// Returns store.ErrInvalidEntity if the author does not exist (foreign key violation).
func (s *PostgresBlogStore) Create(ctx context.Context, blog *domain.Blog) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := blog.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO blogs (title, content, author_id, published)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query, blog.Title, blog.Content, blog.AuthorID, blog.Published).
		Scan(&blog.ID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("blog author does not exist", slog.Int64("author_id", blog.AuthorID))
			return fmt.Errorf("%w: user with ID %d not found", store.ErrInvalidEntity, blog.AuthorID)
		}
		log.Error("failed to create blog",
			slog.String("error", redact.Error(err)),
			slog.Int64("author_id", blog.AuthorID))
		return MapError(err)
	}

	log.Info("blog created",
		slog.Int64("blog_id", blog.ID),
		slog.Int64("author_id", blog.AuthorID))
	return nil
}

// Update implements store.BlogStore.Update
func (s *PostgresBlogStore) Update(ctx context.Context, blog *domain.Blog) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE blogs
		SET title = $1, content = $2
		WHERE id = $3
	`
	result, err := s.db.ExecContext(ctx, query, blog.Title, blog.Content, blog.ID)
	if err != nil {
		log.Error("failed to update blog",
			slog.String("error", redact.Error(err)),
			slog.Int64("blog_id", blog.ID))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrBlogNotFound); err != nil {
		return err
	}

	log.Info("blog updated", slog.Int64("blog_id", blog.ID))
	return nil
}

// GetByID implements store.BlogStore.GetByID
func (s *PostgresBlogStore) GetByID(ctx context.Context, id int64) (*domain.BlogWithAuthor, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		blog domain.BlogWithAuthor
		name sql.NullString
	)
	err := s.db.QueryRowContext(ctx, selectBlogWithAuthor+` WHERE b.id = $1`, id).Scan(
		&blog.ID,
		&blog.Title,
		&blog.Content,
		&name,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("blog not found", slog.Int64("blog_id", id))
			return nil, store.ErrBlogNotFound
		}
		log.Error("failed to get blog",
			slog.String("error", redact.Error(err)),
			slog.Int64("blog_id", id))
		return nil, MapError(err)
	}

	if name.Valid {
		blog.AuthorName = &name.String
	}
	return &blog, nil
}

// List implements store.BlogStore.List
func (s *PostgresBlogStore) List(ctx context.Context) ([]domain.BlogWithAuthor, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, selectBlogWithAuthor+` ORDER BY b.id`)
	if err != nil {
		log.Error("failed to list blogs", slog.String("error", redact.Error(err)))
		return nil, MapError(err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Warn("failed to close rows", slog.String("error", redact.Error(cerr)))
		}
	}()

	blogs := make([]domain.BlogWithAuthor, 0)
	for rows.Next() {
		var (
			blog domain.BlogWithAuthor
			name sql.NullString
		)
		if err := rows.Scan(&blog.ID, &blog.Title, &blog.Content, &name); err != nil {
			return nil, fmt.Errorf("failed to scan blog row: %w", err)
		}
		if name.Valid {
			author := name.String
			blog.AuthorName = &author
		}
		blogs = append(blogs, blog)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate blog rows: %w", err)
	}

	log.Debug("blogs listed", slog.Int("count", len(blogs)))
	return blogs, nil
}
