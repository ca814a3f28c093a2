package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/store"
)

// MockBlogStore implements store.BlogStore in memory. Author existence and
// names are resolved against the user store it was created with.
type MockBlogStore struct {
	// Function fields for customizable behavior
	CreateFn  func(ctx context.Context, blog *domain.Blog) error
	UpdateFn  func(ctx context.Context, blog *domain.Blog) error
	GetByIDFn func(ctx context.Context, id int64) (*domain.BlogWithAuthor, error)
	ListFn    func(ctx context.Context) ([]domain.BlogWithAuthor, error)

	// Injected failures
	CreateErr  error
	UpdateErr  error
	GetByIDErr error
	ListErr    error

	users *MockUserStore

	mu     sync.Mutex
	blogs  map[int64]domain.Blog
	nextID int64
}

var _ store.BlogStore = (*MockBlogStore)(nil)

// NewMockBlogStore creates an empty blog store backed by users.
func NewMockBlogStore(users *MockUserStore) *MockBlogStore {
	return &MockBlogStore{
		users:  users,
		blogs:  make(map[int64]domain.Blog),
		nextID: 1,
	}
}

// Create implements the BlogStore interface
func (m *MockBlogStore) Create(ctx context.Context, blog *domain.Blog) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, blog)
	}
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if _, ok := m.users.authorName(blog.AuthorID); !ok {
		return store.NewStoreError("blog", "create", "author does not exist", store.ErrInvalidEntity)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	blog.ID = m.nextID
	m.nextID++
	m.blogs[blog.ID] = *blog
	return nil
}

// Update implements the BlogStore interface
func (m *MockBlogStore) Update(ctx context.Context, blog *domain.Blog) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, blog)
	}
	if m.UpdateErr != nil {
		return m.UpdateErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.blogs[blog.ID]
	if !ok {
		return store.ErrBlogNotFound
	}
	existing.Title = blog.Title
	existing.Content = blog.Content
	m.blogs[blog.ID] = existing
	return nil
}

// GetByID implements the BlogStore interface
func (m *MockBlogStore) GetByID(ctx context.Context, id int64) (*domain.BlogWithAuthor, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if m.GetByIDErr != nil {
		return nil, m.GetByIDErr
	}

	m.mu.Lock()
	blog, ok := m.blogs[id]
	m.mu.Unlock()
	if !ok {
		return nil, store.ErrBlogNotFound
	}

	result := m.withAuthor(blog)
	return &result, nil
}

// List implements the BlogStore interface
func (m *MockBlogStore) List(ctx context.Context) ([]domain.BlogWithAuthor, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	m.mu.Lock()
	blogs := make([]domain.Blog, 0, len(m.blogs))
	for _, b := range m.blogs {
		blogs = append(blogs, b)
	}
	m.mu.Unlock()

	sort.Slice(blogs, func(i, j int) bool { return blogs[i].ID < blogs[j].ID })

	result := make([]domain.BlogWithAuthor, 0, len(blogs))
	for _, b := range blogs {
		result = append(result, m.withAuthor(b))
	}
	return result, nil
}

// Get returns the stored blog row, for assertions on fields the read
// projection omits.
func (m *MockBlogStore) Get(id int64) (domain.Blog, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	blog, ok := m.blogs[id]
	return blog, ok
}

// Count returns the number of stored blogs.
func (m *MockBlogStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.blogs)
}

func (m *MockBlogStore) withAuthor(b domain.Blog) domain.BlogWithAuthor {
	name, _ := m.users.authorName(b.AuthorID)
	return domain.BlogWithAuthor{
		ID:         b.ID,
		Title:      b.Title,
		Content:    b.Content,
		AuthorName: name,
	}
}
