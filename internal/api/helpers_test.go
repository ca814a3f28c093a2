package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/blog-api/internal/api/shared"
	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/mocks"
	"github.com/phrazzld/blog-api/internal/service/auth"
	"github.com/stretchr/testify/require"
)

type testDeps struct {
	users *mocks.MockUserStore
	blogs *mocks.MockBlogStore
	jwt   *mocks.MockJWTService
	user  *UserHandler
	blog  *BlogHandler
}

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()

	users := mocks.NewMockUserStore()
	blogs := mocks.NewMockBlogStore(users)
	jwt := &mocks.MockJWTService{Token: "signed-token"}
	log := discardLogger()

	return &testDeps{
		users: users,
		blogs: blogs,
		jwt:   jwt,
		user:  NewUserHandler(users, jwt, auth.PlaintextHasher{}, log),
		blog:  NewBlogHandler(blogs, log),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (d *testDeps) seedUser(t *testing.T, email, password, name string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(email, password, &name)
	require.NoError(t, err)
	user.HashedPassword = password
	require.NoError(t, d.users.Create(context.Background(), user))
	return user
}

func (d *testDeps) seedBlog(t *testing.T, title, content string, authorID int64) *domain.Blog {
	t.Helper()
	blog, err := domain.NewBlog(title, content, authorID)
	require.NoError(t, err)
	require.NoError(t, d.blogs.Create(context.Background(), blog))
	return blog
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func authenticated(req *http.Request, userID int64) *http.Request {
	return req.WithContext(shared.WithUserID(req.Context(), userID))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

type errorBody struct {
	Error   string  `json:"error"`
	Details []Issue `json:"details"`
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), v), rr.Body.String())
}
