// Package mocks provides in-memory implementations of the store and auth
// interfaces for tests.
//
// The stores behave like the PostgreSQL implementations: IDs are assigned
// sequentially from 1, user emails are unique, blogs must reference an existing
// author and reads join the author's name. Every method can be overridden with
// a function field, and the *Err fields inject failures.
//
//	users := mocks.NewMockUserStore()
//	blogs := mocks.NewMockBlogStore(users)
//	blogs.CreateErr = errors.New("connection reset")
package mocks
