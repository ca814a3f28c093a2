// Package store defines the persistence gateway used by the HTTP handlers.
// The interfaces abstract the underlying database so that handlers can be
// exercised against in-memory fakes, while the PostgreSQL implementation
// lives in internal/platform/postgres.
package store
