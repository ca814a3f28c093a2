// Package postgres provides the PostgreSQL implementations of the store
// interfaces defined in internal/store, the mapping from PostgreSQL error
// codes to store errors, and the embedded goose migrations that create the
// users and blogs tables.
package postgres
