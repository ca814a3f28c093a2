// Package domain contains the core business entities of the blog: users,
// posts, and the author-joined view of a post returned by read endpoints.
// It is independent of any specific infrastructure or delivery mechanism.
package domain
