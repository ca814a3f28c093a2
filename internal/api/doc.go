// Package api implements the HTTP handlers of the blog service: user signup
// and signin, and blog create, update, list and fetch.
//
// Handlers decode and validate the JSON body before touching a store. The
// status codes follow the contract the existing clients rely on:
//
//   - 400 for malformed or invalid input, with a list of issues
//   - 403 for failed authentication or wrong credentials
//   - 404 when a requested blog does not exist
//   - 411 for any persistence or token-signing failure
//
// Underlying errors are logged in redacted form and never returned to the
// client.
package api
