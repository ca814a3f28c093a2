package api

import (
	"net/http"

	"github.com/phrazzld/blog-api/internal/api/shared"
)

// StatusPersistenceFailure is the status returned when a store or token
// operation fails. Existing clients expect 411 rather than a 5xx.
const StatusPersistenceFailure = http.StatusLengthRequired

// Response messages.
const (
	MsgInvalidInput       = "Invalid input"
	MsgInvalidRequest     = "Invalid request"
	MsgInvalidCredentials = "Invalid credentials"

	MsgUserCreated  = "User created successfully"
	MsgLoginSuccess = "Login successful"

	MsgBlogCreated      = "Blog created successfully"
	MsgBlogUpdated      = "Blog updated successfully"
	MsgBlogCreateFailed = "Error while creating blog"
	MsgBlogUpdateFailed = "Error while updating blog"
	MsgBlogsFetchFailed = "Error while fetching blogs"
	MsgBlogFetchFailed  = "Error while fetching blog"
	MsgBlogNotFound     = "Blog not found"
)

func respondInvalidInput(w http.ResponseWriter, r *http.Request, issues []Issue) {
	shared.RespondWithError(w, r, http.StatusBadRequest, MsgInvalidInput, shared.WithDetails(issues))
}

func respondPersistenceFailure(w http.ResponseWriter, r *http.Request, message string, err error) {
	shared.RespondWithErrorAndLog(
		w,
		r,
		StatusPersistenceFailure,
		message,
		err,
		shared.WithElevatedLogLevel(),
	)
}
