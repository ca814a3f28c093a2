package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/blog-api/internal/api/shared"
	"github.com/phrazzld/blog-api/internal/domain"
)

// Issue codes reported in the "details" of a 400 response.
const (
	IssueInvalidJSON  = "invalid_json"
	IssueInvalidType  = "invalid_type"
	IssueRequired     = "required"
	IssueInvalidEmail = "invalid_email"
	IssueTooSmall     = "too_small"
	IssueTooBig       = "too_big"
	IssueInvalid      = "invalid"
)

// Issue describes one problem with a request payload.
type Issue struct {
	Code    string   `json:"code"`
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

// normalizer is implemented by request payloads that trim their fields
// before validation.
type normalizer interface {
	Normalize()
}

// RequestValidator decodes JSON bodies and checks them against their
// validate tags. Issue paths use the JSON field names.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a RequestValidator.
func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

// DecodeAndValidate decodes the request body into dst, normalizes it and
// validates it. It returns the issues found, or nil when dst is valid.
func (v *RequestValidator) DecodeAndValidate(r *http.Request, dst interface{}) []Issue {
	if err := shared.DecodeJSON(r, dst); err != nil {
		return []Issue{decodeIssue(err)}
	}
	if n, ok := dst.(normalizer); ok {
		n.Normalize()
	}
	return v.Validate(dst)
}

// Validate checks dst against its validate tags.
func (v *RequestValidator) Validate(dst interface{}) []Issue {
	err := v.validate.Struct(dst)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Issue{{Code: IssueInvalid, Path: []string{}, Message: "Invalid input"}}
	}

	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, fieldIssue(fe))
	}
	return issues
}

func fieldIssue(fe validator.FieldError) Issue {
	path := fieldPath(fe.Namespace())
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return Issue{Code: IssueRequired, Path: path, Message: fmt.Sprintf("%s is required", field)}
	case "email":
		return Issue{Code: IssueInvalidEmail, Path: path, Message: "Invalid email"}
	case "gt", "gte", "min":
		return Issue{
			Code:    IssueTooSmall,
			Path:    path,
			Message: fmt.Sprintf("%s must be greater than %s", field, fe.Param()),
		}
	case "max", "lt", "lte":
		return Issue{
			Code:    IssueTooBig,
			Path:    path,
			Message: fmt.Sprintf("%s must be at most %s characters", field, fe.Param()),
		}
	default:
		return Issue{Code: IssueInvalid, Path: path, Message: fmt.Sprintf("%s is invalid", field)}
	}
}

// fieldPath turns "SignupRequest.email" into ["email"].
func fieldPath(namespace string) []string {
	parts := strings.Split(namespace, ".")
	if len(parts) <= 1 {
		return []string{}
	}
	return parts[1:]
}

func decodeIssue(err error) Issue {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, shared.ErrEmptyBody):
		return Issue{Code: IssueInvalidJSON, Path: []string{}, Message: "Request body is required"}
	case errors.As(err, &typeErr):
		path := []string{}
		if typeErr.Field != "" {
			path = strings.Split(typeErr.Field, ".")
		}
		expected := typeErr.Type.Kind().String()
		if typeErr.Type.Kind() == reflect.Struct {
			expected = "object"
		}
		return Issue{
			Code:    IssueInvalidType,
			Path:    path,
			Message: fmt.Sprintf("Expected %s, received %s", expected, typeErr.Value),
		}
	default:
		return Issue{Code: IssueInvalidJSON, Path: []string{}, Message: "Malformed JSON body"}
	}
}

// domainIssue converts a domain validation error raised after the tag checks
// passed, such as whitespace-only content.
func domainIssue(err error) Issue {
	switch {
	case errors.Is(err, domain.ErrEmptyTitle):
		return Issue{Code: IssueTooSmall, Path: []string{"title"}, Message: "title cannot be blank"}
	case errors.Is(err, domain.ErrEmptyContent):
		return Issue{Code: IssueTooSmall, Path: []string{"content"}, Message: "content cannot be blank"}
	case errors.Is(err, domain.ErrEmptyEmail):
		return Issue{Code: IssueRequired, Path: []string{"email"}, Message: "email is required"}
	case errors.Is(err, domain.ErrEmptyPassword):
		return Issue{Code: IssueRequired, Path: []string{"password"}, Message: "password is required"}
	case errors.Is(err, domain.ErrPasswordTooLong):
		return Issue{
			Code:    IssueTooBig,
			Path:    []string{"password"},
			Message: fmt.Sprintf("password must be at most %d bytes", domain.MaxPasswordLength),
		}
	case errors.Is(err, domain.ErrInvalidID):
		return Issue{Code: IssueInvalidType, Path: []string{"id"}, Message: "id must be a positive integer"}
	default:
		return Issue{Code: IssueInvalid, Path: []string{}, Message: "Invalid input"}
	}
}
