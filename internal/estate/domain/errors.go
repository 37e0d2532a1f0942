package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrRequestInFlight   = errors.New("another request is already in flight")
	ErrMediaUploadFailed = errors.New("listing created but media upload failed, retry upload later")
	ErrNoMediaAttached   = errors.New("at least one media attachment is required")
)

// ErrorKind classifies a failed API call.
type ErrorKind string

const (
	ErrKindNetwork        ErrorKind = "network"
	ErrKindAuthentication ErrorKind = "authentication"
	ErrKindNotFound       ErrorKind = "not_found"
	ErrKindValidation     ErrorKind = "validation"
	ErrKindServer         ErrorKind = "server"
)

// APIError is the single error type the adapter raises for a failed call.
// Validation errors carry the server's field->messages map verbatim.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return string(e.Kind)
}

// FieldSummary joins the validation field errors into one readable line,
// fields sorted for stable output.
func (e *APIError) FieldSummary() string {
	if len(e.Fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], "; ")))
	}
	return strings.Join(parts, ", ")
}

// IsKind reports whether err is an APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}
