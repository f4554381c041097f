package clients

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrBuildRequest   = errors.New("failed to build downstream request")
	ErrExecuteRequest = errors.New("failed to execute downstream request")
	ErrDecodeResponse = errors.New("failed to decode downstream response")
)

// Category is the coarse failure bucket a downstream response falls into.
type Category string

const (
	CategoryBadRequest   Category = "bad-request"
	CategoryUnauthorized Category = "unauthorized"
	CategoryForbidden    Category = "forbidden"
	CategoryNotFound     Category = "not-found"
	CategoryConflict     Category = "conflict"
	CategoryUnknown      Category = "unknown"
)

// AdapterError is the typed failure returned when a downstream service
// answers with a non-success status. Callers branch on Category rather
// than on raw status codes.
type AdapterError struct {
	Service  string
	Category Category
	Status   int
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("%s adapter request failed: %s (status %d)", e.Service, e.Category, e.Status)
}

func NewAdapterError(service string, status int) *AdapterError {
	return &AdapterError{
		Service:  service,
		Category: categoryFromStatus(status),
		Status:   status,
	}
}

func categoryFromStatus(status int) Category {
	switch status {
	case http.StatusBadRequest:
		return CategoryBadRequest
	case http.StatusUnauthorized:
		return CategoryUnauthorized
	case http.StatusForbidden:
		return CategoryForbidden
	case http.StatusNotFound:
		return CategoryNotFound
	case http.StatusConflict:
		return CategoryConflict
	default:
		return CategoryUnknown
	}
}

// IsNotFound reports whether err carries a not-found adapter failure.
func IsNotFound(err error) bool {
	var adapterErr *AdapterError

	return errors.As(err, &adapterErr) && adapterErr.Category == CategoryNotFound
}
