package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound matches an *Error whose status is 404.
var ErrNotFound = errors.New("gateway: record not found")

// Error describes a failed call: either a transport failure (Status is 0 and
// Err is set) or a non-2xx response.
type Error struct {
	Method   string
	Endpoint string
	Status   int
	Message  string
	Err      error
}

func (e *Error) Error() string {
	switch {
	case e.Status == 0:
		return fmt.Sprintf("%s %s: %v", e.Method, e.Endpoint, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s %s (status %d): %v", e.Method, e.Endpoint, e.Status, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s %s returned status %d: %s", e.Method, e.Endpoint, e.Status, e.Message)
	default:
		return fmt.Sprintf("%s %s returned status %d", e.Method, e.Endpoint, e.Status)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Status
	}
	return 0
}
