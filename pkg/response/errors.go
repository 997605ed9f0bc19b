package response

import "net/http"

// HTTPError is an error that carries the status code to answer with.
type HTTPError struct {
	Status  int
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates an HTTPError whose error code mirrors the status.
func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Code: status, Message: message}
}

var (
	ErrTooManyRequests = NewHTTPError(http.StatusTooManyRequests, "Too many requests, slow down")
	ErrNotFound        = NewHTTPError(http.StatusNotFound, "Not found")
)
