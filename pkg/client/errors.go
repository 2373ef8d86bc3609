package client

import (
	"errors"
	"fmt"
)

// ErrMissingToken is returned when the login action answers 2xx without a token.
var ErrMissingToken = errors.New("login response has no token")

// ErrNotJSON is wrapped by a TransportError when a response body does not parse.
var ErrNotJSON = errors.New("response is not JSON")

// HTTPError is a logical failure: the service answered with a non-2xx status.
type HTTPError struct {
	Action     string
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// TransportError is a failure to reach the service or to read its answer.
type TransportError struct {
	Action string
	Op     string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Action, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// IsTransport returns true if err (or any wrapped error) is a TransportError.
func IsTransport(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}
