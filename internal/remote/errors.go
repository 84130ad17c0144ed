package remote

import (
	"errors"
	"fmt"
	"net/http"
)

// TransportError reports a request that failed before a response arrived
// (DNS, connection refused, timeout, TLS).
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPStatusError reports a non-2xx response.
type HTTPStatusError struct {
	URL        string
	StatusCode int
	// Status is the full status line text, e.g. "404 Not Found".
	Status string
}

func (e *HTTPStatusError) Error() string {
	msg := fmt.Sprintf("HTTP %s for %s", e.Status, e.URL)
	if e.StatusCode == http.StatusForbidden || e.StatusCode == http.StatusTooManyRequests {
		msg += " (GitHub API rate limit may be exceeded)"
	}
	return msg
}

// IsNotFound reports whether err is an HTTP 404.
func IsNotFound(err error) bool {
	var se *HTTPStatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}
