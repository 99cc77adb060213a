package integrations

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when the remote resource doesn't exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with a standard timeout.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// NewHTTPClientWithTimeout creates an HTTP client with the given timeout,
// falling back to the standard timeout when d is not positive.
func NewHTTPClientWithTimeout(d time.Duration) *http.Client {
	if d <= 0 {
		d = httpTimeout
	}
	return &http.Client{Timeout: d}
}

// IsRemote reports whether ref is an http(s) URL rather than a local path.
func IsRemote(ref string) bool {
	lower := strings.ToLower(strings.TrimSpace(ref))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
