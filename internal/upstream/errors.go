package upstream

import "fmt"

// Error describes a non-success HTTP response from an upstream.
type Error struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream %s returned %s", e.URL, e.Status)
}

// ParseError describes an upstream response body that could not be
// decoded as the expected JSON shape. It is distinct from Error so
// callers can tell a malformed payload from an HTTP-level failure.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("upstream %s returned invalid JSON: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
