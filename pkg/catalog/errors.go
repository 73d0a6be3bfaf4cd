package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrListFailed is returned when the list endpoint answers with a non-success status.
	ErrListFailed = errors.New("failed to load guitars")
	// ErrDetailFailed is returned when the detail endpoint answers with a non-success status.
	ErrDetailFailed = errors.New("failed to load guitar")
	// ErrSlugRequired is returned for a blank slug before any request is made.
	ErrSlugRequired = errors.New("guitar slug is required")
)

// StatusError reports a non-success upstream status. Its message is the generic
// failure text of the operation; the status is kept for callers that branch on it.
type StatusError struct {
	Op         string
	URL        string
	StatusCode int
	err        error
}

func (e *StatusError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}
	return e.err.Error()
}

func (e *StatusError) Unwrap() error { return e.err }
