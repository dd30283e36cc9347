package analysis

import (
	"errors"
	"fmt"
)

// Common analysis errors
var (
	// ErrGenerationFailed wraps transport-level failures and malformed
	// responses from the upstream service.
	ErrGenerationFailed = errors.New("analysis generation failed")

	// ErrInvalidConfig indicates the analyzer was constructed with
	// invalid configuration.
	ErrInvalidConfig = errors.New("invalid analyzer configuration")
)

// UpstreamError reports an HTTP error status returned by the remote AI
// service. The status code is passed through to the API client unchanged.
type UpstreamError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface. Server-side upstream failures are
// worded differently from request errors, but callers branch on the status
// code, not the text.
func (e *UpstreamError) Error() string {
	if e.StatusCode >= 500 {
		return fmt.Sprintf("upstream server error: %d %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("upstream request error: %d %s", e.StatusCode, e.Body)
}
