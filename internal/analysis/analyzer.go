// Package analysis defines the interface to the external AI service that
// turns a task list into a natural-language productivity summary, together
// with the errors its implementations report.
package analysis

import "context"

// TaskSummary is the minimal view of a task sent to the AI service.
type TaskSummary struct {
	Title     string `json:"title"     validate:"required"`
	Completed bool   `json:"completed"`
}

// Analyzer generates a natural-language analysis of a task list by calling
// a remote model. A single attempt is made per call, bounded by the
// implementation's request timeout; no retries are performed.
type Analyzer interface {
	// Analyze returns the generated summary text for the given tasks.
	// The tasks slice must be non-empty; callers are expected to reject
	// empty input before reaching the analyzer.
	//
	// Returns *UpstreamError when the remote service responds with an
	// HTTP error status, or an error wrapping ErrGenerationFailed for
	// transport failures and malformed responses.
	Analyze(ctx context.Context, tasks []TaskSummary) (string, error)
}
