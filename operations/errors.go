package operations

import "errors"

// Fatal stage failures. Each aborts the pipeline where it happens and
// maps to its own process exit code. Advisory conditions (dialect tag
// mismatch, notification failure) are log lines, not errors, and never
// appear here.
var (
	ErrInvalidRequest    = errors.New("invalid request")
	ErrFetch             = errors.New("repository fetch failed")
	ErrExtraction        = errors.New("archive extraction failed")
	ErrScan              = errors.New("component scan failed")
	ErrMalformedDocument = errors.New("malformed document")
	ErrEnrichment        = errors.New("metadata enrichment failed")
	ErrPublish           = errors.New("artifact publish failed")
)

var exitCodes = []struct {
	err  error
	code int
}{
	{ErrInvalidRequest, 1},
	{ErrFetch, 2},
	{ErrExtraction, 3},
	{ErrScan, 4},
	{ErrMalformedDocument, 5},
	{ErrEnrichment, 6},
	{ErrPublish, 7},
}

// ExitCode maps a pipeline failure to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	for _, candidate := range exitCodes {
		if errors.Is(err, candidate.err) {
			return candidate.code
		}
	}
	return 9
}
