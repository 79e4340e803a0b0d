package operations

import (
	"fmt"
	"strings"
)

const defaultReference = `main`

// JobRequest is the immutable input to one pipeline run.
type JobRequest struct {
	Owner       string
	Name        string
	Ref         string
	CallbackURL string
	SbomID      string
}

// Validate rejects requests that miss the repository identity, before
// any network or disk work happens. A missing reference silently
// becomes the default branch name.
func (it *JobRequest) Validate() error {
	if len(strings.TrimSpace(it.Owner)) == 0 {
		return fmt.Errorf("%w: source repository owner is required", ErrInvalidRequest)
	}
	if len(strings.TrimSpace(it.Name)) == 0 {
		return fmt.Errorf("%w: source repository name is required", ErrInvalidRequest)
	}
	if len(strings.TrimSpace(it.Ref)) == 0 {
		it.Ref = defaultReference
	}
	return nil
}

func (it *JobRequest) Repository() string {
	return fmt.Sprintf("%s/%s", it.Owner, it.Name)
}
