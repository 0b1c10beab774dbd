package commitmanager

import (
	"strings"
	"time"

	"github.com/utkarsh5026/gitproject/pkg/objects/commit"
)

// CommitOptions contains configuration for creating a commit
type CommitOptions struct {
	// Summary is the commit message (required)
	Summary string

	// Author is the commit author (optional, defaults to the configured user)
	Author *commit.Person

	// Date is the commit date (optional, defaults to now)
	Date time.Time

	// AllowEmpty allows creating a commit with an empty index
	AllowEmpty bool

	// Strict rejects edits and deletions that no ancestor tree can resolve
	// instead of dropping them.
	Strict bool
}

// Validate validates CommitOptions
func (opts *CommitOptions) Validate() error {
	if strings.TrimSpace(opts.Summary) == "" {
		return NewCommitError("validate options", ErrEmptyMessage, "")
	}
	return nil
}
