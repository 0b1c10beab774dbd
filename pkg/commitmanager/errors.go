package commitmanager

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyMessage indicates an empty commit summary was provided
	ErrEmptyMessage = errors.New("commit summary cannot be empty")

	// ErrNoChanges indicates no changes are staged for commit
	ErrNoChanges = errors.New("no changes staged for commit")
)

// CommitError represents an error that occurred during commit operations
type CommitError struct {
	Op      string // Operation that failed
	Err     error  // Underlying error
	Details string // Additional details
}

// Error implements the error interface
func (e *CommitError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("commit %s: %v (%s)", e.Op, e.Err, e.Details)
	}
	return fmt.Sprintf("commit %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *CommitError) Unwrap() error {
	return e.Err
}

// NewCommitError creates a new CommitError
func NewCommitError(op string, err error, details string) error {
	return &CommitError{
		Op:      op,
		Err:     err,
		Details: details,
	}
}
