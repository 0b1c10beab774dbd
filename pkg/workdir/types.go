package workdir

import (
	"github.com/utkarsh5026/gitproject/pkg/objects"
	"github.com/utkarsh5026/gitproject/pkg/workdir/internal"
)

// Re-export types from internal package for public API
type (
	// ActionType represents the type of file operation to perform
	ActionType = internal.ActionType

	// Operation represents a single step of materializing a tree.
	Operation = internal.Operation
)

const (
	ActionCreateDir = internal.ActionCreateDir
	ActionWriteFile = internal.ActionWriteFile
)

// CheckoutResult describes a completed (or planned) checkout.
type CheckoutResult struct {
	Commit       objects.Fingerprint
	Tree         objects.Fingerprint
	FilesWritten int
	DirsCreated  int
	Removed      []string    // Top-level names cleared from the working directory
	Operations   []Operation // Every planned operation, in application order
	DryRun       bool
}

// checkoutConfig holds configuration for checkout operations
type checkoutConfig struct {
	dryRun     bool
	onProgress func(completed, total int, currentFile string)
}

type Option func(*checkoutConfig)

// WithDryRun plans and verifies the checkout without modifying anything
func WithDryRun() Option {
	return func(c *checkoutConfig) {
		c.dryRun = true
	}
}

// WithProgress sets a progress callback
func WithProgress(fn func(completed, total int, currentFile string)) Option {
	return func(c *checkoutConfig) {
		c.onProgress = fn
	}
}
