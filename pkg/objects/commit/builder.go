package commit

import (
	"errors"
	"time"

	"github.com/utkarsh5026/gitproject/pkg/common/err"
	"github.com/utkarsh5026/gitproject/pkg/objects"
)

// CommitBuilder provides a fluent interface for building commits
type CommitBuilder struct {
	commit *Commit
	errs   []error
}

// NewCommitBuilder creates a new CommitBuilder
func NewCommitBuilder() *CommitBuilder {
	return &CommitBuilder{commit: &Commit{}}
}

// Tree sets the tree fingerprint for the commit
func (b *CommitBuilder) Tree(fp objects.Fingerprint) *CommitBuilder {
	if e := fp.Validate(); e != nil {
		b.errs = append(b.errs, e)
	} else {
		b.commit.Tree = fp
	}
	return b
}

// Parent sets the parent commit. "" marks a root commit.
func (b *CommitBuilder) Parent(fp objects.Fingerprint) *CommitBuilder {
	if fp.IsZero() {
		b.commit.Parent = ""
		return b
	}
	if e := fp.Validate(); e != nil {
		b.errs = append(b.errs, e)
	} else {
		b.commit.Parent = fp
	}
	return b
}

// Author sets the author of the commit
func (b *CommitBuilder) Author(author *Person) *CommitBuilder {
	if author == nil {
		b.errs = append(b.errs, err.New(pkgName, err.CodeInvalidInput, "Author", "author cannot be nil", nil))
	} else {
		b.commit.Author = author.String()
	}
	return b
}

// Date sets the commit date. Only the calendar day is recorded.
func (b *CommitBuilder) Date(when time.Time) *CommitBuilder {
	b.commit.Date = when
	return b
}

// Summary sets the commit summary
func (b *CommitBuilder) Summary(summary string) *CommitBuilder {
	b.commit.Summary = summary
	return b
}

// Build creates the Commit, returning an error if validation fails
func (b *CommitBuilder) Build() (*Commit, error) {
	if len(b.errs) > 0 {
		return nil, err.New(pkgName, err.CodeInvalidInput, "Build", "commit builder errors", errors.Join(b.errs...))
	}
	if b.commit.Date.IsZero() {
		b.commit.Date = time.Now()
	}
	if e := b.commit.Validate(); e != nil {
		return nil, e
	}
	c := *b.commit
	return &c, nil
}
