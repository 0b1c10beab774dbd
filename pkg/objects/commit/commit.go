// Package commit implements commit objects and the child-linking protocol.
package commit

import (
	"fmt"
	"strings"
	"time"

	"github.com/utkarsh5026/gitproject/pkg/common/err"
	"github.com/utkarsh5026/gitproject/pkg/objects"
	"github.com/utkarsh5026/gitproject/pkg/store"
)

const pkgName = "commit"

// DateFormat is the layout of the date field (YYYY/MM/DD).
const DateFormat = "2006/01/02"

// payloadFields is the number of newline-separated fields in a stored commit.
const payloadFields = 6

// Commit binds metadata to one tree snapshot and chains it to its parent.
//
// Stored payload, one field per line, summary last (it may span lines):
//
//	<tree fingerprint>
//	<parent fingerprint or empty>
//	<child fingerprint or empty>
//	<author>
//	<YYYY/MM/DD>
//	<summary>
//
// The fingerprint is computed over every field except Child, so a commit's
// identity is fixed before its successor exists. Child is filled in later by
// LinkChild, which rewrites the stored payload in place.
type Commit struct {
	Tree    objects.Fingerprint
	Parent  objects.Fingerprint
	Child   objects.Fingerprint
	Author  string
	Date    time.Time
	Summary string
}

// Validate checks that the commit can be serialized and parsed back.
func (c *Commit) Validate() error {
	if c.Tree.IsZero() {
		return err.New(pkgName, err.CodeInvalidInput, "Validate", "tree fingerprint is required", nil)
	}
	for _, f := range []objects.Fingerprint{c.Tree, c.Parent, c.Child} {
		if f.IsZero() {
			continue
		}
		if e := f.Validate(); e != nil {
			return err.New(pkgName, err.CodeInvalidInput, "Validate", "invalid fingerprint", e)
		}
	}
	if strings.ContainsAny(c.Author, "\n\r") {
		return err.New(pkgName, err.CodeInvalidInput, "Validate", "author must be a single line", nil)
	}
	if strings.TrimSpace(c.Summary) == "" {
		return err.New(pkgName, err.CodeInvalidInput, "Validate", "summary is required", nil)
	}
	return nil
}

// DateString returns the formatted date field.
func (c *Commit) DateString() string {
	return c.Date.Format(DateFormat)
}

// Fingerprint returns the commit's identity: the SHA-1 of tree, parent,
// author, date and summary. Child is excluded.
func (c *Commit) Fingerprint() objects.Fingerprint {
	identity := strings.Join([]string{
		c.Tree.String(),
		c.Parent.String(),
		c.Author,
		c.DateString(),
		c.Summary,
	}, "\n")
	return objects.ComputeFingerprint([]byte(identity))
}

// Serialize returns the stored payload, child field included.
func (c *Commit) Serialize() []byte {
	return []byte(strings.Join([]string{
		c.Tree.String(),
		c.Parent.String(),
		c.Child.String(),
		c.Author,
		c.DateString(),
		c.Summary,
	}, "\n"))
}

// IsRoot reports whether the commit has no parent.
func (c *Commit) IsRoot() bool {
	return c.Parent.IsZero()
}

func (c *Commit) String() string {
	return fmt.Sprintf("Commit{fingerprint: %s, tree: %s, parent: %s, child: %s}",
		c.Fingerprint().Short(), c.Tree.Short(), c.Parent.Short(), c.Child.Short())
}

// Parse decodes a stored payload.
func Parse(data []byte) (*Commit, error) {
	fields := strings.SplitN(string(data), "\n", payloadFields)
	if len(fields) != payloadFields {
		return nil, malformed(fmt.Sprintf("expected %d fields, got %d", payloadFields, len(fields)), nil)
	}

	tree, e := objects.ParseFingerprint(fields[0])
	if e != nil {
		return nil, malformed("invalid tree fingerprint", e)
	}
	parent, e := objects.ParseOptionalFingerprint(fields[1])
	if e != nil {
		return nil, malformed("invalid parent fingerprint", e)
	}
	child, e := objects.ParseOptionalFingerprint(fields[2])
	if e != nil {
		return nil, malformed("invalid child fingerprint", e)
	}
	date, e := time.Parse(DateFormat, fields[4])
	if e != nil {
		return nil, malformed("invalid date "+fields[4], e)
	}

	return &Commit{
		Tree:    tree,
		Parent:  parent,
		Child:   child,
		Author:  fields[3],
		Date:    date,
		Summary: fields[5],
	}, nil
}

// Write stores the commit under its identity fingerprint if absent.
func (c *Commit) Write(s store.ObjectStore) (objects.Fingerprint, error) {
	if e := c.Validate(); e != nil {
		return "", e
	}
	fp := c.Fingerprint()
	if e := s.PutAs(fp, c.Serialize()); e != nil {
		return "", e
	}
	return fp, nil
}

// Read loads the commit stored under fp.
func Read(s store.ObjectStore, fp objects.Fingerprint) (*Commit, error) {
	data, e := s.Get(fp)
	if e != nil {
		return nil, e
	}
	return Parse(data)
}

func malformed(message string, cause error) error {
	return err.New(pkgName, err.CodeMalformedRecord, "Parse", message, cause)
}
