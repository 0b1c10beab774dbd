package internal

import (
	"github.com/utkarsh5026/gitproject/pkg/objects"
	"github.com/utkarsh5026/gitproject/pkg/repository/scpath"
)

// ActionType represents the type of file operation to perform
type ActionType int

const (
	// ActionCreateDir creates a directory, which may be empty
	ActionCreateDir ActionType = iota
	// ActionWriteFile writes a blob's content to a file
	ActionWriteFile
)

// String returns the string representation of the action type
func (a ActionType) String() string {
	switch a {
	case ActionCreateDir:
		return "mkdir"
	case ActionWriteFile:
		return "write"
	default:
		return "unknown"
	}
}

// Operation represents a single step of materializing a tree.
type Operation struct {
	Path        scpath.RelativePath
	Action      ActionType
	Fingerprint objects.Fingerprint
	Content     []byte
}

// Plan is the complete, verified list of operations that reproduces a tree in
// an empty working directory. Operations are sorted by path, so a directory
// always precedes its contents.
type Plan struct {
	Tree       objects.Fingerprint
	Operations []Operation
}

// Counts returns the number of files and directories in the plan.
func (p *Plan) Counts() (files, dirs int) {
	for _, op := range p.Operations {
		if op.Action == ActionWriteFile {
			files++
		} else {
			dirs++
		}
	}
	return files, dirs
}
