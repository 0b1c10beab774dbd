package ignore

import (
	"strings"

	"github.com/utkarsh5026/gitproject/pkg/common/err"
	"github.com/utkarsh5026/gitproject/pkg/fsio"
)

// PatternSet is a collection of ignore patterns.
type PatternSet struct {
	patterns         []*Pattern
	negationPatterns []*Pattern
}

// NewPatternSet creates a new empty pattern set
func NewPatternSet() *PatternSet {
	return &PatternSet{}
}

// Load reads the ignore file at path. A missing file yields an empty set.
func Load(fs fsio.FS, path string) (*PatternSet, error) {
	ps := NewPatternSet()
	data, e := fs.ReadFile(path)
	if e != nil {
		if fsio.IsNotExist(e) {
			return ps, nil
		}
		return nil, err.New("ignore", err.CodeIOFailure, "Load", "failed to read "+path, e)
	}
	ps.AddPatternsFromText(string(data))
	return ps, nil
}

// Add adds a pattern to the set
func (ps *PatternSet) Add(p *Pattern) {
	if p.IsNegation {
		ps.negationPatterns = append(ps.negationPatterns, p)
	} else {
		ps.patterns = append(ps.patterns, p)
	}
}

// AddPatternsFromText parses text and adds all valid patterns to the set
func (ps *PatternSet) AddPatternsFromText(text string) {
	for i, line := range strings.Split(text, "\n") {
		if p := FromLine(line, i+1); p != nil {
			ps.Add(p)
		}
	}
}

// IsIgnored reports whether relPath is matched by an ignore pattern and by
// no negation pattern.
func (ps *PatternSet) IsIgnored(relPath string, isDir bool) bool {
	ignored := false
	for _, p := range ps.patterns {
		if p.Matches(relPath, isDir) {
			ignored = true
			break
		}
	}
	if !ignored {
		return false
	}
	for _, p := range ps.negationPatterns {
		if p.Matches(relPath, isDir) {
			return false
		}
	}
	return true
}

// Len returns the number of patterns, negations included.
func (ps *PatternSet) Len() int {
	return len(ps.patterns) + len(ps.negationPatterns)
}
