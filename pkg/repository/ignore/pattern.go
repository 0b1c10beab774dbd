// Package ignore reads .gitprojectignore and decides which working-tree paths
// AddAll skips.
package ignore

import (
	"path"
	"regexp"
	"strings"

	"github.com/utkarsh5026/gitproject/pkg/repository/scpath"
)

const (
	NegationPrefix  = '!'
	DirectorySuffix = '/'
	RootedPrefix    = '/'
	CommentPrefix   = '#'
)

// Pattern is one line of an ignore file.
//
// Pattern Rules:
//   - Blank lines and lines starting with # are skipped
//   - ! prefix re-includes paths matched by other patterns
//   - / suffix matches only directories
//   - / prefix anchors the pattern at the working-tree root
//   - ** matches across directories, * and ? stop at /
//
// Examples:
//   - *.log         ignore all .log files
//   - build/        ignore build directories
//   - /TODO         ignore TODO in the root only
//   - !keep.log     do not ignore keep.log
type Pattern struct {
	Pattern    string
	IsNegation bool
	IsDirOnly  bool
	IsRooted   bool
	LineNumber int
}

// FromLine parses a line. It returns nil for blank lines and comments.
func FromLine(line string, lineNumber int) *Pattern {
	line = strings.TrimRight(line, " \t\r")
	if line == "" || line[0] == CommentPrefix {
		return nil
	}

	p := &Pattern{LineNumber: lineNumber}
	if after, ok := strings.CutPrefix(line, string(NegationPrefix)); ok {
		p.IsNegation = true
		line = after
	}
	if before, ok := strings.CutSuffix(line, string(DirectorySuffix)); ok {
		p.IsDirOnly = true
		line = before
	}
	if after, ok := strings.CutPrefix(line, string(RootedPrefix)); ok {
		p.IsRooted = true
		line = after
	}
	p.Pattern = line
	if p.Pattern == "" {
		return nil
	}
	return p
}

// Matches checks relPath, relative to the working-tree root.
func (p *Pattern) Matches(relPath string, isDir bool) bool {
	rp := scpath.RelativePath(relPath).Normalize()
	if p.IsDirOnly && !isDir {
		return false
	}
	if p.IsRooted {
		return matchPattern(string(rp), p.Pattern)
	}

	segments := rp.Components()
	for i := range segments {
		if matchPattern(strings.Join(segments[i:], "/"), p.Pattern) {
			return true
		}
	}
	return false
}

func matchPattern(rel, pattern string) bool {
	if !strings.ContainsAny(pattern, "*?[") {
		return rel == pattern
	}
	if strings.Contains(pattern, "**") {
		matched, _ := regexp.MatchString(globToRegex(pattern), rel)
		return matched
	}
	matched, e := path.Match(pattern, rel)
	return e == nil && matched
}

func globToRegex(pattern string) string {
	pattern = regexp.QuoteMeta(pattern)
	pattern = strings.ReplaceAll(pattern, `\*\*/`, "(.*/)?")
	pattern = strings.ReplaceAll(pattern, `\*\*`, ".*")
	pattern = strings.ReplaceAll(pattern, `\*`, "[^/]*")
	pattern = strings.ReplaceAll(pattern, `\?`, "[^/]")
	return "^" + pattern + "$"
}
