package ui

import (
	"fmt"
	"strings"
)

// ChangeKind is the kind of a staged change as shown to the user.
type ChangeKind int

const (
	ChangeAdded ChangeKind = iota
	ChangeEdited
	ChangeDeleted
)

// FormatChange formats a staged path with the icon and color of its kind.
func FormatChange(kind ChangeKind, path string) string {
	switch kind {
	case ChangeAdded:
		return fmt.Sprintf("  %s  %s", AddedStyle.Render(IconAdded), AddedStyle.Render(path))
	case ChangeEdited:
		return fmt.Sprintf("  %s  %s", EditedStyle.Render(IconEdited), EditedStyle.Render(path))
	case ChangeDeleted:
		return fmt.Sprintf("  %s  %s", DeletedStyle.Render(IconDeleted), DeletedStyle.Render(path))
	default:
		return path
	}
}

// SuccessMessage creates a success message with a checkmark icon
func SuccessMessage(message string, details ...string) string {
	parts := []string{Green(IconCheck), Green(message)}
	for _, detail := range details {
		parts = append(parts, Blue(detail))
	}
	return strings.Join(parts, " ")
}

// HeadInfo formats the HEAD pointer. An empty fingerprint means no commits.
func HeadInfo(fingerprint string) string {
	if fingerprint == "" {
		return fmt.Sprintf("%s HEAD: %s", Cyan(IconHead), Dim("no commits yet"))
	}
	return fmt.Sprintf("%s HEAD: %s", Cyan(IconHead), Yellow(fingerprint))
}

// CommitInfo is the display form of a commit.
type CommitInfo struct {
	Fingerprint string
	Tree        string
	Author      string
	Date        string
	Summary     string
}

// FormatCommitDetailed formats a commit with full details in a box
func FormatCommitDetailed(c CommitInfo) string {
	var content strings.Builder
	fmt.Fprintf(&content, "%s %s\n", Yellow(IconCommit), Yellow(c.Fingerprint))
	fmt.Fprintf(&content, "%s %s\n", Dim(IconTree), Dim(c.Tree))
	fmt.Fprintf(&content, "%s %s\n", Cyan(IconAuthor), Cyan(c.Author))
	fmt.Fprintf(&content, "%s %s\n\n", Magenta(IconDate), Magenta(c.Date))
	content.WriteString(c.Summary)
	return CommitBox(content.String())
}

// FormatCommitSeparator creates a separator between commits
func FormatCommitSeparator() string {
	return Dim("  " + IconSeparator)
}

// ErrorMessage formats an error message in red
func ErrorMessage(message string) string {
	return Red(message)
}

// WarningMessage formats a warning message in yellow
func WarningMessage(message string) string {
	return Yellow(message)
}
