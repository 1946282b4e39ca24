// Package themecheck provides domain types for auditing color themes against
// WCAG contrast requirements and keeping an audit snapshot in sync with the
// authoritative theme source.
package themecheck

import (
	"context"
	"io"
)

// Registry is the in-memory theme data for one audit run.
type Registry struct {
	Themes []Theme     // Declaration order
	Pairs  []ColorPair // Nil when the loaded text carries no pair list
}

// Theme returns the theme with the given name.
func (r *Registry) Theme(name string) (Theme, bool) {
	for _, t := range r.Themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// ThemeLoader builds a Registry from theme source text.
type ThemeLoader interface {
	Load(data []byte) (*Registry, error)
}

// AuditRunner runs an audit as a separate process.
type AuditRunner interface {
	// Run blocks until the audit exits and returns its exit code.
	// A nonzero code is an audit failure, not an error; err is reserved
	// for failures to execute the audit at all.
	Run(ctx context.Context, snapshotPath, sourcePath string) (int, error)
}

// ReportWriter renders an audit report.
type ReportWriter interface {
	WriteReport(w io.Writer, report *AuditReport) error
}

// TextDiffer renders the line differences between two texts.
type TextDiffer interface {
	// Diff returns an empty string when the texts are equal.
	Diff(oldText, newText string) string
}

// Highlighter writes syntax-highlighted source code.
type Highlighter interface {
	Highlight(w io.Writer, source string) error
}

// Watcher calls fn each time the file at path changes.
type Watcher interface {
	// Watch blocks until ctx is done or fn returns an error.
	Watch(ctx context.Context, path string, fn func() error) error
}
