// Package mock provides test doubles for themecheck interfaces.
package mock

import (
	"context"
	"io"

	"github.com/fwojciec/themecheck"
)

// Compile-time interface verification.
var (
	_ themecheck.ThemeLoader  = (*ThemeLoader)(nil)
	_ themecheck.AuditRunner  = (*AuditRunner)(nil)
	_ themecheck.ReportWriter = (*ReportWriter)(nil)
	_ themecheck.TextDiffer   = (*TextDiffer)(nil)
	_ themecheck.Highlighter  = (*Highlighter)(nil)
	_ themecheck.Watcher      = (*Watcher)(nil)
)

// ThemeLoader is a mock implementation of themecheck.ThemeLoader.
type ThemeLoader struct {
	LoadFn func(data []byte) (*themecheck.Registry, error)
}

func (l *ThemeLoader) Load(data []byte) (*themecheck.Registry, error) {
	return l.LoadFn(data)
}

// AuditRunner is a mock implementation of themecheck.AuditRunner.
type AuditRunner struct {
	RunFn func(ctx context.Context, snapshotPath, sourcePath string) (int, error)
}

func (r *AuditRunner) Run(ctx context.Context, snapshotPath, sourcePath string) (int, error) {
	return r.RunFn(ctx, snapshotPath, sourcePath)
}

// ReportWriter is a mock implementation of themecheck.ReportWriter.
type ReportWriter struct {
	WriteReportFn func(w io.Writer, report *themecheck.AuditReport) error
}

func (r *ReportWriter) WriteReport(w io.Writer, report *themecheck.AuditReport) error {
	return r.WriteReportFn(w, report)
}

// TextDiffer is a mock implementation of themecheck.TextDiffer.
type TextDiffer struct {
	DiffFn func(oldText, newText string) string
}

func (d *TextDiffer) Diff(oldText, newText string) string {
	return d.DiffFn(oldText, newText)
}

// Highlighter is a mock implementation of themecheck.Highlighter.
type Highlighter struct {
	HighlightFn func(w io.Writer, source string) error
}

func (h *Highlighter) Highlight(w io.Writer, source string) error {
	return h.HighlightFn(w, source)
}

// Watcher is a mock implementation of themecheck.Watcher.
type Watcher struct {
	WatchFn func(ctx context.Context, path string, fn func() error) error
}

func (w *Watcher) Watch(ctx context.Context, path string, fn func() error) error {
	return w.WatchFn(ctx, path, fn)
}
