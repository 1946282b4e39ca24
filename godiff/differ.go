// Package godiff renders line diffs using the go-diff library.
package godiff

import (
	"fmt"
	"strings"

	"github.com/fwojciec/themecheck"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Compile-time interface verification.
var _ themecheck.TextDiffer = (*Differ)(nil)

// Differ computes line-level diffs.
type Differ struct{}

// NewDiffer creates a new Differ.
func NewDiffer() *Differ {
	return &Differ{}
}

// Diff returns the changed lines of newText relative to oldText. Each run
// of changes is headed by "@@ line N @@", where N is the first affected
// line of newText; removed lines are prefixed with "-" and added lines
// with "+".
func (d *Differ) Diff(oldText, newText string) string {
	if oldText == newText {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	line := 1
	inHunk := false
	for _, df := range diffs {
		text := splitLines(df.Text)
		switch df.Type {
		case diffmatchpatch.DiffEqual:
			line += len(text)
			inHunk = false
		case diffmatchpatch.DiffDelete:
			if !inHunk {
				fmt.Fprintf(&out, "@@ line %d @@\n", line)
				inHunk = true
			}
			writeLines(&out, "-", text)
		case diffmatchpatch.DiffInsert:
			if !inHunk {
				fmt.Fprintf(&out, "@@ line %d @@\n", line)
				inHunk = true
			}
			writeLines(&out, "+", text)
			line += len(text)
		}
	}
	return out.String()
}

func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func writeLines(b *strings.Builder, prefix string, lines []string) {
	for _, l := range lines {
		b.WriteString(prefix)
		b.WriteString(l)
		if !strings.HasSuffix(l, "\n") {
			b.WriteString("\n")
		}
	}
}
