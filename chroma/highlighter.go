// Package chroma provides syntax highlighting using the chroma library.
package chroma

import (
	"errors"
	"io"
	"strings"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/themecheck"
)

// Compile-time interface verification.
var _ themecheck.Highlighter = (*Highlighter)(nil)

// StyleFunc maps chroma token types to terminal styles.
type StyleFunc func(chromalib.TokenType) lipgloss.Style

// Highlighter writes source code with terminal syntax highlighting.
type Highlighter struct {
	language  string
	styleFunc StyleFunc
}

// NewHighlighter creates a highlighter for the named chroma language.
// Use StyleFromPalette to create a style function.
func NewHighlighter(language string, styleFunc StyleFunc) (*Highlighter, error) {
	if styleFunc == nil {
		return nil, errors.New("chroma: styleFunc cannot be nil")
	}
	return &Highlighter{language: language, styleFunc: styleFunc}, nil
}

// Highlight writes source to w. Unknown languages fall back to plain
// text.
func (h *Highlighter) Highlight(w io.Writer, source string) error {
	lexer := lexers.Get(h.language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	// Coalesce for better performance with consecutive tokens of the same type
	lexer = chromalib.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return err
	}

	var b strings.Builder
	for token := iterator(); token != chromalib.EOF; token = iterator() {
		style := h.styleFunc(token.Type)
		// Render line by line; lipgloss pads multi-line blocks to a common width.
		parts := strings.Split(token.Value, "\n")
		for i, part := range parts {
			if part != "" {
				b.WriteString(style.Render(part))
			}
			if i < len(parts)-1 {
				b.WriteByte('\n')
			}
		}
	}

	_, err = io.WriteString(w, b.String())
	return err
}
