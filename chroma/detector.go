package chroma

import (
	"path/filepath"

	"github.com/alecthomas/chroma/v2/lexers"
)

// DefaultLanguage is used when a path matches no lexer.
const DefaultLanguage = "JavaScript"

// Detector detects source languages from file paths using chroma.
type Detector struct{}

// NewDetector creates a new chroma-based language detector.
func NewDetector() *Detector {
	return &Detector{}
}

// DetectFromPath returns the language name for the given path, or
// DefaultLanguage if the language cannot be determined.
func (d *Detector) DetectFromPath(path string) string {
	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		return DefaultLanguage
	}
	return lexer.Config().Name
}
