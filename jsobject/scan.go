// Package jsobject locates and parses JavaScript object and array literals
// in source text.
//
// Only the literal subset used for data declarations is understood:
// objects, arrays, strings, numbers, booleans and null. Every parsed value
// records its byte span, so callers can rewrite a value in place without
// reformatting the rest of the text.
//
// Scanning for delimiters skips strings, comments and regular expression
// literals. A '/' starts a regular expression when the previous
// non-space byte is an operator or punctuator other than '<' and '>', and
// the literal closes on the same line; otherwise it is taken as division. Template
// literal substitutions are not interpreted.
package jsobject

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fwojciec/themecheck"
)

// scanner walks source text, skipping string literals and comments on
// request.
type scanner struct {
	src []byte
	pos int
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

// skipSpace advances past whitespace and comments.
func (s *scanner) skipSpace() error {
	for !s.eof() {
		switch c := s.src[s.pos]; {
		case isSpace(c):
			s.pos++
		case s.atComment():
			if err := s.skipComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

func (s *scanner) atComment() bool {
	if s.pos+1 >= len(s.src) || s.src[s.pos] != '/' {
		return false
	}
	next := s.src[s.pos+1]
	return next == '/' || next == '*'
}

// skipComment advances past the comment starting at pos.
func (s *scanner) skipComment() error {
	start := s.pos
	if s.src[s.pos+1] == '/' {
		for !s.eof() && s.src[s.pos] != '\n' {
			s.pos++
		}
		return nil
	}
	s.pos += 2
	for s.pos+1 < len(s.src) {
		if s.src[s.pos] == '*' && s.src[s.pos+1] == '/' {
			s.pos += 2
			return nil
		}
		s.pos++
	}
	return &SyntaxError{Offset: start, Msg: "unterminated block comment"}
}

// skipString advances past the string literal starting at pos. Template
// literal substitutions are not interpreted.
func (s *scanner) skipString() error {
	start := s.pos
	quote := s.src[s.pos]
	s.pos++
	for !s.eof() {
		c := s.src[s.pos]
		switch {
		case c == '\\':
			s.pos += 2
			continue
		case c == quote:
			s.pos++
			return nil
		case c == '\n' && quote != '`':
			return &SyntaxError{Offset: start, Msg: "newline in string literal"}
		}
		s.pos++
	}
	return &SyntaxError{Offset: start, Msg: "unterminated string literal"}
}

// atRegex reports whether the '/' at pos starts a regular expression
// literal rather than a division or a comment.
func (s *scanner) atRegex() bool {
	if s.peek() != '/' || s.atComment() {
		return false
	}
	i := s.pos - 1
	for i >= 0 && isSpace(s.src[i]) {
		i--
	}
	return i < 0 || strings.IndexByte("(,=:[!&|?{};+-*%~^", s.src[i]) >= 0
}

// skipRegex advances past the regular expression literal starting at pos,
// flags included. A '/' not closed on its own line is taken as division
// and only it is skipped.
func (s *scanner) skipRegex() {
	start := s.pos
	s.pos++
	inClass := false
	for !s.eof() {
		switch c := s.src[s.pos]; {
		case c == '\\':
			s.pos += 2
			continue
		case c == '\n':
			s.pos = start + 1
			return
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case c == '/' && !inClass:
			s.pos++
			for !s.eof() && isIdentPart(s.src[s.pos]) {
				s.pos++
			}
			return
		}
		s.pos++
	}
	s.pos = start + 1
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isQuote(c byte) bool {
	return c == '"' || c == '\'' || c == '`'
}

// FindBlockEnd returns the offset just past the delimiter that closes the
// '{' or '[' at open. Delimiters inside string literals and comments are
// ignored, and every opener must be closed by its own kind.
func FindBlockEnd(src []byte, open int) (int, error) {
	if open < 0 || open >= len(src) || (src[open] != '{' && src[open] != '[') {
		return 0, &SyntaxError{Offset: open, Msg: "expected { or ["}
	}

	s := &scanner{src: src, pos: open}
	var stack []byte
	for !s.eof() {
		c := s.src[s.pos]
		switch {
		case isQuote(c):
			if err := s.skipString(); err != nil {
				return 0, err
			}
			continue
		case s.atComment():
			if err := s.skipComment(); err != nil {
				return 0, err
			}
			continue
		case s.atRegex():
			s.skipRegex()
			continue
		case c == '{':
			stack = append(stack, '}')
		case c == '[':
			stack = append(stack, ']')
		case c == '}' || c == ']':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return 0, &SyntaxError{Offset: s.pos, Msg: fmt.Sprintf("unexpected %q", c)}
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return s.pos + 1, nil
			}
		}
		s.pos++
	}
	return 0, &SyntaxError{Offset: open, Msg: fmt.Sprintf("%q is never closed", src[open])}
}

// InCode reports whether offset lies outside every string literal and
// comment of src. An offset where a comment starts is in code.
func InCode(src []byte, offset int) bool {
	s := &scanner{src: src}
	for s.pos < offset && !s.eof() {
		c := s.src[s.pos]
		switch {
		case isQuote(c):
			if s.skipString() != nil {
				return false
			}
		case s.atComment():
			if s.skipComment() != nil {
				return false
			}
		case s.atRegex():
			s.skipRegex()
		default:
			s.pos++
			continue
		}
		if s.pos > offset {
			return false
		}
	}
	return s.pos == offset
}

// Declaration is a variable declaration whose initializer is an object or
// array literal.
type Declaration struct {
	Start    int    // Offset of the first keyword, "export" included
	Exported bool   // Declared with an export qualifier
	Keyword  string // "const", "let" or "var"
	Open     int    // Offset of the literal's opening delimiter
	End      int    // Offset just past the literal's closing delimiter
}

// Literal returns the literal's text within src.
func (d Declaration) Literal(src []byte) []byte {
	return src[d.Open:d.End]
}

func declarationPattern(identifier string) *regexp.Regexp {
	return regexp.MustCompile(`\b(?:(export)\s+)?(const|let|var)\s+` + regexp.QuoteMeta(identifier) + `\s*=`)
}

// FindDeclaration locates the first declaration of identifier in src that
// is not inside a string or comment, along with the literal it is
// initialized with: the first open delimiter after the '='. The literal
// must be balanced.
func FindDeclaration(src []byte, identifier string, open byte) (Declaration, error) {
	for _, m := range declarationPattern(identifier).FindAllSubmatchIndex(src, -1) {
		if !InCode(src, m[0]) {
			continue
		}

		d := Declaration{
			Start:    m[0],
			Exported: m[2] >= 0,
			Keyword:  string(src[m[4]:m[5]]),
		}
		at, err := findOpen(src, m[1], open)
		if err != nil {
			return Declaration{}, &themecheck.ExtractionError{Identifier: identifier, Reason: err.Error()}
		}
		end, err := FindBlockEnd(src, at)
		if err != nil {
			return Declaration{}, &themecheck.ExtractionError{Identifier: identifier, Reason: err.Error()}
		}
		d.Open, d.End = at, end
		return d, nil
	}
	return Declaration{}, &themecheck.ExtractionError{Identifier: identifier, Reason: "declaration not found"}
}

// HasDeclaration reports whether src declares identifier outside strings
// and comments.
func HasDeclaration(src []byte, identifier string) bool {
	for _, m := range declarationPattern(identifier).FindAllIndex(src, -1) {
		if InCode(src, m[0]) {
			return true
		}
	}
	return false
}

// findOpen returns the offset of the first open delimiter at or after
// from, outside strings and comments.
func findOpen(src []byte, from int, open byte) (int, error) {
	s := &scanner{src: src, pos: from}
	for !s.eof() {
		c := s.src[s.pos]
		switch {
		case c == open:
			return s.pos, nil
		case c == ';':
			return 0, fmt.Errorf("no %q before end of statement", open)
		case isQuote(c):
			if err := s.skipString(); err != nil {
				return 0, err
			}
		case s.atComment():
			if err := s.skipComment(); err != nil {
				return 0, err
			}
		case s.atRegex():
			s.skipRegex()
		default:
			s.pos++
		}
	}
	return 0, fmt.Errorf("no %q after declaration", open)
}

// SyntaxError reports text the scanner or parser could not accept.
type SyntaxError struct {
	Offset int
	Msg    string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Msg)
}
