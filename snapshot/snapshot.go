// Package snapshot keeps a standalone audit snapshot of a theme literal in
// sync with the source file that declares it.
package snapshot

import (
	"bytes"

	"github.com/fwojciec/themecheck"
	"github.com/fwojciec/themecheck/jsobject"
)

// Placeholder marks where Embed inserts the theme declaration in a fresh
// template.
const Placeholder = "/*@THEMES@*/"

// Block is a theme literal extracted from source text.
type Block struct {
	Identifier string // Declared name, e.g. "THEMES"
	Text       []byte // The literal, braces included
	Start      int    // Offset of the literal's opening brace
	End        int    // Offset just past its closing brace
}

// Extract returns the object literal declared as identifier in source. The
// literal runs from the first brace after the declaration to its matching
// close, however deeply it nests.
func Extract(source []byte, identifier string) (Block, error) {
	d, err := jsobject.FindDeclaration(source, identifier, '{')
	if err != nil {
		return Block{}, err
	}
	return Block{
		Identifier: identifier,
		Text:       bytes.Clone(d.Literal(source)),
		Start:      d.Open,
		End:        d.End,
	}, nil
}

// Embed places block into template as an unexported const declaration.
// A declaration a previous Embed produced is located and replaced;
// otherwise the placeholder is substituted. Only a placeholder outside
// strings and comments counts, so theme data carrying the token is never
// rewritten. Embedding the block extracted from a generated snapshot into
// that same snapshot returns it unchanged.
func Embed(block Block, template []byte) ([]byte, error) {
	decl := declaration(block)

	if jsobject.HasDeclaration(template, block.Identifier) {
		d, err := jsobject.FindDeclaration(template, block.Identifier, '{')
		if err != nil {
			return nil, err
		}
		return concat(template[:d.Start], decl, template[d.End:]), nil
	}

	if i := placeholderIndex(template); i >= 0 {
		return concat(template[:i], decl, template[i+len(Placeholder):]), nil
	}
	return nil, &themecheck.ExtractionError{
		Identifier: block.Identifier,
		Reason:     "template has neither a declaration nor the " + Placeholder + " placeholder",
	}
}

// placeholderIndex returns the offset of the first placeholder in code, or
// -1.
func placeholderIndex(template []byte) int {
	for from := 0; from < len(template); {
		i := bytes.Index(template[from:], []byte(Placeholder))
		if i < 0 {
			return -1
		}
		if jsobject.InCode(template, from+i) {
			return from + i
		}
		from += i + 1
	}
	return -1
}

func declaration(block Block) []byte {
	decl := make([]byte, 0, len(block.Text)+len(block.Identifier)+10)
	decl = append(decl, "const "...)
	decl = append(decl, block.Identifier...)
	decl = append(decl, " = "...)
	return append(decl, block.Text...)
}

// Splice replaces the literal declared as block.Identifier in source with
// block's text. Everything outside the literal is kept byte for byte.
func Splice(source []byte, block Block) ([]byte, error) {
	d, err := jsobject.FindDeclaration(source, block.Identifier, '{')
	if err != nil {
		return nil, err
	}
	return concat(source[:d.Open], block.Text, source[d.End:]), nil
}

// Derive returns source with its theme literal replaced by the one in
// generated.
func Derive(generated, source []byte, identifier string) ([]byte, error) {
	block, err := Extract(generated, identifier)
	if err != nil {
		return nil, err
	}
	return Splice(source, block)
}

func concat(parts ...[]byte) []byte {
	var n int
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Themes parses the block into themes.
func (b Block) Themes(metadataKeys []string) ([]themecheck.Theme, error) {
	v, err := jsobject.Parse(b.Text, 0)
	if err != nil {
		return nil, &themecheck.ExtractionError{Identifier: b.Identifier, Reason: "malformed literal: " + err.Error()}
	}
	return jsobject.DecodeThemes(b.Text, v, b.Identifier, metadataKeys)
}
