package jsobject

import (
	"fmt"

	"github.com/fwojciec/themecheck"
)

// Ensure Loader implements themecheck.ThemeLoader.
var _ themecheck.ThemeLoader = (*Loader)(nil)

// Loader reads themes, and optionally color pairs, from declarations in
// JavaScript source text.
type Loader struct {
	Identifier      string   // Theme object declaration, e.g. "THEMES"
	PairsIdentifier string   // Pair array declaration; empty to skip
	MetadataKeys    []string // Non-role keys of a theme's colors
	Policy          themecheck.LevelPolicy
}

// NewLoader returns a Loader for the given theme identifier with the
// default level policy.
func NewLoader(identifier string) *Loader {
	return &Loader{
		Identifier: identifier,
		Policy:     themecheck.DefaultLevelPolicy(),
	}
}

// Load extracts and decodes the declarations. Pairs is nil when the text
// does not declare PairsIdentifier.
func (l *Loader) Load(data []byte) (*themecheck.Registry, error) {
	_, v, err := ParseDeclaration(data, l.Identifier, '{')
	if err != nil {
		return nil, err
	}
	themes, err := DecodeThemes(data, v, l.Identifier, l.MetadataKeys)
	if err != nil {
		return nil, err
	}
	reg := &themecheck.Registry{Themes: themes}

	if l.PairsIdentifier == "" || !HasDeclaration(data, l.PairsIdentifier) {
		return reg, nil
	}
	_, pv, err := ParseDeclaration(data, l.PairsIdentifier, '[')
	if err != nil {
		return nil, err
	}
	if reg.Pairs, err = DecodePairs(pv, l.PairsIdentifier, l.Policy); err != nil {
		return nil, err
	}
	return reg, nil
}

// ParseDeclaration finds and parses the literal declared as identifier.
// Parse failures are reported as an ExtractionError.
func ParseDeclaration(data []byte, identifier string, open byte) (Declaration, *Value, error) {
	d, err := FindDeclaration(data, identifier, open)
	if err != nil {
		return Declaration{}, nil, err
	}
	v, err := Parse(data, d.Open)
	if err != nil {
		return Declaration{}, nil, &themecheck.ExtractionError{Identifier: identifier, Reason: fmt.Sprintf("malformed literal: %v", err)}
	}
	return d, v, nil
}
