package snapshot

import (
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"text/template"

	"github.com/fwojciec/themecheck"
	"github.com/fwojciec/themecheck/jsobject"
)

//go:embed template.js.tmpl
var templateText string

var tmpl = template.Must(template.New("snapshot").Funcs(template.FuncMap{
	"js": func(s string) string {
		return jsobject.Quote(s, '\'')
	},
	"num": func(f float64) string {
		return strconv.FormatFloat(f, 'f', -1, 64)
	},
}).Parse(templateText))

// TemplateData fills the default snapshot template.
type TemplateData struct {
	Source          string // Path of the authoritative source, for the header
	Identifier      string // Theme declaration, e.g. "THEMES"
	PairsIdentifier string // Pair declaration, e.g. "COLOR_PAIRS"
	Pairs           []themecheck.ColorPair
}

// Template renders a fresh snapshot template. It holds the placeholder in
// place of the theme declaration, followed by the color pairs.
func Template(data TemplateData) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render snapshot template: %w", err)
	}
	return buf.Bytes(), nil
}
