// Package yaml encodes audit reports as YAML for machine consumption.
package yaml

import (
	"io"

	"github.com/fwojciec/themecheck"
	"gopkg.in/yaml.v3"
)

// Compile-time interface verification.
var _ themecheck.ReportWriter = (*Encoder)(nil)

// Encoder writes audit reports as YAML documents.
type Encoder struct {
	Indent int // Spaces per level; zero means 2
}

// NewEncoder creates an Encoder with two-space indentation.
func NewEncoder() *Encoder {
	return &Encoder{Indent: 2}
}

// Report is the YAML shape of an audit report.
type Report struct {
	Passed  bool          `yaml:"passed"`
	Summary Summary       `yaml:"summary"`
	Themes  []ThemeResult `yaml:"themes"`
}

// Summary is the YAML shape of the report totals.
type Summary struct {
	Themes          int `yaml:"themes"`
	CompliantThemes int `yaml:"compliant_themes"`
	Pairs           int `yaml:"pairs"`
	Passed          int `yaml:"passed"`
	Failed          int `yaml:"failed"`
	PassRate        int `yaml:"pass_rate"`
}

// ThemeResult is the YAML shape of one theme's results.
type ThemeResult struct {
	Name     string       `yaml:"name"`
	Display  string       `yaml:"display_name,omitempty"`
	Dark     bool         `yaml:"dark"`
	Passed   int          `yaml:"passed"`
	Total    int          `yaml:"total"`
	PassRate int          `yaml:"pass_rate"`
	Results  []PairResult `yaml:"results"`
}

// PairResult is the YAML shape of one pair check.
type PairResult struct {
	Label      string  `yaml:"label"`
	Foreground string  `yaml:"foreground"`
	Background string  `yaml:"background"`
	Ratio      float64 `yaml:"ratio"`
	Required   float64 `yaml:"required"`
	Large      bool    `yaml:"large,omitempty"`
	Pass       bool    `yaml:"pass"`
	Level      string  `yaml:"level"`
}

// WriteReport encodes report to w.
func (e *Encoder) WriteReport(w io.Writer, report *themecheck.AuditReport) error {
	enc := yaml.NewEncoder(w)
	indent := e.Indent
	if indent == 0 {
		indent = 2
	}
	enc.SetIndent(indent)
	if err := enc.Encode(NewReport(report)); err != nil {
		return err
	}
	return enc.Close()
}

// NewReport converts an audit report to its YAML shape.
func NewReport(report *themecheck.AuditReport) Report {
	sum := report.Summary()
	out := Report{
		Passed: report.Passed,
		Summary: Summary{
			Themes:          sum.Themes,
			CompliantThemes: sum.CompliantThemes,
			Pairs:           sum.Pairs,
			Passed:          sum.Passed,
			Failed:          sum.Failed,
			PassRate:        sum.PassRate,
		},
		Themes: []ThemeResult{},
	}

	byTheme := make(map[string][]PairResult)
	for _, r := range report.Results {
		byTheme[r.Theme] = append(byTheme[r.Theme], PairResult{
			Label:      r.Pair.Label,
			Foreground: r.Pair.Foreground,
			Background: r.Pair.Background,
			Ratio:      r.Ratio,
			Required:   r.Pair.Required,
			Large:      r.Pair.Large,
			Pass:       r.Pass,
			Level:      string(r.Level),
		})
	}
	for _, ts := range report.ThemeSummaries() {
		out.Themes = append(out.Themes, ThemeResult{
			Name:     ts.Theme.Name,
			Display:  ts.Theme.DisplayName,
			Dark:     ts.Theme.Dark,
			Passed:   ts.Passed,
			Total:    ts.Total,
			PassRate: ts.PassRate(),
			Results:  byTheme[ts.Theme.Name],
		})
	}
	return out
}
