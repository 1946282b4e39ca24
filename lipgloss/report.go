package lipgloss

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/themecheck"
)

// Compile-time interface verification.
var _ themecheck.ReportWriter = (*Reporter)(nil)

const ruleWidth = 60

// Reporter writes a human-readable audit report.
type Reporter struct {
	styles styles
}

// NewReporter creates a Reporter that styles output with r.
func NewReporter(r *lipgloss.Renderer, p Palette) *Reporter {
	return &Reporter{styles: newStyles(r, p)}
}

// WriteReport writes the per-theme results, the overall summary, every
// failure and a closing verdict.
func (rep *Reporter) WriteReport(w io.Writer, report *themecheck.AuditReport) error {
	var b strings.Builder
	s := rep.styles

	b.WriteString(s.banner.Render(s.heading.Render("WCAG 2.x Contrast Audit")))
	b.WriteString("\n\n")

	for _, ts := range report.ThemeSummaries() {
		mark := s.pass.Render("✓")
		if !ts.Compliant() {
			mark = s.fail.Render("✗")
		}
		fmt.Fprintf(&b, "%s %s %s\n", mark, s.accent.Render(ts.Theme.Name), s.muted.Render("("+ts.Theme.DisplayName+", "+ts.Theme.Polarity()+")"))
		fmt.Fprintf(&b, "   Pass Rate: %d%% (%d/%d)\n", ts.PassRate(), ts.Passed, ts.Total)
		for _, f := range ts.Failures {
			fmt.Fprintf(&b, "   %s %s\n", s.fail.Render("✗"), f.Pair.Label)
			fmt.Fprintf(&b, "      Ratio: %.2f:1 < Required: %s:1\n", f.Ratio, formatRatio(f.Pair.Required))
			b.WriteString(s.muted.Render("      "+hint(f)) + "\n")
		}
		b.WriteString("\n")
	}

	sum := report.Summary()
	rule := s.muted.Render(strings.Repeat("─", ruleWidth))
	b.WriteString(s.heading.Render("Overall Summary") + "\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Total Themes Audited: %d\n", sum.Themes)
	fmt.Fprintf(&b, "Compliant Themes:     %d %s\n", sum.CompliantThemes, s.pass.Render("✓"))
	fmt.Fprintf(&b, "Non-Compliant Themes: %d %s\n", sum.Themes-sum.CompliantThemes, s.fail.Render("✗"))
	fmt.Fprintf(&b, "Overall Pass Rate:    %d%%\n", sum.PassRate)
	fmt.Fprintf(&b, "Color Pairs Tested:   %d\n", sum.Pairs)
	fmt.Fprintf(&b, "Passed:               %d\n", sum.Passed)
	fmt.Fprintf(&b, "Failed:               %d\n\n", sum.Failed)

	if failures := report.Failures(); len(failures) > 0 {
		b.WriteString(s.warn.Render("Critical Issues Summary") + "\n")
		b.WriteString(rule + "\n")
		for i, f := range failures {
			fmt.Fprintf(&b, "%d. %s - %s\n", i+1, f.Theme, f.Pair.Label)
			fmt.Fprintf(&b, "   %.2f:1 < %s:1\n", f.Ratio, formatRatio(f.Pair.Required))
		}
		b.WriteString("\n")
	}

	if report.Passed {
		b.WriteString(s.banner.Render(s.pass.Render("✓ WCAG AUDIT PASSED") + "\n\nAll themes meet their contrast requirements."))
	} else {
		b.WriteString(s.banner.Render(s.fail.Render("✗ WCAG AUDIT FAILED") + "\n\nFix the contrast issues listed above."))
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// hint suggests the reference text color with the most contrast on the
// failing background.
func hint(f themecheck.AuditResult) string {
	c, ratio := themecheck.BestText(f.Background)
	name := "white"
	if c == themecheck.Black {
		name = "black"
	}
	return fmt.Sprintf("Hint: %s text on %s reaches %.2f:1", name, f.Pair.Background, ratio)
}

func formatRatio(r float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", r), "0"), ".")
}
