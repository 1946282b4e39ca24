package themecheck

import (
	"errors"
	"math"
)

// AuditResult is the outcome of checking one pair in one theme.
type AuditResult struct {
	Theme      string    // Theme name
	Pair       ColorPair // The rule that was checked
	Foreground Color     // Resolved foreground color
	Background Color     // Resolved background color
	Ratio      float64   // Contrast ratio rounded to two decimals
	Pass       bool      // Unrounded ratio >= Pair.Required
	Level      Level     // Level nominally achieved
}

// AuditReport holds every result of an audit run in theme-major,
// pair-minor declaration order.
type AuditReport struct {
	Themes  []Theme // Audited themes, in order
	Results []AuditResult
	Passed  bool // True iff every result passes
}

// RunAudit checks every pair in every theme. A theme missing a role aborts
// the run with a MissingRoleError; no partial report is returned.
func RunAudit(themes []Theme, pairs []ColorPair, policy LevelPolicy) (*AuditReport, error) {
	report := &AuditReport{
		Themes:  themes,
		Results: make([]AuditResult, 0, len(themes)*len(pairs)),
		Passed:  true,
	}

	for _, theme := range themes {
		for _, pair := range pairs {
			fg, err := theme.Color(pair.Foreground)
			if err != nil {
				return nil, err
			}
			bg, err := theme.Color(pair.Background)
			if err != nil {
				return nil, err
			}

			ratio := ContrastRatio(fg, bg)
			pass, level := Classify(ratio, pair, policy)
			report.Results = append(report.Results, AuditResult{
				Theme:      theme.Name,
				Pair:       pair,
				Foreground: fg,
				Background: bg,
				Ratio:      roundRatio(ratio),
				Pass:       pass,
				Level:      level,
			})
			if !pass {
				report.Passed = false
			}
		}
	}

	return report, nil
}

func roundRatio(ratio float64) float64 {
	return math.Round(ratio*100) / 100
}

// ValidateThemes checks that every role referenced by pairs resolves in
// every theme. All missing roles are reported together.
func ValidateThemes(themes []Theme, pairs []ColorPair) error {
	roles := Roles(pairs)
	var errs []error
	for _, theme := range themes {
		for _, role := range roles {
			if _, err := theme.Color(role); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Failures returns the failing results in report order.
func (r *AuditReport) Failures() []AuditResult {
	var failures []AuditResult
	for _, res := range r.Results {
		if !res.Pass {
			failures = append(failures, res)
		}
	}
	return failures
}

// Summary aggregates an audit report.
type Summary struct {
	Themes          int // Themes audited
	CompliantThemes int // Themes with no failing pair
	Pairs           int // Pair checks performed
	Passed          int
	Failed          int
	PassRate        int // Percent of pair checks passing, rounded
}

// ThemeSummary aggregates the results of a single theme.
type ThemeSummary struct {
	Theme    Theme
	Total    int
	Passed   int
	Failures []AuditResult
}

// PassRate returns the percent of the theme's checks that pass, rounded.
func (s ThemeSummary) PassRate() int {
	return percent(s.Passed, s.Total)
}

// Compliant reports whether every check of the theme passed.
func (s ThemeSummary) Compliant() bool {
	return len(s.Failures) == 0
}

// ThemeSummaries returns one summary per audited theme, in audit order.
func (r *AuditReport) ThemeSummaries() []ThemeSummary {
	summaries := make([]ThemeSummary, len(r.Themes))
	index := make(map[string]int, len(r.Themes))
	for i, t := range r.Themes {
		summaries[i].Theme = t
		index[t.Name] = i
	}

	for _, res := range r.Results {
		i, ok := index[res.Theme]
		if !ok {
			continue
		}
		summaries[i].Total++
		if res.Pass {
			summaries[i].Passed++
		} else {
			summaries[i].Failures = append(summaries[i].Failures, res)
		}
	}
	return summaries
}

// Summary returns the report's totals.
func (r *AuditReport) Summary() Summary {
	s := Summary{Themes: len(r.Themes)}
	for _, ts := range r.ThemeSummaries() {
		if ts.Compliant() {
			s.CompliantThemes++
		}
	}
	for _, res := range r.Results {
		s.Pairs++
		if res.Pass {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	s.PassRate = percent(s.Passed, s.Pairs)
	return s
}

// percent returns 100 for an empty total: nothing failed.
func percent(n, total int) int {
	if total == 0 {
		return 100
	}
	return int(math.Round(float64(n) * 100 / float64(total)))
}
