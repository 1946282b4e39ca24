// Package lipgloss renders audit reports for the terminal using the
// Lipgloss styling library.
package lipgloss

import "github.com/charmbracelet/lipgloss"

// Palette holds the report's colors as hex strings. Empty strings leave
// the terminal default in place.
type Palette struct {
	Pass    string // Passing themes and the success banner
	Fail    string // Failing themes, failures and the failure banner
	Warn    string // Issue summary heading
	Muted   string // Ratios, hints and rules
	Heading string // Section headings
	Accent  string // Theme names
}

// DefaultPalette returns the palette for dark terminal backgrounds.
func DefaultPalette() Palette {
	return DarkPalette()
}

// DarkPalette returns colors readable on dark terminal backgrounds
// (Catppuccin Mocha).
func DarkPalette() Palette {
	return Palette{
		Pass:    "#a6e3a1", // Green
		Fail:    "#f38ba8", // Red
		Warn:    "#f9e2af", // Yellow
		Muted:   "#6c7086", // Overlay
		Heading: "#cdd6f4", // Text
		Accent:  "#89b4fa", // Blue
	}
}

// LightPalette returns colors readable on light terminal backgrounds
// (Catppuccin Latte).
func LightPalette() Palette {
	return Palette{
		Pass:    "#40a02b",
		Fail:    "#d20f39",
		Warn:    "#df8e1d",
		Muted:   "#9ca0b0",
		Heading: "#4c4f69",
		Accent:  "#1e66f5",
	}
}

// PaletteFor picks the palette matching the renderer's terminal
// background.
func PaletteFor(r *lipgloss.Renderer) Palette {
	if r.HasDarkBackground() {
		return DarkPalette()
	}
	return LightPalette()
}

type styles struct {
	pass    lipgloss.Style
	fail    lipgloss.Style
	warn    lipgloss.Style
	muted   lipgloss.Style
	heading lipgloss.Style
	accent  lipgloss.Style
	banner  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer, p Palette) styles {
	color := func(hex string) lipgloss.Style {
		s := r.NewStyle()
		if hex != "" {
			s = s.Foreground(lipgloss.Color(hex))
		}
		return s
	}
	return styles{
		pass:    color(p.Pass),
		fail:    color(p.Fail),
		warn:    color(p.Warn).Bold(true),
		muted:   color(p.Muted),
		heading: color(p.Heading).Bold(true),
		accent:  color(p.Accent),
		banner:  r.NewStyle().Border(lipgloss.DoubleBorder()).Padding(0, 2),
	}
}
