package themecheck

import "maps"

// PolarityFix holds the canonical foreground values for one polarity.
type PolarityFix struct {
	Foreground Color // The "foreground" role
	Muted      Color // The "mutedForeground" role
	Other      Color // Every other *Foreground role
}

// FixPalette holds the canonical foreground values AutoFix assigns.
type FixPalette struct {
	Light PolarityFix
	Dark  PolarityFix
}

// DefaultFixPalette returns near-black text for light themes and near-white
// text for dark themes, with a softer muted variant for each.
func DefaultFixPalette() FixPalette {
	return FixPalette{
		Light: PolarityFix{
			Foreground: Color{Lightness: 12},
			Muted:      Color{Lightness: 35},
			Other:      Color{Lightness: 10},
		},
		Dark: PolarityFix{
			Foreground: Color{Lightness: 100},
			Muted:      Color{Lightness: 80},
			Other:      Color{Lightness: 100},
		},
	}
}

// Value returns the canonical color for a foreground role.
func (p FixPalette) Value(dark bool, role string) Color {
	fix := p.Light
	if dark {
		fix = p.Dark
	}
	switch role {
	case "foreground":
		return fix.Foreground
	case "mutedForeground":
		return fix.Muted
	default:
		return fix.Other
	}
}

// AutoFix returns a copy of theme with every foreground role set to the
// palette's canonical value for the theme's polarity. Backgrounds are not
// consulted: the result is a heuristic and must be audited again before it
// is trusted.
func AutoFix(theme Theme, palette FixPalette) Theme {
	fixed := theme
	fixed.Colors = maps.Clone(theme.Colors)
	for role := range fixed.Colors {
		if IsForegroundRole(role) {
			fixed.Colors[role] = palette.Value(theme.Dark, role)
		}
	}
	return fixed
}
