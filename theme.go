package themecheck

import "strings"

// Theme is a named, polarity-tagged mapping of semantic color roles to
// colors.
type Theme struct {
	Name        string           // Unique key, e.g. "dark"
	DisplayName string           // Human-readable name, e.g. "Dark"
	Dark        bool             // Light text on a dark background
	Colors      map[string]Color // Role name to color
}

// Color resolves a role, failing with a MissingRoleError when the theme
// does not define it.
func (t Theme) Color(role string) (Color, error) {
	c, ok := t.Colors[role]
	if !ok {
		return Color{}, &MissingRoleError{Theme: t.Name, Role: role}
	}
	return c, nil
}

// Polarity returns "dark" or "light".
func (t Theme) Polarity() string {
	if t.Dark {
		return "dark"
	}
	return "light"
}

// ColorPair is a required-contrast rule between two roles.
type ColorPair struct {
	Foreground string  // Role rendered as text
	Background string  // Role the text sits on
	Label      string  // Human-readable name, e.g. "Body text"
	Required   float64 // Minimum ratio, e.g. 4.5
	Large      bool    // Large text; selects the large-text level thresholds
}

// DefaultPairs returns the pairs every theme is checked against. All of
// them require AA for normal text.
func DefaultPairs() []ColorPair {
	return []ColorPair{
		{Foreground: "foreground", Background: "background", Label: "Body text", Required: 4.5},
		{Foreground: "cardForeground", Background: "card", Label: "Card text", Required: 4.5},
		{Foreground: "popoverForeground", Background: "popover", Label: "Popover text", Required: 4.5},
		{Foreground: "primaryForeground", Background: "primary", Label: "Primary button text", Required: 4.5},
		{Foreground: "secondaryForeground", Background: "secondary", Label: "Secondary button text", Required: 4.5},
		{Foreground: "accentForeground", Background: "accent", Label: "Accent text", Required: 4.5},
		{Foreground: "mutedForeground", Background: "muted", Label: "Muted text", Required: 4.5},
		{Foreground: "destructiveForeground", Background: "destructive", Label: "Destructive text", Required: 4.5},
	}
}

// Roles returns the distinct roles referenced by pairs, in first-use order.
func Roles(pairs []ColorPair) []string {
	seen := make(map[string]bool)
	var roles []string
	for _, p := range pairs {
		for _, role := range []string{p.Foreground, p.Background} {
			if !seen[role] {
				seen[role] = true
				roles = append(roles, role)
			}
		}
	}
	return roles
}

// IsForegroundRole reports whether role names a text color.
func IsForegroundRole(role string) bool {
	return role == "foreground" || strings.HasSuffix(role, "Foreground")
}
