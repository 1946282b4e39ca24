package jsobject

import (
	"fmt"
	"slices"

	"github.com/fwojciec/themecheck"
)

// DecodeThemes builds themes from an object literal keyed by theme name.
// Themes with followsSystem set are aliases and are skipped. Entries of a
// theme's colors object named in metadataKeys are not roles and are
// skipped; every other entry must be a color string. Theme keys must be
// unique.
func DecodeThemes(src []byte, v *Value, identifier string, metadataKeys []string) ([]themecheck.Theme, error) {
	if v.Kind != KindObject {
		return nil, &themecheck.ExtractionError{Identifier: identifier, Reason: "not an object literal"}
	}

	themes := make([]themecheck.Theme, 0, len(v.Entries))
	seen := make(map[string]bool, len(v.Entries))
	for _, e := range v.Entries {
		if seen[e.Key] {
			return nil, extractionErrorf(identifier, "theme %q is declared more than once", e.Key)
		}
		seen[e.Key] = true
		if e.Value.Kind != KindObject {
			return nil, extractionErrorf(identifier, "theme %q is a %s, not an object", e.Key, e.Value.Kind)
		}
		if FollowsSystem(e.Value) {
			continue
		}

		t, err := decodeTheme(src, e, identifier, metadataKeys)
		if err != nil {
			return nil, err
		}
		themes = append(themes, t)
	}
	return themes, nil
}

// FollowsSystem reports whether a theme object is an alias that follows
// the system color scheme.
func FollowsSystem(theme *Value) bool {
	v, ok := theme.Get("followsSystem")
	return ok && v.Kind == KindBool && v.Bool
}

func decodeTheme(src []byte, e Entry, identifier string, metadataKeys []string) (themecheck.Theme, error) {
	t := themecheck.Theme{Name: e.Key, DisplayName: e.Key}

	if name, ok := e.Value.Get("name"); ok {
		if name.Kind != KindString {
			return t, extractionErrorf(identifier, "theme %q: name is a %s, not a string", e.Key, name.Kind)
		}
		t.DisplayName = name.Str
	}

	dark, ok := e.Value.Get("isDark")
	if !ok {
		return t, extractionErrorf(identifier, "theme %q: isDark is missing", e.Key)
	}
	if dark.Kind != KindBool {
		return t, extractionErrorf(identifier, "theme %q: isDark is a %s, not a boolean", e.Key, dark.Kind)
	}
	t.Dark = dark.Bool

	colors, ok := e.Value.Get("colors")
	if !ok {
		return t, extractionErrorf(identifier, "theme %q: colors is missing", e.Key)
	}
	if colors.Kind != KindObject {
		return t, extractionErrorf(identifier, "theme %q: colors is a %s, not an object", e.Key, colors.Kind)
	}

	t.Colors = make(map[string]themecheck.Color, len(colors.Entries))
	for _, c := range colors.Entries {
		if slices.Contains(metadataKeys, c.Key) {
			continue
		}
		if c.Value.Kind != KindString {
			return t, fmt.Errorf("theme %q role %q: %w", e.Key, c.Key,
				&themecheck.MalformedColorError{Text: c.Value.Text(src), Reason: "not a string"})
		}
		color, err := themecheck.ParseColor(c.Value.Str)
		if err != nil {
			return t, fmt.Errorf("theme %q role %q: %w", e.Key, c.Key, err)
		}
		t.Colors[c.Key] = color
	}
	return t, nil
}

// DecodePairs builds color pairs from an array of objects with fg, bg,
// label, required and large properties. A pair without required takes
// the policy's AA threshold for its text size.
func DecodePairs(v *Value, identifier string, policy themecheck.LevelPolicy) ([]themecheck.ColorPair, error) {
	if v.Kind != KindArray {
		return nil, &themecheck.ExtractionError{Identifier: identifier, Reason: "not an array literal"}
	}

	pairs := make([]themecheck.ColorPair, 0, len(v.Items))
	for i, item := range v.Items {
		if item.Kind != KindObject {
			return nil, extractionErrorf(identifier, "pair %d is a %s, not an object", i, item.Kind)
		}

		var p themecheck.ColorPair
		var err error
		if p.Foreground, err = requireString(item, "fg"); err != nil {
			return nil, extractionErrorf(identifier, "pair %d: %v", i, err)
		}
		if p.Background, err = requireString(item, "bg"); err != nil {
			return nil, extractionErrorf(identifier, "pair %d: %v", i, err)
		}
		if label, ok := item.Get("label"); ok && label.Kind == KindString {
			p.Label = label.Str
		}
		if large, ok := item.Get("large"); ok {
			if large.Kind != KindBool {
				return nil, extractionErrorf(identifier, "pair %d: large is a %s, not a boolean", i, large.Kind)
			}
			p.Large = large.Bool
		}
		p.Required = policy.AA(p.Large)
		if req, ok := item.Get("required"); ok {
			if req.Kind != KindNumber || req.Num <= 0 {
				return nil, extractionErrorf(identifier, "pair %d: required must be a positive number", i)
			}
			p.Required = req.Num
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

func requireString(v *Value, key string) (string, error) {
	s, ok := v.Get(key)
	if !ok {
		return "", fmt.Errorf("%s is missing", key)
	}
	if s.Kind != KindString || s.Str == "" {
		return "", fmt.Errorf("%s must be a non-empty string", key)
	}
	return s.Str, nil
}

func extractionErrorf(identifier, format string, args ...any) error {
	return &themecheck.ExtractionError{Identifier: identifier, Reason: fmt.Sprintf(format, args...)}
}
