package snapshot

import (
	"slices"

	"github.com/fwojciec/themecheck"
	"github.com/fwojciec/themecheck/jsobject"
)

// Change is one foreground value rewritten by Fix.
type Change struct {
	Theme string
	Role  string
	From  string
	To    string
}

type edit struct {
	start, end int
	text       string
}

// Fix applies themecheck.AutoFix to every theme declared as identifier in
// text, rewriting only the foreground values that change. Quote style,
// comments and layout are preserved.
func Fix(text []byte, identifier string, palette themecheck.FixPalette, metadataKeys []string) ([]byte, []Change, error) {
	_, root, err := jsobject.ParseDeclaration(text, identifier, '{')
	if err != nil {
		return nil, nil, err
	}
	themes, err := jsobject.DecodeThemes(text, root, identifier, metadataKeys)
	if err != nil {
		return nil, nil, err
	}

	var edits []edit
	var changes []Change
	next := 0
	for _, entry := range root.Entries {
		if jsobject.FollowsSystem(entry.Value) {
			continue
		}
		theme := themes[next]
		next++
		fixed := themecheck.AutoFix(theme, palette)
		colors, _ := entry.Value.Get("colors")

		for _, e := range colors.Entries {
			if slices.Contains(metadataKeys, e.Key) || !themecheck.IsForegroundRole(e.Key) {
				continue
			}
			to := fixed.Colors[e.Key].String()
			if e.Value.Str == to {
				continue
			}
			edits = append(edits, edit{start: e.Value.Start, end: e.Value.End, text: jsobject.Quote(to, e.Value.Quote)})
			changes = append(changes, Change{Theme: theme.Name, Role: e.Key, From: e.Value.Str, To: to})
		}
	}

	return applyEdits(text, edits), changes, nil
}

// applyEdits replaces each span of src with its text. Edits must be in
// ascending, non-overlapping order.
func applyEdits(src []byte, edits []edit) []byte {
	out := make([]byte, 0, len(src))
	last := 0
	for _, e := range edits {
		out = append(out, src[last:e.start]...)
		out = append(out, e.text...)
		last = e.end
	}
	return append(out, src[last:]...)
}
