package snapshot_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fwojciec/themecheck"
	"github.com/fwojciec/themecheck/jsobject"
	"github.com/fwojciec/themecheck/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const source = `import React from 'react';

// Theme definitions. Keep '{' balanced!
export const THEMES = {
  system: { name: 'System Default', followsSystem: true },
  light: {
    name: 'Light',
    isDark: false,
    colors: {
      background: '0 0% 100%',
      foreground: '0 0% 60%', /* too light } */
      mutedForeground: "0 0% 70%",
      muted: '210 40% 96.1%',
      themeColor: '#ffffff'
    }
  },
  dark: {
    name: 'Dark',
    isDark: true,
    colors: {
      background: '222.2 84% 8%',
      foreground: '0 0% 100%',
      mutedForeground: '0 0% 40%',
      muted: '217.2 32.6% 17.5%',
      themeColor: '#020817'
    }
  }
};

export const useTheme = () => React.useContext(ThemeContext);
`

func fresh(t *testing.T) []byte {
	t.Helper()
	tmpl, err := snapshot.Template(snapshot.TemplateData{
		Source:          "src/contexts/ThemeContext.jsx",
		Identifier:      "THEMES",
		PairsIdentifier: "COLOR_PAIRS",
		Pairs:           themecheck.DefaultPairs(),
	})
	require.NoError(t, err)
	return tmpl
}

func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("returns the whole nested literal", func(t *testing.T) {
		t.Parallel()

		block, err := snapshot.Extract([]byte(source), "THEMES")
		require.NoError(t, err)
		assert.Equal(t, "THEMES", block.Identifier)
		assert.True(t, strings.HasPrefix(string(block.Text), "{\n  system:"))
		assert.True(t, strings.HasSuffix(string(block.Text), "}\n  }\n}"))
		assert.Equal(t, string(block.Text), source[block.Start:block.End])
	})

	t.Run("does not truncate at an inner closing brace", func(t *testing.T) {
		t.Parallel()

		src := `const THEMES = { a: { b: { c: '1' } }, last: { isDark: true } };`
		block, err := snapshot.Extract([]byte(src), "THEMES")
		require.NoError(t, err)
		assert.Equal(t, `{ a: { b: { c: '1' } }, last: { isDark: true } }`, string(block.Text))
	})

	t.Run("missing declaration fails", func(t *testing.T) {
		t.Parallel()

		_, err := snapshot.Extract([]byte(`export default {}`), "THEMES")
		var extraction *themecheck.ExtractionError
		require.ErrorAs(t, err, &extraction)
	})

	t.Run("unbalanced braces fail", func(t *testing.T) {
		t.Parallel()

		_, err := snapshot.Extract([]byte(`export const THEMES = { light: {`), "THEMES")
		var extraction *themecheck.ExtractionError
		require.ErrorAs(t, err, &extraction)
	})
}

func TestEmbed(t *testing.T) {
	t.Parallel()

	t.Run("substitutes the placeholder and strips export", func(t *testing.T) {
		t.Parallel()

		block, err := snapshot.Extract([]byte(source), "THEMES")
		require.NoError(t, err)
		out, err := snapshot.Embed(block, fresh(t))
		require.NoError(t, err)

		assert.NotContains(t, string(out), snapshot.Placeholder)
		assert.NotContains(t, string(out), "export const THEMES")
		assert.Contains(t, string(out), "const THEMES = "+string(block.Text)+";")
		assert.Contains(t, string(out), "{ fg: 'foreground', bg: 'background', label: 'Body text', required: 4.5 },")
	})

	t.Run("replaces a previously embedded block", func(t *testing.T) {
		t.Parallel()

		old := []byte("// header\nconst THEMES = { stale: { isDark: false, colors: { x: { y: 1 } } } };\nconst COLOR_PAIRS = [];\n")
		block := snapshot.Block{Identifier: "THEMES", Text: []byte(`{ light: {} }`)}
		out, err := snapshot.Embed(block, old)
		require.NoError(t, err)
		assert.Equal(t, "// header\nconst THEMES = { light: {} };\nconst COLOR_PAIRS = [];\n", string(out))
	})

	t.Run("template without placeholder or block fails", func(t *testing.T) {
		t.Parallel()

		block := snapshot.Block{Identifier: "THEMES", Text: []byte(`{}`)}
		_, err := snapshot.Embed(block, []byte("// empty\n"))
		var extraction *themecheck.ExtractionError
		require.ErrorAs(t, err, &extraction)
	})

	t.Run("leaves a placeholder inside theme data alone", func(t *testing.T) {
		t.Parallel()

		src := []byte("const THEMES = { a: { isDark: true, colors: {} /*@THEMES@*/ } };")
		block, err := snapshot.Extract(src, "THEMES")
		require.NoError(t, err)
		first, err := snapshot.Embed(block, fresh(t))
		require.NoError(t, err)
		assert.Contains(t, string(first), "const THEMES = "+string(block.Text)+";")

		again, err := snapshot.Extract(first, "THEMES")
		require.NoError(t, err)
		assert.Equal(t, string(block.Text), string(again.Text))
		second, err := snapshot.Embed(again, first)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(second))
	})

	t.Run("ignores a placeholder in a comment of the template", func(t *testing.T) {
		t.Parallel()

		tmpl := []byte("// use /*@THEMES@*/ to mark the spot\n/*@THEMES@*/;\n")
		block := snapshot.Block{Identifier: "THEMES", Text: []byte(`{}`)}
		out, err := snapshot.Embed(block, tmpl)
		require.NoError(t, err)
		assert.Equal(t, "// use /*@THEMES@*/ to mark the spot\nconst THEMES = {};\n", string(out))
	})

	t.Run("is stable across repeated runs", func(t *testing.T) {
		t.Parallel()

		block, err := snapshot.Extract([]byte(source), "THEMES")
		require.NoError(t, err)
		first, err := snapshot.Embed(block, fresh(t))
		require.NoError(t, err)

		again, err := snapshot.Extract(first, "THEMES")
		require.NoError(t, err)
		second, err := snapshot.Embed(again, first)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(second))

		third, err := snapshot.Embed(block, second)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(third))
	})
}

func TestGeneratedSnapshotLoads(t *testing.T) {
	t.Parallel()

	block, err := snapshot.Extract([]byte(source), "THEMES")
	require.NoError(t, err)
	out, err := snapshot.Embed(block, fresh(t))
	require.NoError(t, err)

	l := jsobject.NewLoader("THEMES")
	l.PairsIdentifier = "COLOR_PAIRS"
	l.MetadataKeys = []string{"themeColor"}
	reg, err := l.Load(out)
	require.NoError(t, err)
	require.Len(t, reg.Themes, 2)
	assert.Equal(t, themecheck.DefaultPairs(), reg.Pairs)
}

func TestSplice(t *testing.T) {
	t.Parallel()

	t.Run("round-trips the extracted block", func(t *testing.T) {
		t.Parallel()

		block, err := snapshot.Extract([]byte(source), "THEMES")
		require.NoError(t, err)
		out, err := snapshot.Splice([]byte(source), block)
		require.NoError(t, err)
		assert.Equal(t, source, string(out))
	})

	t.Run("keeps the declaration and surrounding code", func(t *testing.T) {
		t.Parallel()

		block := snapshot.Block{Identifier: "THEMES", Text: []byte(`{ light: { isDark: false } }`)}
		out, err := snapshot.Splice([]byte(source), block)
		require.NoError(t, err)
		assert.Contains(t, string(out), "export const THEMES = { light: { isDark: false } };\n")
		assert.True(t, strings.HasPrefix(string(out), "import React from 'react';\n"))
		assert.True(t, strings.HasSuffix(string(out), "export const useTheme = () => React.useContext(ThemeContext);\n"))
	})
}

func TestDerive(t *testing.T) {
	t.Parallel()

	generated := []byte("// snapshot\nconst THEMES = { edited: { isDark: true } };\nconst COLOR_PAIRS = [];\n")
	out, err := snapshot.Derive(generated, []byte(source), "THEMES")
	require.NoError(t, err)
	assert.Contains(t, string(out), "export const THEMES = { edited: { isDark: true } };")
	assert.NotContains(t, string(out), "COLOR_PAIRS")
}

func TestBlockThemes(t *testing.T) {
	t.Parallel()

	block, err := snapshot.Extract([]byte(source), "THEMES")
	require.NoError(t, err)
	themes, err := block.Themes([]string{"themeColor"})
	require.NoError(t, err)
	require.Len(t, themes, 2)
	assert.Equal(t, "light", themes[0].Name)
	assert.Equal(t, "dark", themes[1].Name)
}

// genSource draws a theme source with nested objects, comments and
// strings holding delimiters.
func genSource(t *rapid.T) string {
	var b strings.Builder
	b.WriteString(rapid.SampledFrom([]string{"", "import x from 'y';\n", "/* { */\n"}).Draw(t, "prefix"))
	b.WriteString(rapid.SampledFrom([]string{"export const", "const", "let", "var"}).Draw(t, "keyword"))
	b.WriteString(" THEMES = {\n")
	n := rapid.IntRange(0, 4).Draw(t, "themes")
	for i := range n {
		fmt.Fprintf(&b, "  t%d: {\n", i)
		fmt.Fprintf(&b, "    name: %s,\n", rapid.SampledFrom([]string{`'plain'`, `'brace }'`, `"quote ' }"`, "`tick {`", `'/*@THEMES@*/'`}).Draw(t, "name"))
		fmt.Fprintf(&b, "    isDark: %t,\n", rapid.Bool().Draw(t, "dark"))
		if rapid.Bool().Draw(t, "comment") {
			b.WriteString("    // closing } in a comment\n")
		}
		if rapid.Bool().Draw(t, "token") {
			b.WriteString("    /*@THEMES@*/\n")
		}
		depth := rapid.IntRange(0, 3).Draw(t, "depth")
		b.WriteString("    meta: ")
		for range depth {
			b.WriteString("{ inner: ")
		}
		b.WriteString("'leaf'")
		for range depth {
			b.WriteString(" }")
		}
		b.WriteString(",\n")
		fmt.Fprintf(&b, "    colors: { background: '0 0%% %d%%' }\n", rapid.IntRange(0, 100).Draw(t, "light"))
		b.WriteString("  },\n")
	}
	b.WriteString("};\n")
	b.WriteString(rapid.SampledFrom([]string{"", "export default THEMES;\n", "const other = { a: 1 };\n"}).Draw(t, "suffix"))
	return b.String()
}

func TestSyncIsIdempotent(t *testing.T) {
	t.Parallel()

	tmpl := fresh(t)
	rapid.Check(t, func(t *rapid.T) {
		src := []byte(genSource(t))

		block, err := snapshot.Extract(src, "THEMES")
		if err != nil {
			t.Fatalf("extract: %v", err)
		}
		first, err := snapshot.Embed(block, tmpl)
		if err != nil {
			t.Fatalf("embed: %v", err)
		}

		again, err := snapshot.Extract(first, "THEMES")
		if err != nil {
			t.Fatalf("extract snapshot: %v", err)
		}
		second, err := snapshot.Embed(again, tmpl)
		if err != nil {
			t.Fatalf("embed again: %v", err)
		}
		if string(first) != string(second) {
			t.Fatalf("snapshot changed between runs:\n%s\n---\n%s", first, second)
		}

		reused, err := snapshot.Embed(again, first)
		if err != nil {
			t.Fatalf("embed into previous snapshot: %v", err)
		}
		if string(reused) != string(first) {
			t.Fatalf("snapshot changed when reused as template:\n%s\n---\n%s", first, reused)
		}

		replaced, err := snapshot.Embed(block, first)
		if err != nil {
			t.Fatalf("embed into snapshot: %v", err)
		}
		if string(replaced) != string(first) {
			t.Fatalf("re-embedding changed the snapshot")
		}

		spliced, err := snapshot.Splice(src, block)
		if err != nil {
			t.Fatalf("splice: %v", err)
		}
		if string(spliced) != string(src) {
			t.Fatalf("splice changed the source")
		}
	})
}
