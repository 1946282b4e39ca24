package chroma_test

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/themecheck/chroma"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const block = "{\n  light: {\n    // body text\n    isDark: false,\n    colors: { foreground: '0 0% 10%' }\n  }\n}"

func TestNewHighlighter(t *testing.T) {
	t.Parallel()

	_, err := chroma.NewHighlighter("JavaScript", nil)
	require.Error(t, err)
}

func TestHighlighter_Highlight(t *testing.T) {
	t.Parallel()

	t.Run("ascii profile writes the source unchanged", func(t *testing.T) {
		t.Parallel()

		renderer := lipgloss.NewRenderer(nil, termenv.WithProfile(termenv.Ascii))
		h, err := chroma.NewHighlighter("JavaScript", chroma.StyleFromPalette(renderer, chroma.DefaultPalette()))
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, h.Highlight(&buf, block))
		assert.Equal(t, block, buf.String())
	})

	t.Run("color profile adds escape sequences", func(t *testing.T) {
		t.Parallel()

		renderer := lipgloss.NewRenderer(nil, termenv.WithProfile(termenv.TrueColor))
		h, err := chroma.NewHighlighter("JavaScript", chroma.StyleFromPalette(renderer, chroma.DefaultPalette()))
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, h.Highlight(&buf, block))
		assert.Contains(t, buf.String(), "\x1b[")
		assert.Contains(t, buf.String(), "0 0% 10%")
	})

	t.Run("unknown language falls back to plain text", func(t *testing.T) {
		t.Parallel()

		renderer := lipgloss.NewRenderer(nil, termenv.WithProfile(termenv.Ascii))
		h, err := chroma.NewHighlighter("no-such-language", chroma.StyleFromPalette(renderer, chroma.DefaultPalette()))
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, h.Highlight(&buf, block))
		assert.Equal(t, block, buf.String())
	})
}
