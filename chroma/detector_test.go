package chroma_test

import (
	"testing"

	"github.com/fwojciec/themecheck/chroma"
	"github.com/stretchr/testify/assert"
)

func TestDetector_DetectFromPath(t *testing.T) {
	t.Parallel()

	t.Run("detects JavaScript snapshots", func(t *testing.T) {
		t.Parallel()

		detector := chroma.NewDetector()
		assert.Equal(t, "JavaScript", detector.DetectFromPath("scripts/test/themes-audit.js"))
	})

	t.Run("detects common theme source languages", func(t *testing.T) {
		t.Parallel()

		detector := chroma.NewDetector()
		for _, path := range []string{"src/contexts/ThemeContext.jsx", "src/theme.ts", "src/theme.tsx"} {
			assert.NotEmpty(t, detector.DetectFromPath(path), "path: %s", path)
		}
		assert.Equal(t, "TypeScript", detector.DetectFromPath("src/theme.ts"))
	})

	t.Run("falls back to JavaScript for unknown extensions", func(t *testing.T) {
		t.Parallel()

		detector := chroma.NewDetector()
		assert.Equal(t, chroma.DefaultLanguage, detector.DetectFromPath("themes.unknownext"))
	})
}
