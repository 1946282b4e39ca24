package themecheck_test

import (
	"testing"

	"github.com/fwojciec/themecheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseColor(t *testing.T) {
	t.Parallel()

	t.Run("parses hue saturation and lightness", func(t *testing.T) {
		t.Parallel()

		c, err := themecheck.ParseColor("222.2 84% 4.9%")
		require.NoError(t, err)
		assert.Equal(t, themecheck.Color{Hue: 222.2, Saturation: 84, Lightness: 4.9}, c)
	})

	t.Run("tolerates surrounding and repeated whitespace", func(t *testing.T) {
		t.Parallel()

		c, err := themecheck.ParseColor("  0   0%\t100% ")
		require.NoError(t, err)
		assert.Equal(t, themecheck.White, c)
	})

	t.Run("rejects malformed text", func(t *testing.T) {
		t.Parallel()

		for _, text := range []string{
			"",
			"0 0%",
			"0 0% 100% 1",
			"0 0 100%",
			"0 0% 100",
			"red 0% 50%",
			"0 abc% 50%",
			"361 0% 50%",
			"0 101% 50%",
			"0 50% -1%",
			"NaN 0% 50%",
		} {
			_, err := themecheck.ParseColor(text)
			var malformed *themecheck.MalformedColorError
			require.ErrorAs(t, err, &malformed, "text %q", text)
			assert.Equal(t, text, malformed.Text)
		}
	})
}

func TestColorString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "222.2 84% 4.9%", themecheck.Color{Hue: 222.2, Saturation: 84, Lightness: 4.9}.String())
	assert.Equal(t, "0 0% 100%", themecheck.White.String())
}

func TestColorStringRoundTrips(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		c := themecheck.Color{
			Hue:        float64(rapid.IntRange(0, 3600).Draw(t, "hue")) / 10,
			Saturation: float64(rapid.IntRange(0, 1000).Draw(t, "sat")) / 10,
			Lightness:  float64(rapid.IntRange(0, 1000).Draw(t, "light")) / 10,
		}
		got, err := themecheck.ParseColor(c.String())
		if err != nil {
			t.Fatalf("parse %q: %v", c.String(), err)
		}
		if got != c {
			t.Fatalf("got %v, want %v", got, c)
		}
	})
}

func TestRelativeLuminance(t *testing.T) {
	t.Parallel()

	t.Run("black is zero and white is one", func(t *testing.T) {
		t.Parallel()

		assert.InDelta(t, 0.0, themecheck.RelativeLuminance(themecheck.Black), 1e-9)
		assert.InDelta(t, 1.0, themecheck.RelativeLuminance(themecheck.White), 1e-9)
	})

	t.Run("pure red uses the red coefficient", func(t *testing.T) {
		t.Parallel()

		red := themecheck.Color{Hue: 0, Saturation: 100, Lightness: 50}
		assert.InDelta(t, 0.2126, themecheck.RelativeLuminance(red), 1e-9)
	})

	t.Run("stays within the unit interval", func(t *testing.T) {
		t.Parallel()

		rapid.Check(t, func(t *rapid.T) {
			c := drawColor(t)
			l := themecheck.RelativeLuminance(c)
			if l < 0 || l > 1 {
				t.Fatalf("luminance of %v = %v", c, l)
			}
		})
	})
}

func drawColor(t *rapid.T) themecheck.Color {
	return themecheck.Color{
		Hue:        rapid.Float64Range(0, 360).Draw(t, "hue"),
		Saturation: rapid.Float64Range(0, 100).Draw(t, "sat"),
		Lightness:  rapid.Float64Range(0, 100).Draw(t, "light"),
	}
}
