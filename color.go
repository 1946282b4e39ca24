package themecheck

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a color in the "<hue> <saturation>% <lightness>%" encoding used
// by theme definitions.
type Color struct {
	Hue        float64 // Degrees, 0-360
	Saturation float64 // Percent, 0-100
	Lightness  float64 // Percent, 0-100
}

// Reference colors.
var (
	Black = Color{Lightness: 0}
	White = Color{Lightness: 100}
)

// ParseColor parses text of the form "<hue> <saturation>% <lightness>%".
func ParseColor(text string) (Color, error) {
	fields := strings.Fields(text)
	if len(fields) != 3 {
		return Color{}, &MalformedColorError{
			Text:   text,
			Reason: fmt.Sprintf("expected 3 components, got %d", len(fields)),
		}
	}

	hue, err := parseComponent(fields[0], false, 360)
	if err != nil {
		return Color{}, &MalformedColorError{Text: text, Reason: "hue: " + err.Error()}
	}
	sat, err := parseComponent(fields[1], true, 100)
	if err != nil {
		return Color{}, &MalformedColorError{Text: text, Reason: "saturation: " + err.Error()}
	}
	light, err := parseComponent(fields[2], true, 100)
	if err != nil {
		return Color{}, &MalformedColorError{Text: text, Reason: "lightness: " + err.Error()}
	}

	return Color{Hue: hue, Saturation: sat, Lightness: light}, nil
}

func parseComponent(field string, percent bool, max float64) (float64, error) {
	if percent {
		trimmed, ok := strings.CutSuffix(field, "%")
		if !ok {
			return 0, fmt.Errorf("%q is missing the %% suffix", field)
		}
		field = trimmed
	}

	v, err := strconv.ParseFloat(field, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a number", field)
	}
	if v < 0 || v > max {
		return 0, fmt.Errorf("%s is outside 0-%s", field, formatFloat(max))
	}
	return v, nil
}

// String returns the canonical text encoding of c.
func (c Color) String() string {
	return formatFloat(c.Hue) + " " + formatFloat(c.Saturation) + "% " + formatFloat(c.Lightness) + "%"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RGB255 returns the 8-bit sRGB channels of c.
func (c Color) RGB255() (r, g, b uint8) {
	return colorful.Hsl(c.Hue, c.Saturation/100, c.Lightness/100).Clamped().RGB255()
}

// RelativeLuminance returns the WCAG relative luminance of c, from 0 for
// black to 1 for white. Channels are quantized to 8 bits before
// linearization, the same as the rendered CSS color.
func RelativeLuminance(c Color) float64 {
	r, g, b := c.RGB255()
	return 0.2126*linearize(r) + 0.7152*linearize(g) + 0.0722*linearize(b)
}

// linearize applies the sRGB transfer function to a single channel.
func linearize(channel uint8) float64 {
	v := float64(channel) / 255
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}
