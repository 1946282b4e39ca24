package themecheck

// ContrastRatio returns the WCAG contrast ratio between a and b. The ratio
// is symmetric and ranges from 1 (identical luminance) to 21 (black on
// white).
func ContrastRatio(a, b Color) float64 {
	l1 := RelativeLuminance(a)
	l2 := RelativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// Level is the WCAG conformance level a ratio nominally achieves.
type Level string

// Conformance levels.
const (
	LevelFail Level = "fail"
	LevelAA   Level = "AA"
	LevelAAA  Level = "AAA"
)

// LevelPolicy holds the ratio thresholds for each text size. One policy
// applies to a whole audit run.
type LevelPolicy struct {
	NormalAA  float64 // Normal text, AA
	NormalAAA float64 // Normal text, AAA
	LargeAA   float64 // Large text (>= 18pt, or 14pt bold), AA
	LargeAAA  float64 // Large text, AAA
}

// DefaultLevelPolicy returns the WCAG 2.x thresholds.
func DefaultLevelPolicy() LevelPolicy {
	return LevelPolicy{
		NormalAA:  4.5,
		NormalAAA: 7,
		LargeAA:   3,
		LargeAAA:  4.5,
	}
}

// AA returns the AA threshold for the given text size.
func (p LevelPolicy) AA(large bool) float64 {
	if large {
		return p.LargeAA
	}
	return p.NormalAA
}

// AAA returns the AAA threshold for the given text size.
func (p LevelPolicy) AAA(large bool) float64 {
	if large {
		return p.LargeAAA
	}
	return p.NormalAAA
}

// Classify reports whether ratio meets the pair's required ratio and which
// level it nominally achieves.
func Classify(ratio float64, pair ColorPair, policy LevelPolicy) (bool, Level) {
	pass := ratio >= pair.Required
	switch {
	case ratio >= policy.AAA(pair.Large):
		return pass, LevelAAA
	case pass:
		return pass, LevelAA
	default:
		return pass, LevelFail
	}
}

// BestText returns black or white, whichever contrasts more with bg, along
// with the resulting ratio.
func BestText(bg Color) (Color, float64) {
	withWhite := ContrastRatio(White, bg)
	withBlack := ContrastRatio(Black, bg)
	if withWhite > withBlack {
		return White, withWhite
	}
	return Black, withBlack
}
