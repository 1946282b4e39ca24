package chroma

import (
	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/charmbracelet/lipgloss"
)

// Palette holds syntax colors as hex strings.
type Palette struct {
	Keyword     string
	String      string
	Number      string
	Comment     string
	Operator    string
	Function    string
	Constant    string
	Punctuation string
}

// DefaultPalette returns syntax colors for dark terminals (Catppuccin
// Mocha).
func DefaultPalette() Palette {
	return Palette{
		Keyword:     "#cba6f7",
		String:      "#a6e3a1",
		Number:      "#fab387",
		Comment:     "#6c7086",
		Operator:    "#89dceb",
		Function:    "#89b4fa",
		Constant:    "#fab387",
		Punctuation: "#9399b2",
	}
}

// StyleFromPalette returns a function that maps chroma token types to
// styles created by r from the palette colors.
func StyleFromPalette(r *lipgloss.Renderer, p Palette) StyleFunc {
	fg := func(hex string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(hex))
	}
	return func(tt chromalib.TokenType) lipgloss.Style {
		switch {
		case tt == chromalib.NameFunction || tt == chromalib.NameFunctionMagic:
			return fg(p.Function)
		case tt == chromalib.NameConstant || tt == chromalib.NameBuiltin:
			return fg(p.Constant)
		case tt.InCategory(chromalib.Keyword):
			return fg(p.Keyword).Bold(true)
		case tt.InCategory(chromalib.Comment):
			return fg(p.Comment)
		case tt.InSubCategory(chromalib.LiteralString):
			return fg(p.String)
		case tt.InSubCategory(chromalib.LiteralNumber):
			return fg(p.Number)
		case tt.InCategory(chromalib.Operator):
			return fg(p.Operator)
		case tt.InCategory(chromalib.Punctuation):
			return fg(p.Punctuation)
		default:
			return r.NewStyle()
		}
	}
}
