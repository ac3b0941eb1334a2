package box

import (
	"fmt"
	"strings"
)

// Style selects a border glyph family.
type Style int

const (
	// Ascii draws +-| borders, safe on any terminal.
	Ascii Style = iota
	// DoubleLine draws double-stroke Unicode borders.
	DoubleLine
	// Heavy draws heavy-stroke Unicode borders.
	Heavy
	// Minimal draws no border glyphs, only width-aligned lines.
	Minimal
)

// String returns the style's configuration name.
func (s Style) String() string {
	switch s {
	case Ascii:
		return "ascii"
	case DoubleLine:
		return "double"
	case Heavy:
		return "heavy"
	case Minimal:
		return "minimal"
	default:
		return "unknown"
	}
}

// Styles lists all renderable styles in fallback order, widest glyph
// coverage first.
func Styles() []Style {
	return []Style{DoubleLine, Heavy, Ascii, Minimal}
}

// ParseStyle resolves a configuration name to a Style.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ascii":
		return Ascii, nil
	case "double", "double-line", "doubleline":
		return DoubleLine, nil
	case "heavy":
		return Heavy, nil
	case "minimal", "none":
		return Minimal, nil
	default:
		return Ascii, fmt.Errorf("%w: unknown style %q", ErrInvalidArgument, name)
	}
}

// glyphSet holds the border glyphs for one framed style. Every glyph is
// exactly one cell wide so border math can count glyphs.
type glyphSet struct {
	topLeft, topRight       string
	bottomLeft, bottomRight string
	horizontal, vertical    string
	teeLeft, teeRight       string
}

// glyphSets maps each framed style to its closed glyph set. Minimal is
// absent: it renders without a frame.
var glyphSets = map[Style]glyphSet{
	Ascii: {
		topLeft: "+", topRight: "+",
		bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		teeLeft: "+", teeRight: "+",
	},
	DoubleLine: {
		topLeft: "╔", topRight: "╗",
		bottomLeft: "╚", bottomRight: "╝",
		horizontal: "═", vertical: "║",
		teeLeft: "╠", teeRight: "╣",
	},
	Heavy: {
		topLeft: "┏", topRight: "┓",
		bottomLeft: "┗", bottomRight: "┛",
		horizontal: "━", vertical: "┃",
		teeLeft: "┣", teeRight: "┫",
	},
}

// MinWidth returns the smallest target width the style can render:
// one interior cell plus the style's border and padding columns.
func MinWidth(s Style) int {
	if s == Minimal {
		return 1
	}
	return 1 + 2*(borderCols+padCols)
}

const (
	// borderCols is the border thickness per side for framed styles.
	borderCols = 1
	// padCols is the horizontal padding per side for framed styles.
	padCols = 1
)
