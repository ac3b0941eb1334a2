package box

import (
	"errors"
	"strings"
	"testing"

	"gitlab.com/tinyland/lab/chalkboard/display/content"
	"gitlab.com/tinyland/lab/chalkboard/display/textwidth"
)

// TestRender_HelloWorld verifies the canonical single-line box: one
// content line, width 20, ascii borders, exactly three output lines.
func TestRender_HelloWorld(t *testing.T) {
	got, err := Render(content.Normalize("Hello, World"), Options{Style: Ascii, Width: 20})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	want := strings.Join([]string{
		"+------------------+",
		"| Hello, World     |",
		"+------------------+",
	}, "\n")
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

// TestRender_WidthTooSmall verifies the interior accounting: borders and
// padding consume four cells, so width 4 leaves no room and width 5 is
// the smallest renderable ascii box.
func TestRender_WidthTooSmall(t *testing.T) {
	_, err := Render(content.Normalize("x"), Options{Style: Ascii, Width: 4})
	if !errors.Is(err, ErrWidthTooSmall) {
		t.Fatalf("Render(width 4) error = %v, want ErrWidthTooSmall", err)
	}

	got, err := Render(content.Normalize("x"), Options{Style: Ascii, Width: 5})
	if err != nil {
		t.Fatalf("Render(width 5) returned error: %v", err)
	}
	if want := "+---+\n| x |\n+---+"; got != want {
		t.Errorf("Render(width 5) = %q, want %q", got, want)
	}
}

// TestRender_EqualWidth verifies the core invariant across styles,
// widths, and scripts: every output line measures exactly the target.
func TestRender_EqualWidth(t *testing.T) {
	contents := []any{
		"Hello, World",
		"二次方程式の解の公式: x = (-b ± √(b²-4ac)) / 2a",
		[]string{"first", "second line that is rather longer", ""},
		content.Pairs{{Key: "step", Value: "1"}, {Key: "goal", Value: "factor the quadratic"}},
		"\x1b[1mbold lesson\x1b[0m with tags",
		nil,
	}

	for _, style := range Styles() {
		for _, c := range contents {
			for _, width := range []int{9, 20, 37, 80} {
				got, err := Render(content.Normalize(c), Options{Style: style, Width: width})
				if err != nil {
					t.Fatalf("Render(%v, %d) returned error: %v", style, width, err)
				}
				for i, line := range strings.Split(got, "\n") {
					if w := textwidth.String(line); w != width {
						t.Errorf("style %v width %d: line %d measures %d cells: %q",
							style, width, i, w, line)
					}
				}
			}
		}
	}
}

// TestRender_StyleGlyphs verifies each framed style draws from its own
// closed glyph family.
func TestRender_StyleGlyphs(t *testing.T) {
	tests := []struct {
		style      Style
		wantTop    string
		wantBottom string
		wantSide   string
	}{
		{Ascii, "+------+", "+------+", "|"},
		{DoubleLine, "╔══════╗", "╚══════╝", "║"},
		{Heavy, "┏━━━━━━┓", "┗━━━━━━┛", "┃"},
	}

	for _, tt := range tests {
		t.Run(tt.style.String(), func(t *testing.T) {
			got, err := Render(content.Normalize("hi"), Options{Style: tt.style, Width: 8})
			if err != nil {
				t.Fatalf("Render returned error: %v", err)
			}
			lines := strings.Split(got, "\n")
			if len(lines) != 3 {
				t.Fatalf("got %d lines, want 3", len(lines))
			}
			if lines[0] != tt.wantTop {
				t.Errorf("top = %q, want %q", lines[0], tt.wantTop)
			}
			if lines[2] != tt.wantBottom {
				t.Errorf("bottom = %q, want %q", lines[2], tt.wantBottom)
			}
			if !strings.HasPrefix(lines[1], tt.wantSide) || !strings.HasSuffix(lines[1], tt.wantSide) {
				t.Errorf("row = %q, want %q borders", lines[1], tt.wantSide)
			}
		})
	}
}

// TestRender_Title verifies title embedding: centered in the top border,
// truncated when over-long.
func TestRender_Title(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		width   int
		wantTop string
	}{
		{"centered", "Hint", 20, "+------ Hint ------+"},
		{"odd surplus biases right", "Tip", 20, "+------ Tip -------+"},
		{"truncated to fit", "Quadratic Equations", 10, "+ Quadra +"},
		{"wide glyph title", "数学", 10, "+- 数学 -+"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(content.Normalize("x"), Options{Style: Ascii, Width: tt.width, Title: tt.title})
			if err != nil {
				t.Fatalf("Render returned error: %v", err)
			}
			top := strings.Split(got, "\n")[0]
			if top != tt.wantTop {
				t.Errorf("top border = %q, want %q", top, tt.wantTop)
			}
			if w := textwidth.String(top); w != tt.width {
				t.Errorf("top border measures %d cells, want %d", w, tt.width)
			}
		})
	}
}

// TestRender_EmptyContent verifies an empty line set becomes one blank
// interior line rather than an error.
func TestRender_EmptyContent(t *testing.T) {
	for _, c := range []content.Lines{nil, {}} {
		got, err := Render(c, Options{Style: Ascii, Width: 8})
		if err != nil {
			t.Fatalf("Render returned error: %v", err)
		}
		if want := "+------+\n|      |\n+------+"; got != want {
			t.Errorf("Render = %q, want %q", got, want)
		}
	}
}

// TestRender_Separator verifies separator rows render as full-width
// junction rules.
func TestRender_Separator(t *testing.T) {
	lines := content.Lines{
		{Text: "above"},
		content.Separator(),
		{Text: "below"},
	}
	got, err := Render(lines, Options{Style: DoubleLine, Width: 9})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	want := strings.Join([]string{
		"╔═══════╗",
		"║ above ║",
		"╠═══════╣",
		"║ below ║",
		"╚═══════╝",
	}, "\n")
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

// TestRender_WrapsContent verifies interior wrapping of long lines.
func TestRender_WrapsContent(t *testing.T) {
	got, err := Render(content.Normalize("the quick brown fox"), Options{Style: Ascii, Width: 14})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	want := strings.Join([]string{
		"+------------+",
		"| the quick  |",
		"| brown fox  |",
		"+------------+",
	}, "\n")
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

// TestRender_VPad verifies opt-in blank lines around the content block.
func TestRender_VPad(t *testing.T) {
	got, err := Render(content.Normalize("hi"), Options{Style: Ascii, Width: 8, VPad: true})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	want := strings.Join([]string{
		"+------+",
		"|      |",
		"| hi   |",
		"|      |",
		"+------+",
	}, "\n")
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

// TestRender_AnsiContent verifies escape tags pass through untouched and
// do not disturb padding.
func TestRender_AnsiContent(t *testing.T) {
	got, err := Render(content.Normalize("\x1b[31mred\x1b[0m"), Options{Style: Ascii, Width: 9})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	lines := strings.Split(got, "\n")
	if want := "| \x1b[31mred\x1b[0m   |"; lines[1] != want {
		t.Errorf("row = %q, want %q", lines[1], want)
	}
}

// TestRender_WideGlyphNarrowInterior verifies a glyph wider than the
// interior reports a width problem instead of emitting a broken frame.
func TestRender_WideGlyphNarrowInterior(t *testing.T) {
	_, err := Render(content.Normalize("世"), Options{Style: Ascii, Width: 5})
	if !errors.Is(err, ErrWidthTooSmall) {
		t.Errorf("Render error = %v, want ErrWidthTooSmall", err)
	}
}

// TestRender_UnknownStyle verifies unknown styles are rejected.
func TestRender_UnknownStyle(t *testing.T) {
	_, err := Render(content.Normalize("x"), Options{Style: Style(42), Width: 10})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Render error = %v, want ErrInvalidArgument", err)
	}
}

// TestRender_AmbiguousWideBorders verifies Unicode frames are refused
// under an ambiguous-wide policy, where their glyphs occupy two cells.
func TestRender_AmbiguousWideBorders(t *testing.T) {
	wide := textwidth.New(textwidth.Options{AmbiguousWide: true})

	_, err := Render(content.Normalize("x"), Options{Style: DoubleLine, Width: 10, Measurer: wide})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("DoubleLine error = %v, want ErrInvalidArgument", err)
	}

	// Ascii borders are immune to the policy.
	got, err := Render(content.Normalize("±±"), Options{Style: Ascii, Width: 8, Measurer: wide})
	if err != nil {
		t.Fatalf("Ascii render returned error: %v", err)
	}
	for i, line := range strings.Split(got, "\n") {
		if w := wide.String(line); w != 8 {
			t.Errorf("line %d measures %d cells under wide policy: %q", i, w, line)
		}
	}
}

// TestRender_Minimal verifies the borderless style.
func TestRender_Minimal(t *testing.T) {
	got, err := Render(content.Normalize("abc"), Options{Style: Minimal, Width: 10})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if want := "abc       "; got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}

	got, err = Render(content.Normalize("abc"), Options{Style: Minimal, Width: 10, Title: "Hi"})
	if err != nil {
		t.Fatalf("Render with title returned error: %v", err)
	}
	want := strings.Join([]string{
		"    Hi    ",
		"abc       ",
	}, "\n")
	if got != want {
		t.Errorf("Render with title = %q, want %q", got, want)
	}

	if _, err := Render(content.Normalize("abc"), Options{Style: Minimal, Width: 0}); !errors.Is(err, ErrWidthTooSmall) {
		t.Errorf("Render(width 0) error = %v, want ErrWidthTooSmall", err)
	}
}

// TestParseStyle verifies configuration name resolution.
func TestParseStyle(t *testing.T) {
	tests := []struct {
		input   string
		want    Style
		wantErr bool
	}{
		{"ascii", Ascii, false},
		{"double", DoubleLine, false},
		{"double-line", DoubleLine, false},
		{"heavy", Heavy, false},
		{"minimal", Minimal, false},
		{"none", Minimal, false},
		{" ASCII ", Ascii, false},
		{"rounded", Ascii, true},
		{"", Ascii, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStyle(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("ParseStyle(%q) error = %v, want ErrInvalidArgument", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStyle(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseStyle(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestStyleString verifies style names round-trip through ParseStyle.
func TestStyleString(t *testing.T) {
	for _, style := range Styles() {
		parsed, err := ParseStyle(style.String())
		if err != nil {
			t.Errorf("ParseStyle(%q) returned error: %v", style.String(), err)
			continue
		}
		if parsed != style {
			t.Errorf("ParseStyle(%q) = %v, want %v", style.String(), parsed, style)
		}
	}
	if got := Style(42).String(); got != "unknown" {
		t.Errorf("Style(42).String() = %q, want %q", got, "unknown")
	}
}

// TestMinWidth verifies the smallest renderable width per style.
func TestMinWidth(t *testing.T) {
	tests := []struct {
		style Style
		want  int
	}{
		{Ascii, 5},
		{DoubleLine, 5},
		{Heavy, 5},
		{Minimal, 1},
	}
	for _, tt := range tests {
		if got := MinWidth(tt.style); got != tt.want {
			t.Errorf("MinWidth(%v) = %d, want %d", tt.style, got, tt.want)
		}
	}
}

// TestInvariantError verifies the diagnostic fields and message.
func TestInvariantError(t *testing.T) {
	err := error(&InvariantError{Line: 2, Want: 20, Got: 19})
	var inv *InvariantError
	if !errors.As(err, &inv) {
		t.Fatalf("errors.As failed for %T", err)
	}
	if inv.Line != 2 || inv.Want != 20 || inv.Got != 19 {
		t.Errorf("fields = %+v", inv)
	}
	if msg := err.Error(); !strings.Contains(msg, "19") || !strings.Contains(msg, "20") {
		t.Errorf("message %q missing widths", msg)
	}
}

// TestStylesOrder verifies the fallback ordering ends at Minimal.
func TestStylesOrder(t *testing.T) {
	styles := Styles()
	if len(styles) != 4 {
		t.Fatalf("Styles() returned %d styles, want 4", len(styles))
	}
	if styles[len(styles)-1] != Minimal {
		t.Errorf("Styles() = %v, want Minimal last", styles)
	}
}
