// Package panel is the façade the study shell renders through: one call
// takes raw content (string, list, ordered pairs) to a finished box sized
// for the current terminal.
//
// The renderer detects capabilities once and reuses the snapshot, picks a
// border style the terminal can actually draw, normalizes and styles the
// content, and delegates frame assembly to display/box.
package panel

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/chalkboard/display/box"
	"gitlab.com/tinyland/lab/chalkboard/display/content"
	"gitlab.com/tinyland/lab/chalkboard/display/termcap"
	"gitlab.com/tinyland/lab/chalkboard/display/textwidth"
	"gitlab.com/tinyland/lab/chalkboard/display/textwrap"
)

// Color palette matching the study-shell theme.
var (
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple - panel titles
	colorSecondary = lipgloss.Color("#06B6D4") // Cyan - section headings
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(colorSecondary)
)

// Config controls panel rendering.
type Config struct {
	// Style is the requested border style. Terminals not known to draw
	// Unicode borders safely are downgraded to Ascii.
	Style box.Style
	// Width fixes the output width in cells. Zero means auto: detected
	// terminal columns minus Margin.
	Width int
	// Margin is subtracted from the detected width in auto mode.
	Margin int
	// Title is embedded in the top border.
	Title string
	// AmbiguousWide measures East Asian Ambiguous characters as 2 cells.
	AmbiguousWide bool
	// Color enables role styling of titles and headings.
	Color bool
	// VPad adds a blank interior line above and below the content.
	VPad bool
	// Logger receives debug logs. Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns the chalkboard defaults: double-line borders
// (auto-downgraded on unknown terminals), auto width with a two column
// margin, color on.
func DefaultConfig() Config {
	return Config{
		Style:  box.DoubleLine,
		Margin: 2,
		Color:  true,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Renderer renders panels against one capability snapshot.
type Renderer struct {
	cfg     Config
	det     *termcap.Detector
	m       *textwidth.Measurer
	wrapper *textwrap.Wrapper
}

// New creates a Renderer for the given configuration.
func New(cfg Config) *Renderer {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Margin < 0 {
		cfg.Margin = 0
	}
	m := textwidth.New(textwidth.Options{AmbiguousWide: cfg.AmbiguousWide})
	return &Renderer{
		cfg:     cfg,
		det:     termcap.NewDetector(cfg.Logger),
		m:       m,
		wrapper: textwrap.New(m),
	}
}

// Capabilities returns the snapshot renders are sized against.
func (r *Renderer) Capabilities() termcap.Capabilities {
	return r.det.Detect()
}

// Refresh re-probes the terminal, e.g. after a window resize.
func (r *Renderer) Refresh() termcap.Capabilities {
	return r.det.Refresh()
}

// Render draws v as a panel. v may be anything content.Normalize accepts:
// nil, string, []string, content.Pairs, and friends.
func (r *Renderer) Render(v any) (string, error) {
	caps := r.det.Detect()

	width := r.cfg.Width
	if width <= 0 {
		width = caps.Columns - r.cfg.Margin
	}
	style := r.effectiveStyle(caps)

	lines := content.Normalize(v)
	if r.cfg.Color {
		lines = stylize(lines)
	}

	out, err := box.Render(lines, box.Options{
		Style:    style,
		Width:    width,
		Title:    r.title(width, style),
		VPad:     r.cfg.VPad,
		Measurer: r.m,
	})
	if err != nil {
		var inv *box.InvariantError
		if errors.As(err, &inv) {
			r.cfg.Logger.Warn("render invariant violated",
				"line", inv.Line, "want", inv.Want, "got", inv.Got)
		}
		return "", fmt.Errorf("rendering panel: %w", err)
	}

	r.cfg.Logger.Debug("panel rendered",
		"width", width,
		"style", style.String(),
		"lines", strings.Count(out, "\n")+1)
	return out, nil
}

// effectiveStyle downgrades Unicode borders to Ascii when the terminal
// is not known to draw them at one cell: unknown emulators may lack the
// glyphs, and ambiguous-wide terminals draw them two cells wide.
func (r *Renderer) effectiveStyle(caps termcap.Capabilities) box.Style {
	style := r.cfg.Style
	if style == box.Ascii || style == box.Minimal {
		return style
	}
	if r.cfg.AmbiguousWide || !caps.WideGlyphs {
		r.cfg.Logger.Debug("downgrading border style",
			"from", style.String(), "to", box.Ascii.String())
		return box.Ascii
	}
	return style
}

// title returns the styled panel title, pre-shortened to the border's
// title slot so styling tags are never cut apart downstream.
func (r *Renderer) title(width int, style box.Style) string {
	if r.cfg.Title == "" {
		return ""
	}
	avail := width - 4
	if style == box.Minimal {
		avail = width
	}
	if avail < 1 {
		return ""
	}
	title := r.wrapper.TruncateWithEllipsis(r.cfg.Title, avail)
	if r.cfg.Color {
		title = titleStyle.Render(title)
	}
	return title
}

// stylize applies role styling. Styled text still measures correctly
// downstream: escape sequences are opaque tags.
func stylize(lines content.Lines) content.Lines {
	out := make(content.Lines, len(lines))
	for i, l := range lines {
		if l.Role == content.RoleHeading && l.Text != "" {
			out[i] = content.Line{Text: headingStyle.Render(l.Text), Role: l.Role}
			continue
		}
		out[i] = l
	}
	return out
}
