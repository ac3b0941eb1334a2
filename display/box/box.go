// Package box renders content lines inside closed bordered frames.
//
// Output is width-invariant: every line of a rendered box measures exactly
// the requested display width, so stacked boxes always align. Content is
// wrapped to the interior, padded by measured width rather than length,
// and titles are embedded in the top border. The renderer either returns
// a correct box or an error, never a misaligned one.
package box

import (
	"errors"
	"fmt"
	"strings"

	"gitlab.com/tinyland/lab/chalkboard/display/content"
	"gitlab.com/tinyland/lab/chalkboard/display/textwidth"
	"gitlab.com/tinyland/lab/chalkboard/display/textwrap"
)

var (
	// ErrWidthTooSmall reports a target width with no room for content.
	// Callers should widen the box, or fall back to the Minimal style.
	ErrWidthTooSmall = errors.New("box: width too small for borders and padding")

	// ErrInvalidArgument reports an unusable option value.
	ErrInvalidArgument = errors.New("box: invalid argument")
)

// InvariantError reports an assembled box whose lines did not all measure
// the target width. It indicates a renderer bug, never bad input, and no
// output accompanies it.
type InvariantError struct {
	// Line is the index of the offending output line.
	Line int
	// Want is the target display width.
	Want int
	// Got is the measured display width.
	Got int
}

// Error implements the error interface.
func (e *InvariantError) Error() string {
	return fmt.Sprintf("box: line %d measures %d cells, want %d", e.Line, e.Got, e.Want)
}

// Options controls a single render.
type Options struct {
	// Style selects the border glyph family.
	Style Style
	// Width is the exact display width of every output line.
	Width int
	// Title is embedded in the top border, truncated when over-long.
	Title string
	// VPad adds one blank interior line above and below the content.
	VPad bool
	// Measurer overrides the display width policy. Nil uses the default
	// policy (ambiguous characters narrow).
	Measurer *textwidth.Measurer
}

// Render draws lines inside a closed frame of exactly opts.Width cells.
// An empty line set renders as a single blank interior line. The error is
// ErrWidthTooSmall when the width cannot hold the frame plus one interior
// cell, ErrInvalidArgument for an unknown style, or *InvariantError if
// assembly produced uneven lines.
func Render(lines content.Lines, opts Options) (string, error) {
	if opts.Style == Minimal {
		return renderMinimal(lines, opts)
	}
	glyphs, ok := glyphSets[opts.Style]
	if !ok {
		return "", fmt.Errorf("%w: unknown style %d", ErrInvalidArgument, int(opts.Style))
	}
	// Unicode box drawing is East Asian Ambiguous: under an ambiguous-wide
	// policy those glyphs occupy 2 cells and no closed frame is possible.
	if opts.Measurer.String(glyphs.horizontal) != 1 {
		return "", fmt.Errorf("%w: style %s borders measure 2 cells under the ambiguous-wide policy", ErrInvalidArgument, opts.Style)
	}

	interior := opts.Width - 2*(borderCols+padCols)
	if interior < 1 {
		return "", fmt.Errorf("%w: width %d leaves %d interior cells", ErrWidthTooSmall, opts.Width, interior)
	}

	body, err := wrapBody(lines, interior, opts)
	if err != nil {
		return "", err
	}

	out := make([]string, 0, len(body)+2)
	out = append(out, topBorder(glyphs, opts))
	pad := strings.Repeat(" ", padCols)
	for _, l := range body {
		if l.Role == content.RoleSeparator {
			out = append(out, glyphs.teeLeft+strings.Repeat(glyphs.horizontal, opts.Width-2)+glyphs.teeRight)
			continue
		}
		padded, err := padLine(l.Text, interior, opts)
		if err != nil {
			return "", err
		}
		out = append(out, glyphs.vertical+pad+padded+pad+glyphs.vertical)
	}
	out = append(out, glyphs.bottomLeft+strings.Repeat(glyphs.horizontal, opts.Width-2)+glyphs.bottomRight)

	return finish(out, opts)
}

// renderMinimal draws width-aligned lines with no border glyphs. The
// title, if any, becomes a centered first line.
func renderMinimal(lines content.Lines, opts Options) (string, error) {
	if opts.Width < 1 {
		return "", fmt.Errorf("%w: width %d leaves %d interior cells", ErrWidthTooSmall, opts.Width, opts.Width)
	}

	body, err := wrapBody(lines, opts.Width, opts)
	if err != nil {
		return "", err
	}

	var out []string
	if opts.Title != "" {
		wrapper := textwrap.New(opts.Measurer)
		title := wrapper.Truncate(opts.Title, opts.Width)
		out = append(out, center(title, opts.Width, opts))
	}
	for _, l := range body {
		if l.Role == content.RoleSeparator {
			out = append(out, strings.Repeat(" ", opts.Width))
			continue
		}
		padded, err := padLine(l.Text, opts.Width, opts)
		if err != nil {
			return "", err
		}
		out = append(out, padded)
	}

	return finish(out, opts)
}

// wrapBody wraps every content line to the interior width, keeping roles
// and leaving separator rows intact. An empty set becomes one blank line,
// and VPad surrounds the result with blank lines.
func wrapBody(lines content.Lines, interior int, opts Options) (content.Lines, error) {
	wrapper := textwrap.New(opts.Measurer)

	var body content.Lines
	for _, l := range lines {
		if l.Role == content.RoleSeparator {
			body = append(body, l)
			continue
		}
		wrapped, err := wrapper.Wrap(l.Text, interior)
		if err != nil {
			return nil, fmt.Errorf("box: wrapping content: %w", err)
		}
		for _, text := range wrapped {
			body = append(body, content.Line{Text: text, Role: l.Role})
		}
	}
	if len(body) == 0 {
		body = content.Lines{{}}
	}
	if opts.VPad {
		padded := make(content.Lines, 0, len(body)+2)
		padded = append(padded, content.Line{})
		padded = append(padded, body...)
		padded = append(padded, content.Line{})
		body = padded
	}
	return body, nil
}

// padLine right-pads text with spaces to exactly width display cells.
// Text wider than width only occurs when a single grapheme cluster could
// not fit, which the caller must treat as a width problem, not truncate.
func padLine(text string, width int, opts Options) (string, error) {
	got := opts.Measurer.String(text)
	if got > width {
		return "", fmt.Errorf("%w: %d interior cells cannot hold a %d cell glyph", ErrWidthTooSmall, width, got)
	}
	return text + strings.Repeat(" ", width-got), nil
}

// center pads text on both sides to exactly width cells, biasing a
// surplus cell to the right.
func center(text string, width int, opts Options) string {
	got := opts.Measurer.String(text)
	if got >= width {
		return text
	}
	left := (width - got) / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", width-got-left)
}

// topBorder assembles the top border, embedding a truncated, centered
// title when one is set.
func topBorder(glyphs glyphSet, opts Options) string {
	inner := opts.Width - 2
	if opts.Title == "" {
		return glyphs.topLeft + strings.Repeat(glyphs.horizontal, inner) + glyphs.topRight
	}

	// One space each side of the title; the rest is border run.
	avail := inner - 2
	if avail < 1 {
		return glyphs.topLeft + strings.Repeat(glyphs.horizontal, inner) + glyphs.topRight
	}
	wrapper := textwrap.New(opts.Measurer)
	title := wrapper.Truncate(opts.Title, avail)
	tw := opts.Measurer.String(title)
	left := (avail - tw) / 2
	right := avail - tw - left
	return glyphs.topLeft +
		strings.Repeat(glyphs.horizontal, left) +
		" " + title + " " +
		strings.Repeat(glyphs.horizontal, right) +
		glyphs.topRight
}

// finish verifies the equal-width invariant and joins the box. On
// violation nothing is returned but the error.
func finish(out []string, opts Options) (string, error) {
	for i, line := range out {
		if got := opts.Measurer.String(line); got != opts.Width {
			return "", &InvariantError{Line: i, Want: opts.Width, Got: got}
		}
	}
	return strings.Join(out, "\n"), nil
}
