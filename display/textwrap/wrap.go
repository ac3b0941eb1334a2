// Package textwrap wraps and truncates text by terminal display width.
//
// Wrapping is greedy: words accumulate onto a line while they fit, and a
// word wider than the whole line is hard-split between grapheme clusters.
// Widths are measured with display/textwidth, so CJK text, combining
// marks, and ANSI escape sequences all wrap correctly.
package textwrap

import (
	"errors"
	"strings"

	"gitlab.com/tinyland/lab/chalkboard/display/textwidth"
)

// ErrInvalidWidth reports a wrap request narrower than one cell.
var ErrInvalidWidth = errors.New("textwrap: width must be at least 1")

// Ellipsis marks truncated text.
const Ellipsis = "…"

// Wrapper wraps text under a fixed width measurement policy.
type Wrapper struct {
	m *textwidth.Measurer
}

// New creates a Wrapper measuring with m.
// A nil m uses the default policy (ambiguous characters narrow).
func New(m *textwidth.Measurer) *Wrapper {
	return &Wrapper{m: m}
}

// Wrap splits s into lines of at most maxWidth display cells.
// Explicit newlines in s are preserved as paragraph breaks, and a
// paragraph of only whitespace yields one empty line, so no input is ever
// silently dropped. The single exception to the width bound is a lone
// grapheme cluster wider than maxWidth, which is emitted on its own line
// rather than split apart.
func (w *Wrapper) Wrap(s string, maxWidth int) ([]string, error) {
	if maxWidth < 1 {
		return nil, ErrInvalidWidth
	}
	var out []string
	for _, paragraph := range strings.Split(s, "\n") {
		out = append(out, w.wrapParagraph(paragraph, maxWidth)...)
	}
	return out, nil
}

// wrapParagraph greedily fills lines with whitespace-separated words.
func (w *Wrapper) wrapParagraph(paragraph string, maxWidth int) []string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	cur := ""
	curWidth := 0

	flush := func() {
		lines = append(lines, cur)
		cur = ""
		curWidth = 0
	}

	for _, word := range words {
		wordWidth := w.m.String(word)

		// A word that can never fit is hard-split between clusters.
		// The final chunk stays current so later words may join it.
		if wordWidth > maxWidth {
			if cur != "" {
				flush()
			}
			chunks := w.splitClusters(word, maxWidth)
			for _, c := range chunks[:len(chunks)-1] {
				lines = append(lines, c.text)
			}
			last := chunks[len(chunks)-1]
			cur, curWidth = last.text, last.width
			continue
		}

		sep := 0
		if curWidth > 0 {
			sep = 1
		}
		if curWidth+sep+wordWidth > maxWidth {
			flush()
			cur, curWidth = word, wordWidth
			continue
		}
		if cur != "" {
			cur += " "
			curWidth++
		}
		cur += word
		curWidth += wordWidth
	}

	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

// chunk is one hard-split segment of an over-long word.
type chunk struct {
	text  string
	width int
}

// splitClusters cuts word into chunks of at most maxWidth cells, breaking
// only between grapheme clusters. A single cluster wider than maxWidth
// becomes its own over-wide chunk.
func (w *Wrapper) splitClusters(word string, maxWidth int) []chunk {
	line := w.m.Split(word)
	var chunks []chunk
	var cur chunk
	for _, c := range line.Clusters {
		if cur.width > 0 && cur.width+c.Width > maxWidth {
			chunks = append(chunks, cur)
			cur = chunk{}
		}
		cur.text += c.Text
		cur.width += c.Width
	}
	return append(chunks, cur)
}

// Truncate returns the longest prefix of s that fits in maxWidth cells,
// cutting only between grapheme clusters. Escape sequences attached to
// surviving clusters are preserved. maxWidth < 1 returns the empty string.
func (w *Wrapper) Truncate(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	line := w.m.Split(s)
	if line.Width <= maxWidth {
		return s
	}
	var b strings.Builder
	width := 0
	for _, c := range line.Clusters {
		if width+c.Width > maxWidth {
			break
		}
		b.WriteString(c.Text)
		width += c.Width
	}
	return b.String()
}

// TruncateWithEllipsis truncates s to maxWidth cells, marking any cut
// with a trailing ellipsis. Strings that already fit come back unchanged.
// The ellipsis is measured under the wrapper's policy, where it may
// occupy two cells, so the result never exceeds maxWidth.
func (w *Wrapper) TruncateWithEllipsis(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if w.m.String(s) <= maxWidth {
		return s
	}
	mark := w.m.String(Ellipsis)
	if maxWidth <= mark {
		return w.Truncate(Ellipsis, maxWidth)
	}
	return w.Truncate(s, maxWidth-mark) + Ellipsis
}

// defaultWrapper backs the package-level helpers.
var defaultWrapper = New(nil)

// Wrap splits s into lines of at most maxWidth cells under the default
// width policy.
func Wrap(s string, maxWidth int) ([]string, error) {
	return defaultWrapper.Wrap(s, maxWidth)
}

// Truncate truncates s under the default width policy.
func Truncate(s string, maxWidth int) string {
	return defaultWrapper.Truncate(s, maxWidth)
}
