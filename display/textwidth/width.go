// Package textwidth measures the terminal display width of strings.
//
// Width is counted in terminal cells following East Asian Width rules:
// CJK ideographs, fullwidth forms, and wide emoji occupy 2 cells, combining
// marks and zero-width joiners occupy 0, everything else occupies 1.
// Unassigned codepoints count as 1 so that layout math never under-counts.
// ANSI escape sequences (colors, OSC 8 hyperlinks) are treated as opaque
// tags with width 0 and are preserved in cluster output.
package textwidth

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Options configures width measurement policy.
type Options struct {
	// AmbiguousWide counts East Asian Ambiguous characters (±, °, box
	// drawing, some Greek/Cyrillic) as 2 cells. Western terminals render
	// them narrow; terminals in CJK locales may render them wide.
	AmbiguousWide bool
}

// Measurer computes display widths under a fixed Options policy.
// Measurement is pure: the same input always yields the same width,
// independent of locale environment variables.
type Measurer struct {
	cond *runewidth.Condition
}

// New creates a Measurer for the given policy.
func New(opts Options) *Measurer {
	return &Measurer{
		cond: &runewidth.Condition{
			EastAsianWidth:     opts.AmbiguousWide,
			StrictEmojiNeutral: true,
		},
	}
}

// defaultCond measures with ambiguous characters narrow.
var defaultCond = &runewidth.Condition{StrictEmojiNeutral: true}

// condition returns the measurer's runewidth condition, falling back to
// the default policy for a zero-value Measurer.
func (m *Measurer) condition() *runewidth.Condition {
	if m == nil || m.cond == nil {
		return defaultCond
	}
	return m.cond
}

// Cluster is one grapheme cluster of a measured line. Text holds the
// cluster's bytes plus any escape sequences attached to it, so that
// concatenating all cluster texts reproduces the source string.
type Cluster struct {
	// Text is the cluster including attached zero-width codepoints and
	// escape sequences.
	Text string
	// Width is the cluster's display width in cells.
	Width int
}

// Line is the grapheme cluster decomposition of a single-line string.
// Width always equals the sum of the cluster widths, and no cluster has
// width 0 except a degenerate line consisting only of zero-width input.
type Line struct {
	// Clusters holds the clusters in display order.
	Clusters []Cluster
	// Width is the total display width in cells.
	Width int
}

// String reassembles the original string from the clusters.
func (l Line) String() string {
	var b strings.Builder
	for _, c := range l.Clusters {
		b.WriteString(c.Text)
	}
	return b.String()
}

// String returns the display width of s in terminal cells.
// Escape sequences contribute 0.
func (m *Measurer) String(s string) int {
	cond := m.condition()
	width := 0
	state := -1
	i := 0
	for i < len(s) {
		if s[i] == escape {
			i = skipEscape(s, i)
			state = -1
			continue
		}
		cluster, rest, _, newState := uniseg.FirstGraphemeClusterInString(s[i:], state)
		width += cond.StringWidth(cluster)
		state = newState
		i = len(s) - len(rest)
	}
	return width
}

// Cluster returns the display width of a single grapheme cluster.
// Combining marks within the cluster contribute 0, so the result is the
// width of the cluster's base codepoint.
func (m *Measurer) Cluster(cluster string) int {
	return m.condition().StringWidth(cluster)
}

// Split decomposes s into grapheme clusters with their widths.
// Zero-width clusters (lone combining marks, zero-width joiners) merge
// into the preceding cluster; escape sequences attach to the nearest
// visible cluster. Newlines are not special: callers split lines first.
func (m *Measurer) Split(s string) Line {
	cond := m.condition()
	var line Line
	var pending strings.Builder

	// attach appends zero-width text to the last cluster, or buffers it
	// until the first visible cluster exists.
	attach := func(text string) {
		if n := len(line.Clusters); n > 0 {
			line.Clusters[n-1].Text += text
			return
		}
		pending.WriteString(text)
	}

	state := -1
	i := 0
	for i < len(s) {
		if s[i] == escape {
			end := skipEscape(s, i)
			attach(s[i:end])
			state = -1
			i = end
			continue
		}
		cluster, rest, _, newState := uniseg.FirstGraphemeClusterInString(s[i:], state)
		state = newState
		i = len(s) - len(rest)

		w := cond.StringWidth(cluster)
		if w == 0 {
			attach(cluster)
			continue
		}
		text := cluster
		if pending.Len() > 0 {
			text = pending.String() + cluster
			pending.Reset()
		}
		line.Clusters = append(line.Clusters, Cluster{Text: text, Width: w})
		line.Width += w
	}

	// Input that was entirely zero-width becomes one degenerate cluster.
	if pending.Len() > 0 {
		line.Clusters = append(line.Clusters, Cluster{Text: pending.String()})
	}
	return line
}

// defaultMeasurer backs the package-level helpers.
var defaultMeasurer = New(Options{})

// String returns the display width of s under the default policy
// (ambiguous characters narrow).
func String(s string) int {
	return defaultMeasurer.String(s)
}

// Split decomposes s into clusters under the default policy.
func Split(s string) Line {
	return defaultMeasurer.Split(s)
}

// escape introduces terminal control sequences.
const escape = '\x1b'

// skipEscape returns the index just past the escape sequence starting at
// s[i]. It understands CSI sequences (ESC [ ... final byte), OSC strings
// (ESC ] ... BEL or ESC \), and two-byte sequences. A sequence left open
// at end of string consumes the remainder.
func skipEscape(s string, i int) int {
	i++
	if i >= len(s) {
		return i
	}
	switch s[i] {
	case '[':
		for i++; i < len(s); i++ {
			if s[i] >= 0x40 && s[i] <= 0x7e {
				return i + 1
			}
		}
		return i
	case ']':
		for i++; i < len(s); i++ {
			if s[i] == '\a' {
				return i + 1
			}
			if s[i] == escape && i+1 < len(s) && s[i+1] == '\\' {
				return i + 2
			}
		}
		return i
	default:
		return i + 1
	}
}
