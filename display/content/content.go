// Package content normalizes caller-supplied values into canonical render
// lines. Lesson steps, hint lists, and summary tables arrive as plain
// strings, string slices, or ordered key/value pairs; everything funnels
// through Normalize before layout so downstream code only ever sees Lines.
package content

import (
	"fmt"
	"sort"
	"strings"
)

// Role classifies a normalized line for styling and box layout.
type Role int

const (
	// RoleBody is ordinary content.
	RoleBody Role = iota
	// RoleHeading is an emphasized line such as a section name.
	RoleHeading
	// RoleSeparator renders as a horizontal rule inside a box.
	RoleSeparator
)

// String returns the human-readable name of the role.
func (r Role) String() string {
	switch r {
	case RoleBody:
		return "body"
	case RoleHeading:
		return "heading"
	case RoleSeparator:
		return "separator"
	default:
		return "unknown"
	}
}

// Line is one canonical render line. Text never contains a newline.
type Line struct {
	// Text is the line content, possibly carrying ANSI escape tags.
	Text string
	// Role classifies the line for styling.
	Role Role
}

// Lines is the canonical render form of any accepted content shape.
type Lines []Line

// Strings returns the bare text of each line.
func (ls Lines) Strings() []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.Text
	}
	return out
}

// Pair is one ordered key/value entry.
type Pair struct {
	Key   string
	Value string
}

// Pairs is an insertion-ordered key/value mapping. Go maps iterate in
// random order, so ordered callers must use this shape.
type Pairs []Pair

// Placeholder is rendered when content is absent.
const Placeholder = "(no content)"

// Heading returns a heading line.
func Heading(text string) Line {
	return Line{Text: text, Role: RoleHeading}
}

// Separator returns a horizontal rule line.
func Separator() Line {
	return Line{Role: RoleSeparator}
}

// Normalize converts v into canonical lines. It accepts nil, string,
// []string, Pairs, []Pair, map[string]string, Line, Lines, error, and
// fmt.Stringer; any other value is formatted with %v. Normalize never
// fails: nil becomes the Placeholder line, embedded newlines split into
// separate lines, and pair order is preserved as given (map keys are
// sorted, since Go maps carry no insertion order).
func Normalize(v any) Lines {
	switch c := v.(type) {
	case nil:
		return Lines{{Text: Placeholder}}
	case Lines:
		return splitLines(c)
	case Line:
		return splitLines(Lines{c})
	case string:
		return splitText(c, RoleBody)
	case []string:
		var out Lines
		for _, s := range c {
			out = append(out, splitText(s, RoleBody)...)
		}
		return out
	case Pairs:
		return pairLines(c)
	case []Pair:
		return pairLines(c)
	case map[string]string:
		keys := make([]string, 0, len(c))
		for k := range c {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make(Pairs, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, Pair{Key: k, Value: c[k]})
		}
		return pairLines(pairs)
	case error:
		return splitText(c.Error(), RoleBody)
	case fmt.Stringer:
		return splitText(c.String(), RoleBody)
	default:
		return splitText(fmt.Sprintf("%v", c), RoleBody)
	}
}

// NormalizeWithDefault converts v like Normalize, but absent content is
// replaced by fallback() instead of the Placeholder line.
func NormalizeWithDefault(v any, fallback func() Lines) Lines {
	if v == nil && fallback != nil {
		return fallback()
	}
	return Normalize(v)
}

// pairLines renders ordered pairs as "key: value" lines.
func pairLines(pairs []Pair) Lines {
	var out Lines
	for _, p := range pairs {
		out = append(out, splitText(p.Key+": "+p.Value, RoleBody)...)
	}
	return out
}

// splitText breaks s on newlines into lines of the given role.
func splitText(s string, role Role) Lines {
	parts := strings.Split(s, "\n")
	out := make(Lines, len(parts))
	for i, p := range parts {
		out[i] = Line{Text: p, Role: role}
	}
	return out
}

// splitLines re-normalizes already shaped lines, splitting any embedded
// newlines while keeping each line's role.
func splitLines(ls Lines) Lines {
	var out Lines
	for _, l := range ls {
		if !strings.Contains(l.Text, "\n") {
			out = append(out, l)
			continue
		}
		out = append(out, splitText(l.Text, l.Role)...)
	}
	return out
}
