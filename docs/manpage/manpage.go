// Package manpage generates a roff-formatted man page for chalkboard.
//
// The man page is generated at runtime from the actual border style
// registry and compiled-in version information, keeping documentation
// in sync with the code automatically.
//
// Usage:
//
//	chalkboard --man | man -l -
//	chalkboard --man > ~/.local/share/man/man1/chalkboard.1
package manpage

import (
	"fmt"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/chalkboard/display/box"
)

// Generate produces a complete roff-formatted man(1) page for chalkboard.
// The version, commit, and date parameters are passed from the build-time
// linker variables so the man page always reflects the current build.
func Generate(version, commit, date string) string {
	var b strings.Builder

	writeHeader(&b, version)
	writeName(&b)
	writeSynopsis(&b)
	writeDescription(&b)
	writeOptions(&b)
	writeStyles(&b)
	writeConfiguration(&b)
	writeFiles(&b)
	writeExamples(&b)
	writeEnvironment(&b)
	writeExitStatus(&b)
	writeSeeAlso(&b)
	writeAuthors(&b)
	writeBugs(&b)
	writeFooter(&b, version, commit, date)

	return b.String()
}

// roffEscape escapes special roff characters in a string.
func roffEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `-`, `\-`)
	s = strings.ReplaceAll(s, `.`, `\&.`)
	return s
}

func writeHeader(b *strings.Builder, version string) {
	month := time.Now().Format("January 2006")
	fmt.Fprintf(b, ".TH CHALKBOARD 1 \"%s\" \"chalkboard %s\" \"User Commands\"\n", month, version)
}

func writeName(b *strings.Builder) {
	b.WriteString(`.SH NAME
chalkboard \- render text as width-exact boxed panels in the terminal
`)
}

func writeSynopsis(b *strings.Builder) {
	b.WriteString(`.SH SYNOPSIS
.B chalkboard
[\fIOPTIONS\fR]
`)
}

func writeDescription(b *strings.Builder) {
	b.WriteString(`.SH DESCRIPTION
.B chalkboard
renders text, lists, and key/value pairs as boxed terminal panels whose
every line occupies exactly the same number of terminal cells. Width is
measured by display cells rather than bytes or runes, so CJK text, emoji,
combining marks, and ANSI color sequences never tear the right-hand
border.
.PP
The tool operates in several modes:
.IP \(bu 2
.B Panel mode
(default): Reads content from \fB\-\-text\fR, \fB\-\-kv\fR, or standard
input and renders one boxed panel sized to the terminal.
.IP \(bu 2
.B Capability mode
(\fB\-\-caps\fR): Probes the terminal for size and wide-glyph support and
prints the detection result.
.IP \(bu 2
.B Demo mode
(\fB\-\-demo\fR): Renders a showcase panel in every registered border
style.
`)
}

func writeOptions(b *strings.Builder) {
	b.WriteString(`.SH OPTIONS
`)

	flags := []struct {
		flag string
		arg  string
		desc string
	}{
		{"text", "TEXT", "Panel body text. Literal newlines split the text into paragraphs that wrap independently. When omitted and standard input is not a terminal, the body is read from standard input instead."},
		{"title", "TEXT", "Title embedded in the top border. Titles wider than the border are shortened with a trailing ellipsis."},
		{"kv", "PAIRS", "Render ordered key=value pairs instead of plain text, one per line, e.g. \\fB\\-\\-kv deck=verbs,due=14\\fR. Pair order is preserved exactly as given."},
		{"style", "STYLE", "Border style. STYLE must be one of: ascii, double, heavy, minimal. Unicode styles are downgraded to ascii on terminals not known to draw them safely. Default: double."},
		{"width", "N", "Panel width in terminal cells. 0 (default) fits the detected terminal width minus the margin."},
		{"margin", "N", "Columns left free when width is 0. Default: 2."},
		{"vpad", "", "Add a blank interior line above and below the content."},
		{"caps", "", "Print the detected terminal capabilities (columns, rows, wide-glyph support, detection method) and exit."},
		{"json", "", "Output capabilities as JSON. Must be used with \\fB\\-\\-caps\\fR."},
		{"styles", "", "List the registered border styles and exit."},
		{"demo", "", "Render a showcase panel in every border style and exit."},
		{"ambiguous\\-wide", "", "Measure East Asian Ambiguous characters as two cells, matching terminals configured for CJK locales. Forces the ascii border style."},
		{"no\\-color", "", "Disable ANSI styling of titles and headings. The NO_COLOR environment variable has the same effect."},
		{"config", "PATH", "Path to the YAML configuration file. Default: ~/.config/chalkboard/config.yaml."},
		{"verbose", "", "Enable verbose (debug-level) logging to stderr."},
		{"version", "", "Print the version, commit hash, and build date, then exit."},
		{"man", "", "Print this man page to stdout in roff format. Pipe to man(1) for formatted viewing: \\fBchalkboard \\-\\-man | man \\-l \\-\\fR."},
	}

	for _, f := range flags {
		b.WriteString(".TP\n")
		if f.arg != "" {
			fmt.Fprintf(b, ".BR \\-\\-%s \" \\fI%s\\fR\"\n", f.flag, f.arg)
		} else {
			fmt.Fprintf(b, ".B \\-\\-%s\n", f.flag)
		}
		b.WriteString(f.desc + "\n")
	}
}

func writeStyles(b *strings.Builder) {
	b.WriteString(`.SH STYLES
The following border styles are registered. Every framed style produces
closed boxes: all four borders drawn, every line the same width.
`)

	for _, s := range box.Styles() {
		var desc string
		switch s {
		case box.Ascii:
			desc = "Plain ASCII borders (+, -, |). Renders correctly on every terminal, including dumb terminals and CJK ambiguous-wide configurations. The automatic fallback for the Unicode styles."
		case box.DoubleLine:
			desc = "Unicode double-line borders. The default style on terminals known to render wide glyphs correctly."
		case box.Heavy:
			desc = "Unicode heavy (thick) borders."
		case box.Minimal:
			desc = "No borders at all: content lines padded to full width, separators rendered as blank space. Minimum width 1."
		}
		fmt.Fprintf(b, ".TP\n.B %s\n%s\n", roffEscape(s.String()), desc)
	}
}

func writeConfiguration(b *strings.Builder) {
	b.WriteString(`.SH CONFIGURATION
Configuration is read from a YAML file at
.B ~/.config/chalkboard/config.yaml
by default, or from the path specified with \fB\-\-config\fR. Command
line flags override file settings.
.SS render
.TP
.B style
Border style: "ascii", "double", "heavy", or "minimal". Default: "double".
.TP
.B width
Fixed panel width in cells. 0 (default) fits the terminal.
.TP
.B margin
Columns left free in auto width mode. Default: 2.
.TP
.B color
Enable ANSI styling of titles and headings. Default: true.
.TP
.B vertical_pad
Add a blank line above and below panel content. Default: false.
.SS terminal
.TP
.B ambiguous_wide
Measure East Asian Ambiguous characters as two cells. Set this when the
terminal is configured for a CJK locale. Default: false.
`)
}

func writeFiles(b *strings.Builder) {
	b.WriteString(`.SH FILES
.TP
.I ~/.config/chalkboard/config.yaml
Primary configuration file (YAML).
`)
}

func writeExamples(b *strings.Builder) {
	b.WriteString(`.SH EXAMPLES
Render a simple panel:
.PP
.nf
chalkboard \-\-text "Hello, World" \-\-width 20
.fi
.PP
Render a titled panel with heavy borders:
.PP
.nf
chalkboard \-\-title "Hint" \-\-style heavy \-\-text "Review due cards first."
.fi
.PP
Render ordered key/value pairs:
.PP
.nf
chalkboard \-\-kv "deck=irregular verbs,due=14,new=3" \-\-title "Session"
.fi
.PP
Box the output of another command:
.PP
.nf
fortune | chalkboard \-\-title "Fortune"
.fi
.PP
Inspect terminal capability detection:
.PP
.nf
chalkboard \-\-caps
chalkboard \-\-caps \-\-json
.fi
.PP
View this man page:
.PP
.nf
chalkboard \-\-man | man \-l \-
.fi
`)
}

func writeEnvironment(b *strings.Builder) {
	b.WriteString(`.SH ENVIRONMENT
.TP
.B CHALKBOARD_CONFIG
Override path to the configuration file.
.TP
.B CHALKBOARD_WIDE_GLYPHS
Override wide-glyph detection: set to 1/true to force Unicode-capable
rendering, 0/false to force the ASCII fallback.
.TP
.B NO_COLOR
Disable ANSI styling when set to any value.
.TP
.B COLUMNS, LINES
Used for terminal size detection when the terminal API is unavailable.
.TP
.B TERM, TERM_PROGRAM
Consulted to decide whether the terminal renders wide glyphs correctly.
`)
}

func writeExitStatus(b *strings.Builder) {
	b.WriteString(".SH EXIT STATUS\n")
	b.WriteString(".TP\n.B 0\n")
	b.WriteString("Success.\n")
	b.WriteString(".TP\n.B 1\n")
	b.WriteString("Failure: invalid flags, unrenderable width, or a write error.\n")
}

func writeSeeAlso(b *strings.Builder) {
	b.WriteString(`.SH SEE ALSO
.BR man (1),
.BR tput (1),
.BR fortune (6)
`)
}

func writeAuthors(b *strings.Builder) {
	b.WriteString(`.SH AUTHORS
Tinyland Lab <https://gitlab.com/tinyland/lab>
`)
}

func writeBugs(b *strings.Builder) {
	b.WriteString(`.SH BUGS
Report bugs at <https://gitlab.com/tinyland/lab/chalkboard/\-/issues>.
`)
}

func writeFooter(b *strings.Builder, version, commit, date string) {
	fmt.Fprintf(b, ".SH VERSION\n%s (%s) built %s\n", version, commit, date)
}
