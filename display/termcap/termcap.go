// Package termcap detects terminal capabilities: window dimensions, wide
// glyph support, and interactivity.
//
// Dimension detection runs an ordered probe list, first definitive answer
// wins: the terminal API, then COLUMNS/LINES, then the platform window
// size query (TIOCGWINSZ ioctl on Unix, console API on Windows). When no
// probe succeeds the conservative 80x24 fallback applies, so detection
// never fails, it only degrades. Results outside sane bounds are treated
// as corrupt and the next probe runs.
package termcap

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
)

// Fallback dimensions assumed when every probe fails.
const (
	FallbackColumns = 80
	FallbackRows    = 24
)

// maxPlausible rejects corrupted probe results. No real terminal is
// 10000 cells wide or tall.
const maxPlausible = 10000

// Method identifies which probe produced a capability snapshot.
type Method int

const (
	// MethodFallback means every probe failed; dimensions are assumed.
	MethodFallback Method = iota
	// MethodTermAPI read the size from the terminal API on stdout.
	MethodTermAPI
	// MethodEnv read the COLUMNS and LINES environment variables.
	MethodEnv
	// MethodIoctl queried the kernel window size on a Unix system.
	MethodIoctl
	// MethodConsoleAPI queried the Windows console screen buffer.
	MethodConsoleAPI
)

// String returns the human-readable name of the detection method.
func (m Method) String() string {
	switch m {
	case MethodFallback:
		return "fallback"
	case MethodTermAPI:
		return "term-api"
	case MethodEnv:
		return "env"
	case MethodIoctl:
		return "ioctl"
	case MethodConsoleAPI:
		return "console-api"
	default:
		return "unknown"
	}
}

// MarshalText renders the method name in JSON and text encodings.
func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Capabilities is an immutable snapshot of what the terminal can do.
// Renders against one snapshot stay mutually consistent even if the
// window changes mid-flight; call Refresh to observe the new size.
type Capabilities struct {
	// Columns is the terminal width in cells.
	Columns int `json:"columns"`
	// Rows is the terminal height in cells.
	Rows int `json:"rows"`
	// WideGlyphs reports whether the terminal is known to render East
	// Asian wide glyphs at two cells. False means callers should prefer
	// ASCII-safe borders.
	WideGlyphs bool `json:"wide_glyphs"`
	// Interactive reports whether stdout is attached to a terminal.
	Interactive bool `json:"interactive"`
	// Method records which probe supplied the dimensions.
	Method Method `json:"method"`
}

// Detector caches a capability snapshot across renders. The zero value
// is not usable; create one with NewDetector.
type Detector struct {
	mu     sync.RWMutex
	snap   *Capabilities
	logger *slog.Logger
}

// NewDetector creates a Detector. A nil logger discards probe logs.
func NewDetector(logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Detector{logger: logger}
}

// Detect returns the cached snapshot, probing on first use.
// It is safe for concurrent use with Refresh.
func (d *Detector) Detect() Capabilities {
	d.mu.RLock()
	if d.snap != nil {
		snap := *d.snap
		d.mu.RUnlock()
		return snap
	}
	d.mu.RUnlock()
	return d.Refresh()
}

// Refresh re-probes the terminal and replaces the cached snapshot.
// Callers react to window size changes by calling Refresh.
func (d *Detector) Refresh() Capabilities {
	snap := detect(d.logger)
	d.mu.Lock()
	d.snap = &snap
	d.mu.Unlock()
	return snap
}

// Detect probes the terminal once without caching.
func Detect() Capabilities {
	return detect(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// Probe indirections so tests can exercise precedence without a TTY.
var (
	termAPIProbe = queryTermAPI
	envProbe     = queryEnv
	sysProbe     = querySysWinsize
)

// probeEntry pairs a probe with the method it reports.
type probeEntry struct {
	method Method
	fn     func() (int, int, bool)
}

// probes returns the detection chain in priority order.
func probes() []probeEntry {
	return []probeEntry{
		{MethodTermAPI, termAPIProbe},
		{MethodEnv, envProbe},
		{sysWinsizeMethod, sysProbe},
	}
}

// detect runs the probe chain and assembles a snapshot.
func detect(logger *slog.Logger) Capabilities {
	caps := Capabilities{
		Columns:     FallbackColumns,
		Rows:        FallbackRows,
		Interactive: stdoutIsTerminal(),
		Method:      MethodFallback,
	}

	for _, p := range probes() {
		cols, rows, ok := p.fn()
		if !ok {
			continue
		}
		if !plausible(cols, rows) {
			logger.Debug("discarding implausible probe result",
				"probe", p.method.String(), "columns", cols, "rows", rows)
			continue
		}
		caps.Columns, caps.Rows, caps.Method = cols, rows, p.method
		break
	}

	caps.WideGlyphs = wideGlyphTerminal()
	logger.Debug("terminal capabilities",
		"columns", caps.Columns,
		"rows", caps.Rows,
		"method", caps.Method.String(),
		"wide_glyphs", caps.WideGlyphs,
		"interactive", caps.Interactive)
	return caps
}

// queryTermAPI asks the terminal API for the stdout window size. The
// probe is skipped structurally when stdout is not a terminal, so it
// never blocks on pipes or files.
func queryTermAPI() (int, int, bool) {
	if !stdoutIsTerminal() {
		return 0, 0, false
	}
	w, h, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

// queryEnv reads COLUMNS and LINES. Both must parse as positive integers
// for the probe to succeed; a half-set environment is a failure, not a
// partial answer.
func queryEnv() (int, int, bool) {
	cols, err := strconv.Atoi(os.Getenv("COLUMNS"))
	if err != nil || cols <= 0 {
		return 0, 0, false
	}
	rows, err := strconv.Atoi(os.Getenv("LINES"))
	if err != nil || rows <= 0 {
		return 0, 0, false
	}
	return cols, rows, true
}

// stdoutIsTerminal reports whether stdout is attached to a terminal,
// including Cygwin/MSYS pseudo terminals.
func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// plausible rejects dimensions outside sane terminal bounds.
func plausible(cols, rows int) bool {
	return cols > 0 && rows > 0 && cols < maxPlausible && rows < maxPlausible
}
