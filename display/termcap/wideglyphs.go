package termcap

import (
	"os"
	"strings"
)

// wideGlyphTerminal reports whether the terminal is known to render East
// Asian wide and emoji glyphs at their proper two-cell width. Unknown
// terminals report false so rendering degrades to ASCII-safe output
// instead of producing torn borders.
//
// Detection priority:
//  1. CHALKBOARD_WIDE_GLYPHS explicit override
//  2. TERM_PROGRAM for known terminal emulators
//  3. Emulator-specific variables (KITTY_WINDOW_ID, ITERM_SESSION_ID,
//     WEZTERM_EXECUTABLE, ALACRITTY_WINDOW_ID, VTE_VERSION)
//  4. TERM content hints
func wideGlyphTerminal() bool {
	// Priority 1: explicit override wins over everything.
	switch strings.ToLower(os.Getenv("CHALKBOARD_WIDE_GLYPHS")) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}

	// Priority 2: TERM_PROGRAM for known terminal emulators.
	switch strings.ToLower(os.Getenv("TERM_PROGRAM")) {
	case "ghostty", "kitty", "wezterm", "iterm.app", "apple_terminal", "vscode":
		return true
	}

	// Priority 3: emulator-specific variables survive TERM overrides.
	if os.Getenv("KITTY_WINDOW_ID") != "" ||
		os.Getenv("ITERM_SESSION_ID") != "" ||
		os.Getenv("WEZTERM_EXECUTABLE") != "" ||
		os.Getenv("ALACRITTY_WINDOW_ID") != "" ||
		os.Getenv("VTE_VERSION") != "" {
		return true
	}

	// Priority 4: TERM content hints.
	term := os.Getenv("TERM")
	switch {
	case strings.HasPrefix(term, "xterm-kitty"),
		strings.HasPrefix(term, "xterm-ghostty"),
		strings.HasPrefix(term, "foot"),
		strings.HasPrefix(term, "alacritty"),
		strings.HasPrefix(term, "wezterm"):
		return true
	}

	return false
}
