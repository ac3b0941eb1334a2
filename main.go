// chalkboard renders text as width-exact boxed panels in the terminal.
//
// Content is measured in display cells rather than bytes or runes, wrapped
// to fit, and framed in closed borders that never tear on CJK text, emoji,
// combining marks, or ANSI color sequences.
//
// Usage:
//
//	chalkboard [flags]
//
// Flags:
//
//	-text string      Panel body text (stdin is read when piped)
//	-title string     Title embedded in the top border
//	-kv string        Ordered key=value pairs, e.g. "deck=verbs,due=14"
//	-style string     Border style (ascii|double|heavy|minimal)
//	-width int        Panel width in cells (0 = fit terminal)
//	-margin int       Columns left free in auto width mode
//	-vpad             Blank line above and below content
//	-caps             Print detected terminal capabilities
//	-json             Output capabilities as JSON (with -caps)
//	-styles           List registered border styles
//	-demo             Render a showcase panel in every style
//	-ambiguous-wide   Measure East Asian Ambiguous characters as two cells
//	-no-color         Disable ANSI styling
//	-config string    Path to configuration file (default: ~/.config/chalkboard/config.yaml)
//	-verbose          Enable verbose logging
//	-man              Print man page to stdout in roff format
//	-version          Print version and exit
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"gitlab.com/tinyland/lab/chalkboard/config"
	"gitlab.com/tinyland/lab/chalkboard/display/box"
	"gitlab.com/tinyland/lab/chalkboard/display/content"
	"gitlab.com/tinyland/lab/chalkboard/display/panel"
	"gitlab.com/tinyland/lab/chalkboard/display/termcap"
	"gitlab.com/tinyland/lab/chalkboard/docs/manpage"
)

func main() {
	var (
		textFlag      = flag.String("text", "", "Panel body text (stdin is read when piped)")
		titleFlag     = flag.String("title", "", "Title embedded in the top border")
		kvFlag        = flag.String("kv", "", `Ordered key=value pairs, e.g. "deck=verbs,due=14"`)
		styleFlag     = flag.String("style", "", "Border style (ascii|double|heavy|minimal)")
		widthFlag     = flag.Int("width", 0, "Panel width in cells (0 = fit terminal)")
		marginFlag    = flag.Int("margin", 2, "Columns left free in auto width mode")
		vpadFlag      = flag.Bool("vpad", false, "Blank line above and below content")
		showCaps      = flag.Bool("caps", false, "Print detected terminal capabilities")
		capsJSON      = flag.Bool("json", false, "Output capabilities as JSON (with -caps)")
		listStyles    = flag.Bool("styles", false, "List registered border styles")
		runDemo       = flag.Bool("demo", false, "Render a showcase panel in every style")
		ambiguousWide = flag.Bool("ambiguous-wide", false, "Measure East Asian Ambiguous characters as two cells")
		noColor       = flag.Bool("no-color", false, "Disable ANSI styling")
		configPath    = flag.String("config", "", "Path to configuration file (default: ~/.config/chalkboard/config.yaml)")
		verbose       = flag.Bool("verbose", false, "Enable verbose logging")
		showMan       = flag.Bool("man", false, "Print man page to stdout in roff format")
		showVersion   = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	// ---------------------------------------------------------------
	// Commands that don't require config
	// ---------------------------------------------------------------

	if *showVersion {
		fmt.Printf("chalkboard %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if *showMan {
		fmt.Print(manpage.Generate(version, commit, date))
		os.Exit(0)
	}

	if *listStyles {
		for _, s := range box.Styles() {
			fmt.Println(s)
		}
		os.Exit(0)
	}

	// ---------------------------------------------------------------
	// Load configuration and apply flag overrides
	// ---------------------------------------------------------------

	path := *configPath
	if path == "" {
		path = os.Getenv("CHALKBOARD_CONFIG")
	}
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config %s: %v\n", path, err)
		os.Exit(1)
	}

	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	if *styleFlag != "" {
		cfg.Render.Style = *styleFlag
	}
	if explicit["width"] {
		cfg.Render.Width = *widthFlag
	}
	if explicit["margin"] {
		cfg.Render.Margin = *marginFlag
	}
	if explicit["vpad"] {
		cfg.Render.VerticalPad = *vpadFlag
	}
	if explicit["ambiguous-wide"] {
		cfg.Terminal.AmbiguousWide = *ambiguousWide
	}
	if *noColor || os.Getenv("NO_COLOR") != "" {
		cfg.Render.Color = false
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if *verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	// ---------------------------------------------------------------
	// Capability mode
	// ---------------------------------------------------------------

	if *showCaps {
		caps := termcap.NewDetector(logger).Detect()
		if *capsJSON {
			data, err := json.MarshalIndent(caps, "", "  ")
			if err != nil {
				fmt.Fprintf(os.Stderr, "encoding capabilities failed: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(data))
		} else {
			fmt.Printf("columns:      %d\n", caps.Columns)
			fmt.Printf("rows:         %d\n", caps.Rows)
			fmt.Printf("wide glyphs:  %v\n", caps.WideGlyphs)
			fmt.Printf("interactive:  %v\n", caps.Interactive)
			fmt.Printf("method:       %s\n", caps.Method)
		}
		os.Exit(0)
	}

	// ---------------------------------------------------------------
	// Demo mode
	// ---------------------------------------------------------------

	if *runDemo {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(os.Stderr, "chalkboard: demo panic: %v\n", r)
				os.Exit(1)
			}
		}()

		for _, style := range box.Styles() {
			pcfg, err := buildPanelConfig(cfg, style.String(), logger)
			if err != nil {
				fmt.Fprintf(os.Stderr, "demo failed: %v\n", err)
				os.Exit(1)
			}
			pcfg.Style = style

			out, err := panel.New(pcfg).Render(demoContent())
			if err != nil {
				fmt.Fprintf(os.Stderr, "demo render failed for %s: %v\n", style, err)
				os.Exit(1)
			}
			fmt.Println(out)
			fmt.Println()
		}
		os.Exit(0)
	}

	// ---------------------------------------------------------------
	// Panel mode (default)
	// ---------------------------------------------------------------

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "chalkboard: render panic: %v\n", r)
			os.Exit(1)
		}
	}()

	var body any
	switch {
	case *kvFlag != "":
		pairs, err := parsePairs(*kvFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -kv value: %v\n", err)
			os.Exit(1)
		}
		body = pairs
	case *textFlag != "":
		body = *textFlag
	case stdinIsPiped():
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "reading stdin: %v\n", err)
			os.Exit(1)
		}
		body = strings.TrimRight(string(data), "\n")
	default:
		fmt.Printf("chalkboard %s (%s) built %s\n", version, commit, date)
		fmt.Println()
		fmt.Println("Usage: chalkboard [flags]")
		fmt.Println()
		flag.PrintDefaults()
		return
	}

	pcfg, err := buildPanelConfig(cfg, *titleFlag, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	out, err := panel.New(pcfg).Render(body)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(out)
}

// buildPanelConfig converts file configuration plus CLI overrides into a
// panel configuration.
func buildPanelConfig(cfg *config.Config, title string, logger *slog.Logger) (panel.Config, error) {
	style, err := box.ParseStyle(cfg.Render.Style)
	if err != nil {
		return panel.Config{}, err
	}
	return panel.Config{
		Style:         style,
		Width:         cfg.Render.Width,
		Margin:        cfg.Render.Margin,
		Title:         title,
		AmbiguousWide: cfg.Terminal.AmbiguousWide,
		Color:         cfg.Render.Color,
		VPad:          cfg.Render.VerticalPad,
		Logger:        logger,
	}, nil
}

// parsePairs parses an ordered "k=v,k=v" flag value. Order is preserved.
func parsePairs(s string) (content.Pairs, error) {
	var pairs content.Pairs
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key, value, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("pair %q missing '='", item)
		}
		pairs = append(pairs, content.Pair{
			Key:   strings.TrimSpace(key),
			Value: strings.TrimSpace(value),
		})
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("no pairs in %q", s)
	}
	return pairs, nil
}

// demoContent builds the showcase body rendered once per style.
func demoContent() content.Lines {
	lines := content.Lines{
		content.Heading("Today"),
		{Text: "Review 14 due cards in irregular verbs, then 3 new ones.", Role: content.RoleBody},
		content.Separator(),
		content.Heading("Streak"),
		{Text: "6 days. Longest: 21.", Role: content.RoleBody},
	}
	return lines
}

// stdinIsPiped reports whether stdin carries piped input rather than an
// interactive terminal.
func stdinIsPiped() bool {
	fd := os.Stdin.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}
