package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/verte-zerg/tuimorse/internal/config"
	"github.com/verte-zerg/tuimorse/internal/keyer"
	"github.com/verte-zerg/tuimorse/internal/morse"
	"github.com/verte-zerg/tuimorse/internal/render"
	"github.com/verte-zerg/tuimorse/internal/stats"
	"github.com/verte-zerg/tuimorse/internal/trace"
)

const (
	formatAuto   = "auto"
	formatTags   = "tags"
	formatGlyphs = "glyphs"
)

var (
	classifyWPM        float64
	classifyFile       string
	classifyFormat     string
	classifyLeadingGap bool
	classifySummary    bool
)

func newClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [flags] -- +HELD -GAP ...",
		Short: "Classify a timing script",
		Long: `Replays key timings and prints the resulting symbols.

"+N" holds the key for N milliseconds, "-N" leaves it up for N milliseconds
before the next press. Durations accept "ms" and "s" suffixes. Pass the
steps after "--" or read them with --file (use "-" for stdin).`,
		Example: "  tuimorse classify --wpm 20 -- +60 -60 +180 -420 +60",
		RunE:    runClassifyCmd,
	}
	cmd.Flags().Float64Var(&classifyWPM, "wpm", defaultWPM, "words per minute")
	cmd.Flags().StringVarP(&classifyFile, "file", "f", "", "read the script from a file ('-' for stdin)")
	cmd.Flags().StringVar(&classifyFormat, "format", formatAuto, "output format: auto, tags or glyphs")
	cmd.Flags().BoolVar(&classifyLeadingGap, "leading-gap", false, "classify the gap before the first press")
	cmd.Flags().BoolVar(&classifySummary, "summary", false, "print symbol counts and measured speed")
	return cmd
}

func runClassifyCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFloatConfig(cmd, "wpm", &classifyWPM, fileCfg.Keyer.WPM)
	applyBoolConfig(cmd, "leading-gap", &classifyLeadingGap, fileCfg.Keyer.LeadingGap)
	if err := morse.ValidateWPM(classifyWPM); err != nil {
		return fmt.Errorf("--wpm must be > 0: %w", err)
	}
	color := render.DefaultColor
	if fileCfg.Keyer.Color != nil {
		if c, err := render.ParseColor(*fileCfg.Keyer.Color); err == nil {
			color = c
		}
	}

	steps, err := readSteps(cmd.InOrStdin(), classifyFile, args)
	if err != nil {
		return err
	}
	if len(steps) == 0 {
		return fmt.Errorf("no steps given (pass them after -- or with --file)")
	}

	logger := zap.NewNop()
	if verbose {
		logger, err = newLogger(config.DefaultLogPath(), true)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
	}

	res, err := trace.Replay(steps, trace.Options{
		WPM:        keyer.FixedWPM(classifyWPM),
		LeadingGap: classifyLeadingGap,
		Color:      color,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("replay failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if err := writeSymbols(out, res.Output, classifyFormat, stdoutWidth(out)); err != nil {
		return err
	}
	if classifySummary {
		if _, err := fmt.Fprintln(out); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if err := stats.RenderSummary(out, res.Session); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func readSteps(stdin io.Reader, file string, args []string) ([]trace.Step, error) {
	switch {
	case file == "" && len(args) == 0:
		return nil, nil
	case file == "":
		return trace.ParseArgs(args)
	case len(args) > 0:
		return nil, fmt.Errorf("pass steps either as arguments or with --file, not both")
	case file == "-":
		return trace.Parse(stdin)
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logErrf(os.Stderr, "failed to close script: %v\n", cerr)
		}
	}()
	return trace.Parse(f)
}

// stdoutWidth returns the terminal width when w is a terminal, else 0.
func stdoutWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func writeSymbols(w io.Writer, out *render.Output, format string, termWidth int) error {
	var text string
	switch strings.ToLower(format) {
	case formatAuto:
		if termWidth > 0 {
			text = out.View(termWidth)
		} else {
			text = render.FormatTags(out.Markers())
		}
	case formatTags:
		text = render.FormatTags(out.Markers())
	case formatGlyphs:
		text = render.FormatGlyphs(out.Markers())
	default:
		return fmt.Errorf("--format must be one of %s, %s, %s", formatAuto, formatTags, formatGlyphs)
	}
	if _, err := fmt.Fprintln(w, text); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
