// Package main provides the CLI entrypoint for tuimorse.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/verte-zerg/tuimorse/internal/config"
	"github.com/verte-zerg/tuimorse/internal/model"
	"github.com/verte-zerg/tuimorse/internal/morse"
	"github.com/verte-zerg/tuimorse/internal/render"
	"github.com/verte-zerg/tuimorse/internal/tui"
)

const (
	defaultWPM   = 20.0
	defaultColor = string(render.DefaultColor)
	defaultKey   = tui.SpaceKey
)

var (
	keyerWPM        float64
	keyerColor      string
	keyerKey        string
	keyerLeadingGap bool
	keyerWatch      bool

	verbose bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuimorse",
		Short:         "TUI Morse keyer",
		Long:          "Key Morse code with a single key. Each press is classified as a dot or dash and each gap as a delimiter, at the configured words per minute.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runKeyerCmd,
	}

	rootCmd.Flags().Float64Var(&keyerWPM, "wpm", defaultWPM, "words per minute (one word = 50 units)")
	rootCmd.Flags().StringVar(&keyerColor, "color", defaultColor, "marker color ("+strings.Join(render.ColorNames(), ", ")+")")
	rootCmd.Flags().StringVar(&keyerKey, "key", defaultKey, "keyer key: 'space' or a single character")
	rootCmd.Flags().BoolVar(&keyerLeadingGap, "leading-gap", false, "render the gap before the first press")
	rootCmd.Flags().BoolVar(&keyerWatch, "watch", true, "reload wpm and color when the config file changes")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(newClassifyCmd())
	rootCmd.AddCommand(newUnitsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runKeyerCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadKeyerConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(config.DefaultLogPath(), verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("session", uuid.NewString()))
	logger.Info("keyer session started",
		zap.Float64("wpm", cfg.WPM),
		zap.String("color", cfg.Color),
		zap.String("key", cfg.Key),
	)

	keyerModel := tui.NewModel(cfg, logger)
	program := tea.NewProgram(keyerModel, tea.WithAltScreen())

	if cfg.Watch {
		watcher, err := config.NewWatcher(cfg.ConfigPath, func(fc config.FileConfig) {
			program.Send(tui.ConfigReloadedMsg{Config: fc})
		}, config.WatcherOptions{Logger: logger})
		if err != nil {
			logger.Warn("config watcher unavailable", zap.Error(err))
		} else {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if err := watcher.Start(ctx); err != nil {
				logger.Warn("config watcher unavailable", zap.Error(err))
			}
			defer func() {
				if cerr := watcher.Close(); cerr != nil {
					logger.Warn("failed to close config watcher", zap.Error(cerr))
				}
			}()
		}
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	logger.Info("keyer session ended")
	return nil
}

// loadKeyerConfig merges the config file under the root command flags.
func loadKeyerConfig(cmd *cobra.Command) (model.Config, error) {
	path := config.DefaultConfigPath()
	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyFloatConfig(cmd, "wpm", &keyerWPM, fileCfg.Keyer.WPM)
	applyStringConfig(cmd, "color", &keyerColor, fileCfg.Keyer.Color)
	applyStringConfig(cmd, "key", &keyerKey, fileCfg.Keyer.Key)
	applyBoolConfig(cmd, "leading-gap", &keyerLeadingGap, fileCfg.Keyer.LeadingGap)

	cfg := model.Config{
		WPM:        keyerWPM,
		Color:      keyerColor,
		Key:        keyerKey,
		LeadingGap: keyerLeadingGap,
		Watch:      keyerWatch,
		ConfigPath: path,
	}
	if err := validateConfig(&cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuimorse configuration
# Uncomment a value to enable it. CLI flags override config values.
# The wpm and color values are reloaded while the keyer runs.

[keyer]
# wpm = %.1f              # Words per minute (one word = 50 units)
# color = %q          # Marker color: %s
# key = %q            # Keyer key: "space" or a single character
# leading-gap = false     # Render the gap before the first press
`,
		defaultWPM,
		defaultColor,
		strings.Join(render.ColorNames(), ", "),
		defaultKey,
	)
}

func validateConfig(cfg *model.Config) error {
	if err := morse.ValidateWPM(cfg.WPM); err != nil {
		return fmt.Errorf("--wpm must be > 0: %w", err)
	}
	color, err := render.ParseColor(cfg.Color)
	if err != nil {
		return fmt.Errorf("--color: %w", err)
	}
	cfg.Color = string(color)
	if cfg.Key != tui.SpaceKey {
		if utf8.RuneCountInString(cfg.Key) != 1 || strings.TrimSpace(cfg.Key) == "" {
			return fmt.Errorf("--key must be 'space' or a single character")
		}
		if slices.Contains(tui.ReservedKeys, cfg.Key) {
			return fmt.Errorf("--key %q is reserved (reserved: %s)", cfg.Key, strings.Join(tui.ReservedKeys, " "))
		}
	}
	return nil
}

// newLogger writes JSON logs to path; the TUI owns stdout and stderr.
func newLogger(path string, debug bool) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func logErrf(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
