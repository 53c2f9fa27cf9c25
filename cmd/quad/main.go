// Command quad runs the interactive full-screen console: a header, a
// scrolling transcript, a growable input box, and a status bar, redrawn
// differentially each frame.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/quadterm/quad/pkg/quadtui"
)

func main() {
	var flags struct {
		theme       string
		fps         int
		debugRender string
		logFile     string
		configFile  string
	}

	rootCmd := &cobra.Command{
		Use:   "quad",
		Short: "Interactive terminal console",
		Long: `Quad is a full-screen interactive console. It renders a header, a
scrolling transcript, an input box, and a status bar, and repaints only
the screen lines that changed since the previous frame.

Keys: Enter submits, Ctrl+N grows the input box, Ctrl+T cycles the
theme, Ctrl+C quits.`,
		Example: `  # Run with defaults
  quad

  # Pick a theme and log render stats
  quad --theme light --debug-render /tmp/quad_render.jsonl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.configFile)
			if err != nil {
				return err
			}
			// Flags override the config file.
			if cmd.Flags().Changed("theme") {
				cfg.Theme = flags.theme
			}
			if cmd.Flags().Changed("fps") {
				cfg.FPS = flags.fps
			}
			if cmd.Flags().Changed("debug-render") {
				cfg.DebugRender = flags.debugRender
			}
			if cmd.Flags().Changed("log") {
				cfg.LogFile = flags.logFile
			}
			return run(cmd.Context(), cfg)
		},
	}

	rootCmd.Flags().StringVar(&flags.theme, "theme", "", "Color theme (dark, light, mono)")
	rootCmd.Flags().IntVar(&flags.fps, "fps", 0, "Render tick rate in frames per second")
	rootCmd.Flags().StringVar(&flags.debugRender, "debug-render", "", "Write per-frame render stats (JSONL) to this file")
	rootCmd.Flags().StringVar(&flags.logFile, "log", "", "Write diagnostics to this file")
	rootCmd.Flags().StringVar(&flags.configFile, "config", "", "Path to config file (default: $XDG_CONFIG_HOME/quad/config.toml)")

	ctx := context.Background()
	if err := fang.Execute(ctx, rootCmd,
		fang.WithVersion("v0.1.0"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config) error {
	theme := quadtui.DefaultTheme()
	if cfg.Theme != "" {
		t, ok := quadtui.ThemeByName(cfg.Theme)
		if !ok {
			return fmt.Errorf("unknown theme %q (want dark, light, or mono)", cfg.Theme)
		}
		theme = t
	}

	// Diagnostics go to a file: while the console runs, it owns the
	// terminal and nothing else may write to it.
	logger := slog.New(slog.DiscardHandler)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close() //nolint:errcheck
		logger = slog.New(tint.NewHandler(f, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.TimeOnly,
			NoColor:    true,
		}))
	}

	var debugWriter io.Writer
	if cfg.DebugRender != "" {
		f, err := os.OpenFile(cfg.DebugRender, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("open render debug file: %w", err)
		}
		defer f.Close() //nolint:errcheck
		debugWriter = f
	}

	opts := quadtui.Options{
		Title:       "quad",
		Theme:       theme,
		Logger:      logger,
		DebugWriter: debugWriter,
	}
	if cfg.FPS > 0 {
		opts.FrameInterval = time.Second / time.Duration(cfg.FPS)
	}

	term := quadtui.NewProcessTerminal()
	console := quadtui.New(term, opts)
	console.AppendOutput(
		"Welcome to quad.",
		"Type something and press Enter to add it to the transcript.",
		"",
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return console.Run(ctx)
}
