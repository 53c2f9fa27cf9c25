// Command quad-stress is an interactive stress test for the quadtui
// renderer. It feeds synthetic transcript lines at a configurable rate
// while the console stays fully interactive, so every rendering code
// path (tail-pinned scroll, input-box growth, theme switches, resizes)
// gets exercised under load. Render debug is always enabled.
//
// Beyond the console's own keys, the harness binds:
//
//	Ctrl+F  toggle the continuous feeder
//	Ctrl+A  append one transcript line
//	Ctrl+R  force a full redraw
//	Ctrl+S  dump the UI state into the log
//
// Usage:
//
//	go run ./cmd/quad-stress
//	go run ./cmd/quad-stress -rate 50 -lines 200
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/kr/pretty"
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	"github.com/quadterm/quad/pkg/quadtui"
)

// Harness key bindings, dispatched through the console's OnKey hook.
const (
	keyToggleFeeder = "\x06" // Ctrl+F
	keyAppendLine   = "\x01" // Ctrl+A
	keyForceRedraw  = "\x12" // Ctrl+R
	keyDumpState    = "\x13" // Ctrl+S
)

func main() {
	initial := flag.Int("lines", 100, "initial number of transcript lines")
	rate := flag.Int("rate", 20, "transcript lines appended per second")
	flag.Parse()

	if err := run(*initial, *rate); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(initial, rate int) error {
	logPath := "/tmp/quad_stress.log"
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open stress log: %w", err)
	}
	defer logFile.Close() //nolint:errcheck
	logger := slog.New(tint.NewHandler(logFile, &tint.Options{
		Level:   slog.LevelDebug,
		NoColor: true,
	}))

	debugPath := "/tmp/quad_render_debug.jsonl"
	debugFile, err := os.OpenFile(debugPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open render debug log: %w", err)
	}
	defer debugFile.Close() //nolint:errcheck

	var (
		console *quadtui.Console
		next    atomic.Int64
		feeding atomic.Bool
	)
	next.Store(int64(initial))
	feeding.Store(true)

	appendLine := func() {
		console.AppendOutput(stressLine(int(next.Add(1)) - 1))
	}

	term := quadtui.NewProcessTerminal()
	console = quadtui.New(term, quadtui.Options{
		Title:       "quad-stress",
		Theme:       quadtui.DefaultTheme(),
		Logger:      logger,
		DebugWriter: debugFile,

		// The hook runs outside the console's state lock, so calling
		// back into the console here is fine.
		OnKey: func(key string) bool {
			switch key {
			case keyToggleFeeder:
				on := !feeding.Load()
				feeding.Store(on)
				logger.Info("feeder toggled", "on", on)
			case keyAppendLine:
				appendLine()
			case keyForceRedraw:
				console.InvalidateFrame()
				logger.Info("full redraw forced", "full_redraws", console.FullRedraws())
			case keyDumpState:
				snap := console.Snapshot()
				lines := len(snap.Output)
				snap.Output = nil // too large to dump
				logger.Debug("state snapshot",
					"full_redraws", console.FullRedraws(),
					"transcript_lines", lines,
					"state", pretty.Sprint(snap))
			default:
				return false
			}
			return true
		},
	})

	for i := 0; i < initial; i++ {
		console.AppendOutput(stressLine(i))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// The console owns the terminal until quit.
	g.Go(func() error {
		defer stop()
		return console.Run(ctx)
	})

	// Feeder: appends transcript lines at the requested rate while
	// enabled; Ctrl+F pauses and resumes it.
	g.Go(func() error {
		if rate <= 0 {
			return nil
		}
		tick := time.NewTicker(time.Second / time.Duration(rate))
		defer tick.Stop()
		for {
			select {
			case <-tick.C:
				if feeding.Load() {
					appendLine()
				}
			case <-ctx.Done():
				return nil
			}
		}
	})

	if err := g.Wait(); err != nil {
		return err
	}
	fmt.Printf("render stats: %s\nlog: %s\n", debugPath, logPath)
	return nil
}

// stressLine builds a transcript line with occasional ANSI styling so
// the diff path sees realistic escape-laden content.
func stressLine(n int) string {
	switch n % 5 {
	case 0:
		return fmt.Sprintf("\x1b[32m[ok]\x1b[0m item %d processed", n)
	case 1:
		return fmt.Sprintf("\x1b[33m[warn]\x1b[0m item %d retried (%d ms)", n, rand.Intn(500))
	default:
		return fmt.Sprintf("[..] item %d queued", n)
	}
}
