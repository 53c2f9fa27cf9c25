package quadtui

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"
)

// Options configures a Console. The zero value is usable.
type Options struct {
	// Title is shown in the header. Defaults to "quad".
	Title string

	// Theme is the initial color scheme. Defaults to DefaultTheme().
	Theme Theme

	// FrameInterval is the render tick cadence. Defaults to
	// DefaultFrameInterval.
	FrameInterval time.Duration

	// Logger receives per-frame diagnostics (write failures). Nil
	// discards them.
	Logger *slog.Logger

	// DebugWriter, when non-nil, receives one JSONL render-stats record
	// per frame.
	DebugWriter io.Writer

	// OnKey, when non-nil, receives key sequences the input state
	// machine leaves unbound. Returning true consumes the key and
	// schedules a frame. The hook runs outside the state lock, so it
	// may call any Console method.
	OnKey func(key string) bool
}

// Console wires the terminal, UI state, input state machine, layout,
// drawing, and render scheduler into a running full-screen application.
//
// Event ordering: every dispatched event (input chunk, resize, tick)
// runs to completion under the state lock before the next one, so the
// render pass never observes a half-updated UIState. Within a render,
// state mutation, layout, drawing, diffing, and writing happen in that
// fixed order.
type Console struct {
	term   Terminal
	sched  *RenderScheduler
	input  *InputStateMachine
	logger *slog.Logger
	title  string
	onKey  func(string) bool

	mu    sync.Mutex // guards state
	state *UIState

	quitOnce sync.Once
	quitCh   chan struct{}
}

// New creates a Console on the given terminal.
func New(term Terminal, opts Options) *Console {
	if opts.Title == "" {
		opts.Title = "quad"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c := &Console{
		term:   term,
		logger: logger,
		title:  opts.Title,
		onKey:  opts.OnKey,
		state:  NewUIState(opts.Theme),
		quitCh: make(chan struct{}),
	}
	c.sched = NewRenderScheduler(term, c.drawLocked, logger)
	if opts.FrameInterval > 0 {
		c.sched.SetFrameInterval(opts.FrameInterval)
	}
	if opts.DebugWriter != nil {
		c.sched.SetDebugWriter(opts.DebugWriter)
	}
	c.input = NewInputStateMachine(c.state, c.sched.RequestRender, c.Quit)
	return c
}

// Run starts the terminal and the render loop and blocks until the
// user quits, the context is cancelled, or startup fails. The terminal
// is restored on every return path.
func (c *Console) Run(ctx context.Context) error {
	if err := c.term.Start(c.handleInput, c.handleResize); err != nil {
		return err
	}
	defer c.term.Stop()

	c.sched.Start()
	defer c.sched.Stop()

	select {
	case <-ctx.Done():
	case <-c.quitCh:
	}
	return nil
}

// Quit requests a clean shutdown. Safe to call from any goroutine.
func (c *Console) Quit() {
	c.quitOnce.Do(func() { close(c.quitCh) })
}

// RequestRender schedules a frame (dropped when one is in flight).
func (c *Console) RequestRender() {
	c.sched.RequestRender()
}

// SetDebugWriter enables or disables per-frame JSONL stats.
func (c *Console) SetDebugWriter(w io.Writer) {
	c.sched.SetDebugWriter(w)
}

// InvalidateFrame discards the cached previous frame so the next
// render repaints the whole screen.
func (c *Console) InvalidateFrame() {
	c.sched.InvalidateFrame()
}

// FullRedraws reports how many full repaints have happened.
func (c *Console) FullRedraws() int {
	return c.sched.FullRedraws()
}

// AppendOutput adds lines to the transcript from outside the input
// path (log feeders, command results) and schedules a frame.
func (c *Console) AppendOutput(lines ...string) {
	c.mu.Lock()
	c.state.AppendOutput(lines...)
	c.mu.Unlock()
	c.sched.RequestRender()
}

// Snapshot returns a copy of the current UI state for inspection.
func (c *Console) Snapshot() UIState {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := *c.state
	snap.Input = append([]string(nil), c.state.Input...)
	snap.Output = append([]string(nil), c.state.Output...)
	return snap
}

// handleInput feeds raw bytes through the input state machine under
// the state lock. Unbound sequences are offered to the OnKey hook
// after the lock is released, so the hook is free to call back into
// the Console.
func (c *Console) handleInput(data []byte) {
	c.mu.Lock()
	handled := c.input.HandleBytes(data)
	c.mu.Unlock()

	if !handled && len(data) > 0 && c.onKey != nil && c.onKey(string(data)) {
		c.sched.RequestRender()
	}
}

// handleResize requests an immediate frame, bypassing the tick. The
// render pass recomputes layout and scroll together, so a resize can
// never leave a one-frame gap from stale content heights.
func (c *Console) handleResize() {
	c.sched.RequestRender()
}

// drawLocked is the scheduler's draw callback: one pass computing
// layout, correcting scroll, and rendering the frame, all under the
// state lock.
func (c *Console) drawLocked() *Frame {
	c.mu.Lock()
	defer c.mu.Unlock()

	cols, rows := c.term.Columns(), c.term.Rows()
	layout, scroll := ComputeLayout(cols, rows, len(c.state.Input), len(c.state.Output))
	c.state.Scroll = scroll
	c.state.Frames++
	return DrawFrame(c.state, layout, cols, rows, c.title)
}
