package quadtui

import (
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultFrameInterval is the render cadence when none is configured
// (~10 frames per second).
const DefaultFrameInterval = 100 * time.Millisecond

// RenderStats captures performance metrics for a single render cycle.
type RenderStats struct {
	// DrawTime is how long producing the new frame took.
	DrawTime time.Duration

	// DiffTime is how long the differential computation took.
	DiffTime time.Duration

	// WriteTime is how long writing the patch to the terminal took.
	WriteTime time.Duration

	// TotalTime is the wall-clock duration of the whole cycle.
	TotalTime time.Duration

	// TotalLines is the number of lines in the rendered frame.
	TotalLines int

	// LinesRepainted is the number of lines actually written.
	LinesRepainted int

	// FullRedraw is true when every line was repainted (first frame or
	// a structural resize).
	FullRedraw bool

	// BytesWritten is the size of the patch sent to the terminal.
	BytesWritten int
}

// renderStatsJSON is the JSONL record written by the debug writer.
type renderStatsJSON struct {
	Ts             int64 `json:"ts"`
	TotalUs        int64 `json:"total_us"`
	DrawUs         int64 `json:"draw_us"`
	DiffUs         int64 `json:"diff_us"`
	WriteUs        int64 `json:"write_us"`
	TotalLines     int   `json:"total_lines"`
	LinesRepainted int   `json:"lines_repainted"`
	FullRedraw     bool  `json:"full_redraw"`
	BytesWritten   int   `json:"bytes_written"`
}

// RenderScheduler owns the render loop. It is a two-state machine,
// Idle -> Rendering -> Idle: RequestRender during Rendering is dropped,
// not queued, which bounds output volume under rapid input — the
// periodic tick retries soon enough. Renders run serially on one
// goroutine, so at most one render is ever in flight.
type RenderScheduler struct {
	term Terminal

	// draw produces the next frame. It runs on the render goroutine.
	draw func() *Frame

	logger   *slog.Logger
	interval time.Duration

	rendering atomic.Bool // Idle=false, Rendering=true
	renderCh  chan struct{}
	stopCh    chan struct{}
	stopOnce  sync.Once

	mu          sync.Mutex
	prev        *Frame
	fullRedraws int
	debugWriter io.Writer
}

// NewRenderScheduler creates a scheduler that draws via draw and writes
// to term. A nil logger discards diagnostics.
func NewRenderScheduler(term Terminal, draw func() *Frame, logger *slog.Logger) *RenderScheduler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RenderScheduler{
		term:     term,
		draw:     draw,
		logger:   logger,
		interval: DefaultFrameInterval,
		renderCh: make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
	}
}

// SetFrameInterval overrides the tick cadence. Must be called before
// Start.
func (s *RenderScheduler) SetFrameInterval(d time.Duration) {
	if d > 0 {
		s.interval = d
	}
}

// SetDebugWriter enables render performance logging: each cycle writes
// one JSONL stats record to w. Pass nil to disable.
func (s *RenderScheduler) SetDebugWriter(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debugWriter = w
}

// FullRedraws returns the number of full (non-differential) repaints.
func (s *RenderScheduler) FullRedraws() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fullRedraws
}

// Start launches the render loop and the periodic tick.
func (s *RenderScheduler) Start() {
	go s.renderLoop()
	go s.tickLoop()
	s.RequestRender()
}

// Stop halts the loop. Pending requests are discarded.
func (s *RenderScheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

// RequestRender schedules a render unless one is already in flight, in
// which case the request is dropped; the next tick retries, which
// bounds staleness to one tick period.
func (s *RenderScheduler) RequestRender() {
	if s.rendering.Load() {
		return
	}
	select {
	case s.renderCh <- struct{}{}:
	default:
	}
}

// InvalidateFrame discards the cached previous frame so the next render
// repaints everything.
func (s *RenderScheduler) InvalidateFrame() {
	s.mu.Lock()
	s.prev = nil
	s.mu.Unlock()
	s.RequestRender()
}

func (s *RenderScheduler) renderLoop() {
	for {
		select {
		case <-s.renderCh:
			s.doRender()
		case <-s.stopCh:
			return
		}
	}
}

func (s *RenderScheduler) tickLoop() {
	tick := time.NewTicker(s.interval)
	defer tick.Stop()
	for {
		select {
		case <-tick.C:
			s.RequestRender()
		case <-s.stopCh:
			return
		}
	}
}

// doRender performs one render cycle: draw, diff against the previous
// frame, and write only the changed lines, wrapped in a synchronized
// output envelope so the multi-line patch appears atomically even if
// the terminal receives it across several flushes.
func (s *RenderScheduler) doRender() {
	s.rendering.Store(true)
	defer s.rendering.Store(false)

	totalStart := time.Now()
	var stats RenderStats

	next := s.draw()
	stats.DrawTime = time.Since(totalStart)
	if next == nil {
		return
	}
	stats.TotalLines = len(next.Lines)

	s.mu.Lock()
	prev := s.prev
	s.mu.Unlock()

	diffStart := time.Now()
	changed := ComputeDiff(prev, next)
	stats.DiffTime = time.Since(diffStart)
	stats.LinesRepainted = len(changed)
	stats.FullRedraw = prev == nil || len(prev.Lines) != len(next.Lines) || prev.Cols != next.Cols

	if len(changed) > 0 {
		patch := make([]byte, 0, 256)
		patch = append(patch, escSyncBegin...)
		if stats.FullRedraw {
			patch = append(patch, escClearScreen...)
		}
		patch = append(patch, ApplyPatch(next, changed)...)
		patch = append(patch, escSyncEnd...)
		stats.BytesWritten = len(patch)

		writeStart := time.Now()
		err := s.term.Write(patch)
		stats.WriteTime = time.Since(writeStart)
		if err != nil {
			// Transient write failure: keep the old frame as previous
			// so the next successful render repaints these lines.
			s.logger.Warn("frame write failed", "error", err, "lines", len(changed))
			s.emitStats(&stats, totalStart)
			return
		}
		if stats.FullRedraw {
			s.mu.Lock()
			s.fullRedraws++
			s.mu.Unlock()
		}
	}

	s.mu.Lock()
	s.prev = next
	s.mu.Unlock()

	s.emitStats(&stats, totalStart)
}

func (s *RenderScheduler) emitStats(stats *RenderStats, totalStart time.Time) {
	s.mu.Lock()
	w := s.debugWriter
	s.mu.Unlock()
	if w == nil {
		return
	}
	stats.TotalTime = time.Since(totalStart)
	rec := renderStatsJSON{
		Ts:             time.Now().UnixMilli(),
		TotalUs:        stats.TotalTime.Microseconds(),
		DrawUs:         stats.DrawTime.Microseconds(),
		DiffUs:         stats.DiffTime.Microseconds(),
		WriteUs:        stats.WriteTime.Microseconds(),
		TotalLines:     stats.TotalLines,
		LinesRepainted: stats.LinesRepainted,
		FullRedraw:     stats.FullRedraw,
		BytesWritten:   stats.BytesWritten,
	}
	data, _ := json.Marshal(rec)
	data = append(data, '\n')
	_, _ = w.Write(data)
}
