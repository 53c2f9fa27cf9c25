package quadtui

import (
	"fmt"
	"strings"
)

// Frame is one fully rendered screen: an ordered list of lines, each
// exactly Cols visible cells wide (embedded escape sequences do not
// count toward the width).
type Frame struct {
	Cols  int
	Lines []string
}

// NewFrame creates a blank frame of the given dimensions.
func NewFrame(cols, rows int) *Frame {
	lines := make([]string, rows)
	blank := strings.Repeat(" ", cols)
	for i := range lines {
		lines[i] = blank
	}
	return &Frame{Cols: cols, Lines: lines}
}

// SetLine replaces row i, padded or truncated to the frame width.
// Rows outside the frame are ignored.
func (f *Frame) SetLine(i int, s string) {
	if i < 0 || i >= len(f.Lines) {
		return
	}
	f.Lines[i] = PadVisible(s, f.Cols)
}

// WriteAt overlays s into row i starting at visible column col.
func (f *Frame) WriteAt(i, col int, s string) {
	if i < 0 || i >= len(f.Lines) {
		return
	}
	f.Lines[i] = PadVisible(ReplaceVisible(f.Lines[i], col, s), f.Cols)
}

// ComputeDiff returns the indices of lines that differ between prev and
// next, ascending. A nil prev or a row-count mismatch yields the full
// range 0..len(next)-1: partial patching against a differently sized
// buffer is unsound, so first render and structural resizes repaint
// everything. Comparison is exact string equality, escapes included —
// two visually identical lines with different styling count as changed.
func ComputeDiff(prev, next *Frame) []int {
	if next == nil {
		return nil
	}
	if prev == nil || len(prev.Lines) != len(next.Lines) || prev.Cols != next.Cols {
		all := make([]int, len(next.Lines))
		for i := range all {
			all[i] = i
		}
		return all
	}
	var changed []int
	for i := range next.Lines {
		if prev.Lines[i] != next.Lines[i] {
			changed = append(changed, i)
		}
	}
	return changed
}

// ApplyPatch encodes the changed lines of f as terminal writes: for
// each index, a cursor-absolute move to that row, the full line, and a
// carriage return. No newlines are emitted, so the patch can never
// scroll the screen.
func ApplyPatch(f *Frame, changed []int) []byte {
	var buf strings.Builder
	for _, i := range changed {
		if i < 0 || i >= len(f.Lines) {
			continue
		}
		fmt.Fprintf(&buf, "\x1b[%d;1H", i+1)
		buf.WriteString(f.Lines[i])
		buf.WriteByte('\r')
	}
	return []byte(buf.String())
}
