package quadtui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrame(cols int, lines ...string) *Frame {
	f := NewFrame(cols, len(lines))
	for i, l := range lines {
		f.SetLine(i, l)
	}
	return f
}

func TestComputeDiffFirstRender(t *testing.T) {
	next := testFrame(10, "a", "b", "c")
	assert.Equal(t, []int{0, 1, 2}, ComputeDiff(nil, next))
}

func TestComputeDiffIdentical(t *testing.T) {
	a := testFrame(10, "a", "b", "c")
	b := testFrame(10, "a", "b", "c")
	assert.Empty(t, ComputeDiff(a, b))
}

func TestComputeDiffSingleLine(t *testing.T) {
	for i := 0; i < 3; i++ {
		a := testFrame(10, "a", "b", "c")
		b := testFrame(10, "a", "b", "c")
		b.SetLine(i, "X")
		assert.Equal(t, []int{i}, ComputeDiff(a, b), "changed line %d", i)
	}
}

func TestComputeDiffSizeMismatchForcesFullRedraw(t *testing.T) {
	a := testFrame(10, "a", "b")
	b := testFrame(10, "a", "b", "c")
	assert.Equal(t, []int{0, 1, 2}, ComputeDiff(a, b))

	// Width change is structural too.
	c := testFrame(20, "a", "b")
	assert.Equal(t, []int{0, 1}, ComputeDiff(a, c))
}

func TestComputeDiffStylingOnlyChangeCounts(t *testing.T) {
	a := testFrame(5, "ab")
	b := testFrame(5, "\x1b[31mab\x1b[0m")
	// Visually identical cells, different escapes: still a change.
	assert.Equal(t, []int{0}, ComputeDiff(a, b))
}

func TestApplyPatchFormat(t *testing.T) {
	f := testFrame(4, "aaaa", "bbbb", "cccc")
	patch := string(ApplyPatch(f, []int{1}))
	// Absolute move to row 2 col 1, full line, carriage return, no newline.
	assert.Equal(t, "\x1b[2;1Hbbbb\r", patch)
	assert.NotContains(t, patch, "\n")
}

func TestApplyPatchSkipsOutOfRange(t *testing.T) {
	f := testFrame(4, "aaaa")
	assert.Empty(t, ApplyPatch(f, []int{-1, 5}))
}

func TestPatchSizeProportionalToChange(t *testing.T) {
	const n = 100
	cols := 80

	prevLines := make([]string, n)
	nextLines := make([]string, n)
	for i := range prevLines {
		prevLines[i] = fmt.Sprintf("line %d %s", i, strings.Repeat("x", 60))
		nextLines[i] = prevLines[i]
	}
	nextLines[n-1] = "changed " + strings.Repeat("y", 60)

	prev := testFrame(cols, prevLines...)
	next := testFrame(cols, nextLines...)

	changed := ComputeDiff(prev, next)
	require.Equal(t, []int{n - 1}, changed)

	patch := ApplyPatch(next, changed)
	full := ApplyPatch(next, ComputeDiff(nil, next))

	// One changed line must cost one line of output, not n lines. This
	// is the regression guard for the corruption bug the diffing was
	// built to fix: full-frame rewrites racing keystroke re-renders.
	assert.Less(t, len(patch), 2*cols)
	assert.Greater(t, len(full), (n/2)*cols)
}

func TestNewFrameBlank(t *testing.T) {
	f := NewFrame(8, 3)
	require.Len(t, f.Lines, 3)
	for _, l := range f.Lines {
		assert.Equal(t, strings.Repeat(" ", 8), l)
	}
}

func TestFrameSetLinePads(t *testing.T) {
	f := NewFrame(6, 1)
	f.SetLine(0, "ab")
	assert.Equal(t, "ab    ", f.Lines[0])
	f.SetLine(0, "abcdefgh")
	assert.Equal(t, "abcdef", f.Lines[0])
	// Out of range is ignored.
	f.SetLine(5, "x")
}

func TestFrameWriteAt(t *testing.T) {
	f := NewFrame(6, 1)
	f.WriteAt(0, 2, "XY")
	assert.Equal(t, "  XY  ", f.Lines[0])
	assert.Equal(t, 6, VisibleLength(f.Lines[0]))
}
