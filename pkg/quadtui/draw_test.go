package quadtui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"
)

func drawTestFrame(t *testing.T, cols, rows int, st *UIState) *Frame {
	t.Helper()
	layout, scroll := ComputeLayout(cols, rows, len(st.Input), len(st.Output))
	st.Scroll = scroll
	f := DrawFrame(st, layout, cols, rows, "quad")
	require.Len(t, f.Lines, rows)
	return f
}

func TestDrawFrameMonoGolden(t *testing.T) {
	st := NewUIState(ThemeMono)
	st.Output = []string{"hello", "world"}
	st.Input = []string{"hi"}
	st.CursorCol = 2

	f := drawTestFrame(t, 40, 14, st)

	snap := strings.Join(f.Lines, "\n") + "\n"
	// The mono theme emits no escape sequences at all, so the frame is
	// byte-stable.
	assert.NotContains(t, snap, "\x1b")
	golden.Assert(t, snap, "frame_mono.golden")
}

func TestDrawFrameLinesExactlyTerminalWidth(t *testing.T) {
	for _, theme := range []Theme{ThemeDark, ThemeLight, ThemeMono} {
		for _, size := range [][2]int{{40, 14}, {80, 24}, {120, 50}} {
			cols, rows := size[0], size[1]
			st := NewUIState(theme)
			st.Output = []string{"one", "\x1b[31mtwo\x1b[0m", "three"}
			st.Input = []string{"typing"}
			st.CursorCol = 3

			f := drawTestFrame(t, cols, rows, st)
			for i, line := range f.Lines {
				require.Equal(t, cols, VisibleLength(line),
					"theme=%s size=%dx%d row=%d line=%q", theme, cols, rows, i, line)
			}
		}
	}
}

func TestDrawFrameShowsTranscriptTail(t *testing.T) {
	st := NewUIState(ThemeMono)
	for i := 0; i < 100; i++ {
		st.Output = append(st.Output, strings.Repeat("x", 3)+"-"+string(rune('a'+i%26)))
	}

	f := drawTestFrame(t, 40, 14, st)
	joined := strings.Join(f.Lines, "\n")

	// Content area holds 3 rows; with 100 transcript lines the view is
	// pinned to the last three.
	assert.Contains(t, joined, "xxx-"+string(rune('a'+99%26)))
	assert.NotContains(t, joined, "xxx-"+string(rune('a'+0)))
}

func TestDrawFrameLongOutputLineTruncated(t *testing.T) {
	st := NewUIState(ThemeMono)
	st.Output = []string{strings.Repeat("w", 200)}

	f := drawTestFrame(t, 40, 14, st)
	for _, line := range f.Lines {
		assert.Equal(t, 40, VisibleLength(line))
	}
}

func TestDrawFrameCursorCellReversedInDarkTheme(t *testing.T) {
	st := NewUIState(ThemeDark)
	st.Input = []string{"abc"}
	st.CursorCol = 1

	f := drawTestFrame(t, 40, 14, st)
	joined := strings.Join(f.Lines, "\n")
	// Reverse-video escape marks the cursor cell.
	assert.Contains(t, joined, "\x1b[7m")
}

func TestDrawFrameDegradedLayoutDoesNotPanic(t *testing.T) {
	st := NewUIState(ThemeMono)
	for i := 0; i < 40; i++ {
		st.Input = append(st.Input, "overflow")
	}

	f := drawTestFrame(t, 40, 10, st)
	for _, line := range f.Lines {
		assert.Equal(t, 40, VisibleLength(line))
	}
}
