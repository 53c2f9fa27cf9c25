package quadtui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type machineHarness struct {
	state   *UIState
	machine *InputStateMachine
	renders int
	quits   int
}

func newMachineHarness() *machineHarness {
	h := &machineHarness{state: NewUIState(ThemeDark)}
	h.machine = NewInputStateMachine(h.state,
		func() { h.renders++ },
		func() { h.quits++ },
	)
	return h
}

func (h *machineHarness) press(keys ...string) {
	for _, k := range keys {
		h.machine.HandleBytes([]byte(k))
	}
}

func TestInputPrintable(t *testing.T) {
	h := newMachineHarness()
	h.press("h", "i")

	assert.Equal(t, []string{"hi"}, h.state.Input)
	assert.Equal(t, 2, h.state.CursorCol)
	assert.Equal(t, 2, h.renders)
}

func TestInputPasteChunkInsertedWhole(t *testing.T) {
	h := newMachineHarness()
	h.press("hello world")

	assert.Equal(t, []string{"hello world"}, h.state.Input)
	assert.Equal(t, 1, h.renders)
}

func TestInputInsertAtCursor(t *testing.T) {
	h := newMachineHarness()
	h.press("ac", KeyLeft, "b")

	assert.Equal(t, []string{"abc"}, h.state.Input)
	assert.Equal(t, 2, h.state.CursorCol)
}

func TestInputBackspace(t *testing.T) {
	h := newMachineHarness()
	h.press("ab", KeyBackspace)

	assert.Equal(t, []string{"a"}, h.state.Input)
	assert.Equal(t, 1, h.state.CursorCol)
}

func TestInputBackspaceAtStartOfFirstLineIsNoop(t *testing.T) {
	h := newMachineHarness()
	h.press(KeyBackspace)

	assert.Equal(t, []string{""}, h.state.Input)
	assert.Equal(t, 0, h.state.CursorCol)
}

func TestInputBackspaceJoinsLines(t *testing.T) {
	h := newMachineHarness()
	h.press("ab", KeyCtrlN, "cd")
	require.Equal(t, []string{"ab", "cd"}, h.state.Input)

	h.press(KeyLeft, KeyLeft, KeyBackspace)
	assert.Equal(t, []string{"abcd"}, h.state.Input)
	assert.Equal(t, 0, h.state.CursorLine)
	assert.Equal(t, 2, h.state.CursorCol)
}

func TestInputExpandGrowsInputBox(t *testing.T) {
	h := newMachineHarness()
	for i := 0; i < 10; i++ {
		h.press(KeyCtrlN)
	}

	assert.Len(t, h.state.Input, 11)
	assert.Equal(t, 10, h.state.CursorLine)
}

func TestInputSubmit(t *testing.T) {
	h := newMachineHarness()
	h.press("first", KeyCtrlN, "second", KeyEnter)

	// Joined input lines plus a blank separator land in the
	// transcript; input resets to a single empty line.
	assert.Equal(t, []string{"first", "second", ""}, h.state.Output)
	assert.Equal(t, []string{""}, h.state.Input)
	assert.Equal(t, 0, h.state.CursorLine)
	assert.Equal(t, 0, h.state.CursorCol)
}

func TestInputThemeCycleWrapsAround(t *testing.T) {
	h := newMachineHarness()
	require.Equal(t, ThemeDark, h.state.Theme)

	h.press(KeyCtrlT)
	assert.Equal(t, ThemeLight, h.state.Theme)
	h.press(KeyCtrlT)
	assert.Equal(t, ThemeMono, h.state.Theme)
	h.press(KeyCtrlT)
	assert.Equal(t, ThemeDark, h.state.Theme)
}

func TestInputEscapeClearsDraft(t *testing.T) {
	h := newMachineHarness()
	h.press("ab", KeyCtrlN, "cd", KeyEscape)

	assert.Equal(t, []string{""}, h.state.Input)
	assert.Equal(t, 0, h.state.CursorLine)
	assert.Equal(t, 0, h.state.CursorCol)
	// The draft is discarded, not submitted.
	assert.Empty(t, h.state.Output)
}

func TestInputHandleBytesReportsUnbound(t *testing.T) {
	h := newMachineHarness()
	assert.True(t, h.machine.HandleBytes([]byte("x")))
	assert.True(t, h.machine.HandleBytes([]byte(KeyEnter)))
	assert.True(t, h.machine.HandleBytes([]byte(KeyCtrlC)))

	// Unbound sequences are reported so the console can offer them to
	// its key hook.
	assert.False(t, h.machine.HandleBytes([]byte("\x12")))
	assert.False(t, h.machine.HandleBytes([]byte("\x1b[5~")))
	assert.False(t, h.machine.HandleBytes(nil))
}

func TestInputQuitKeys(t *testing.T) {
	for _, key := range []string{KeyCtrlC, KeyCtrlD} {
		h := newMachineHarness()
		h.press(key)
		assert.Equal(t, 1, h.quits, "key %q", key)
		// Quit does not schedule a frame.
		assert.Equal(t, 0, h.renders, "key %q", key)
	}
}

func TestInputArrowsClamp(t *testing.T) {
	h := newMachineHarness()
	h.press(KeyUp, KeyLeft)
	assert.Equal(t, 0, h.state.CursorLine)
	assert.Equal(t, 0, h.state.CursorCol)

	h.press("ab", KeyRight, KeyRight, KeyDown)
	assert.Equal(t, 2, h.state.CursorCol)
	assert.Equal(t, 0, h.state.CursorLine)
}

func TestInputUnknownEscapeSequenceIgnored(t *testing.T) {
	h := newMachineHarness()
	h.press("\x1b[5~") // page up: not bound
	assert.Equal(t, []string{""}, h.state.Input)
	assert.Equal(t, 0, h.renders)
}

func TestInputControlByteIgnored(t *testing.T) {
	h := newMachineHarness()
	h.press("\x07")
	assert.Equal(t, []string{""}, h.state.Input)
	assert.Equal(t, 0, h.renders)
}

func TestInputEmptyChunk(t *testing.T) {
	h := newMachineHarness()
	h.machine.HandleBytes(nil)
	assert.Equal(t, 0, h.renders)
}
