package quadtui

import "strings"

// InputStateMachine turns raw input bytes into UIState mutations. All
// console states live in UIState; the machine itself is stateless
// between calls. It never touches the terminal: after every mutation it
// asks for a render through the callbacks and leaves the rest to the
// scheduler.
type InputStateMachine struct {
	state *UIState

	// requestRender schedules a frame; onQuit tears the console down.
	requestRender func()
	onQuit        func()
}

// NewInputStateMachine wires a machine to the given state and callbacks.
func NewInputStateMachine(state *UIState, requestRender, onQuit func()) *InputStateMachine {
	return &InputStateMachine{
		state:         state,
		requestRender: requestRender,
		onQuit:        onQuit,
	}
}

// HandleBytes processes one chunk of raw terminal input and reports
// whether the chunk was acted on; unbound sequences return false so
// the caller can offer them to an extension hook. The caller holds the
// state lock; HandleBytes runs to completion before the next event is
// dispatched, so no half-updated state is ever observed.
func (m *InputStateMachine) HandleBytes(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	switch string(data) {
	case KeyCtrlC, KeyCtrlD:
		m.onQuit()
		return true

	case KeyEnter:
		m.state.Submit()

	case KeyBackspace, KeyCtrlH:
		m.state.Backspace()

	case KeyCtrlN:
		m.state.ExpandInput()

	case KeyCtrlT:
		m.state.CycleTheme()

	case KeyEscape:
		m.state.ClearInput()

	case KeyUp:
		m.state.MoveCursor(-1, 0)
	case KeyDown:
		m.state.MoveCursor(1, 0)
	case KeyLeft:
		m.state.MoveCursor(0, -1)
	case KeyRight:
		m.state.MoveCursor(0, 1)

	default:
		text := printableRun(data)
		if text == "" {
			return false
		}
		m.state.InsertText(text)
	}

	m.requestRender()
	return true
}

// printableRun extracts the printable ASCII bytes from a chunk,
// discarding everything else (unrecognized escape sequences, stray
// control bytes). Pasted text arrives as one chunk and is inserted
// whole.
func printableRun(data []byte) string {
	var b strings.Builder
	for i := 0; i < len(data); i++ {
		if data[i] == 0x1b {
			// Skip an embedded escape sequence rather than inserting
			// its printable tail.
			if _, n := parseEscape(string(data[i:])); n > 0 {
				i += n - 1
				continue
			}
			continue
		}
		if isPrintable(data[i]) {
			b.WriteByte(data[i])
		}
	}
	return b.String()
}
