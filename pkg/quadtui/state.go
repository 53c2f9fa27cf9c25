package quadtui

// UIState is the single source of truth for what the console shows.
// It is owned by the Console and mutated only under its lock: the input
// state machine edits it, and the layout pass corrects Scroll. There
// are no package-level globals.
type UIState struct {
	// Input holds the editable input lines (at least one, possibly
	// empty). CursorLine/CursorCol address a cell within them.
	Input      []string
	CursorLine int
	CursorCol  int

	// Output is the append-only transcript shown in the log box.
	Output []string

	// Scroll is the index of the first visible transcript line. It is
	// recomputed by ComputeLayout every frame.
	Scroll int

	Theme  Theme
	Frames int
}

// NewUIState returns a state with a single empty input line.
func NewUIState(theme Theme) *UIState {
	return &UIState{
		Input: []string{""},
		Theme: theme,
	}
}

// InsertText inserts printable text at the cursor and advances it.
func (s *UIState) InsertText(text string) {
	line := s.Input[s.CursorLine]
	col := s.clampCol(line)
	s.Input[s.CursorLine] = line[:col] + text + line[col:]
	s.CursorCol = col + len(text)
}

// Backspace removes the character before the cursor. At the start of
// the first line it is a no-op; at the start of a later line it joins
// the line with the previous one.
func (s *UIState) Backspace() {
	line := s.Input[s.CursorLine]
	col := s.clampCol(line)
	if col > 0 {
		s.Input[s.CursorLine] = line[:col-1] + line[col:]
		s.CursorCol = col - 1
		return
	}
	if s.CursorLine == 0 {
		return
	}
	prev := s.Input[s.CursorLine-1]
	s.Input[s.CursorLine-1] = prev + line
	s.Input = append(s.Input[:s.CursorLine], s.Input[s.CursorLine+1:]...)
	s.CursorLine--
	s.CursorCol = len(prev)
}

// ExpandInput appends a new empty input line and moves the cursor to it.
func (s *UIState) ExpandInput() {
	s.Input = append(s.Input, "")
	s.CursorLine = len(s.Input) - 1
	s.CursorCol = 0
}

// Submit moves the joined input lines into the transcript, followed by
// a blank separator line, and resets the input to a single empty line.
func (s *UIState) Submit() {
	s.Output = append(s.Output, s.Input...)
	s.Output = append(s.Output, "")
	s.ClearInput()
}

// ClearInput discards the draft and resets to a single empty line.
func (s *UIState) ClearInput() {
	s.Input = []string{""}
	s.CursorLine = 0
	s.CursorCol = 0
}

// AppendOutput adds lines to the transcript without touching the input.
func (s *UIState) AppendOutput(lines ...string) {
	s.Output = append(s.Output, lines...)
}

// CycleTheme advances to the next theme in the fixed cycle.
func (s *UIState) CycleTheme() {
	s.Theme = s.Theme.Next()
}

// MoveCursor shifts the cursor by (dLine, dCol), clamping to the input.
func (s *UIState) MoveCursor(dLine, dCol int) {
	s.CursorLine = clamp(s.CursorLine+dLine, 0, len(s.Input)-1)
	s.CursorCol = clamp(s.clampCol(s.Input[s.CursorLine])+dCol, 0, len(s.Input[s.CursorLine]))
}

func (s *UIState) clampCol(line string) int {
	return clamp(s.CursorCol, 0, len(line))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
