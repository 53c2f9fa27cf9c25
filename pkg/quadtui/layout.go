package quadtui

// Fixed vertical geometry. The header starts at the top of the screen;
// the output log begins two rows below it (one margin row, one border
// row is part of the box itself). The status bar owns the last row and
// the input box is anchored directly above it with one spacer row.
const (
	headerStartY = 0
	headerHeight = 2

	// MinCols and MinRows are the smallest terminal the console will
	// start on. Below this the four regions cannot coexist usefully.
	MinCols = 40
	MinRows = 12
)

// Rect is an integer region in character cells. Y grows downward;
// (0,0) is the top-left cell of the screen.
type Rect struct {
	X, Y, Width, Height int
}

// Layout is the result of one layout pass: the four non-overlapping
// regions plus the number of content rows inside the output box.
//
// Invariant: Output.Y + Output.Height == Input.Y. The output log fills
// exactly the space between the header region and the input box, so
// growing the input box shrinks the output box by the same number of
// rows within the same pass.
type Layout struct {
	Header Rect
	Output Rect
	Input  Rect
	Status Rect

	// OutputContentHeight is Output.Height minus the box borders,
	// clamped to zero.
	OutputContentHeight int

	// Degraded is set when the terminal was too short for the requested
	// input height and the input box was clamped.
	Degraded bool
}

// ComputeLayout derives the screen regions for the given terminal size
// and dynamic content sizes, and returns the corrected scroll offset
// into the output transcript. Height and scroll are always computed in
// the same pass; computing scroll against a stale content height is
// exactly the transient-gap bug this function exists to prevent.
//
// Never fails: impossible geometries clamp to a degraded layout.
func ComputeLayout(cols, rows, inputLines, outputLines int) (Layout, int) {
	if inputLines < 1 {
		inputLines = 1
	}

	l := Layout{
		Header: Rect{X: 0, Y: headerStartY, Width: cols, Height: headerHeight},
		Status: Rect{X: 0, Y: rows - 1, Width: cols, Height: 1},
	}

	// Input box: content rows plus top/bottom border, bottom-anchored
	// with the last two rows reserved for spacing and the status bar.
	inputHeight := inputLines + 2
	outputStartY := headerStartY + headerHeight + 2
	maxInputHeight := (rows - 2) - outputStartY
	if inputHeight > maxInputHeight {
		inputHeight = maxInputHeight
		l.Degraded = true
	}
	if inputHeight < 0 {
		inputHeight = 0
	}
	inputTopY := (rows - 3) - inputHeight + 1
	if inputTopY < outputStartY {
		// Terminal shorter than the fixed header+status footprint.
		inputTopY = outputStartY
		l.Degraded = true
	}

	l.Input = Rect{X: 0, Y: inputTopY, Width: cols, Height: inputHeight}
	l.Output = Rect{X: 0, Y: outputStartY, Width: cols, Height: inputTopY - outputStartY}
	l.OutputContentHeight = l.Output.Height - 2
	if l.OutputContentHeight < 0 {
		l.OutputContentHeight = 0
	}

	return l, CorrectScroll(outputLines, l.OutputContentHeight)
}

// CorrectScroll returns the scroll offset for a transcript of
// outputLines rows shown in contentHeight rows: zero when everything
// fits (show from the top), otherwise pinned to the tail so the most
// recent lines stay visible. Idempotent for unchanged inputs.
func CorrectScroll(outputLines, contentHeight int) int {
	if outputLines <= contentHeight {
		return 0
	}
	return outputLines - contentHeight
}
