package quadtui

import (
	"fmt"
	"strings"
)

// prompt shown at the start of the first input line. Continuation lines
// are indented to the same width.
const (
	inputPrompt       = "> "
	inputContinuation = "  "
)

// DrawFrame renders the full screen for the given state and layout.
// It is a pure function of its arguments: it never touches the
// terminal and never mutates st.
func DrawFrame(st *UIState, l Layout, cols, rows int, title string) *Frame {
	f := NewFrame(cols, rows)
	styles := st.Theme.Styles()

	drawHeader(f, l.Header, st, styles, title)
	drawOutputBox(f, l, st, styles)
	drawInputBox(f, l.Input, st, styles)
	drawStatusBar(f, l.Status, st, styles, cols, rows)

	return f
}

func drawHeader(f *Frame, r Rect, st *UIState, styles Styles, title string) {
	if r.Height < 1 {
		return
	}
	f.WriteAt(r.Y, 1, styles.Title.Render(title))
	// The frame counter must not appear here: anything that changes
	// every frame would force a repaint of this row every frame.
	counter := fmt.Sprintf("%d lines", len(st.Output))
	f.WriteAt(r.Y, r.Width-len(counter)-1, styles.Muted.Render(counter))
	if r.Height >= 2 {
		f.SetLine(r.Y+1, styles.Header.Render(strings.Repeat("─", r.Width)))
	}
}

func drawOutputBox(f *Frame, l Layout, st *UIState, styles Styles) {
	r := l.Output
	if r.Height < 2 {
		return
	}
	f.SetLine(r.Y, styles.Border.Render(boxTop("transcript", r.Width)))
	f.SetLine(r.Y+r.Height-1, styles.Border.Render(boxBottom(r.Width)))

	inner := r.Width - 4
	if inner < 0 {
		inner = 0
	}
	for i := 0; i < l.OutputContentHeight; i++ {
		var content string
		if idx := st.Scroll + i; idx < len(st.Output) {
			content = styles.Text.Render(SliceVisible(st.Output[idx], 0, inner))
		}
		f.SetLine(r.Y+1+i, boxRow(content, r.Width, styles))
	}
}

func drawInputBox(f *Frame, r Rect, st *UIState, styles Styles) {
	if r.Height < 2 {
		return
	}
	f.SetLine(r.Y, styles.Border.Render(boxTop("input", r.Width)))
	f.SetLine(r.Y+r.Height-1, styles.Border.Render(boxBottom(r.Width)))

	inner := r.Width - 4
	contentRows := r.Height - 2
	for i := 0; i < contentRows && i < len(st.Input); i++ {
		prefix := inputContinuation
		if i == 0 {
			prefix = styles.Prompt.Render(inputPrompt)
		}
		text := st.Input[i]
		if i == st.CursorLine {
			text = renderWithCursor(text, st.CursorCol, styles)
		} else {
			text = styles.Text.Render(text)
		}
		line := prefix + text
		if VisibleLength(line) > inner {
			line = SliceVisible(line, 0, inner)
		}
		f.SetLine(r.Y+1+i, boxRow(line, r.Width, styles))
	}
}

func drawStatusBar(f *Frame, r Rect, st *UIState, styles Styles, cols, rows int) {
	if r.Height < 1 {
		return
	}
	text := fmt.Sprintf(" %dx%d │ theme %s │ ^N expand · ^T theme · Enter send · ^C quit",
		cols, rows, st.Theme)
	f.SetLine(r.Y, styles.Status.Render(PadVisible(text, r.Width)))
}

// renderWithCursor splits the line at the cursor and renders the cell
// under the cursor with the theme's cursor style. A cursor at the end
// of the line sits on a space.
func renderWithCursor(line string, col int, styles Styles) string {
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}
	cell := " "
	rest := ""
	if col < len(line) {
		cell = line[col : col+1]
		rest = line[col+1:]
	}
	return styles.Text.Render(line[:col]) + styles.Cursor.Render(cell) + styles.Text.Render(rest)
}

// boxTop builds "┌─ label ───...───┐" at exactly width cells, dropping
// the label when the box is too narrow for it.
func boxTop(label string, width int) string {
	if width < 2 {
		return strings.Repeat("─", max(0, width))
	}
	titled := "┌─ " + label + " "
	if VisibleLength(titled) > width-1 {
		return "┌" + strings.Repeat("─", width-2) + "┐"
	}
	return titled + strings.Repeat("─", width-1-VisibleLength(titled)) + "┐"
}

// boxBottom builds "└───...───┘" at exactly width cells.
func boxBottom(width int) string {
	if width < 2 {
		return strings.Repeat("─", max(0, width))
	}
	return "└" + strings.Repeat("─", width-2) + "┘"
}

// boxRow wraps content in side borders: "│ content │", with the content
// padded to fill the box interior.
func boxRow(content string, width int, styles Styles) string {
	inner := width - 4
	if inner < 0 {
		return PadVisible("", width)
	}
	bar := styles.Border.Render("│")
	return bar + " " + PadVisible(content, inner) + " " + bar
}
