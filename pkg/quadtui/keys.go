package quadtui

// Key constants for the raw byte sequences a terminal in raw mode
// delivers for the keys the console acts on.
const (
	KeyCtrlC     = "\x03"
	KeyCtrlD     = "\x04"
	KeyCtrlH     = "\x08" // often backspace
	KeyCtrlN     = "\x0e" // expand the input box
	KeyEnter     = "\x0d" // CR
	KeyCtrlT     = "\x14" // cycle theme
	KeyEscape    = "\x1b" // clear the input draft
	KeyBackspace = "\x7f"

	// Arrow keys
	KeyUp    = "\x1b[A"
	KeyDown  = "\x1b[B"
	KeyRight = "\x1b[C"
	KeyLeft  = "\x1b[D"
)

// isPrintable reports whether b is a plain printable ASCII byte.
func isPrintable(b byte) bool {
	return b >= 0x20 && b <= 0x7e
}
