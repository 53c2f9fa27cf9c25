package quadtui

import "github.com/pkg/errors"

// Startup environment errors. These are the only errors that abort the
// console: everything after a successful Start is recovered per-frame.
var (
	// ErrNotATerminal means stdin or stdout is not an interactive
	// terminal. The console refuses to start rather than attempt any
	// rendering.
	ErrNotATerminal = errors.New("not an interactive terminal")

	// ErrTerminalTooSmall means the terminal is below the minimum
	// usable size for the four screen regions.
	ErrTerminalTooSmall = errors.New("terminal too small")
)
