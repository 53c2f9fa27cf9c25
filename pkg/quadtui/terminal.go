package quadtui

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Escape sequences the console emits for screen control.
const (
	escAltScreenEnter = "\x1b[?1049h"
	escAltScreenExit  = "\x1b[?1049l"
	escCursorHide     = "\x1b[?25l"
	escCursorShow     = "\x1b[?25h"
	escClearScreen    = "\x1b[2J\x1b[H"
	escSyncBegin      = "\x1b[?2026h"
	escSyncEnd        = "\x1b[?2026l"
)

// Terminal abstracts terminal I/O so the console can be tested with a
// fake terminal.
type Terminal interface {
	// Start puts the terminal into raw mode, switches to the alternate
	// screen, and begins listening for input and resize events. onInput
	// receives raw bytes from stdin; onResize fires when the dimensions
	// change.
	Start(onInput func([]byte), onResize func()) error

	// Stop restores the terminal: leaves the alternate screen, shows
	// the cursor, and disables raw mode. Safe to call more than once.
	Stop()

	// Write sends raw bytes to the terminal.
	Write(p []byte) error

	// WriteString sends a string to the terminal.
	WriteString(s string) error

	// Columns returns the current terminal width.
	Columns() int

	// Rows returns the current terminal height.
	Rows() int
}

// ProcessTerminal is a Terminal backed by os.Stdin / os.Stdout.
// Dimensions are cached and refreshed on SIGWINCH so rendering never
// issues an ioctl per frame.
type ProcessTerminal struct {
	origTermios *unix.Termios
	onInput     func([]byte)
	onResize    func()
	sigCh       chan os.Signal
	stopCtx     context.Context
	stopCancel  context.CancelFunc

	stopOnce sync.Once

	sizeMu sync.RWMutex
	cols   int
	rows   int
}

func NewProcessTerminal() *ProcessTerminal {
	return &ProcessTerminal{}
}

func (t *ProcessTerminal) Start(onInput func([]byte), onResize func()) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
		return ErrNotATerminal
	}

	t.onInput = onInput
	t.onResize = onResize
	t.stopCtx, t.stopCancel = context.WithCancel(context.Background())
	t.stopOnce = sync.Once{}

	// Save and set raw mode.
	fd := int(os.Stdin.Fd())
	orig, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return errors.Wrap(err, "get termios")
	}
	t.origTermios = orig

	raw := *orig
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, &raw); err != nil {
		return errors.Wrap(err, "set raw")
	}

	t.refreshSize()
	if cols, rows := t.Columns(), t.Rows(); cols < MinCols || rows < MinRows {
		_ = unix.IoctlSetTermios(fd, ioctlWriteTermios, orig)
		return errors.Wrapf(ErrTerminalTooSmall, "%dx%d, need at least %dx%d", cols, rows, MinCols, MinRows)
	}

	// Switch to the alternate screen, clear it, hide the cursor.
	_ = t.WriteString(escAltScreenEnter + escClearScreen + escCursorHide)

	// Read stdin in a goroutine.
	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := os.Stdin.Read(buf)
			if n > 0 {
				// Copy so the callback can keep the slice.
				data := make([]byte, n)
				copy(data, buf[:n])
				t.onInput(data)
			}
			if err != nil {
				return
			}
		}
	}()

	// Listen for SIGWINCH.
	t.sigCh = make(chan os.Signal, 1)
	signal.Notify(t.sigCh, syscall.SIGWINCH)
	go func() {
		for {
			select {
			case <-t.sigCh:
				t.refreshSize()
				if t.onResize != nil {
					t.onResize()
				}
			case <-t.stopCtx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop restores terminal modes. It runs the full restoration sequence
// regardless of which code path triggered it, and only once.
func (t *ProcessTerminal) Stop() {
	t.stopOnce.Do(func() {
		if t.stopCancel != nil {
			t.stopCancel()
		}
		if t.sigCh != nil {
			signal.Stop(t.sigCh)
		}
		_ = t.WriteString(escAltScreenExit + escCursorShow)
		if t.origTermios != nil {
			fd := int(os.Stdin.Fd())
			_ = unix.IoctlSetTermios(fd, ioctlWriteTermios, t.origTermios)
		}
	})
}

func (t *ProcessTerminal) Write(p []byte) error {
	_, err := os.Stdout.Write(p)
	return err
}

func (t *ProcessTerminal) WriteString(s string) error {
	_, err := os.Stdout.WriteString(s)
	return err
}

func (t *ProcessTerminal) Columns() int {
	t.sizeMu.RLock()
	defer t.sizeMu.RUnlock()
	if t.cols == 0 {
		return 80
	}
	return t.cols
}

func (t *ProcessTerminal) Rows() int {
	t.sizeMu.RLock()
	defer t.sizeMu.RUnlock()
	if t.rows == 0 {
		return 24
	}
	return t.rows
}

// refreshSize queries the kernel for the current dimensions and caches
// them. Called once at Start and on every SIGWINCH.
func (t *ProcessTerminal) refreshSize() {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return
	}
	t.sizeMu.Lock()
	if ws.Col > 0 {
		t.cols = int(ws.Col)
	}
	if ws.Row > 0 {
		t.rows = int(ws.Row)
	}
	t.sizeMu.Unlock()
}
