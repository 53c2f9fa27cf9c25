// Package quadtui implements a full-screen terminal console with
// differential rendering. Each frame is drawn into a fixed-size buffer,
// diffed line-by-line against the previous frame, and only the changed
// lines are written, wrapped in a synchronized-output envelope so the
// update appears atomic. Layout is four fixed regions: header, output
// log, input box, and status bar.
package quadtui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// ansiReset cancels all active SGR attributes.
const ansiReset = "\x1b[0m"

// VisibleLength returns the display width of s in terminal cells,
// excluding ANSI escape sequences.
func VisibleLength(s string) int {
	return ansi.StringWidth(s)
}

// SliceVisible returns the part of s whose visible cells fall in
// [start, end). Escape sequences active before start are re-emitted at
// the front of the slice, and a reset is appended so styling does not
// leak past the cut. Out-of-range indices clamp; an escape sequence
// that would be truncated by the cut is dropped entirely.
func SliceVisible(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end < start {
		end = start
	}

	var (
		out     strings.Builder
		pending strings.Builder
		col     int
		styled  bool
	)

	rest := s
	for len(rest) > 0 && col < end {
		if rest[0] == '\x1b' {
			seq, n := parseEscape(rest)
			if n == 0 {
				// Incomplete escape at end of string; drop it.
				break
			}
			if col >= start {
				out.WriteString(seq)
				styled = true
			} else {
				pending.WriteString(seq)
			}
			rest = rest[n:]
			continue
		}

		cluster, w := ansi.FirstGraphemeCluster(rest, ansi.GraphemeWidth)
		if len(cluster) == 0 {
			break
		}
		if col >= start {
			if col+w > end {
				break
			}
			if pending.Len() > 0 {
				out.WriteString(pending.String())
				pending.Reset()
				styled = true
			}
			out.WriteString(cluster)
		}
		col += w
		rest = rest[len(cluster):]
	}

	if styled {
		out.WriteString(ansiReset)
	}
	return out.String()
}

// ReplaceVisible overwrites target at visible column col with the
// visible cells of repl, keeping the unaffected head and tail of target
// (including their escape sequences) intact. When col is past the end
// of target, the gap is padded with spaces.
func ReplaceVisible(target string, col int, repl string) string {
	if col < 0 {
		col = 0
	}
	targetLen := VisibleLength(target)
	replLen := VisibleLength(repl)
	if replLen == 0 {
		return target
	}

	var out strings.Builder
	out.WriteString(SliceVisible(target, 0, col))
	if col > targetLen {
		out.WriteString(strings.Repeat(" ", col-targetLen))
	}
	out.WriteString(repl)
	if strings.ContainsRune(repl, '\x1b') && !strings.HasSuffix(repl, ansiReset) {
		out.WriteString(ansiReset)
	}
	if col+replLen < targetLen {
		out.WriteString(SliceVisible(target, col+replLen, targetLen))
	}
	return out.String()
}

// PadVisible extends s with spaces to exactly width visible cells,
// truncating when it is already longer.
func PadVisible(s string, width int) string {
	w := VisibleLength(s)
	switch {
	case w == width:
		return s
	case w > width:
		return SliceVisible(s, 0, width)
	default:
		return s + strings.Repeat(" ", width-w)
	}
}

// parseEscape detects an ANSI escape sequence at the start of s and
// returns the full sequence and its byte length, or ("", 0) when s does
// not start with a complete recognized sequence.
func parseEscape(s string) (string, int) {
	if len(s) < 2 || s[0] != '\x1b' {
		return "", 0
	}

	switch s[1] {
	case '[': // CSI: ESC [ ... <final byte 0x40-0x7e>
		for j := 2; j < len(s); j++ {
			b := s[j]
			if b >= 0x40 && b <= 0x7e {
				return s[:j+1], j + 1
			}
		}
	case ']', '_': // OSC / APC: terminated by BEL or ST
		for j := 2; j < len(s); j++ {
			if s[j] == '\x07' {
				return s[:j+1], j + 1
			}
			if s[j] == '\x1b' && j+1 < len(s) && s[j+1] == '\\' {
				return s[:j+2], j + 2
			}
		}
	}
	return "", 0
}
