// Package terminal provides small helpers for interactive prompts.
package terminal

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const fallbackWidth = 80

// Width returns the width of stdout, or 80 when it is not a terminal.
func Width() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return fallbackWidth
}

// IsInteractive reports whether stdin is a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// linesUsed returns how many terminal rows textLength characters occupied,
// plus the empty row the cursor sits on after Enter.
func linesUsed(textLength, width int) int {
	if width <= 0 {
		width = fallbackWidth
	}
	lines := (textLength + width - 1) / width
	if lines < 1 {
		lines = 1
	}
	return lines + 1
}

// ClearPreviousLines erases a prompt and the user's answer so secrets typed
// at the prompt do not stay on screen.
func ClearPreviousLines(w io.Writer, textLength int) {
	n := linesUsed(textLength, Width())
	for i := 0; i < n; i++ {
		fmt.Fprint(w, "\r\x1b[2K")
		if i < n-1 {
			fmt.Fprint(w, "\x1b[1A")
		}
	}
}
