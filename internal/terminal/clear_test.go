package terminal

import (
	"bytes"
	"strings"
	"testing"
)

func TestLinesUsed(t *testing.T) {
	tests := []struct {
		name       string
		textLength int
		width      int
		want       int
	}{
		{name: "empty input", textLength: 0, width: 80, want: 2},
		{name: "fits on one line", textLength: 79, width: 80, want: 2},
		{name: "exactly one line", textLength: 80, width: 80, want: 2},
		{name: "wraps once", textLength: 81, width: 80, want: 3},
		{name: "unknown width", textLength: 100, width: 0, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := linesUsed(tt.textLength, tt.width); got != tt.want {
				t.Errorf("linesUsed(%d, %d) = %d, want %d", tt.textLength, tt.width, got, tt.want)
			}
		})
	}
}

func TestClearPreviousLinesMovesUpBetweenClears(t *testing.T) {
	var buf bytes.Buffer
	ClearPreviousLines(&buf, 10)

	out := buf.String()
	clears := strings.Count(out, "\r\x1b[2K")
	ups := strings.Count(out, "\x1b[1A")
	if clears < 2 || ups != clears-1 {
		t.Errorf("clears = %d, ups = %d; want ups = clears-1 and at least two clears", clears, ups)
	}
}
