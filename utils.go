package main

import (
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"honnef.co/go/curve"
)

// parseHexColor accepts #RGB and #RRGGBB.
func parseHexColor(s string) (r, g, b uint8, ok bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

// canvasRows is the number of terminal rows given to the canvas, between the
// tool bar and the status line.
func (m *model) canvasRows() int {
	return max(1, m.height-2)
}

// cursorPoint is the canvas position at the centre of the cursor cell.
func (m *model) cursorPoint() Point {
	return m.cellToCanvas(m.cursorX, m.cursorY)
}

func (m *model) cellToCanvas(cx, cy int) Point {
	return curve.Pt(
		float64(cx+m.panX)*cellWidth+cellWidth/2,
		float64(cy+m.panY)*cellHeight+cellHeight/2,
	)
}

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func writeClipboardText(text string) error {
	return clipboard.WriteAll(text)
}
