package server

import "fmt"

const (
	esc   = "\x1b"
	csi   = esc + "["
	reset = csi + "0m"
	bold  = csi + "1m"
	dim   = csi + "2m"
)

// moveTo positions the cursor at row, col (1-based).
func moveTo(row, col int) string {
	return fmt.Sprintf("%s%d;%dH", csi, row, col)
}

// clearScreen clears the entire screen.
func clearScreen() string {
	return csi + "2J"
}

// hideCursor hides the terminal cursor.
func hideCursor() string {
	return csi + "?25l"
}

// showCursor shows the terminal cursor.
func showCursor() string {
	return csi + "?25h"
}

// enableAltScreen switches to the alternate screen buffer.
func enableAltScreen() string {
	return csi + "?1049h"
}

// disableAltScreen switches back from the alternate screen buffer.
func disableAltScreen() string {
	return csi + "?1049l"
}
