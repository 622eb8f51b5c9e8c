package terminal

import (
	"bufio"
	"fmt"
	"image/color"
	"io"

	"github.com/retroenv/retrochip8/internal/display"
)

// ANSI escape sequences.
const (
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	resetStyle  = "\x1b[0m"
)

// upperHalfBlock shows the upper pixel in the foreground color and the lower
// pixel in the background color, two pixel rows fit into one text row.
const upperHalfBlock = "▀"

// Rows is the number of terminal rows used by the rendered surface.
const Rows = display.Height / 2

// Render writes the frame as colored half block characters. Lines end with
// CR LF as output post processing is disabled in raw mode.
func Render(w io.Writer, frame display.Frame, fg, bg color.RGBA) error {
	buf := bufio.NewWriter(w)
	_, _ = buf.WriteString(cursorHome)

	for row := range Rows {
		top := frame[row*2]
		bottom := frame[row*2+1]
		for x := range display.Width {
			upper, lower := bg, bg
			if top[x] {
				upper = fg
			}
			if bottom[x] {
				lower = fg
			}
			_, _ = fmt.Fprintf(buf, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%s",
				upper.R, upper.G, upper.B, lower.R, lower.G, lower.B, upperHalfBlock)
		}
		_, _ = buf.WriteString(resetStyle + "\r\n")
	}

	if err := buf.Flush(); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}
