// Package terminal implements a frontend that renders the display in an ANSI
// terminal and reads the keypad from raw mode keyboard input.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// HoldFrames is the number of frames a key stays pressed after its last
// input byte. Terminals only report key presses, the release is emulated.
const HoldFrames = 10

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1b
)

var _ frontend.Frontend = (*Frontend)(nil)

// Frontend runs the machine in the terminal.
type Frontend struct {
	cfg frontend.Config

	in  *os.File
	out io.Writer

	held        [keypad.KeyCount]int
	lastVersion uint64
	rendered    bool
}

// New returns a new terminal frontend that reads from stdin.
func New(cfg frontend.Config) *Frontend {
	return &Frontend{
		cfg: cfg,
		in:  os.Stdin,
		out: frontend.Output(cfg),
	}
}

// Run switches the terminal into raw mode and runs the machine until Ctrl+C
// or Escape is pressed.
func (f *Frontend) Run(ctx context.Context) error {
	fd := int(f.in.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("stdin is not a terminal")
	}

	if width, height, err := term.GetSize(fd); err == nil &&
		(width < display.Width || height < Rows) {
		f.cfg.Logger.Warn("Terminal is smaller than the display",
			log.Int("width", width),
			log.Int("height", height))
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("setting terminal raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, oldState) }()

	_, _ = io.WriteString(f.out, hideCursor+clearScreen)
	defer func() { _, _ = io.WriteString(f.out, resetStyle+showCursor+"\r\n") }()

	input := make(chan []byte, 16)
	done := make(chan struct{})
	defer close(done)
	go readInput(f.in, input, done)

	err = f.cfg.Machine.Run(ctx, func() error {
		if quit := f.processInput(input); quit {
			return machine.ErrQuit
		}
		if f.cfg.Frames > 0 && f.cfg.Machine.Frames() >= f.cfg.Frames {
			return machine.ErrQuit
		}
		return f.render()
	})
	if err != nil {
		return fmt.Errorf("running machine: %w", err)
	}
	return nil
}

// readInput forwards everything read from the reader to the channel until
// done is closed. A blocked read is only noticed after it returns, stdin reads
// can not be interrupted.
func readInput(r io.Reader, input chan<- []byte, done <-chan struct{}) {
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			select {
			case input <- data:
			case <-done:
				return
			}
		}
		if err != nil {
			close(input)
			return
		}
	}
}

// processInput drains all pending input and updates the keypad. It returns
// whether the user requested to quit.
func (f *Frontend) processInput(input <-chan []byte) bool {
	for {
		select {
		case data, ok := <-input:
			if !ok {
				return true
			}
			if f.handleInput(data) {
				return true
			}
		default:
			f.releaseKeys()
			return false
		}
	}
}

// handleInput presses the keypad keys of the input bytes. A lone escape byte
// quits, escape sequences of cursor and function keys are ignored.
func (f *Frontend) handleInput(data []byte) bool {
	if len(data) == 1 && data[0] == keyEscape {
		return true
	}
	if len(data) > 0 && data[0] == keyEscape {
		return false
	}

	for _, b := range data {
		if b == keyCtrlC {
			return true
		}
		key, ok := f.cfg.Layout.Key(rune(b))
		if !ok {
			continue
		}
		f.cfg.Keypad.Press(key)
		f.held[key] = HoldFrames
	}
	return false
}

// releaseKeys counts down the hold time of all pressed keys and releases
// the keys whose time ran out.
func (f *Frontend) releaseKeys() {
	for key, frames := range f.held {
		if frames == 0 {
			continue
		}
		f.held[key]--
		if f.held[key] == 0 {
			f.cfg.Keypad.Release(uint8(key))
		}
	}
}

// render redraws the terminal if the surface changed since the last frame.
func (f *Frontend) render() error {
	frame, version := f.cfg.Surface.Snapshot()
	if f.rendered && version == f.lastVersion {
		return nil
	}
	f.lastVersion = version
	f.rendered = true
	return Render(f.out, frame, f.cfg.Palette.Foreground, f.cfg.Palette.Background)
}
