package terminal

import (
	"bytes"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"golang.org/x/image/colornames"
)

func newTestFrontend(t *testing.T) (*Frontend, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer
	f := New(frontend.Config{
		Surface: display.New(),
		Keypad:  keypad.New(),
		Layout:  keypad.COSMACLayout,
		Palette: options.Palette{Foreground: colornames.White, Background: colornames.Black},
	})
	f.out = &out
	return f, &out
}

func TestHandleInput(t *testing.T) {
	f, _ := newTestFrontend(t)
	keys := f.cfg.Keypad

	assert.False(t, f.handleInput([]byte("qV")))
	assert.True(t, keys.IsKeyPressed(0x4))
	assert.True(t, keys.IsKeyPressed(0xF))
	assert.False(t, keys.IsKeyPressed(0x5))

	// cursor keys are ignored
	assert.False(t, f.handleInput([]byte("\x1b[A")))
	assert.False(t, keys.IsKeyPressed(0x5))

	assert.True(t, f.handleInput([]byte{keyEscape}))
	assert.True(t, f.handleInput([]byte{'w', keyCtrlC}))
}

func TestReleaseKeys(t *testing.T) {
	f, _ := newTestFrontend(t)
	keys := f.cfg.Keypad

	f.handleInput([]byte("x"))
	for range HoldFrames - 1 {
		f.releaseKeys()
		assert.True(t, keys.IsKeyPressed(0x0))
	}
	f.releaseKeys()
	assert.False(t, keys.IsKeyPressed(0x0))

	// repeated input extends the hold time
	f.handleInput([]byte("x"))
	f.releaseKeys()
	f.handleInput([]byte("x"))
	for range HoldFrames - 1 {
		f.releaseKeys()
	}
	assert.True(t, keys.IsKeyPressed(0x0))
}

func TestProcessInput(t *testing.T) {
	f, _ := newTestFrontend(t)

	input := make(chan []byte, 4)
	input <- []byte("1")
	assert.False(t, f.processInput(input))
	assert.True(t, f.cfg.Keypad.IsKeyPressed(0x1))

	input <- []byte{keyCtrlC}
	assert.True(t, f.processInput(input))

	close(input)
	assert.True(t, f.processInput(input))
}

func TestReadInput(t *testing.T) {
	input := make(chan []byte, 4)
	readInput(strings.NewReader("qw"), input, make(chan struct{}))

	data, ok := <-input
	assert.True(t, ok)
	assert.Equal(t, "qw", string(data))

	_, ok = <-input
	assert.False(t, ok)
}

// endlessReader returns the same key on every read.
type endlessReader struct{}

func (endlessReader) Read(p []byte) (int, error) {
	p[0] = 'q'
	return 1, nil
}

func TestReadInputStopsWhenDone(t *testing.T) {
	input := make(chan []byte)
	done := make(chan struct{})
	close(done)

	finished := make(chan struct{})
	go func() {
		readInput(endlessReader{}, input, done)
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("input reader did not stop after done was closed")
	}
}

func TestRender(t *testing.T) {
	var frame display.Frame
	frame[0][0] = true
	frame[3][1] = true

	var out bytes.Buffer
	fg := color.RGBA{R: 1, G: 2, B: 3, A: 0xff}
	bg := color.RGBA{R: 4, G: 5, B: 6, A: 0xff}
	assert.NoError(t, Render(&out, frame, fg, bg))

	lines := strings.Split(out.String(), "\r\n")
	assert.Equal(t, Rows+1, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], cursorHome))
	assert.Equal(t, display.Width, strings.Count(lines[0], upperHalfBlock))

	// top pixel set, bottom pixel cleared
	assert.True(t, strings.HasPrefix(lines[0], cursorHome+"\x1b[38;2;1;2;3m\x1b[48;2;4;5;6m"+upperHalfBlock))
	// second text row holds pixel rows 2 and 3
	assert.Contains(t, lines[1], upperHalfBlock+"\x1b[38;2;4;5;6m\x1b[48;2;1;2;3m"+upperHalfBlock)
}

func TestRenderOnlyOnChange(t *testing.T) {
	f, out := newTestFrontend(t)

	assert.NoError(t, f.render())
	assert.True(t, out.Len() > 0)

	out.Reset()
	assert.NoError(t, f.render())
	assert.Equal(t, 0, out.Len())

	f.cfg.Surface.PlotSprite(0, 0, []byte{0x80})
	assert.NoError(t, f.render())
	assert.True(t, out.Len() > 0)
}
