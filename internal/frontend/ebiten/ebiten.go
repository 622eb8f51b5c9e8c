// Package ebiten implements a desktop window frontend based on the ebiten
// game library.
package ebiten

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

var (
	_ frontend.Frontend = (*Frontend)(nil)
	_ ebiten.Game       = (*Frontend)(nil)
)

// Frontend shows the display in a window and reads the keypad from the
// keyboard. Escape quits and F5 restarts the loaded program.
type Frontend struct {
	cfg      frontend.Config
	ctx      context.Context
	bindings []keyBinding

	screen *ebiten.Image
	pixels []byte
}

// New returns a new window frontend.
func New(cfg frontend.Config) *Frontend {
	if cfg.Scale < 1 {
		cfg.Scale = 1
	}
	return &Frontend{
		cfg:      cfg,
		ctx:      context.Background(),
		bindings: bindKeys(cfg.Layout),
		pixels:   make([]byte, display.Width*display.Height*4),
	}
}

// Run opens the window and runs the machine with one frame per window update.
func (f *Frontend) Run(ctx context.Context) error {
	f.ctx = ctx

	ebiten.SetWindowSize(display.Width*f.cfg.Scale, display.Height*f.cfg.Scale)
	ebiten.SetWindowTitle(f.cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(vm.TimerFrequency)

	if err := ebiten.RunGame(f); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return ctx.Err()
}

// Update handles the input and executes one frame of the machine.
func (f *Frontend) Update() error {
	if f.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		f.cfg.Logger.Info("Resetting machine")
		f.cfg.Machine.VM().Reset()
		f.cfg.Keypad.Reset()
	}

	f.cfg.Keypad.Set(keypadState(f.bindings, ebiten.IsKeyPressed))

	if err := f.cfg.Machine.Frame(); err != nil {
		return err
	}

	if f.cfg.Frames > 0 && f.cfg.Machine.Frames() >= f.cfg.Frames {
		f.cfg.Logger.Debug("Frame limit reached", log.Int("frames", int(f.cfg.Frames)))
		return ebiten.Termination
	}
	return nil
}

// Draw renders the display surface scaled to the window.
func (f *Frontend) Draw(screen *ebiten.Image) {
	if f.screen == nil {
		f.screen = ebiten.NewImage(display.Width, display.Height)
	}

	f.cfg.Surface.RGBA(f.pixels, f.cfg.Palette.Foreground, f.cfg.Palette.Background)
	f.screen.WritePixels(f.pixels)
	screen.DrawImage(f.screen, nil)
}

// Layout returns the fixed logical screen size, ebiten scales it to the window.
func (f *Frontend) Layout(_, _ int) (int, int) {
	return display.Width, display.Height
}
