// Package frontend defines the presentation layer that drives a machine and
// connects it to the host display and keyboard.
package frontend

import (
	"context"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Frontend runs a machine until the user quits, the context is canceled or
// execution fails.
type Frontend interface {
	Run(ctx context.Context) error
}

// Config contains the dependencies and settings shared by all frontends.
type Config struct {
	Logger  *log.Logger
	Machine *machine.Machine
	Surface *display.Surface
	Keypad  *keypad.Keypad
	Layout  keypad.Layout
	Palette options.Palette

	Output io.Writer // text output, defaults to stdout
	Title  string
	Scale  int    // window scale factor
	Frames uint64 // number of frames to run, 0 runs until quit
}

// Output returns the configured text output or stdout.
func Output(cfg Config) io.Writer {
	if cfg.Output != nil {
		return cfg.Output
	}
	return os.Stdout
}
