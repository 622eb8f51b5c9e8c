// Package headless implements a frontend without presentation. It runs a
// bounded number of frames as fast as possible and reports the final state,
// which makes it usable in scripts and tests.
package headless

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrogolib/log"
)

// DefaultFrames is the number of frames to run without a frame limit.
const DefaultFrames = 600

var _ frontend.Frontend = (*Frontend)(nil)

// Frontend runs the machine without input.
type Frontend struct {
	cfg frontend.Config
	out io.Writer
}

// New returns a new headless frontend that prints the final display to the
// configured output.
func New(cfg frontend.Config) *Frontend {
	return &Frontend{
		cfg: cfg,
		out: frontend.Output(cfg),
	}
}

// Run executes the configured number of frames and writes the final display.
// The state is also reported if the machine stopped with an error.
func (f *Frontend) Run(ctx context.Context) error {
	frames := f.cfg.Frames
	if frames == 0 {
		frames = DefaultFrames
	}

	runErr := f.cfg.Machine.RunFrames(ctx, frames)
	f.report()

	if err := WriteScreen(f.out, f.cfg.Surface); err != nil {
		return fmt.Errorf("writing screen: %w", err)
	}
	if runErr != nil {
		return fmt.Errorf("running machine: %w", runErr)
	}
	return nil
}

func (f *Frontend) report() {
	v := f.cfg.Machine.VM()
	regs := v.Registers()
	f.cfg.Logger.Info("Run finished",
		log.Int("frames", int(f.cfg.Machine.Frames())),
		log.Int("instructions", int(v.Cycles())),
		log.Hex("pc", regs.PC),
		log.Hex("i", regs.I),
		log.Stringer("state", v.State()))
}

// WriteScreen writes the display as text, set pixels are shown as '#'.
func WriteScreen(w io.Writer, surface *display.Surface) error {
	frame, _ := surface.Snapshot()

	line := make([]byte, display.Width+1)
	line[display.Width] = '\n'
	for _, row := range frame {
		for x, set := range row {
			if set {
				line[x] = '#'
			} else {
				line[x] = '.'
			}
		}
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
	return nil
}
