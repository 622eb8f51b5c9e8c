// Package machine drives a CHIP-8 virtual machine. It decouples the number of
// executed instructions per second from the 60 Hz timer tick.
package machine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// DefaultInstructionsPerSecond is a common speed that most ROMs are written for.
const DefaultInstructionsPerSecond = 700

var (
	// ErrBreakpoint is returned when the program counter reaches a breakpoint.
	ErrBreakpoint = errors.New("breakpoint reached")
	// ErrQuit can be returned by a frame callback to end a run without error.
	ErrQuit = errors.New("quit")
)

// Config contains the driver settings.
type Config struct {
	InstructionsPerSecond int
	Breakpoints           []uint16
}

// Machine executes the instructions of a VM in frames of 1/60 second.
type Machine struct {
	logger        *log.Logger
	vm            *vm.VM
	ips           int
	stepsPerFrame int
	remainder     int // instructions per second not covered by stepsPerFrame
	carry         int // accumulated remainder, one extra step per full frame
	breakpoints   set.Set[uint16]
	frames        uint64
}

// New returns a new driver for the VM.
func New(logger *log.Logger, v *vm.VM, cfg Config) (*Machine, error) {
	ips := cfg.InstructionsPerSecond
	if ips == 0 {
		ips = DefaultInstructionsPerSecond
	}
	if ips < vm.TimerFrequency {
		return nil, fmt.Errorf("instructions per second %d below minimum of %d", ips, vm.TimerFrequency)
	}

	breakpoints := set.New[uint16]()
	for _, address := range cfg.Breakpoints {
		breakpoints.Add(address & vm.AddressMask)
	}

	return &Machine{
		logger:        logger,
		vm:            v,
		ips:           ips,
		stepsPerFrame: ips / vm.TimerFrequency,
		remainder:     ips % vm.TimerFrequency,
		breakpoints:   breakpoints,
	}, nil
}

// VM returns the driven virtual machine.
func (m *Machine) VM() *vm.VM {
	return m.vm
}

// Frames returns the number of completed frames.
func (m *Machine) Frames() uint64 {
	return m.frames
}

// InstructionsPerSecond returns the configured execution speed.
func (m *Machine) InstructionsPerSecond() int {
	return m.ips
}

// StepsPerFrame returns the minimum number of instructions executed per frame.
// Speeds that are not a multiple of the timer frequency execute one more
// instruction in some frames, so that every second runs all instructions.
func (m *Machine) StepsPerFrame() int {
	return m.stepsPerFrame
}

// Frame executes the instructions of one frame and ticks the timers once.
// Execution of the frame ends early while the machine waits for a key press,
// the timers keep running.
func (m *Machine) Frame() error {
	steps := m.stepsPerFrame
	m.carry += m.remainder
	if m.carry >= vm.TimerFrequency {
		m.carry -= vm.TimerFrequency
		steps++
	}

	for range steps {
		if m.vm.State() == vm.Running {
			if pc := m.vm.Registers().PC; m.breakpoints.Contains(pc) {
				m.logger.Info("Breakpoint reached", log.Hex("pc", pc))
				return fmt.Errorf("%w at $%03X", ErrBreakpoint, pc)
			}
		}

		waiting, err := m.vm.Step()
		if err != nil {
			return fmt.Errorf("frame %d: %w", m.frames, err)
		}
		if waiting {
			break
		}
	}

	m.vm.Tick()
	m.frames++
	return nil
}

// Run executes frames at 60 Hz until the context is canceled, a frame fails or
// onFrame returns an error. onFrame is called after every frame and can be nil.
// ErrQuit returned by onFrame ends the run without error.
func (m *Machine) Run(ctx context.Context, onFrame func() error) error {
	ticker := time.NewTicker(time.Second / vm.TimerFrequency)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			if err := m.runFrame(onFrame); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
		}
	}
}

// RunFrames executes the given number of frames as fast as possible.
func (m *Machine) RunFrames(ctx context.Context, frames uint64) error {
	for range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := m.Frame(); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine) runFrame(onFrame func() error) error {
	if err := m.Frame(); err != nil {
		return err
	}
	if onFrame == nil {
		return nil
	}
	return onFrame()
}
