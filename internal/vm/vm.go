package vm

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/retroenv/retrogolib/log"
)

// Display is the monochrome pixel surface that the machine draws to.
type Display interface {
	// Clear turns all pixels off.
	Clear()
	// PlotSprite XORs the sprite rows onto the surface with the top left corner at
	// x and y, which are already wrapped to the surface size. It returns whether any
	// pixel was turned off.
	PlotSprite(x, y uint8, rows []byte) bool
}

// Keypad reports the state of the 16-key hex keypad.
type Keypad interface {
	IsKeyPressed(key uint8) bool
}

// State is the execution state of the machine.
type State uint8

// Execution states.
const (
	Running State = iota
	WaitingForKey
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case WaitingForKey:
		return "waiting for key"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Screen dimensions that sprite coordinates are wrapped to.
const (
	ScreenWidth  = 64
	ScreenHeight = 32
)

// Config contains the options that are fixed for the lifetime of a machine.
type Config struct {
	Quirks Quirks
	Trace  bool   // log every executed instruction at debug level
	Seed   uint64 // random number seed, 0 selects a random seed
}

// VM is a CHIP-8 virtual machine.
type VM struct {
	logger  *log.Logger
	display Display
	keys    Keypad
	quirks  Quirks
	trace   bool
	rng     *rand.Rand

	mem    *Memory
	regs   Registers
	stack  Stack
	timers Timers

	state   State
	waitReg uint8
	cycles  uint64
	rom     []byte
	sprite  [15]byte
}

// New returns a new machine with the font installed and the program counter
// set to ProgramStart. A nil logger only reports errors.
func New(logger *log.Logger, display Display, keys Keypad, cfg Config) *VM {
	if logger == nil {
		logCfg := log.DefaultConfig()
		logCfg.Level = log.ErrorLevel
		logger = log.NewWithConfig(logCfg)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	v := &VM{
		logger:  logger,
		display: display,
		keys:    keys,
		quirks:  cfg.Quirks,
		trace:   cfg.Trace,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
		mem:     NewMemory(),
	}
	v.regs.PC = ProgramStart
	return v
}

// LoadROM copies the ROM into the program space.
func (v *VM) LoadROM(rom []byte) error {
	if err := v.mem.Load(rom); err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}
	v.rom = append(v.rom[:0], rom...)
	v.logger.Debug("ROM loaded",
		log.Int("size", len(rom)),
		log.Hex("address", uint16(ProgramStart)))
	return nil
}

// Reset restores the power on state and reloads the last loaded ROM.
func (v *VM) Reset() {
	v.mem = NewMemory()
	_ = v.mem.Load(v.rom) // was validated when loaded
	v.regs = Registers{PC: ProgramStart}
	v.stack.Reset()
	v.timers = Timers{}
	v.state = Running
	v.waitReg = 0
	v.cycles = 0
	v.display.Clear()
}

// Step executes a single instruction and returns whether the machine is waiting
// for a key press. While waiting, Step only polls the keypad.
// A failing instruction leaves the machine in the state before the step.
func (v *VM) Step() (bool, error) {
	if v.state == WaitingForKey {
		v.pollKey()
		return v.state == WaitingForKey, nil
	}

	pc := v.regs.PC
	ins := Decode(v.fetch())

	if v.trace {
		v.logger.Debug("Executing",
			log.Hex("pc", pc),
			log.Hex("opcode", ins.Word),
			log.Stringer("instruction", ins))
	}

	if err := v.execute(ins); err != nil {
		v.regs.PC = pc
		return false, fmt.Errorf("executing '%s' at $%03X: %w", ins, pc, err)
	}
	v.cycles++
	return v.state == WaitingForKey, nil
}

// Tick decrements the timers, it has to be called at TimerFrequency.
func (v *VM) Tick() {
	v.timers.Tick()
}

// SoundActive returns whether the sound timer is running.
func (v *VM) SoundActive() bool {
	return v.timers.SoundActive()
}

// State returns the current execution state.
func (v *VM) State() State {
	return v.state
}

// WaitRegister returns the register that receives the next key press while the
// machine is waiting for a key.
func (v *VM) WaitRegister() uint8 {
	return v.waitReg
}

// Registers returns a copy of the register file.
func (v *VM) Registers() Registers {
	return v.regs
}

// Timers returns a copy of the timers.
func (v *VM) Timers() Timers {
	return v.timers
}

// StackDepth returns the number of active subroutine calls.
func (v *VM) StackDepth() int {
	return v.stack.Depth()
}

// Memory returns the memory image. Callers must not modify it.
func (v *VM) Memory() *Memory {
	return v.mem
}

// Cycles returns the number of executed instructions.
func (v *VM) Cycles() uint64 {
	return v.cycles
}

// DumpMemory writes all nonzero bytes in the address range [start, end) to the writer.
func (v *VM) DumpMemory(w io.Writer, start, end uint16) error {
	return v.mem.Dump(w, start, end)
}

// fetch reads the instruction word at the program counter and advances it.
// The program counter wraps at the end of the address space.
func (v *VM) fetch() uint16 {
	word := v.mem.ReadWord(v.regs.PC)
	v.regs.SetPC(v.regs.PC + 2)
	return word
}

// pollKey stores the lowest pressed key into the wait register and resumes execution.
func (v *VM) pollKey() bool {
	for key := range uint8(16) {
		if v.keys.IsKeyPressed(key) {
			v.regs.V[v.waitReg] = key
			v.state = Running
			return true
		}
	}
	return false
}
