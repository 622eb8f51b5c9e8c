// Package vm implements the CHIP-8 virtual machine core.
//
// # Machine Layout
//
// The machine owns a 4KB memory image, 16 general purpose 8-bit registers (V0-VF),
// a 12-bit index register I, a 12-bit program counter, a 16 entry call stack and
// the delay and sound timers:
//
//	0x000-0x04F: reserved
//	FontBase-0x09F: hex digit glyphs 0-F (5 bytes each)
//	0x0A0-0x1FF: reserved
//	ProgramStart-MaxAddress: program and data space
//
// # Execution
//
// Step performs exactly one fetch, decode and execute cycle. Tick decrements the
// timers and has to be called by the driver at 60 Hz, independent of the number of
// executed instructions. The FX0A key wait is modeled as the WaitingForKey state,
// Step polls the keypad while in this state and does not fetch new instructions.
//
// # Quirks
//
// Behaviors that differ between historical interpreters are selected by Quirks
// at construction time:
//   - ShiftUsesVY: 8XY6/8XYE shift VY into VX instead of shifting VX in place
//   - IndexIncrement: FX55/FX65 leave I pointing after the last accessed byte
//   - LogicResetsVF: 8XY1/8XY2/8XY3 clear VF
//
// # Collaborators
//
// The pixel surface and the keypad are owned by the caller and accessed through
// the Display and Keypad interfaces. Sprite collision is always computed by the
// Display, the core keeps no shadow copy of the screen.
package vm
