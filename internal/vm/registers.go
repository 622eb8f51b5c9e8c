package vm

// FlagRegister is the index of VF, which doubles as carry, borrow and collision flag.
const FlagRegister = 0xF

// Registers is the CHIP-8 register file.
type Registers struct {
	V  [16]uint8 // general purpose registers V0-VF
	I  uint16    // index register, 12 bit
	PC uint16    // program counter, 12 bit
}

// SetI sets the index register, wrapping at 4KB.
func (r *Registers) SetI(value uint16) {
	r.I = value & AddressMask
}

// SetPC sets the program counter, wrapping at 4KB.
func (r *Registers) SetPC(value uint16) {
	r.PC = value & AddressMask
}

// skip advances the program counter over the next instruction.
func (r *Registers) skip() {
	r.SetPC(r.PC + 2)
}

// setFlag sets VF to 1 if the condition holds and to 0 otherwise.
func (r *Registers) setFlag(condition bool) {
	if condition {
		r.V[FlagRegister] = 1
	} else {
		r.V[FlagRegister] = 0
	}
}
