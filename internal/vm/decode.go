package vm

import "github.com/retroenv/retrochip8/internal/disasm"

// Op identifies a decoded CHIP-8 instruction.
type Op uint8

// All base CHIP-8 instructions, named after their opcode pattern.
const (
	OpUnknown Op = iota
	OpCLS        // 00E0
	OpRET        // 00EE
	OpSYS        // 0NNN
	OpJP         // 1NNN
	OpCALL       // 2NNN
	OpSEVxNN     // 3XNN
	OpSNEVxNN    // 4XNN
	OpSEVxVy     // 5XY0
	OpLDVxNN     // 6XNN
	OpADDVxNN    // 7XNN
	OpLDVxVy     // 8XY0
	OpOR         // 8XY1
	OpAND        // 8XY2
	OpXOR        // 8XY3
	OpADDVxVy    // 8XY4
	OpSUB        // 8XY5
	OpSHR        // 8XY6
	OpSUBN       // 8XY7
	OpSHL        // 8XYE
	OpSNEVxVy    // 9XY0
	OpLDI        // ANNN
	OpJPV0       // BNNN
	OpRND        // CXNN
	OpDRW        // DXYN
	OpSKP        // EX9E
	OpSKNP       // EXA1
	OpLDVxDT     // FX07
	OpLDVxK      // FX0A
	OpLDDTVx     // FX15
	OpLDSTVx     // FX18
	OpADDIVx     // FX1E
	OpLDFVx      // FX29
	OpLDBVx      // FX33
	OpLDIVx      // FX55
	OpLDVxI      // FX65

	opCount
)

var opPatterns = [opCount]string{
	OpUnknown: "????",
	OpCLS:     "00E0",
	OpRET:     "00EE",
	OpSYS:     "0NNN",
	OpJP:      "1NNN",
	OpCALL:    "2NNN",
	OpSEVxNN:  "3XNN",
	OpSNEVxNN: "4XNN",
	OpSEVxVy:  "5XY0",
	OpLDVxNN:  "6XNN",
	OpADDVxNN: "7XNN",
	OpLDVxVy:  "8XY0",
	OpOR:      "8XY1",
	OpAND:     "8XY2",
	OpXOR:     "8XY3",
	OpADDVxVy: "8XY4",
	OpSUB:     "8XY5",
	OpSHR:     "8XY6",
	OpSUBN:    "8XY7",
	OpSHL:     "8XYE",
	OpSNEVxVy: "9XY0",
	OpLDI:     "ANNN",
	OpJPV0:    "BNNN",
	OpRND:     "CXNN",
	OpDRW:     "DXYN",
	OpSKP:     "EX9E",
	OpSKNP:    "EXA1",
	OpLDVxDT:  "FX07",
	OpLDVxK:   "FX0A",
	OpLDDTVx:  "FX15",
	OpLDSTVx:  "FX18",
	OpADDIVx:  "FX1E",
	OpLDFVx:   "FX29",
	OpLDBVx:   "FX33",
	OpLDIVx:   "FX55",
	OpLDVxI:   "FX65",
}

// String returns the opcode pattern of the instruction, for example 8XY4.
func (o Op) String() string {
	if o >= opCount {
		return opPatterns[OpUnknown]
	}
	return opPatterns[o]
}

// opcodeInfo matches an instruction word against a mask and value.
type opcodeInfo struct {
	mask  uint16
	value uint16
	op    Op
}

// opcodes maps the first nibble of an instruction word to the instructions of
// that class. The first matching entry wins.
var opcodes = [16][]opcodeInfo{
	0x0: {
		{mask: 0xFFFF, value: 0x00E0, op: OpCLS},
		{mask: 0xFFFF, value: 0x00EE, op: OpRET},
		{mask: 0xF000, value: 0x0000, op: OpSYS},
	},
	0x1: {{mask: 0xF000, value: 0x1000, op: OpJP}},
	0x2: {{mask: 0xF000, value: 0x2000, op: OpCALL}},
	0x3: {{mask: 0xF000, value: 0x3000, op: OpSEVxNN}},
	0x4: {{mask: 0xF000, value: 0x4000, op: OpSNEVxNN}},
	0x5: {{mask: 0xF00F, value: 0x5000, op: OpSEVxVy}},
	0x6: {{mask: 0xF000, value: 0x6000, op: OpLDVxNN}},
	0x7: {{mask: 0xF000, value: 0x7000, op: OpADDVxNN}},
	0x8: {
		{mask: 0xF00F, value: 0x8000, op: OpLDVxVy},
		{mask: 0xF00F, value: 0x8001, op: OpOR},
		{mask: 0xF00F, value: 0x8002, op: OpAND},
		{mask: 0xF00F, value: 0x8003, op: OpXOR},
		{mask: 0xF00F, value: 0x8004, op: OpADDVxVy},
		{mask: 0xF00F, value: 0x8005, op: OpSUB},
		{mask: 0xF00F, value: 0x8006, op: OpSHR},
		{mask: 0xF00F, value: 0x8007, op: OpSUBN},
		{mask: 0xF00F, value: 0x800E, op: OpSHL},
	},
	0x9: {{mask: 0xF00F, value: 0x9000, op: OpSNEVxVy}},
	0xA: {{mask: 0xF000, value: 0xA000, op: OpLDI}},
	0xB: {{mask: 0xF000, value: 0xB000, op: OpJPV0}},
	0xC: {{mask: 0xF000, value: 0xC000, op: OpRND}},
	0xD: {{mask: 0xF000, value: 0xD000, op: OpDRW}},
	0xE: {
		{mask: 0xF0FF, value: 0xE09E, op: OpSKP},
		{mask: 0xF0FF, value: 0xE0A1, op: OpSKNP},
	},
	0xF: {
		{mask: 0xF0FF, value: 0xF007, op: OpLDVxDT},
		{mask: 0xF0FF, value: 0xF00A, op: OpLDVxK},
		{mask: 0xF0FF, value: 0xF015, op: OpLDDTVx},
		{mask: 0xF0FF, value: 0xF018, op: OpLDSTVx},
		{mask: 0xF0FF, value: 0xF01E, op: OpADDIVx},
		{mask: 0xF0FF, value: 0xF029, op: OpLDFVx},
		{mask: 0xF0FF, value: 0xF033, op: OpLDBVx},
		{mask: 0xF0FF, value: 0xF055, op: OpLDIVx},
		{mask: 0xF0FF, value: 0xF065, op: OpLDVxI},
	},
}

// Instruction is a decoded instruction word with all operand fields extracted.
type Instruction struct {
	Word  uint16
	Op    Op
	Class uint8  // first nibble
	X     uint8  // register selector, bits 8-11
	Y     uint8  // register selector, bits 4-7
	N     uint8  // 4-bit immediate
	NN    uint8  // 8-bit immediate
	NNN   uint16 // 12-bit address
}

// Decode splits an instruction word into its fields and identifies the instruction.
// Words that do not encode a base CHIP-8 instruction decode to OpUnknown.
func Decode(word uint16) Instruction {
	ins := Instruction{
		Word:  word,
		Class: uint8(word >> 12),
		X:     uint8(word>>8) & 0xF,
		Y:     uint8(word>>4) & 0xF,
		N:     uint8(word) & 0xF,
		NN:    uint8(word),
		NNN:   word & 0x0FFF,
	}
	for _, info := range opcodes[ins.Class] {
		if word&info.mask == info.value {
			ins.Op = info.op
			break
		}
	}
	return ins
}

// String returns the assembly text of the instruction.
func (i Instruction) String() string {
	return disasm.Format(i.Word)
}
