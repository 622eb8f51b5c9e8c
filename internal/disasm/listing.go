package disasm

import (
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/set"
)

// ProgramStart is the memory address where CHIP-8 programs are loaded.
const ProgramStart = 0x200

// WriteListing writes a linear disassembly of the ROM in retroasm syntax.
// Targets of jump, call and index load instructions inside the ROM get labels.
func WriteListing(w io.Writer, rom []byte) error {
	labels := collectLabels(rom)

	if _, err := fmt.Fprintf(w, "; CHIP-8 ROM Disassembly\n; Program starts at $%03X in CHIP-8 memory space\n\n", ProgramStart); err != nil {
		return fmt.Errorf("writing header comment: %w", err)
	}
	if _, err := fmt.Fprintf(w, ".org $%03X\n\n", ProgramStart); err != nil {
		return fmt.Errorf("writing org directive: %w", err)
	}

	for offset := 0; offset < len(rom); offset += 2 {
		address := uint16(ProgramStart + offset)
		if labels.Contains(address) {
			if _, err := fmt.Fprintf(w, "%s:\n", labelName(address)); err != nil {
				return fmt.Errorf("writing label: %w", err)
			}
		}

		if offset+1 == len(rom) {
			if _, err := fmt.Fprintf(w, "  .byte $%02X\n", rom[offset]); err != nil {
				return fmt.Errorf("writing trailing byte: %w", err)
			}
			break
		}

		opcode := uint16(rom[offset])<<8 | uint16(rom[offset+1])
		code := formatWithLabels(opcode, labels)
		if _, err := fmt.Fprintf(w, "  %-24s ; $%03X %02X %02X\n", code, address, rom[offset], rom[offset+1]); err != nil {
			return fmt.Errorf("writing instruction at $%03X: %w", address, err)
		}
	}
	return nil
}

// collectLabels returns all addresses inside the ROM that are referenced by
// jump, call or index load instructions.
func collectLabels(rom []byte) set.Set[uint16] {
	labels := set.New[uint16]()
	end := ProgramStart + len(rom)

	for offset := 0; offset+1 < len(rom); offset += 2 {
		opcode := uint16(rom[offset])<<8 | uint16(rom[offset+1])
		target, ok := referencedAddress(opcode)
		if !ok || int(target) < ProgramStart || int(target) >= end {
			continue
		}
		labels.Add(target)
	}
	return labels
}

// referencedAddress returns the address operand of instructions that reference code or data.
func referencedAddress(opcode uint16) (uint16, bool) {
	ins := Lookup(opcode)
	if ins == nil {
		return 0, false
	}
	switch {
	case ins == chip8.JpInst && opcode&0xF000 == 0x1000,
		ins == chip8.CallInst,
		ins == chip8.LdInst && opcode&0xF000 == 0xA000:
		return opcode & 0x0FFF, true
	}
	return 0, false
}

// formatWithLabels formats an instruction and replaces a referenced address by its label.
func formatWithLabels(opcode uint16, labels set.Set[uint16]) string {
	target, ok := referencedAddress(opcode)
	if !ok || !labels.Contains(target) {
		return Format(opcode)
	}

	name := Lookup(opcode).Name
	if opcode&0xF000 == 0xA000 {
		return fmt.Sprintf("%s I, %s", name, labelName(target))
	}
	return fmt.Sprintf("%s %s", name, labelName(target))
}

func labelName(address uint16) string {
	return fmt.Sprintf("_label_%03x", address)
}
