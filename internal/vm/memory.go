package vm

import (
	"fmt"
	"io"
)

// CHIP-8 memory layout constants.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000
	// AddressMask masks an address to the 12-bit address space.
	AddressMask = 0x0FFF
	// MaxAddress is the highest valid memory address.
	MaxAddress = 0x0FFF
	// ProgramStart is the address that ROMs are loaded to and execution starts at.
	ProgramStart = 0x200
	// MaxROMSize is the maximum size of a ROM that fits into the program space.
	MaxROMSize = MemorySize - ProgramStart

	// FontBase is the address of the first hex digit glyph.
	FontBase = 0x050
	// FontGlyphSize is the size of a single glyph in bytes.
	FontGlyphSize = 5
	// FontEnd is the first address after the font region.
	FontEnd = FontBase + 16*FontGlyphSize
)

// Font contains the sprites for the hex digits 0-F, each 4 pixels wide and 5 rows high.
var Font = [16 * FontGlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the 4KB CHIP-8 address space.
type Memory [MemorySize]byte

// NewMemory returns a memory image with the font installed.
func NewMemory() *Memory {
	m := &Memory{}
	copy(m[FontBase:], Font[:])
	return m
}

// Read returns the byte at the given address, the address wraps at 4KB.
func (m *Memory) Read(address uint16) byte {
	return m[address&AddressMask]
}

// ReadWord returns the big-endian 16-bit word at the given address.
func (m *Memory) ReadWord(address uint16) uint16 {
	return uint16(m.Read(address))<<8 | uint16(m.Read(address+1))
}

// Write stores a byte at the given address. Writes into the font region are
// dropped and reported by returning false.
func (m *Memory) Write(address uint16, value byte) bool {
	address &= AddressMask
	if isFontAddress(address) {
		return false
	}
	m[address] = value
	return true
}

// Load clears the program space and copies the ROM to ProgramStart.
func (m *Memory) Load(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes exceeds the available %d bytes", ErrROMTooLarge, len(rom), MaxROMSize)
	}
	clear(m[ProgramStart:])
	copy(m[ProgramStart:], rom)
	return nil
}

// Dump writes all nonzero bytes in the address range [start, end) to the writer.
func (m *Memory) Dump(w io.Writer, start, end uint16) error {
	if end > MemorySize {
		end = MemorySize
	}
	for address := int(start); address < int(end); address++ {
		value := m[address]
		if value == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "$%03X: $%02X\n", address, value); err != nil {
			return fmt.Errorf("writing memory dump: %w", err)
		}
	}
	return nil
}

func isFontAddress(address uint16) bool {
	return address >= FontBase && address < FontEnd
}
