package vm

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecodeFields(t *testing.T) {
	ins := Decode(0xD3A7)

	assert.Equal(t, uint16(0xD3A7), ins.Word)
	assert.Equal(t, OpDRW, ins.Op)
	assert.Equal(t, uint8(0xD), ins.Class)
	assert.Equal(t, uint8(0x3), ins.X)
	assert.Equal(t, uint8(0xA), ins.Y)
	assert.Equal(t, uint8(0x7), ins.N)
	assert.Equal(t, uint8(0xA7), ins.NN)
	assert.Equal(t, uint16(0x3A7), ins.NNN)
}

func TestDecodeOps(t *testing.T) {
	tests := []struct {
		word uint16
		op   Op
	}{
		{0x00E0, OpCLS},
		{0x00EE, OpRET},
		{0x0123, OpSYS},
		{0x1234, OpJP},
		{0x2456, OpCALL},
		{0x3A12, OpSEVxNN},
		{0x4A12, OpSNEVxNN},
		{0x5AB0, OpSEVxVy},
		{0x5AB1, OpUnknown},
		{0x6A12, OpLDVxNN},
		{0x7A12, OpADDVxNN},
		{0x8AB0, OpLDVxVy},
		{0x8AB1, OpOR},
		{0x8AB2, OpAND},
		{0x8AB3, OpXOR},
		{0x8AB4, OpADDVxVy},
		{0x8AB5, OpSUB},
		{0x8AB6, OpSHR},
		{0x8AB7, OpSUBN},
		{0x8ABE, OpSHL},
		{0x8AB8, OpUnknown},
		{0x9AB0, OpSNEVxVy},
		{0x9AB3, OpUnknown},
		{0xA123, OpLDI},
		{0xB123, OpJPV0},
		{0xC1FF, OpRND},
		{0xD125, OpDRW},
		{0xE19E, OpSKP},
		{0xE1A1, OpSKNP},
		{0xE1A2, OpUnknown},
		{0xF107, OpLDVxDT},
		{0xF10A, OpLDVxK},
		{0xF115, OpLDDTVx},
		{0xF118, OpLDSTVx},
		{0xF11E, OpADDIVx},
		{0xF129, OpLDFVx},
		{0xF133, OpLDBVx},
		{0xF155, OpLDIVx},
		{0xF165, OpLDVxI},
		{0xF1FF, OpUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			assert.Equal(t, tt.op, Decode(tt.word).Op)
		})
	}
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "8XY4", OpADDVxVy.String())
	assert.Equal(t, "FX0A", OpLDVxK.String())
	assert.Equal(t, "????", OpUnknown.String())
	assert.Equal(t, "????", Op(200).String())
}

func TestEveryOpHasHandler(t *testing.T) {
	for op := range opCount {
		assert.NotNil(t, handlers[op], "missing handler for %s", op)
	}
}

func TestDecodeMatchesMnemonicTable(t *testing.T) {
	words := []uint16{
		0x00E0, 0x00EE, 0x1234, 0x2345, 0x3A12, 0x4B34, 0x5120, 0x6C56,
		0x7D78, 0x8120, 0x8121, 0x8122, 0x8123, 0x8124, 0x8125, 0x8126,
		0x8127, 0x812E, 0x9120, 0xA123, 0xB234, 0xC3FF, 0xD125, 0xE19E,
		0xE1A1, 0xF107, 0xF10A, 0xF115, 0xF118, 0xF11E, 0xF129, 0xF133,
		0xF155, 0xF165,
	}

	for _, word := range words {
		ins := Decode(word)
		assert.True(t, ins.Op != OpUnknown, "decoding %04X", word)
		assert.NotNil(t, disasm.Lookup(word), "mnemonic for %04X", word)
	}
}
