package keypad

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeypad(t *testing.T) {
	k := New()
	assert.False(t, k.IsKeyPressed(0xA))

	k.Press(0xA)
	assert.True(t, k.IsKeyPressed(0xA))
	assert.True(t, k.IsKeyPressed(0x1A), "only the low nibble selects the key")

	k.Release(0xA)
	assert.False(t, k.IsKeyPressed(0xA))

	var state [KeyCount]bool
	state[3] = true
	k.Set(state)
	assert.True(t, k.IsKeyPressed(3))

	k.Reset()
	assert.False(t, k.IsKeyPressed(3))
}

func TestCOSMACLayout(t *testing.T) {
	tests := []struct {
		r   rune
		key uint8
		ok  bool
	}{
		{'1', 0x1, true},
		{'4', 0xC, true},
		{'x', 0x0, true},
		{'X', 0x0, true},
		{'v', 0xF, true},
		{'p', 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			key, ok := COSMACLayout.Key(tt.r)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, key)
		})
	}

	assert.Equal(t, KeyCount, len(COSMACLayout))
}
