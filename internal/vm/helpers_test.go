package vm

import (
	"testing"

	"github.com/retroenv/retrogolib/log"
)

// testDisplay is a minimal 64x32 surface with XOR plotting.
type testDisplay struct {
	pixels  [ScreenHeight][ScreenWidth]bool
	clears  int
	plotted int
}

func (d *testDisplay) Clear() {
	d.pixels = [ScreenHeight][ScreenWidth]bool{}
	d.clears++
}

func (d *testDisplay) PlotSprite(x, y uint8, rows []byte) bool {
	d.plotted++
	collided := false
	for row, data := range rows {
		py := int(y) + row
		if py >= ScreenHeight {
			break
		}
		for bit := range 8 {
			px := int(x) + bit
			if px >= ScreenWidth {
				break
			}
			if data&(0x80>>bit) == 0 {
				continue
			}
			if d.pixels[py][px] {
				collided = true
			}
			d.pixels[py][px] = !d.pixels[py][px]
		}
	}
	return collided
}

func (d *testDisplay) lit() int {
	count := 0
	for _, row := range d.pixels {
		for _, pixel := range row {
			if pixel {
				count++
			}
		}
	}
	return count
}

type testKeypad struct {
	pressed [16]bool
}

func (k *testKeypad) IsKeyPressed(key uint8) bool {
	return k.pressed[key&0xF]
}

// newTestVM returns a machine with the program loaded at ProgramStart.
func newTestVM(t *testing.T, quirks Quirks, program ...uint16) (*VM, *testDisplay, *testKeypad) {
	t.Helper()

	display := &testDisplay{}
	keys := &testKeypad{}
	v := New(log.NewTestLogger(t), display, keys, Config{Quirks: quirks, Seed: 1})

	rom := make([]byte, 0, len(program)*2)
	for _, word := range program {
		rom = append(rom, byte(word>>8), byte(word))
	}
	if err := v.LoadROM(rom); err != nil {
		t.Fatalf("loading test program: %v", err)
	}
	return v, display, keys
}

// steps executes n instructions and fails the test on any error.
func steps(t *testing.T, v *VM, n int) {
	t.Helper()
	for range n {
		if _, err := v.Step(); err != nil {
			t.Fatalf("unexpected step error: %v", err)
		}
	}
}
