package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/retrochip8/internal/keypad"
)

// hostKeys maps layout characters to physical keys.
var hostKeys = map[rune]ebiten.Key{
	'0': ebiten.KeyDigit0, '1': ebiten.KeyDigit1, '2': ebiten.KeyDigit2, '3': ebiten.KeyDigit3,
	'4': ebiten.KeyDigit4, '5': ebiten.KeyDigit5, '6': ebiten.KeyDigit6, '7': ebiten.KeyDigit7,
	'8': ebiten.KeyDigit8, '9': ebiten.KeyDigit9,
	'a': ebiten.KeyA, 'b': ebiten.KeyB, 'c': ebiten.KeyC, 'd': ebiten.KeyD, 'e': ebiten.KeyE,
	'f': ebiten.KeyF, 'g': ebiten.KeyG, 'h': ebiten.KeyH, 'i': ebiten.KeyI, 'j': ebiten.KeyJ,
	'k': ebiten.KeyK, 'l': ebiten.KeyL, 'm': ebiten.KeyM, 'n': ebiten.KeyN, 'o': ebiten.KeyO,
	'p': ebiten.KeyP, 'q': ebiten.KeyQ, 'r': ebiten.KeyR, 's': ebiten.KeyS, 't': ebiten.KeyT,
	'u': ebiten.KeyU, 'v': ebiten.KeyV, 'w': ebiten.KeyW, 'x': ebiten.KeyX, 'y': ebiten.KeyY,
	'z': ebiten.KeyZ,
}

// keyBinding connects a physical key to a keypad key.
type keyBinding struct {
	host ebiten.Key
	key  uint8
}

// bindKeys converts the layout into physical key bindings. Characters
// without a physical key are skipped.
func bindKeys(layout keypad.Layout) []keyBinding {
	bindings := make([]keyBinding, 0, len(layout))
	for r, key := range layout {
		host, ok := hostKeys[r]
		if !ok {
			continue
		}
		bindings = append(bindings, keyBinding{host: host, key: key})
	}
	return bindings
}

// keypadState returns the keypad state for the physical key state.
func keypadState(bindings []keyBinding, isPressed func(ebiten.Key) bool) [keypad.KeyCount]bool {
	var state [keypad.KeyCount]bool
	for _, binding := range bindings {
		if isPressed(binding.host) {
			state[binding.key&0xF] = true
		}
	}
	return state
}
