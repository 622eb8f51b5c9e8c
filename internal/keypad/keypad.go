// Package keypad provides the CHIP-8 16-key hex keypad state and the mapping
// of host keyboard keys to keypad keys.
package keypad

import "sync"

// KeyCount is the number of keys on the keypad.
const KeyCount = 16

// Keypad holds the pressed state of the 16 keys. It is safe for concurrent use,
// input is written by the frontend and polled by the machine.
type Keypad struct {
	mu      sync.RWMutex
	pressed [KeyCount]bool
}

// New returns a keypad with all keys released.
func New() *Keypad {
	return &Keypad{}
}

// IsKeyPressed returns whether the key is held down. Only the low nibble of
// the key is used.
func (k *Keypad) IsKeyPressed(key uint8) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.pressed[key&0xF]
}

// Press marks the key as held down.
func (k *Keypad) Press(key uint8) {
	k.set(key, true)
}

// Release marks the key as released.
func (k *Keypad) Release(key uint8) {
	k.set(key, false)
}

// Set updates the state of all keys at once.
func (k *Keypad) Set(state [KeyCount]bool) {
	k.mu.Lock()
	k.pressed = state
	k.mu.Unlock()
}

// Reset releases all keys.
func (k *Keypad) Reset() {
	k.Set([KeyCount]bool{})
}

func (k *Keypad) set(key uint8, pressed bool) {
	k.mu.Lock()
	k.pressed[key&0xF] = pressed
	k.mu.Unlock()
}

// Layout maps host keyboard characters to keypad keys.
type Layout map[rune]uint8

// COSMACLayout maps the left block of a QWERTY keyboard to the COSMAC VIP keypad:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
var COSMACLayout = Layout{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Key returns the keypad key for a host character, upper case characters are
// treated like lower case ones.
func (l Layout) Key(r rune) (uint8, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	key, ok := l[r]
	return key, ok
}
