package main

import "github.com/hexaflex/c8/devices/fffe/cpu"

// keyMap maps the left hand block of a QWERTY keyboard onto the keypad.
var keyMap = map[byte]cpu.Key{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xc,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xd,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xe,
	'z': 0xa, 'x': 0x0, 'c': 0xb, 'v': 0xf,
}

// lookupKey returns the keypad key for the given character.
func lookupKey(b byte) (cpu.Key, bool) {
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	k, ok := keyMap[b]
	return k, ok
}

// keyLatch holds a key down for a fixed number of cycles. Terminals only
// report presses, so a release is simulated once the cycles run out.
type keyLatch struct {
	key  cpu.Key
	left int
	hold int
}

func newKeyLatch(hold int) *keyLatch {
	return &keyLatch{key: cpu.NoKey, hold: hold}
}

// Press holds k down, replacing any key currently held.
func (l *keyLatch) Press(k cpu.Key) {
	l.key = k
	l.left = l.hold
}

// Next returns the key to latch for the next cycle.
func (l *keyLatch) Next() cpu.Key {
	if l.left <= 0 {
		return cpu.NoKey
	}
	l.left--
	return l.key
}
