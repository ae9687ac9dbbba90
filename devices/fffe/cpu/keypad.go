package cpu

import "fmt"

// Key is a CHIP-8 keypad code in the range 0-F, or NoKey.
type Key int

// NoKey indicates that no key is latched.
const NoKey Key = -1

// KeyCount is the number of keys on the keypad.
const KeyCount = 16

// Valid returns true if k names a keypad key.
func (k Key) Valid() bool {
	return k >= 0 && k < KeyCount
}

func (k Key) String() string {
	if k == NoKey {
		return "none"
	}
	return fmt.Sprintf("%X", int(k))
}

// State describes what the dispatcher does on the next step.
type State int

// Known machine states.
const (
	Ready       State = iota // Fetch and execute the next instruction.
	AwaitingKey              // Suspended in LD Vx, K until a key is latched.
	Halted                   // Stopped by a fatal error.
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case AwaitingKey:
		return "awaiting key"
	case Halted:
		return "halted"
	}
	return "unknown"
}
