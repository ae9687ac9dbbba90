// Package keypad implements the 16 key hexadecimal keypad.
//
// Keys can be pressed from the keyboard or from a connected gamepad.
// The keyboard layout maps the left hand block of a QWERTY keyboard onto
// the keypad:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
package keypad

import (
	"log"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hexaflex/c8/devices"
	"github.com/hexaflex/c8/devices/fffe/cpu"
)

// Input sources.
const (
	keyboard = iota
	gamepad
	sourceCount
)

var keyboardMap = map[glfw.Key]cpu.Key{
	glfw.Key1: 0x1, glfw.Key2: 0x2, glfw.Key3: 0x3, glfw.Key4: 0xc,
	glfw.KeyQ: 0x4, glfw.KeyW: 0x5, glfw.KeyE: 0x6, glfw.KeyR: 0xd,
	glfw.KeyA: 0x7, glfw.KeyS: 0x8, glfw.KeyD: 0x9, glfw.KeyF: 0xe,
	glfw.KeyZ: 0xa, glfw.KeyX: 0x0, glfw.KeyC: 0xb, glfw.KeyV: 0xf,
}

// Most programs steer with 2/4/6/8 and act with 5.
var gamepadMap = map[glfw.GamepadButton]cpu.Key{
	glfw.ButtonDpadUp:      0x2,
	glfw.ButtonDpadLeft:    0x4,
	glfw.ButtonDpadRight:   0x6,
	glfw.ButtonDpadDown:    0x8,
	glfw.ButtonA:           0x5,
	glfw.ButtonB:           0x0,
	glfw.ButtonX:           0x1,
	glfw.ButtonY:           0x3,
	glfw.ButtonLeftBumper:  0x7,
	glfw.ButtonRightBumper: 0x9,
	glfw.ButtonBack:        0xe,
	glfw.ButtonStart:       0xf,
}

// Device defines all internal doodads for the keypad.
type Device struct {
	joy       glfw.Joystick
	held      [sourceCount][cpu.KeyCount]bool // Held keys per input source.
	order     []cpu.Key                       // Held keys, in the order they were pressed.
	connected bool
}

var _ devices.Device = &Device{}

// New creates a new device.
func New() *Device {
	return &Device{}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.Builtin(0x0003)
}

// Startup initializes device resources.
// It detects any connected gamepad.
func (d *Device) Startup() error {
	d.Release()
	glfw.SetJoystickCallback(d.configure)

	for joy := glfw.Joystick1; joy <= glfw.JoystickLast; joy++ {
		if joy.Present() && joy.IsGamepad() {
			d.configure(joy, glfw.Connected)
			break
		}
	}

	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	glfw.SetJoystickCallback(nil)
	d.connected = false
	d.Release()
	return nil
}

// HandleKey processes a keyboard event. It returns false if the key is
// not part of the keypad layout.
func (d *Device) HandleKey(key glfw.Key, action glfw.Action) bool {
	k, ok := keyboardMap[key]
	if !ok {
		return false
	}

	switch action {
	case glfw.Press:
		d.set(keyboard, k, true)
	case glfw.Release:
		d.set(keyboard, k, false)
	}
	return true
}

// Update polls the gamepad, if one is connected.
func (d *Device) Update() {
	if !d.connected {
		return
	}

	state := d.joy.GetGamepadState()
	if state == nil {
		return
	}

	for btn, k := range gamepadMap {
		d.set(gamepad, k, state.Buttons[btn] == glfw.Press)
	}
}

// Key returns the most recently pressed key that is still held down,
// or cpu.NoKey if nothing is held.
func (d *Device) Key() cpu.Key {
	if len(d.order) == 0 {
		return cpu.NoKey
	}
	return d.order[len(d.order)-1]
}

// Release lifts all keys. Used when the window loses focus, since
// release events are not delivered in that case.
func (d *Device) Release() {
	d.held = [sourceCount][cpu.KeyCount]bool{}
	d.order = d.order[:0]
}

// set updates the held state of key k for the given source.
func (d *Device) set(src int, k cpu.Key, down bool) {
	was := d.isHeld(k)
	d.held[src][k] = down
	now := d.isHeld(k)

	switch {
	case now && !was:
		d.order = append(d.order, k)
	case was && !now:
		for i, v := range d.order {
			if v == k {
				d.order = append(d.order[:i], d.order[i+1:]...)
				break
			}
		}
	}
}

func (d *Device) isHeld(k cpu.Key) bool {
	for src := range d.held {
		if d.held[src][k] {
			return true
		}
	}
	return false
}

// configure is called whenever a joystick is connected or disconnected from the system.
func (d *Device) configure(joy glfw.Joystick, event glfw.PeripheralEvent) {
	d.connected = event == glfw.Connected && joy.IsGamepad()
	d.joy = joy

	if d.connected {
		log.Println(d.ID(), "gamepad connected:", joy.GetGamepadName())
	} else {
		log.Println(d.ID(), "gamepad disconnected")
	}

	for k := range d.held[gamepad] {
		d.set(gamepad, cpu.Key(k), false)
	}
}
