package keypad

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hexaflex/c8/devices/fffe/cpu"
)

func TestKeyboardLayout(t *testing.T) {
	tests := []struct {
		key  glfw.Key
		want cpu.Key
	}{
		{glfw.Key1, 0x1}, {glfw.Key4, 0xc},
		{glfw.KeyQ, 0x4}, {glfw.KeyR, 0xd},
		{glfw.KeyA, 0x7}, {glfw.KeyF, 0xe},
		{glfw.KeyZ, 0xa}, {glfw.KeyX, 0x0}, {glfw.KeyV, 0xf},
	}

	for _, tt := range tests {
		d := New()
		if !d.HandleKey(tt.key, glfw.Press) {
			t.Fatalf("key %v not mapped", tt.key)
		}
		if have := d.Key(); have != tt.want {
			t.Fatalf("key %v mismatch:\nwant: %v\nhave: %v", tt.key, tt.want, have)
		}
	}
}

func TestLayoutIsComplete(t *testing.T) {
	var seen [cpu.KeyCount]bool
	for _, k := range keyboardMap {
		seen[k] = true
	}
	for k, ok := range seen {
		if !ok {
			t.Fatalf("key %X has no keyboard binding", k)
		}
	}
}

func TestUnmappedKey(t *testing.T) {
	d := New()
	if d.HandleKey(glfw.KeyEscape, glfw.Press) {
		t.Fatalf("escape must not be part of the keypad")
	}
	if d.Key() != cpu.NoKey {
		t.Fatalf("unexpected key held: %v", d.Key())
	}
}

func TestMostRecentKeyWins(t *testing.T) {
	d := New()
	d.HandleKey(glfw.KeyW, glfw.Press)
	d.HandleKey(glfw.KeyA, glfw.Press)

	if d.Key() != 0x7 {
		t.Fatalf("key mismatch:\nwant: 7\nhave: %v", d.Key())
	}

	d.HandleKey(glfw.KeyA, glfw.Release)
	if d.Key() != 0x5 {
		t.Fatalf("earlier key not restored:\nwant: 5\nhave: %v", d.Key())
	}

	// Key repeat events leave the state alone.
	d.HandleKey(glfw.KeyW, glfw.Repeat)
	d.HandleKey(glfw.KeyW, glfw.Release)
	if d.Key() != cpu.NoKey {
		t.Fatalf("key still held after release: %v", d.Key())
	}
}

func TestSourcesCombine(t *testing.T) {
	d := New()
	d.set(gamepad, 0x5, true)
	d.HandleKey(glfw.KeyW, glfw.Press)
	d.HandleKey(glfw.KeyW, glfw.Release)

	if d.Key() != 0x5 {
		t.Fatalf("gamepad key lost on keyboard release: %v", d.Key())
	}

	d.set(gamepad, 0x5, false)
	if d.Key() != cpu.NoKey {
		t.Fatalf("key still held: %v", d.Key())
	}
}

func TestRelease(t *testing.T) {
	d := New()
	d.HandleKey(glfw.Key1, glfw.Press)
	d.HandleKey(glfw.Key2, glfw.Press)
	d.Release()

	if d.Key() != cpu.NoKey {
		t.Fatalf("key still held after Release: %v", d.Key())
	}

	d.HandleKey(glfw.Key3, glfw.Press)
	if d.Key() != 0x3 {
		t.Fatalf("key mismatch after Release:\nwant: 3\nhave: %v", d.Key())
	}
}
