package cpu

import (
	"testing"

	"github.com/hexaflex/c8/arch"
)

func TestCLS(t *testing.T) {
	//   LD  I, $050
	//   DRW V0, V0, 5
	//   CLS
	ct := newCodeTest()
	ct.emit(0xa050, 0xd005, 0x00e0)
	c := runTest(t, ct)

	fb := c.Display()
	if len(fb) != DisplayWidth*DisplayHeight {
		t.Fatalf("display size mismatch: %d", len(fb))
	}

	for i, p := range fb {
		if p != 0 {
			t.Fatalf("pixel %d still set after CLS", i)
		}
	}
}

func TestDRWGlyphRoundTrip(t *testing.T) {
	//   LD  V0, $00
	//   LD  F, V0
	//   DRW V0, V0, 5
	ct := newCodeTest()
	ct.emit(0x6000, 0xf029, 0xd005)
	ct.want[arch.VF] = 0
	c := runTest(t, ct)

	fb := c.Display()
	want := []string{
		"1111",
		"1..1",
		"1..1",
		"1..1",
		"1111",
	}
	assertPixels(t, &fb, 0, 0, want)

	// Drawing the same sprite again erases it and reports the collision.
	c.pc -= 2
	mustStep(t, c, 1)

	if c.V(arch.VF) != 1 {
		t.Fatalf("expected collision on redraw; VF=%d", c.V(arch.VF))
	}

	fb = c.Display()
	for i, p := range fb {
		if p != 0 {
			t.Fatalf("pixel %d still set after double draw", i)
		}
	}

	// A third draw on the now empty display reports no collision.
	c.pc -= 2
	mustStep(t, c, 1)

	if c.V(arch.VF) != 0 {
		t.Fatalf("unexpected collision on empty display; VF=%d", c.V(arch.VF))
	}
}

func TestDRWClipsRightEdge(t *testing.T) {
	//   LD  V0, 60
	//   LD  V1, $00
	//   LD  I, sprite
	//   DRW V0, V1, 1
	// sprite:
	//   $FF
	ct := newCodeTest()
	ct.emit(0x603c, 0x6100, 0xa208, 0xd011, 0xff00)
	ct.steps = 4
	c := runTest(t, ct)

	fb := c.Display()
	for x := 0; x < DisplayWidth; x++ {
		want := byte(0)
		if x >= 60 {
			want = 1
		}
		if fb.At(x, 0) != want {
			t.Fatalf("pixel (%d,0) mismatch:\nwant: %d\nhave: %d", x, want, fb.At(x, 0))
		}
	}
}

func TestDRWClipsBottomEdge(t *testing.T) {
	//   LD  V0, $00
	//   LD  V1, 30
	//   LD  I, $050
	//   DRW V0, V1, 5
	ct := newCodeTest()
	ct.emit(0x6000, 0x611e, 0xa050, 0xd015)
	c := runTest(t, ct)

	fb := c.Display()
	assertPixels(t, &fb, 0, 30, []string{"1111", "1..1"})

	for y := 0; y < 3; y++ {
		for x := 0; x < 8; x++ {
			if fb.At(x, y) != 0 {
				t.Fatalf("pixel (%d,%d) wrapped to the top", x, y)
			}
		}
	}
}

func TestDRWWrapsStartCorner(t *testing.T) {
	//   LD  V0, 66
	//   LD  V1, 33
	//   LD  I, $050
	//   DRW V0, V1, 5
	ct := newCodeTest()
	ct.emit(0x6042, 0x6121, 0xa050, 0xd015)
	c := runTest(t, ct)

	fb := c.Display()
	assertPixels(t, &fb, 2, 1, []string{"1111", "1..1", "1..1", "1..1", "1111"})
}

func TestDRWCollisionIsNotAdditive(t *testing.T) {
	fb := Framebuffer{}
	fb.Draw(0, 0, []byte{0xff, 0xff})

	if !fb.Draw(0, 0, []byte{0xff, 0xff}) {
		t.Fatalf("expected collision")
	}

	c := newCPU(t, 0xa050, 0xd002, 0xd002)
	mustStep(t, c, 3)

	if c.V(arch.VF) != 1 {
		t.Fatalf("collision flag must be 1 regardless of count; have %d", c.V(arch.VF))
	}
}

func TestDRWOutOfRange(t *testing.T) {
	//   LD  I, $FFD
	//   DRW V0, V0, 4
	c := newCPU(t, 0xaffd, 0xd004)
	mustStep(t, c, 1)

	if err := c.Step(); err == nil {
		t.Fatalf("expected error reading sprite past end of memory")
	}

	fb := c.Display()
	for i, p := range fb {
		if p != 0 {
			t.Fatalf("pixel %d drawn by failing instruction", i)
		}
	}
}

func TestDisplaySnapshot(t *testing.T) {
	c := newCPU(t, 0xa050, 0xd005)
	before := c.Display()
	mustStep(t, c, 2)

	for i, p := range before {
		if p != 0 {
			t.Fatalf("snapshot changed after draw at pixel %d", i)
		}
	}
}

func TestFramebufferAtOutOfRange(t *testing.T) {
	var fb Framebuffer
	fb[0] = 1

	if fb.At(-1, 0) != 0 || fb.At(DisplayWidth, 0) != 0 || fb.At(0, DisplayHeight) != 0 {
		t.Fatalf("out of range coordinates must read as 0")
	}
}

// assertPixels compares the display region at (x, y) against rows of
// '1' (set) and '.' (clear) characters.
func assertPixels(t *testing.T, fb *Framebuffer, x, y int, rows []string) {
	t.Helper()

	for dy, row := range rows {
		for dx, ch := range row {
			want := byte(0)
			if ch == '1' {
				want = 1
			}
			if have := fb.At(x+dx, y+dy); have != want {
				t.Fatalf("pixel (%d,%d) mismatch:\nwant: %d\nhave: %d", x+dx, y+dy, want, have)
			}
		}
	}
}
