package cpu

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Framebuffer holds one byte per pixel, row-major. Each value is 0 or 1.
type Framebuffer [DisplayWidth * DisplayHeight]byte

// At returns the pixel at the given coordinate.
// Coordinates outside the display read as 0.
func (f *Framebuffer) At(x, y int) byte {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return 0
	}
	return f[y*DisplayWidth+x]
}

// Clear turns all pixels off.
func (f *Framebuffer) Clear() {
	*f = Framebuffer{}
}

// Draw XORs an 8 pixel wide sprite onto the display, one byte per row.
// The starting corner wraps around the display edges; pixels beyond the
// right or bottom edge are clipped. Returns true if any lit pixel was
// turned off.
func (f *Framebuffer) Draw(x, y int, rows []byte) bool {
	x = (x%DisplayWidth + DisplayWidth) % DisplayWidth
	y = (y%DisplayHeight + DisplayHeight) % DisplayHeight
	collision := false

	for row, bits := range rows {
		py := y + row
		if py >= DisplayHeight {
			break
		}

		for col := 0; col < 8; col++ {
			px := x + col
			if px >= DisplayWidth {
				break
			}

			if bits&(0x80>>col) == 0 {
				continue
			}

			p := &f[py*DisplayWidth+px]
			if *p == 1 {
				collision = true
			}
			*p ^= 1
		}
	}

	return collision
}
