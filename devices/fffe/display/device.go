// Package display implements an OpenGL display for the CHIP-8 frame buffer.
package display

import (
	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/pkg/errors"

	"github.com/hexaflex/c8/devices"
	"github.com/hexaflex/c8/devices/fffe/cpu"
)

// Default colors as 0xRRGGBB.
const (
	DefaultForeground = 0xe0f8d0
	DefaultBackground = 0x081820
)

// Device defines all internal doodads for the display.
type Device struct {
	pixels      [cpu.DisplayWidth * cpu.DisplayHeight]byte
	fg, bg      [4]float32
	shader      uint32
	vao         uint32
	vbo         uint32
	tex         uint32
	dirty       bool // Do pixels need to be uploaded?
	colorsDirty bool // Do colors need to be uploaded?
	initialized bool
}

var _ devices.Device = &Device{}

// New creates a new device with the default colors.
func New() *Device {
	var d Device
	d.SetColors(DefaultForeground, DefaultBackground)
	return &d
}

// ID returns the device identifier.
func (d *Device) ID() devices.ID {
	return devices.Builtin(0x0002)
}

// SetColors sets the colors for lit and unlit pixels, given as 0xRRGGBB.
func (d *Device) SetColors(fg, bg uint32) {
	rgb2f(fg, d.fg[:])
	rgb2f(bg, d.bg[:])
	d.colorsDirty = true
}

// Update copies the frame buffer into the display. The texture is only
// re-uploaded if the contents changed.
func (d *Device) Update(fb *cpu.Framebuffer) {
	if expand(d.pixels[:], fb) {
		d.dirty = true
	}
}

// Draw renders the display contents.
func (d *Device) Draw() {
	if !d.initialized {
		return
	}

	gl.UseProgram(d.shader)

	if d.colorsDirty {
		gl.Uniform4fv(gl.GetUniformLocation(d.shader, glStr("foreground")), 1, &d.fg[0])
		gl.Uniform4fv(gl.GetUniformLocation(d.shader, glStr("background")), 1, &d.bg[0])
		d.colorsDirty = false
	}

	if d.dirty {
		uploadTexture(d.tex, gl.RED, cpu.DisplayWidth, cpu.DisplayHeight, gl.RED, gl.UNSIGNED_BYTE, d.pixels[:])
		d.dirty = false
	}

	gl.BindVertexArray(d.vao)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.tex)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

// Startup initializes device resources. It requires a current OpenGL context.
func (d *Device) Startup() error {
	var err error

	d.shader, err = compileProgram(vertex, fragment)
	if err != nil {
		return errors.Wrapf(err, "failed to compile shaders")
	}

	gl.UseProgram(d.shader)

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	vertAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertPos")))
	texCoordAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertTexCoord")))

	gl.EnableVertexAttribArray(vertAttrib)
	gl.VertexAttribPointer(vertAttrib, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))

	gl.EnableVertexAttribArray(texCoordAttrib)
	gl.VertexAttribPointer(texCoordAttrib, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))

	d.tex = makeTexture()

	d.dirty = true
	d.colorsDirty = true
	d.initialized = true
	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	if !d.initialized {
		return nil
	}

	d.initialized = false
	gl.DeleteTextures(1, &d.tex)
	gl.DeleteBuffers(1, &d.vbo)
	gl.DeleteVertexArrays(1, &d.vao)
	gl.DeleteProgram(d.shader)
	return nil
}

// expand writes the frame buffer into dst as 0x00/0xff texels.
// Returns true if dst changed.
func expand(dst []byte, fb *cpu.Framebuffer) bool {
	changed := false
	for i, p := range fb {
		v := byte(0)
		if p != 0 {
			v = 0xff
		}
		if dst[i] != v {
			dst[i] = v
			changed = true
		}
	}
	return changed
}

// rgb2f sets p to the RGBA representation of the 0xRRGGBB color in n.
func rgb2f(n uint32, p []float32) {
	p[0] = float32((n>>16)&0xff) / 255
	p[1] = float32((n>>8)&0xff) / 255
	p[2] = float32(n&0xff) / 255
	p[3] = 1
}

var quadVertices = []float32{
	//  X, Y, Z, U, V
	-1.0, -1.0, 0.0, 0.0, 1.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	1.0, 1.0, 0.0, 1.0, 0.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
}
