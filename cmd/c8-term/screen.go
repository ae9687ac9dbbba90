package main

import (
	"strings"

	"github.com/hexaflex/c8/devices/fffe/cpu"
)

// ANSI control sequences.
const (
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	bell        = "\a"
)

// ScreenRows is the number of terminal rows a frame occupies.
// Each character cell shows two vertically stacked pixels.
const ScreenRows = cpu.DisplayHeight / 2

// halfBlocks is indexed by top | bottom<<1.
var halfBlocks = [4]string{" ", "▀", "▄", "█"}

// render writes the frame buffer into sb as text, starting at the top
// left corner of the terminal. Lines end in CR LF, since raw mode does
// not translate newlines.
func render(sb *strings.Builder, fb *cpu.Framebuffer) {
	sb.WriteString(cursorHome)

	for row := 0; row < ScreenRows; row++ {
		for x := 0; x < cpu.DisplayWidth; x++ {
			top := fb.At(x, row*2)
			bottom := fb.At(x, row*2+1)
			sb.WriteString(halfBlocks[top|bottom<<1])
		}
		sb.WriteString("\r\n")
	}
}
