package cpu

import "github.com/pkg/errors"

const (
	MemoryCapacity  = 0x1000                          // Total addressable memory.
	FontAddress     = 0x50                            // Start of the glyph table.
	GlyphSize       = 5                               // Bytes per glyph.
	ProgramAddress  = 0x200                           // Load and entry address for programs.
	ProgramCapacity = MemoryCapacity - ProgramAddress // Largest loadable program image.
)

// Memory defines the system's memory bank.
type Memory [MemoryCapacity]byte

// U8 returns the byte at the given address. Addresses wrap at 12 bits.
func (m *Memory) U8(addr uint16) byte {
	return m[addr&0xfff]
}

// span returns the n bytes starting at addr.
// Returns ErrAddress if any of them fall outside of memory.
func (m *Memory) span(addr uint16, n int) ([]byte, error) {
	end := int(addr) + n
	if end > MemoryCapacity {
		return nil, errors.Wrapf(ErrAddress, "%d bytes at %03x", n, addr)
	}
	return m[addr:end], nil
}

// fetch reads the big-endian instruction word at addr.
func (m *Memory) fetch(addr uint16) (uint16, error) {
	p, err := m.span(addr, 2)
	if err != nil {
		return 0, err
	}
	return uint16(p[0])<<8 | uint16(p[1]), nil
}

// font holds the hexadecimal digit sprites 0-F, 4x5 pixels each.
var font = [16 * GlyphSize]byte{
	0xf0, 0x90, 0x90, 0x90, 0xf0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xf0, 0x10, 0xf0, 0x80, 0xf0, // 2
	0xf0, 0x10, 0xf0, 0x10, 0xf0, // 3
	0x90, 0x90, 0xf0, 0x10, 0x10, // 4
	0xf0, 0x80, 0xf0, 0x10, 0xf0, // 5
	0xf0, 0x80, 0xf0, 0x90, 0xf0, // 6
	0xf0, 0x10, 0x20, 0x40, 0x40, // 7
	0xf0, 0x90, 0xf0, 0x90, 0xf0, // 8
	0xf0, 0x90, 0xf0, 0x10, 0xf0, // 9
	0xf0, 0x90, 0xf0, 0x90, 0x90, // A
	0xe0, 0x90, 0xe0, 0x90, 0xe0, // B
	0xf0, 0x80, 0x80, 0x80, 0xf0, // C
	0xe0, 0x90, 0x90, 0x90, 0xe0, // D
	0xf0, 0x80, 0xf0, 0x80, 0xf0, // E
	0xf0, 0x80, 0xf0, 0x80, 0x80, // F
}
