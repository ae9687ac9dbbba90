package cpu

import "github.com/hexaflex/c8/arch"

// Instruction defines decoded instruction data.
type Instruction struct {
	Addr   uint16    // Instruction address.
	Opcode uint16    // Raw instruction word.
	Kind   arch.Kind // Decoded instruction variant.
	X      int       // Register index from bits 8-11.
	Y      int       // Register index from bits 4-7.
	N      int       // Low nibble.
	NN     byte      // Low byte.
	NNN    uint16    // Low 12 bits.
}

// Decode fetches and decodes the instruction at the given address.
func (i *Instruction) Decode(m *Memory, addr uint16) error {
	*i = Instruction{Addr: addr}

	op, err := m.fetch(addr)
	if err != nil {
		return err
	}

	i.Opcode = op
	i.Kind = arch.Decode(op)
	i.X = arch.X(op)
	i.Y = arch.Y(op)
	i.N = arch.N(op)
	i.NN = arch.NN(op)
	i.NNN = arch.NNN(op)
	return nil
}

// String returns the disassembled form of the instruction.
func (i *Instruction) String() string {
	return arch.Disassemble(i.Opcode)
}
