package cpu

import (
	"log"

	"github.com/hexaflex/c8/arch"
)

// handler executes one instruction variant. It is responsible for leaving
// the program counter at the next instruction to fetch.
type handler func(*CPU, *Instruction) error

// handlers maps each instruction kind to its implementation.
var handlers = [arch.KindCount]handler{
	arch.Unknown: (*CPU).unknown,
	arch.CLS:     (*CPU).cls,
	arch.RET:     (*CPU).ret,
	arch.JP:      (*CPU).jp,
	arch.CALL:    (*CPU).call,
	arch.SEI:     (*CPU).sei,
	arch.SNEI:    (*CPU).snei,
	arch.SER:     (*CPU).ser,
	arch.LDI:     (*CPU).ldi,
	arch.ADDI:    (*CPU).addi,
	arch.LDR:     (*CPU).ldr,
	arch.OR:      (*CPU).or,
	arch.AND:     (*CPU).and,
	arch.XOR:     (*CPU).xor,
	arch.ADDR:    (*CPU).addr,
	arch.SUB:     (*CPU).sub,
	arch.SHR:     (*CPU).shr,
	arch.SUBN:    (*CPU).subn,
	arch.SHL:     (*CPU).shl,
	arch.SNER:    (*CPU).sner,
	arch.LDIDX:   (*CPU).ldidx,
	arch.JPV0:    (*CPU).jpv0,
	arch.RND:     (*CPU).rnd,
	arch.DRW:     (*CPU).drw,
	arch.SKP:     (*CPU).skp,
	arch.SKNP:    (*CPU).sknp,
	arch.LDVDT:   (*CPU).ldvdt,
	arch.LDVK:    (*CPU).ldvk,
	arch.LDDTV:   (*CPU).lddtv,
	arch.LDSTV:   (*CPU).ldstv,
	arch.ADDIDX:  (*CPU).addidx,
	arch.LDF:     (*CPU).ldf,
	arch.LDB:     (*CPU).ldb,
	arch.LDMV:    (*CPU).ldmv,
	arch.LDVM:    (*CPU).ldvm,
}

// next moves the program counter to the following instruction.
func (c *CPU) next() error {
	c.pc += 2
	return nil
}

// skipIf skips the following instruction if cond holds.
func (c *CPU) skipIf(cond bool) error {
	if cond {
		c.pc += 4
	} else {
		c.pc += 2
	}
	return nil
}

func (c *CPU) unknown(i *Instruction) error {
	log.Printf("%s unknown opcode %04x at %03x", c.ID(), i.Opcode, i.Addr)
	return c.next()
}

func (c *CPU) cls(*Instruction) error {
	c.fb.Clear()
	return c.next()
}

func (c *CPU) ret(*Instruction) error {
	addr, err := c.pop()
	if err != nil {
		return err
	}
	c.pc = addr
	return nil
}

func (c *CPU) jp(i *Instruction) error {
	c.pc = i.NNN
	return nil
}

func (c *CPU) call(i *Instruction) error {
	if err := c.push(c.pc + 2); err != nil {
		return err
	}
	c.pc = i.NNN
	return nil
}

func (c *CPU) sei(i *Instruction) error  { return c.skipIf(c.v[i.X] == i.NN) }
func (c *CPU) snei(i *Instruction) error { return c.skipIf(c.v[i.X] != i.NN) }
func (c *CPU) ser(i *Instruction) error  { return c.skipIf(c.v[i.X] == c.v[i.Y]) }
func (c *CPU) sner(i *Instruction) error { return c.skipIf(c.v[i.X] != c.v[i.Y]) }

func (c *CPU) ldi(i *Instruction) error {
	c.v[i.X] = i.NN
	return c.next()
}

func (c *CPU) addi(i *Instruction) error {
	c.v[i.X] += i.NN
	return c.next()
}

func (c *CPU) ldr(i *Instruction) error {
	c.v[i.X] = c.v[i.Y]
	return c.next()
}

func (c *CPU) or(i *Instruction) error {
	c.v[i.X] |= c.v[i.Y]
	return c.next()
}

func (c *CPU) and(i *Instruction) error {
	c.v[i.X] &= c.v[i.Y]
	return c.next()
}

func (c *CPU) xor(i *Instruction) error {
	c.v[i.X] ^= c.v[i.Y]
	return c.next()
}

// The ALU operations below write VF and the destination register in a
// fixed order per opcode. It matters when X is VF.

func (c *CPU) addr(i *Instruction) error {
	sum := int(c.v[i.X]) + int(c.v[i.Y])
	c.v[arch.VF] = flag(sum > 0xff)
	c.v[i.X] = byte(sum)
	return c.next()
}

func (c *CPU) sub(i *Instruction) error {
	vx, vy := c.v[i.X], c.v[i.Y]
	c.v[arch.VF] = flag(vx > vy)
	c.v[i.X] = vx - vy
	return c.next()
}

func (c *CPU) shr(i *Instruction) error {
	vy := c.v[i.Y]
	c.v[i.X] = vy >> 1
	c.v[arch.VF] = vy & 1
	return c.next()
}

func (c *CPU) subn(i *Instruction) error {
	vx, vy := c.v[i.X], c.v[i.Y]
	c.v[arch.VF] = flag(vy > vx)
	c.v[i.X] = vy - vx
	return c.next()
}

func (c *CPU) shl(i *Instruction) error {
	vy := c.v[i.Y]
	c.v[i.X] = vy << 1
	c.v[arch.VF] = vy >> 7
	return c.next()
}

func (c *CPU) ldidx(i *Instruction) error {
	c.i = i.NNN
	return c.next()
}

func (c *CPU) jpv0(i *Instruction) error {
	c.pc = i.NNN + uint16(c.v[0])
	return nil
}

func (c *CPU) rnd(i *Instruction) error {
	c.v[i.X] = byte(c.rng.Intn(256)) & i.NN
	return c.next()
}

func (c *CPU) drw(i *Instruction) error {
	rows, err := c.memory.span(c.i, i.N)
	if err != nil {
		return err
	}
	collision := c.fb.Draw(int(c.v[i.X]), int(c.v[i.Y]), rows)
	c.v[arch.VF] = flag(collision)
	return c.next()
}

func (c *CPU) skp(i *Instruction) error {
	return c.skipIf(c.key != NoKey && c.key == Key(c.v[i.X]))
}

func (c *CPU) sknp(i *Instruction) error {
	return c.skipIf(c.key == NoKey || c.key != Key(c.v[i.X]))
}

func (c *CPU) ldvdt(i *Instruction) error {
	c.v[i.X] = c.delay
	return c.next()
}

// ldvk stores the latched key in Vx. Without one, the machine suspends
// on this instruction until a later step supplies a key.
func (c *CPU) ldvk(i *Instruction) error {
	if c.key == NoKey {
		c.state = AwaitingKey
		c.waitX = i.X
		return nil
	}
	c.v[i.X] = byte(c.key)
	return c.next()
}

func (c *CPU) lddtv(i *Instruction) error {
	c.delay = c.v[i.X]
	return c.next()
}

func (c *CPU) ldstv(i *Instruction) error {
	c.sound = c.v[i.X]
	return c.next()
}

func (c *CPU) addidx(i *Instruction) error {
	c.i += uint16(c.v[i.X])
	return c.next()
}

func (c *CPU) ldf(i *Instruction) error {
	c.i = FontAddress + uint16(c.v[i.X]&0xf)*GlyphSize
	return c.next()
}

func (c *CPU) ldb(i *Instruction) error {
	dst, err := c.memory.span(c.i, 3)
	if err != nil {
		return err
	}
	vx := c.v[i.X]
	dst[0] = vx / 100
	dst[1] = vx / 10 % 10
	dst[2] = vx % 10
	return c.next()
}

func (c *CPU) ldmv(i *Instruction) error {
	dst, err := c.memory.span(c.i, i.X+1)
	if err != nil {
		return err
	}
	copy(dst, c.v[:i.X+1])
	c.i += uint16(i.X + 1)
	return c.next()
}

func (c *CPU) ldvm(i *Instruction) error {
	src, err := c.memory.span(c.i, i.X+1)
	if err != nil {
		return err
	}
	copy(c.v[:i.X+1], src)
	c.i += uint16(i.X + 1)
	return c.next()
}

func flag(v bool) byte {
	if v {
		return 1
	}
	return 0
}
