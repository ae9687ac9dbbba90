// Package cpu implements the CHIP-8 virtual machine core.
package cpu

import (
	"log"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/hexaflex/c8/arch"
	"github.com/hexaflex/c8/devices"
)

// StackDepth is the number of return addresses the call stack can hold.
const StackDepth = 16

// TraceFunc represents a callback handler for debug trace output.
// It is called for each instruction before it executes.
type TraceFunc func(*Instruction)

// ToneFunc is called once each time the sound timer runs out.
type ToneFunc func()

// CPU implements the runtime.
type CPU struct {
	trace  TraceFunc                // Handler for debug trace output.
	tone   ToneFunc                 // Handler for sound timer expiry.
	rng    *rand.Rand               // Random number generator.
	memory Memory                   // System memory.
	fb     Framebuffer              // Display contents.
	instr  Instruction              // Decoded instruction data.
	v      [arch.RegisterCount]byte // General purpose registers.
	stack  [StackDepth]uint16       // Return addresses.
	sp     int                      // Number of addresses on the stack.
	i      uint16                   // Index register.
	pc     uint16                   // Program counter.
	delay  byte                     // Delay timer.
	sound  byte                     // Sound timer.
	key    Key                      // Key latched for the current step.
	state  State                    // Dispatcher state.
	waitX  int                      // Target register while awaiting a key.
	err    error                    // Fatal error that halted the machine.
}

// New creates a new, initialized CPU.
// Optionally with the given debug trace and tone handlers.
func New(trace TraceFunc, tone ToneFunc) *CPU {
	if trace == nil {
		trace = func(*Instruction) { /* nop */ }
	}
	if tone == nil {
		tone = func() { /* nop */ }
	}

	c := &CPU{
		trace: trace,
		tone:  tone,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	c.Reset()
	return c
}

// ID returns the cpu's device Id.
func (c *CPU) ID() devices.ID {
	return devices.Builtin(0x0001)
}

// Reset returns the machine to its power-on state: memory, registers,
// stack, timers and display are zeroed, the glyph table is written and
// the program counter points at the program entry address.
func (c *CPU) Reset() {
	c.memory = Memory{}
	copy(c.memory[FontAddress:], font[:])
	c.fb.Clear()
	c.v = [arch.RegisterCount]byte{}
	c.stack = [StackDepth]uint16{}
	c.sp = 0
	c.i = 0
	c.pc = ProgramAddress
	c.delay = 0
	c.sound = 0
	c.key = NoKey
	c.state = Ready
	c.waitX = 0
	c.err = nil
}

// Load copies the program image into memory at ProgramAddress.
// No other state is changed. Returns ErrProgramTooLarge if the image does
// not fit; memory is left untouched in that case.
func (c *CPU) Load(program []byte) error {
	if len(program) > ProgramCapacity {
		return errors.Wrapf(ErrProgramTooLarge, "%d bytes, limit is %d", len(program), ProgramCapacity)
	}
	copy(c.memory[ProgramAddress:], program)
	return nil
}

// Seed reseeds the random number generator used by RND.
func (c *CPU) Seed(seed int64) {
	c.rng = rand.New(rand.NewSource(seed))
}

// SetKey latches k as the key pressed during the next step.
// NoKey clears the latch. The latch is reset after every step.
func (c *CPU) SetKey(k Key) error {
	if k != NoKey && !k.Valid() {
		return errors.Wrapf(ErrInvalidKey, "%d", int(k))
	}
	c.key = k
	return nil
}

// Step performs a single execution cycle: one instruction followed by
// one timer tick.
//
// A fatal error halts the machine; it is returned from this and every
// subsequent call until Reset.
func (c *CPU) Step() error {
	switch c.state {
	case Halted:
		return c.err
	case AwaitingKey:
		c.resumeKeyWait()
	default:
		if err := c.execute(); err != nil {
			c.state = Halted
			c.err = err
			log.Println(c.ID(), "halted:", err)
			return err
		}
	}

	c.tick()
	c.key = NoKey
	return nil
}

// execute fetches, decodes and executes the instruction at the program counter.
func (c *CPU) execute() error {
	instr := &c.instr

	if err := instr.Decode(&c.memory, c.pc); err != nil {
		return NewError(instr, err)
	}

	c.trace(instr)

	if err := handlers[instr.Kind](c, instr); err != nil {
		return NewError(instr, err)
	}

	return nil
}

// resumeKeyWait completes a suspended LD Vx, K once a key is latched.
func (c *CPU) resumeKeyWait() {
	if c.key == NoKey {
		return
	}
	c.v[c.waitX] = byte(c.key)
	c.pc += 2
	c.state = Ready
}

// tick counts both timers down by one. The tone handler fires when the
// sound timer goes from 1 to 0.
func (c *CPU) tick() {
	if c.delay > 0 {
		c.delay--
	}

	if c.sound > 0 {
		if c.sound == 1 {
			c.tone()
		}
		c.sound--
	}
}

// push pushes the given return address onto the call stack.
func (c *CPU) push(addr uint16) error {
	if c.sp >= StackDepth {
		return errors.Wrapf(ErrStackOverflow, "depth %d", c.sp)
	}
	c.stack[c.sp] = addr
	c.sp++
	return nil
}

// pop returns the top return address from the call stack.
func (c *CPU) pop() (uint16, error) {
	if c.sp <= 0 {
		return 0, ErrStackUnderflow
	}
	c.sp--
	return c.stack[c.sp], nil
}

// Display returns a snapshot of the display contents.
func (c *CPU) Display() Framebuffer { return c.fb }

// Memory returns a snapshot of system memory.
func (c *CPU) Memory() Memory { return c.memory }

// V returns the value of general purpose register n.
func (c *CPU) V(n int) byte { return c.v[n&0xf] }

// I returns the index register.
func (c *CPU) I() uint16 { return c.i }

// PC returns the program counter.
func (c *CPU) PC() uint16 { return c.pc }

// SP returns the number of return addresses on the call stack.
func (c *CPU) SP() int { return c.sp }

// Delay returns the delay timer.
func (c *CPU) Delay() byte { return c.delay }

// Sound returns the sound timer.
func (c *CPU) Sound() byte { return c.sound }

// State returns the dispatcher state.
func (c *CPU) State() State { return c.state }

// Err returns the fatal error that halted the machine, if any.
func (c *CPU) Err() error { return c.err }
