package main

import (
	"time"

	"github.com/hexaflex/c8/devices/fffe/clock"
	"github.com/hexaflex/c8/devices/fffe/cpu"
)

// KeyFunc yields the key to latch for the next step.
type KeyFunc func() cpu.Key

// CPUController controls the execution of a CPU.
type CPUController struct {
	cpu        *cpu.CPU
	clock      *clock.Clock
	key        KeyFunc
	start      time.Time
	cycleCount uint64
	running    bool
}

// NewCPUController creates a new CPU controller, stepping the CPU at the
// given frequency once started.
func NewCPUController(hz int, trace cpu.TraceFunc, tone cpu.ToneFunc, key KeyFunc) *CPUController {
	if key == nil {
		key = func() cpu.Key { return cpu.NoKey }
	}

	return &CPUController{
		cpu:   cpu.New(trace, tone),
		clock: clock.New(hz),
		key:   key,
	}
}

// CPU returns the controlled cpu.
func (c *CPUController) CPU() *cpu.CPU {
	return c.cpu
}

// Running returns true if the CPU is currently running.
func (c *CPUController) Running() bool {
	return c.running
}

// Frequency returns the measured clock frequency in herz.
func (c *CPUController) Frequency() float64 {
	if !c.running {
		return 0
	}
	return float64(c.cycleCount) / time.Since(c.start).Seconds()
}

// ToggleRun starts or stops program execution.
func (c *CPUController) ToggleRun() {
	c.setRunning(!c.running)
}

// Start begins execution of the program.
func (c *CPUController) Start() {
	c.setRunning(true)
}

// Stop pauses execution of the program.
func (c *CPUController) Stop() {
	c.setRunning(false)
}

// Update performs all steps owed by the clock at the given time.
// Execution stops when a step fails or the controller is stopped
// from within a step.
func (c *CPUController) Update(now time.Time) error {
	if !c.running {
		return nil
	}

	for n := c.clock.Due(now); n > 0 && c.running; n-- {
		if err := c.Step(); err != nil {
			return err
		}
	}

	return nil
}

// Step latches the current key and performs a single execution step.
// The controller stops running if the cpu reports an error.
func (c *CPUController) Step() error {
	c.cycleCount++

	if err := c.cpu.SetKey(c.key()); err != nil {
		return err
	}

	if err := c.cpu.Step(); err != nil {
		c.setRunning(false)
		return err
	}

	return nil
}

// Load resets the cpu and loads the given program.
func (c *CPUController) Load(program []byte) error {
	c.cpu.Reset()
	return c.cpu.Load(program)
}

// setRunning determines if the CPU is running or is paused.
func (c *CPUController) setRunning(v bool) {
	c.running = v
	c.start = time.Now()
	c.cycleCount = 0
	c.clock.Start(c.start)
}
