// Package clock paces the execution of a CPU against wall-clock time.
package clock

import "time"

// DefaultFrequency is the default number of cycles per second.
const DefaultFrequency = 500

// MaxLag bounds the amount of time a clock will catch up on. A host that
// stalls for longer than this drops the excess cycles instead of running
// them in a burst.
const MaxLag = 100 * time.Millisecond

// Clock converts elapsed time into a number of owed cycles.
type Clock struct {
	hz      int
	period  time.Duration // Duration of a single cycle.
	last    time.Time     // Time of the previous call to Due.
	acc     time.Duration // Elapsed time not yet converted into cycles.
	started bool
}

// New creates a clock running at the given frequency in herz.
// Frequencies below 1 are treated as 1.
func New(hz int) *Clock {
	if hz < 1 {
		hz = 1
	}
	return &Clock{
		hz:     hz,
		period: time.Second / time.Duration(hz),
	}
}

// Hz returns the clock frequency.
func (c *Clock) Hz() int {
	return c.hz
}

// Period returns the duration of a single cycle.
func (c *Clock) Period() time.Duration {
	return c.period
}

// Start (re)starts the clock at the given time. Any time accumulated
// before this point is discarded.
func (c *Clock) Start(now time.Time) {
	c.last = now
	c.acc = 0
	c.started = true
}

// Due returns the number of cycles owed since the previous call.
// A clock that has not been started starts at now and owes nothing.
func (c *Clock) Due(now time.Time) int {
	if !c.started {
		c.Start(now)
		return 0
	}

	if elapsed := now.Sub(c.last); elapsed > 0 {
		c.acc += elapsed
	}
	c.last = now

	if c.acc > MaxLag {
		c.acc = MaxLag
	}

	n := c.acc / c.period
	c.acc -= n * c.period
	return int(n)
}
