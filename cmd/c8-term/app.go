package main

import (
	"bufio"
	"log"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/hexaflex/c8/devices/fffe/clock"
	"github.com/hexaflex/c8/devices/fffe/cpu"
)

// App defines application context.
type App struct {
	config *Config         // Application configuration.
	cpu    *cpu.CPU        // VM with program to be run.
	clock  *clock.Clock    // Execution pacer.
	keys   *keyLatch       // Key currently held down.
	out    *bufio.Writer   // Buffered terminal output.
	frame  cpu.Framebuffer // Last rendered frame.
	screen strings.Builder // Render buffer.
	beep   bool            // Emit a bell with the next frame?
	dirty  bool            // Does the frame need to be redrawn?
}

// NewApp creates a new application instance using the given configuration.
func NewApp(config *Config) *App {
	a := &App{
		config: config,
		clock:  clock.New(config.Hz),
		keys:   newKeyLatch(config.Hold),
		out:    bufio.NewWriter(os.Stdout),
		dirty:  true,
	}
	a.cpu = cpu.New(nil, a.tone)
	return a
}

// Run runs the program until the user quits or the cpu halts.
func (a *App) Run() error {
	program, err := os.ReadFile(a.config.Program)
	if err != nil {
		return errors.Wrapf(err, "failed to read program")
	}

	if err := a.cpu.Load(program); err != nil {
		return errors.Wrapf(err, "failed to load %s", a.config.Program)
	}

	if a.config.Seed != 0 {
		a.cpu.Seed(a.config.Seed)
	}

	t, err := OpenTerminal()
	if err != nil {
		return err
	}

	if w, h, err := t.Size(); err == nil && (w < cpu.DisplayWidth || h < ScreenRows) {
		log.Printf("terminal is %dx%d; at least %dx%d is needed\r", w, h, cpu.DisplayWidth, ScreenRows)
	}

	a.out.WriteString(hideCursor + clearScreen)
	err = a.loop(t)
	a.out.WriteString(showCursor + "\r\n")
	a.out.Flush()

	if cerr := t.Close(); err == nil {
		err = cerr
	}
	return err
}

// loop steps the cpu and redraws the screen until the terminal reports
// a quit request or the cpu halts.
func (a *App) loop(t *Terminal) error {
	frameTicker := time.NewTicker(time.Second / 60)
	defer frameTicker.Stop()

	a.clock.Start(time.Now())

	for {
		select {
		case <-t.Quit():
			return nil
		case b := <-t.Keys():
			if k, ok := lookupKey(b); ok {
				a.keys.Press(k)
			}
		case <-frameTicker.C:
			a.present()
		case now := <-time.After(a.clock.Period()):
			if err := a.update(now); err != nil {
				a.present()
				return err
			}
		}
	}
}

// update performs all cycles owed by the clock.
func (a *App) update(now time.Time) error {
	for n := a.clock.Due(now); n > 0; n-- {
		if err := a.cpu.SetKey(a.keys.Next()); err != nil {
			return err
		}
		if err := a.cpu.Step(); err != nil {
			return err
		}
	}

	if fb := a.cpu.Display(); fb != a.frame {
		a.frame = fb
		a.dirty = true
	}
	return nil
}

// present writes the current frame and any pending bell to the terminal.
func (a *App) present() {
	if !a.dirty && !a.beep {
		return
	}

	if a.dirty {
		a.screen.Reset()
		render(&a.screen, &a.frame)
		a.out.WriteString(a.screen.String())
		a.dirty = false
	}

	if a.beep {
		a.out.WriteString(bell)
		a.beep = false
	}

	a.out.Flush()
}

// tone is called by the cpu when the sound timer runs out.
func (a *App) tone() {
	a.beep = true
}
