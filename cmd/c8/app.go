package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/hexaflex/c8/arch"
	"github.com/hexaflex/c8/devices"
	"github.com/hexaflex/c8/devices/fffe/beeper"
	"github.com/hexaflex/c8/devices/fffe/cpu"
	"github.com/hexaflex/c8/devices/fffe/display"
	"github.com/hexaflex/c8/devices/fffe/keypad"
)

// App defines application context.
type App struct {
	config       *Config         // Application configuration.
	window       *glfw.Window    // OpenGL/GLFW context.
	cpu          *CPUController  // VM with program to be run.
	devices      devices.Map     // Connected host peripherals.
	display      *display.Device // Display peripheral.
	keypad       *keypad.Device  // Keypad peripheral.
	beeper       *beeper.Device  // Sound peripheral. Nil when muted.
	titleUpdated time.Time       // Value used to periodically update window title.
	lastRendered time.Time       // Last time a frame was rendered.
}

// NewApp creates a new application instance using the given configuration.
func NewApp(config *Config) *App {
	var a App
	a.config = config
	a.display = display.New()
	a.display.SetColors(uint32(config.Foreground), uint32(config.Background))
	a.keypad = keypad.New()

	a.devices.Connect(a.display)
	a.devices.Connect(a.keypad)

	var tone cpu.ToneFunc
	if !config.Mute {
		a.beeper = beeper.New(beeper.DefaultPitch, beeper.DefaultDuration)
		a.devices.Connect(a.beeper)
		tone = a.beeper.Beep
	}

	a.cpu = NewCPUController(config.Hz, a.printTrace, tone, a.keypad.Key)
	return &a
}

// Run runs the application and does not return until it is finished
// or an error occured during initialization.
func (a *App) Run() error {
	if err := a.initGL(); err != nil {
		return err
	}

	defer a.dispose()

	if err := a.devices.Startup(); err != nil {
		return err
	}

	log.Println(Version())
	printHelp()

	if err := a.loadProgram(); err != nil {
		return err
	}

	if !a.config.Debug {
		a.cpu.Start()
	}

	for !a.window.ShouldClose() {
		a.mainLoop()
	}

	return nil
}

// mainLoop performs all main loop operations.
func (a *App) mainLoop() {
	a.keypad.Update()

	if err := a.cpu.Update(time.Now()); err != nil {
		log.Println(err)
	}

	// Periodically render display contents.
	if time.Since(a.lastRendered) >= time.Second/60 {
		a.lastRendered = time.Now()
		fb := a.cpu.CPU().Display()
		a.display.Update(&fb)

		gl.Clear(gl.COLOR_BUFFER_BIT)
		a.display.Draw()
		a.window.SwapBuffers()
	}

	// Periodically update the window title to show the current cpu clock frequency.
	if time.Since(a.titleUpdated) >= time.Second*2 {
		a.titleUpdated = time.Now()
		a.window.SetTitle(a.title())
	}

	glfw.WaitEventsTimeout(0.001)
}

// title returns the window title for the current state.
func (a *App) title() string {
	c := a.cpu.CPU()
	switch {
	case c.State() == cpu.Halted:
		return fmt.Sprintf("%s %s - halted", AppName, AppVersion)
	case !a.cpu.Running():
		return fmt.Sprintf("%s %s - paused", AppName, AppVersion)
	default:
		freq := prettyFrequency(a.cpu.Frequency())
		return fmt.Sprintf("%s %s - %s", AppName, AppVersion, freq)
	}
}

// dispose ensures openGL/GLFW and other resources are cleaned up.
func (a *App) dispose() {
	a.cpu.Stop()

	if err := a.devices.Shutdown(); err != nil {
		log.Println(err)
	}

	if a.window != nil {
		a.window.Destroy()
		a.window = nil
	}

	glfw.Terminate()
}

func (a *App) keyCallback(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if a.keypad.HandleKey(key, action) {
		return
	}

	if action != glfw.Press {
		return
	}

	var err error

	switch key {
	case glfw.KeyEscape:
		a.window.SetShouldClose(true)
	case glfw.KeyF1:
		printHelp()
	case glfw.KeyF2:
		a.config.Debug = !a.config.Debug
		log.Println("debug mode:", a.config.Debug)
	case glfw.KeyF5:
		err = a.loadProgram()
	case glfw.KeyF6:
		a.cpu.ToggleRun()
	case glfw.KeyF7:
		a.cpu.Stop()
		err = a.cpu.Step()
		a.printState()
	case glfw.KeyF8:
		a.config.PrintTrace = !a.config.PrintTrace
	}

	if err != nil {
		log.Println(err)
	}
}

// focusCallback lifts all keys when the window loses focus, since the
// matching release events will never arrive.
func (a *App) focusCallback(_ *glfw.Window, focused bool) {
	if !focused {
		a.keypad.Release()
	}
}

// initGL initializes GLFW and openGL.
func (a *App) initGL() error {
	err := glfw.Init()
	if err != nil {
		return errors.Wrapf(err, "glfw.Init failed")
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Visible, glfw.True)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 2)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	var monitor *glfw.Monitor

	width := cpu.DisplayWidth * a.config.ScaleFactor
	height := cpu.DisplayHeight * a.config.ScaleFactor

	if a.config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()

		width = mode.Width
		height = mode.Height

		glfw.WindowHint(glfw.Decorated, glfw.False)
		glfw.WindowHint(glfw.Maximized, glfw.True)
	} else {
		glfw.WindowHint(glfw.Decorated, glfw.True)
		glfw.WindowHint(glfw.Maximized, glfw.False)
	}

	a.window, err = glfw.CreateWindow(width, height, AppName, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return errors.Wrapf(err, "glfw.CreateWindow failed")
	}

	a.window.MakeContextCurrent()
	a.window.SetKeyCallback(a.keyCallback)
	a.window.SetFocusCallback(a.focusCallback)

	glfw.SwapInterval(0)

	err = gl.Init()
	if err != nil {
		a.window.Destroy()
		a.window = nil
		glfw.Terminate()
		return errors.Wrapf(err, "gl.Init failed")
	}

	fbw, fbh := a.window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbw), int32(fbh))
	gl.ClearColor(0, 0, 0, 1.0)
	return nil
}

// loadProgram loads the current program from disk and restarts the cpu.
func (a *App) loadProgram() error {
	log.Println("loading", a.config.Program)

	program, err := os.ReadFile(a.config.Program)
	if err != nil {
		return errors.Wrapf(err, "failed to read program")
	}

	if err := a.cpu.Load(program); err != nil {
		return errors.Wrapf(err, "failed to load %s", a.config.Program)
	}

	if a.config.Seed != 0 {
		a.cpu.CPU().Seed(a.config.Seed)
	}

	a.keypad.Release()
	return nil
}

// printTrace prints instruction trace data. This can be toggled
// on off through a.config.PrintTrace.
//
// It also ensures execution is stopped once the given instruction has a
// breakpoint associated with it. This only happens if a.config.Debug is true.
func (a *App) printTrace(i *cpu.Instruction) {
	if a.config.Debug && a.config.Breakpoints.Has(i.Addr) && a.cpu.Running() {
		log.Printf("breakpoint at %03x", i.Addr)
		a.cpu.Stop()
	}

	if !a.config.PrintTrace {
		return
	}

	fmt.Println(formatTrace(i, a.cpu.CPU()))
}

// printState writes the register contents to stdout.
func (a *App) printState() {
	c := a.cpu.CPU()

	var sb strings.Builder
	for n := 0; n < arch.RegisterCount; n++ {
		fmt.Fprintf(&sb, "%s=%02x ", arch.RegisterName(n), c.V(n))
	}
	fmt.Fprintf(&sb, "I=%03x PC=%03x SP=%d DT=%02x ST=%02x %s", c.I(), c.PC(), c.SP(), c.Delay(), c.Sound(), c.State())
	fmt.Println(sb.String())
}

// formatTrace returns a single trace line for the given instruction,
// showing the registers it refers to as they are before it executes.
func formatTrace(i *cpu.Instruction, c *cpu.CPU) string {
	var sb strings.Builder
	sb.Grow(80)

	name, _ := arch.Name(i.Kind)
	fmt.Fprintf(&sb, "%03x %04x %-4s %s", i.Addr, i.Opcode, name, arch.Operands(i.Kind, i.Opcode))

	pad(&sb, 36)
	fmt.Fprintf(&sb, "%s=%02x %s=%02x I=%03x",
		arch.RegisterName(i.X), c.V(i.X), arch.RegisterName(i.Y), c.V(i.Y), c.I())
	return sb.String()
}

// printHelp writes a short overview of supported shortcut keys to stdout.
func printHelp() {
	var sb strings.Builder
	sb.WriteString("shortcut keys:\n")
	sb.WriteString(" ESC      Exit the program.\n")
	sb.WriteString(" F1       Display this help.\n")
	sb.WriteString(" F2       Enable/Disable debug mode.\n")
	sb.WriteString(" F5       (re)load the program from disk and reset the cpu.\n")
	sb.WriteString(" F6       Start/Stop program execution.\n")
	sb.WriteString(" F7       Perform a single execution step.\n")
	sb.WriteString(" F8       Enable/Disable debug trace output.\n")
	sb.WriteString("keypad:\n")
	sb.WriteString(" 1 2 3 4      1 2 3 C\n")
	sb.WriteString(" Q W E R  ->  4 5 6 D\n")
	sb.WriteString(" A S D F      7 8 9 E\n")
	sb.WriteString(" Z X C V      A 0 B F")
	log.Println(sb.String())
}

// pad padds sb with spaces until it reaches the given size.
var pad = func() func(*strings.Builder, int) {
	set := strings.Repeat(" ", 80)
	return func(sb *strings.Builder, size int) {
		if sb.Len() >= size {
			return
		}
		if size > len(set) {
			size = len(set)
		}
		if size < sb.Len() {
			size = sb.Len()
		}
		sb.WriteString(set[:size-sb.Len()])
	}
}()

// prettyFrequency returns a human-readable version of the given clock frequency in herz.
func prettyFrequency(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2f GHz", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2f MHz", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2f KHz", v/1e3)
	default:
		return fmt.Sprintf("%.2f Hz", v)
	}
}
