package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/hexaflex/c8/devices/fffe/clock"
	"github.com/hexaflex/c8/devices/fffe/display"
)

// Config defines program configuration.
type Config struct {
	Program     string      // Path to the ROM file to load.
	ScaleFactor int         // Amount by which each pixel is scaled.
	Hz          int         // Number of instructions executed per second.
	Seed        int64       // Random number seed. 0 picks one at startup.
	Foreground  color       // Color of lit pixels.
	Background  color       // Color of unlit pixels.
	Breakpoints breakpoints // Addresses at which execution pauses in debug mode.
	Fullscreen  bool        // Run in fullscreen?
	Debug       bool        // Enable debug mode? This handles breakpoints if enabled.
	PrintTrace  bool        // Print instruction trace data?
	Mute        bool        // Disable sound output?
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.ScaleFactor = 10
	c.Hz = clock.DefaultFrequency
	c.Foreground = display.DefaultForeground
	c.Background = display.DefaultBackground

	flag.Usage = func() {
		fmt.Printf("%s [options] <rom file>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.BoolVar(&c.Debug, "debug", c.Debug, "Run in debug mode. Execution starts paused and trace output is enabled.")
	flag.BoolVar(&c.Mute, "mute", c.Mute, "Disable sound output.")
	flag.BoolVar(&c.Fullscreen, "fullscreen", c.Fullscreen, "Run the display in fullscreen or windowed mode.")
	flag.IntVar(&c.ScaleFactor, "scale-factor", c.ScaleFactor, "Pixel scale factor for the display.")
	flag.IntVar(&c.Hz, "hz", c.Hz, "Number of instructions executed per second.")
	flag.Int64Var(&c.Seed, "seed", c.Seed, "Random number seed. 0 picks one at startup.")
	flag.Var(&c.Foreground, "fg", "Color of lit pixels as RRGGBB.")
	flag.Var(&c.Background, "bg", "Color of unlit pixels as RRGGBB.")
	flag.Var(&c.Breakpoints, "break", "Comma separated list of addresses at which to pause in debug mode.")

	version := flag.Bool("version", false, "Display version information.")
	flag.Parse()

	if *version {
		fmt.Println(Version())
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	if c.ScaleFactor < 1 {
		c.ScaleFactor = 1
	}

	c.Program = flag.Arg(0)
	c.PrintTrace = c.Debug
	return &c
}

// color is a 0xRRGGBB color value.
type color uint32

func (c *color) String() string {
	return fmt.Sprintf("%06x", uint32(*c))
}

func (c *color) Set(v string) error {
	v = strings.TrimPrefix(strings.TrimPrefix(v, "#"), "0x")
	if len(v) != 6 {
		return errors.Errorf("invalid color %q: want RRGGBB", v)
	}

	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return errors.Wrapf(err, "invalid color %q", v)
	}

	*c = color(n)
	return nil
}

// breakpoints is a set of instruction addresses.
type breakpoints map[uint16]struct{}

func (b *breakpoints) String() string {
	if b == nil {
		return ""
	}

	addrs := make([]int, 0, len(*b))
	for addr := range *b {
		addrs = append(addrs, int(addr))
	}
	sort.Ints(addrs)

	list := make([]string, len(addrs))
	for i, addr := range addrs {
		list[i] = fmt.Sprintf("%03x", addr)
	}
	return strings.Join(list, ",")
}

func (b *breakpoints) Set(v string) error {
	if *b == nil {
		*b = make(breakpoints)
	}

	for _, field := range strings.Split(v, ",") {
		field = strings.TrimPrefix(strings.TrimSpace(field), "0x")
		if len(field) == 0 {
			continue
		}

		addr, err := strconv.ParseUint(field, 16, 12)
		if err != nil {
			return errors.Wrapf(err, "invalid breakpoint %q", field)
		}

		(*b)[uint16(addr)] = struct{}{}
	}

	return nil
}

// Has returns true if addr is a breakpoint.
func (b breakpoints) Has(addr uint16) bool {
	_, ok := b[addr]
	return ok
}
