package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hexaflex/c8/devices/fffe/clock"
)

// Config defines program configuration.
type Config struct {
	Program string // Path to the ROM file to load.
	Hz      int    // Number of instructions executed per second.
	Hold    int    // Number of cycles a key stays pressed.
	Seed    int64  // Random number seed. 0 picks one at startup.
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.Hz = clock.DefaultFrequency
	c.Hold = clock.DefaultFrequency / 5

	flag.Usage = func() {
		fmt.Printf("%s [options] <rom file>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.IntVar(&c.Hz, "hz", c.Hz, "Number of instructions executed per second.")
	flag.IntVar(&c.Hold, "hold", c.Hold, "Number of cycles a key stays pressed. Terminals do not report key releases.")
	flag.Int64Var(&c.Seed, "seed", c.Seed, "Random number seed. 0 picks one at startup.")

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

	if c.Hold < 1 {
		c.Hold = 1
	}

	c.Program = flag.Arg(0)
	return &c
}
