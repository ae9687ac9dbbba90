package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hexaflex/c8/arch"
	"github.com/hexaflex/c8/devices/fffe/cpu"
)

func main() {
	config := parseArgs()

	program, err := os.ReadFile(config.Input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if len(program) > cpu.ProgramCapacity {
		fmt.Fprintf(os.Stderr, "%s: %d bytes exceeds the program capacity of %d bytes\n",
			config.Input, len(program), cpu.ProgramCapacity)
		os.Exit(1)
	}

	w, close := makeWriter(config)
	defer close()

	bw := bufio.NewWriter(w)
	disassemble(bw, program, config.Pixels)

	if err := bw.Flush(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// disassemble writes one line per instruction word in program, as it
// would be laid out in memory.
func disassemble(w io.Writer, program []byte, pixels bool) {
	addr := cpu.ProgramAddress

	for i := 0; i+1 < len(program); i += 2 {
		op := uint16(program[i])<<8 | uint16(program[i+1])
		line := fmt.Sprintf("%03X  %04X  %s", addr+i, op, arch.Disassemble(op))

		if pixels {
			line = fmt.Sprintf("%-32s; %s %s", line, bits(program[i]), bits(program[i+1]))
		}

		fmt.Fprintln(w, line)
	}

	// A trailing odd byte can only be data.
	if len(program)%2 != 0 {
		last := len(program) - 1
		line := fmt.Sprintf("%03X  %02X    DB $%02X", addr+last, program[last], program[last])

		if pixels {
			line = fmt.Sprintf("%-32s; %s", line, bits(program[last]))
		}

		fmt.Fprintln(w, line)
	}
}

// bits renders v as a row of sprite pixels.
func bits(v byte) string {
	var row [8]byte
	for i := range row {
		row[i] = '.'
		if v&(0x80>>i) != 0 {
			row[i] = '#'
		}
	}
	return string(row[:])
}

// makeWriter creates an output writer and a cleanup function for it.
func makeWriter(c *Config) (io.Writer, func()) {
	if c.Output == "" {
		return os.Stdout, func() {}
	}

	if dir, _ := filepath.Split(c.Output); dir != "" {
		if err := os.MkdirAll(dir, 0744); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	fd, err := os.Create(c.Output)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	return fd, func() { fd.Close() }
}
