package main

import (
	"strings"
	"testing"
)

func TestDisassemble(t *testing.T) {
	program := []byte{
		0x00, 0xe0, // CLS
		0xa2, 0x2a, // LD I, $22A
		0xd0, 0x15, // DRW V0, V1, $5
		0x5a, 0xb1, // not an instruction
		0x12, 0x00, // JP $200
		0xf0,
	}

	var sb strings.Builder
	disassemble(&sb, program, false)

	want := []string{
		"200  00E0  CLS",
		"202  A22A  LD I, $22A",
		"204  D015  DRW V0, V1, $5",
		"206  5AB1  DW $5AB1",
		"208  1200  JP $200",
		"20A  F0    DB $F0",
		"",
	}

	have := strings.Split(sb.String(), "\n")
	if len(have) != len(want) {
		t.Fatalf("line count mismatch:\nwant: %d\nhave: %d\n%s", len(want), len(have), sb.String())
	}

	for i := range want {
		if have[i] != want[i] {
			t.Fatalf("line %d mismatch:\nwant: %q\nhave: %q", i, want[i], have[i])
		}
	}
}

func TestDisassemblePixels(t *testing.T) {
	var sb strings.Builder
	disassemble(&sb, []byte{0xf0, 0x65}, true)

	line := strings.TrimSuffix(sb.String(), "\n")
	if !strings.HasSuffix(line, "; ####.... .##..#.#") {
		t.Fatalf("unexpected pixel column: %q", line)
	}
	if !strings.HasPrefix(line, "200  F065  LD V0, [I]") {
		t.Fatalf("unexpected instruction column: %q", line)
	}
}

func TestBits(t *testing.T) {
	if have := bits(0xa5); have != "#.#..#.#" {
		t.Fatalf("bits mismatch:\nwant: #.#..#.#\nhave: %s", have)
	}
}
