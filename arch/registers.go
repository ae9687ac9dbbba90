package arch

import (
	"fmt"
	"strings"
)

// Register counts and special indices.
const (
	RegisterCount = 16
	VF            = 0xf // Flag register: carry, borrow and collision output.
)

// RegisterIndex returns the index for the given general purpose register name.
// Returns -1 if the name is not recognized.
func RegisterIndex(name string) int {
	name = strings.ToUpper(name)
	if len(name) != 2 || name[0] != 'V' {
		return -1
	}

	c := name[1]
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

// RegisterName returns the name associated with the given register index.
// Returns "" if the index is not recognized.
func RegisterName(n int) string {
	if n < 0 || n >= RegisterCount {
		return ""
	}
	return fmt.Sprintf("V%X", n)
}
