package cpu

import (
	"fmt"

	"github.com/pkg/errors"
)

// Fatal conditions. Use errors.Cause to match them against a returned error.
var (
	ErrProgramTooLarge = errors.New("program image exceeds program space")
	ErrStackOverflow   = errors.New("call stack overflow")
	ErrStackUnderflow  = errors.New("return with empty call stack")
	ErrAddress         = errors.New("memory address out of range")
	ErrInvalidKey      = errors.New("invalid key code")
)

// Error defines a runtime error.
type Error struct {
	Addr   uint16 // Address of the failing instruction.
	Opcode uint16 // Failing opcode; zero if it could not be fetched.
	Err    error
}

// NewError creates a new runtime error for the given instruction.
func NewError(instr *Instruction, err error) *Error {
	return &Error{
		Addr:   instr.Addr,
		Opcode: instr.Opcode,
		Err:    err,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%03x: %04x: %v", e.Addr, e.Opcode, e.Err)
}

// Cause returns the underlying error.
func (e *Error) Cause() error { return e.Err }

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }
