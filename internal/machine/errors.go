package machine

import (
	"errors"
	"fmt"
)

var (
	// ErrStackOverflow is returned when a call is made with a full call stack.
	ErrStackOverflow = errors.New("call stack overflow")
	// ErrStackUnderflow is returned when returning from a subroutine with an empty call stack.
	ErrStackUnderflow = errors.New("call stack underflow")
	// ErrUnsupportedInstruction is returned in strict mode for opcodes that do not decode.
	ErrUnsupportedInstruction = errors.New("unsupported instruction")
	// ErrROMTooLarge is returned when a program does not fit into the program space.
	ErrROMTooLarge = errors.New("rom too large")
)

// AddressError describes an access outside of the machine address space or
// of the keypad.
type AddressError struct {
	Op      string
	Address uint32
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("%s: address $%04X out of range", e.Op, e.Address)
}
