// Package machine contains the CHIP-8 machine state: registers, memory,
// call stack, timers, keypad and framebuffer.
package machine

import (
	"fmt"
)

// CHIP-8 memory layout constants.
//
//	0x000-0x1FF: Interpreter area, font glyphs at FontAddress
//	0x200-0xFFF: Program space
const (
	// MemorySize is the size of the addressable memory.
	MemorySize = 0x1000

	// ProgramStart is the address programs are loaded to and execution starts at.
	ProgramStart = 0x200

	// MaxROMSize is the largest program that fits into the program space.
	MaxROMSize = MemorySize - ProgramStart

	// FontAddress is the memory address of the built-in font glyphs.
	FontAddress = 0x000

	// RegisterCount is the number of general purpose registers V0-VF.
	RegisterCount = 16

	// FlagRegister is the index of VF.
	FlagRegister = 0xF

	// StackDepth is the number of return addresses the call stack can hold.
	StackDepth = 16

	opcodeSize = 2
)

// State is the complete state of a CHIP-8 machine. It is owned by the
// stepping loop and passed by pointer into each phase of a cycle.
type State struct {
	V     [RegisterCount]uint8
	I     uint16
	PC    uint16
	SP    uint8
	Stack [StackDepth]uint16

	Memory [MemorySize]byte

	DelayTimer uint8
	SoundTimer uint8

	Keypad  Keypad
	Display Framebuffer
}

// New returns a new machine state with the font loaded and the program
// counter set to the program start.
func New() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset zeroes all registers, memory, timers, keypad and framebuffer and
// reloads the font glyphs.
func (s *State) Reset() {
	*s = State{
		PC: ProgramStart,
	}
	copy(s.Memory[FontAddress:], font[:])
}

// LoadROM copies the program verbatim into memory at the program start.
func (s *State) LoadROM(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrROMTooLarge, len(rom), MaxROMSize)
	}
	copy(s.Memory[ProgramStart:], rom)
	return nil
}

// Fetch reads the big-endian instruction word at the program counter and
// advances the program counter past it.
func (s *State) Fetch() (uint16, error) {
	if int(s.PC)+1 >= MemorySize {
		return 0, &AddressError{Op: "fetch", Address: uint32(s.PC)}
	}
	word := uint16(s.Memory[s.PC])<<8 | uint16(s.Memory[s.PC+1])
	s.PC += opcodeSize
	return word, nil
}

// Push stores the address on the call stack.
func (s *State) Push(address uint16) error {
	if s.SP >= StackDepth {
		return fmt.Errorf("%w: depth %d", ErrStackOverflow, s.SP)
	}
	s.Stack[s.SP] = address
	s.SP++
	return nil
}

// Pop removes and returns the most recently pushed address.
func (s *State) Pop() (uint16, error) {
	if s.SP == 0 {
		return 0, ErrStackUnderflow
	}
	s.SP--
	return s.Stack[s.SP], nil
}

// Slice returns the n bytes of memory starting at address. The returned
// slice aliases the machine memory.
func (s *State) Slice(op string, address uint16, n int) ([]byte, error) {
	end := int(address) + n
	if end > MemorySize {
		return nil, &AddressError{Op: op, Address: uint32(end - 1)}
	}
	return s.Memory[address:end], nil
}

// ToneActive returns whether the sound tone should be audible.
func (s *State) ToneActive() bool {
	return s.SoundTimer > 0
}
