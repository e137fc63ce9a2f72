// Package executor applies decoded CHIP-8 instructions to the machine state.
package executor

import (
	"fmt"
	"math/rand"

	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrochip8/internal/machine"
)

// Options controls behaviors that differ between CHIP-8 interpreters.
type Options struct {
	// StrictOpcodes makes opcodes that do not decode return
	// machine.ErrUnsupportedInstruction instead of being skipped.
	StrictOpcodes bool

	// LegacyCollisionFlag keeps the previous VF value when a draw causes no
	// collision instead of resetting it to 0.
	LegacyCollisionFlag bool

	// Random returns the random byte used by RND. Defaults to math/rand.
	Random func() uint8
}

// Executor executes instructions.
type Executor struct {
	opts Options
}

// New returns a new executor.
func New(opts Options) *Executor {
	if opts.Random == nil {
		opts.Random = func() uint8 {
			return uint8(rand.Intn(256)) //nolint:gosec // no security relevance
		}
	}
	return &Executor{opts: opts}
}

// Execute applies a single instruction to the state. The program counter is
// expected to already point past the instruction. The pending key release
// event is consumed regardless of the instruction and its outcome.
//
//nolint:cyclop,funlen,gocyclo // one case per instruction kind
func (e *Executor) Execute(s *machine.State, ins instruction.Instruction) error {
	defer s.Keypad.ClearReleased()

	switch ins.Kind {
	case instruction.Nop:
		if e.opts.StrictOpcodes {
			return fmt.Errorf("%w: opcode $%04X", machine.ErrUnsupportedInstruction, ins.Raw)
		}

	case instruction.Clear:
		s.Display.Clear()

	case instruction.Return:
		address, err := s.Pop()
		if err != nil {
			return fmt.Errorf("returning from subroutine: %w", err)
		}
		s.PC = address

	case instruction.Jump:
		s.PC = ins.NNN

	case instruction.Call:
		if err := s.Push(s.PC); err != nil {
			return fmt.Errorf("calling subroutine $%03X: %w", ins.NNN, err)
		}
		s.PC = ins.NNN

	case instruction.JumpOff:
		s.PC = uint16(s.V[0]) + ins.NNN

	case instruction.SkipEqIm:
		skipIf(s, s.V[ins.X] == ins.KK)

	case instruction.SkipNeIm:
		skipIf(s, s.V[ins.X] != ins.KK)

	case instruction.SkipEq:
		skipIf(s, s.V[ins.X] == s.V[ins.Y])

	case instruction.SkipNe:
		skipIf(s, s.V[ins.X] != s.V[ins.Y])

	case instruction.LoadIm:
		s.V[ins.X] = ins.KK

	case instruction.AddIm:
		s.V[ins.X] += ins.KK

	case instruction.Move, instruction.Or, instruction.And, instruction.Xor,
		instruction.Add, instruction.Sub, instruction.SubN, instruction.Shr, instruction.Shl:
		executeALU(s, ins)

	case instruction.LoadI:
		s.I = ins.NNN

	case instruction.AddI:
		s.I += uint16(s.V[ins.X])

	case instruction.Rnd:
		s.V[ins.X] = e.opts.Random() & ins.KK

	case instruction.Draw:
		return e.draw(s, ins)

	case instruction.SkipPressed, instruction.SkipNotPressed:
		key := s.V[ins.X]
		if key >= machine.KeyCount {
			return &machine.AddressError{Op: "key", Address: uint32(key)}
		}
		pressed := s.Keypad.Pressed(key)
		skipIf(s, pressed == (ins.Kind == instruction.SkipPressed))

	case instruction.WaitKeypress:
		key, ok := s.Keypad.Released()
		if !ok {
			s.PC -= 2
			return nil
		}
		s.Keypad.Clear(key)
		s.V[ins.X] = key

	case instruction.LoadFromDelayTimer:
		s.V[ins.X] = s.DelayTimer

	case instruction.LoadDelayTimer:
		s.DelayTimer = s.V[ins.X]

	case instruction.LoadSoundTimer:
		s.SoundTimer = s.V[ins.X]

	case instruction.SetSpriteAddr:
		s.I = machine.FontAddress + uint16(s.V[ins.X]&0xF)*machine.GlyphSize

	case instruction.StoreBcd:
		mem, err := s.Slice("store bcd", s.I, 3)
		if err != nil {
			return err
		}
		value := s.V[ins.X]
		mem[0] = value / 100
		mem[1] = value / 10 % 10
		mem[2] = value % 10

	case instruction.StoreRegs:
		mem, err := s.Slice("store registers", s.I, int(ins.X)+1)
		if err != nil {
			return err
		}
		copy(mem, s.V[:ins.X+1])

	case instruction.LoadRegs:
		mem, err := s.Slice("load registers", s.I, int(ins.X)+1)
		if err != nil {
			return err
		}
		copy(s.V[:ins.X+1], mem)

	default:
		panic(fmt.Sprintf("unhandled instruction kind %s", ins.Kind))
	}

	return nil
}

func skipIf(s *machine.State, condition bool) {
	if condition {
		s.PC += 2
	}
}

// executeALU handles the 8XYN register operations. The flag is written after
// the result so that VF as destination ends up holding the flag.
func executeALU(s *machine.State, ins instruction.Instruction) {
	x, y := s.V[ins.X], s.V[ins.Y]

	switch ins.Kind {
	case instruction.Move:
		s.V[ins.X] = y
	case instruction.Or:
		s.V[ins.X] = x | y
	case instruction.And:
		s.V[ins.X] = x & y
	case instruction.Xor:
		s.V[ins.X] = x ^ y
	case instruction.Add:
		sum := uint16(x) + uint16(y)
		s.V[ins.X] = uint8(sum)
		s.V[machine.FlagRegister] = uint8(sum >> 8)
	case instruction.Sub:
		s.V[ins.X] = x - y
		s.V[machine.FlagRegister] = boolToFlag(x >= y)
	case instruction.SubN:
		s.V[ins.X] = y - x
		s.V[machine.FlagRegister] = boolToFlag(y >= x)
	case instruction.Shr:
		s.V[ins.X] = x >> 1
		s.V[machine.FlagRegister] = x & 0x1
	case instruction.Shl:
		s.V[ins.X] = x << 1
		s.V[machine.FlagRegister] = x >> 7
	default:
		panic(fmt.Sprintf("unhandled alu instruction kind %s", ins.Kind))
	}
}

// draw XORs an 8 pixel wide sprite of N rows read from I into the
// framebuffer. Each pixel wraps around both screen axes independently.
func (e *Executor) draw(s *machine.State, ins instruction.Instruction) error {
	sprite, err := s.Slice("draw", s.I, int(ins.N))
	if err != nil {
		return err
	}

	x, y := int(s.V[ins.X]), int(s.V[ins.Y])
	if !e.opts.LegacyCollisionFlag {
		s.V[machine.FlagRegister] = 0
	}

	for row, line := range sprite {
		for col := 0; col < 8; col++ {
			if line&(0x80>>col) == 0 {
				continue
			}
			if s.Display.Flip(x+col, y+row) {
				s.V[machine.FlagRegister] = 1
			}
		}
	}
	return nil
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
