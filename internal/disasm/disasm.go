// Package disasm formats decoded CHIP-8 instructions as assembly text.
// Mnemonics are taken from the retrogolib CHIP-8 instruction definitions.
package disasm

import (
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

const (
	functionNaming = "_func_%04x"
	labelNaming    = "_label_%04x"
)

// mnemonics maps every instruction kind except Nop to its retrogolib
// instruction definition.
var mnemonics = map[instruction.Kind]*chip8.Instruction{
	instruction.Clear:              chip8.Cls,
	instruction.Return:             chip8.Ret,
	instruction.Jump:               chip8.Jp,
	instruction.Call:               chip8.Call,
	instruction.SkipEqIm:           chip8.Se,
	instruction.SkipNeIm:           chip8.Sne,
	instruction.SkipEq:             chip8.Se,
	instruction.LoadIm:             chip8.Ld,
	instruction.AddIm:              chip8.Add,
	instruction.Move:               chip8.Ld,
	instruction.Or:                 chip8.Or,
	instruction.And:                chip8.And,
	instruction.Xor:                chip8.Xor,
	instruction.Add:                chip8.Add,
	instruction.Sub:                chip8.Sub,
	instruction.Shr:                chip8.Shr,
	instruction.SubN:               chip8.Subn,
	instruction.Shl:                chip8.Shl,
	instruction.SkipNe:             chip8.Sne,
	instruction.LoadI:              chip8.Ld,
	instruction.JumpOff:            chip8.Jp,
	instruction.Rnd:                chip8.Rnd,
	instruction.Draw:               chip8.Drw,
	instruction.SkipPressed:        chip8.Skp,
	instruction.SkipNotPressed:     chip8.Sknp,
	instruction.LoadFromDelayTimer: chip8.Ld,
	instruction.WaitKeypress:       chip8.Ld,
	instruction.LoadDelayTimer:     chip8.Ld,
	instruction.LoadSoundTimer:     chip8.Ld,
	instruction.AddI:               chip8.Add,
	instruction.SetSpriteAddr:      chip8.Ld,
	instruction.StoreBcd:           chip8.Ld,
	instruction.StoreRegs:          chip8.Ld,
	instruction.LoadRegs:           chip8.Ld,
}

// Mnemonic returns the instruction name, or an empty string for Nop.
func Mnemonic(ins instruction.Instruction) string {
	def, ok := mnemonics[ins.Kind]
	if !ok {
		return ""
	}
	return def.Name
}

// Format returns the instruction in assembly syntax. Opcodes that do not
// decode are emitted as a data word.
//
//nolint:cyclop // one case per operand layout
func Format(ins instruction.Instruction) string {
	if ins.IsNop() {
		return fmt.Sprintf(".word $%04X", ins.Raw)
	}

	name := Mnemonic(ins)
	switch ins.Kind {
	case instruction.Clear, instruction.Return:
		return name

	case instruction.Jump, instruction.Call:
		return fmt.Sprintf("%s $%03X", name, ins.NNN)

	case instruction.JumpOff:
		return fmt.Sprintf("%s V0, $%03X", name, ins.NNN)

	case instruction.LoadI:
		return fmt.Sprintf("%s I, $%03X", name, ins.NNN)

	case instruction.SkipEqIm, instruction.SkipNeIm, instruction.LoadIm, instruction.AddIm, instruction.Rnd:
		return fmt.Sprintf("%s V%X, $%02X", name, ins.X, ins.KK)

	case instruction.SkipEq, instruction.SkipNe, instruction.Move, instruction.Or, instruction.And,
		instruction.Xor, instruction.Add, instruction.Sub, instruction.SubN:
		return fmt.Sprintf("%s V%X, V%X", name, ins.X, ins.Y)

	case instruction.Shr, instruction.Shl, instruction.SkipPressed, instruction.SkipNotPressed:
		return fmt.Sprintf("%s V%X", name, ins.X)

	case instruction.Draw:
		return fmt.Sprintf("%s V%X, V%X, $%X", name, ins.X, ins.Y, ins.N)

	case instruction.LoadFromDelayTimer:
		return fmt.Sprintf("%s V%X, DT", name, ins.X)
	case instruction.WaitKeypress:
		return fmt.Sprintf("%s V%X, K", name, ins.X)
	case instruction.LoadDelayTimer:
		return fmt.Sprintf("%s DT, V%X", name, ins.X)
	case instruction.LoadSoundTimer:
		return fmt.Sprintf("%s ST, V%X", name, ins.X)
	case instruction.AddI:
		return fmt.Sprintf("%s I, V%X", name, ins.X)
	case instruction.SetSpriteAddr:
		return fmt.Sprintf("%s F, V%X", name, ins.X)
	case instruction.StoreBcd:
		return fmt.Sprintf("%s B, V%X", name, ins.X)
	case instruction.StoreRegs:
		return fmt.Sprintf("%s [I], V%X", name, ins.X)
	case instruction.LoadRegs:
		return fmt.Sprintf("%s V%X, [I]", name, ins.X)

	default:
		panic(fmt.Sprintf("unhandled instruction kind %s", ins.Kind))
	}
}

// Listing writes a linear disassembly of the program, one opcode word per
// line, addressed from base. A trailing odd byte is emitted as data.
// Call, jump and skip targets inside the program get a label line and an
// unconditional transfer of control is followed by a blank line.
func Listing(w io.Writer, program []byte, base uint16) error {
	labels := branchLabels(program, base)
	previousSkip := false

	for offset := 0; offset < len(program); offset += 2 {
		address := base + uint16(offset)

		if label, ok := labels[address]; ok {
			if err := writeLine(w, "%s:\n", label); err != nil {
				return err
			}
		}

		if offset+1 >= len(program) {
			return writeLine(w, "%03X: %02X    .byte $%02X\n", address, program[offset], program[offset])
		}

		word := uint16(program[offset])<<8 | uint16(program[offset+1])
		ins := instruction.Decode(word)
		if err := writeLine(w, "%03X: %04X  %s\n", address, word, Format(ins)); err != nil {
			return err
		}

		// a skipped jump or return is conditional, the flow continues
		if (ins.IsJump() || ins.IsReturn()) && !previousSkip {
			if err := writeLine(w, "\n"); err != nil {
				return err
			}
		}
		previousSkip = ins.IsSkip()
	}
	return nil
}

// branchLabels returns the label names of all word aligned call, jump and
// skip targets that are inside the program. A call target is named as a
// function even if it is also jumped to.
func branchLabels(program []byte, base uint16) map[uint16]string {
	labels := make(map[uint16]string)
	end := int(base) + len(program)

	for offset := 0; offset+1 < len(program); offset += 2 {
		address := base + uint16(offset)
		word := uint16(program[offset])<<8 | uint16(program[offset+1])
		ins := instruction.Decode(word)

		var target int
		naming := labelNaming
		switch {
		case ins.IsCall():
			target = int(ins.NNN)
			naming = functionNaming
		case ins.IsJump() && ins.Kind != instruction.JumpOff:
			target = int(ins.NNN)
		case ins.IsSkip():
			target = int(address) + 4
		default:
			continue
		}

		if target < int(base) || target >= end || (target-int(base))%2 != 0 {
			continue
		}
		if _, ok := labels[uint16(target)]; ok && naming == labelNaming {
			continue
		}
		labels[uint16(target)] = fmt.Sprintf(naming, target)
	}
	return labels
}

func writeLine(w io.Writer, format string, args ...any) error {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}
