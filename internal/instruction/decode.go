package instruction

// nibbles splits an opcode word into its four nibbles, most significant first.
func nibbles(word uint16) (uint8, uint8, uint8, uint8) {
	return uint8(word>>12) & 0xF, uint8(word>>8) & 0xF, uint8(word>>4) & 0xF, uint8(word) & 0xF
}

// Decode decodes a big-endian opcode word. Opcodes that match no known form
// decode to a Nop instruction, decoding never fails.
func Decode(word uint16) Instruction {
	op, x, y, n := nibbles(word)
	ins := Instruction{
		Raw: word,
		X:   x,
		Y:   y,
		N:   n,
		KK:  uint8(word),
		NNN: word & 0x0FFF,
	}
	ins.Kind = decodeKind(op, x, y, n)
	return ins
}

//nolint:cyclop,funlen // mirrors the opcode table
func decodeKind(op, x, y, n uint8) Kind {
	switch op {
	case 0x0:
		switch {
		case x == 0 && y == 0xE && n == 0x0:
			return Clear
		case x == 0 && y == 0xE && n == 0xE:
			return Return
		}
	case 0x1:
		return Jump
	case 0x2:
		return Call
	case 0x3:
		return SkipEqIm
	case 0x4:
		return SkipNeIm
	case 0x5:
		if n == 0 {
			return SkipEq
		}
	case 0x6:
		return LoadIm
	case 0x7:
		return AddIm
	case 0x8:
		return decodeALU(n)
	case 0x9:
		if n == 0 {
			return SkipNe
		}
	case 0xA:
		return LoadI
	case 0xB:
		return JumpOff
	case 0xC:
		return Rnd
	case 0xD:
		return Draw
	case 0xE:
		switch {
		case y == 0x9 && n == 0xE:
			return SkipPressed
		case y == 0xA && n == 0x1:
			return SkipNotPressed
		}
	case 0xF:
		return decodeMisc(y<<4 | n)
	}
	return Nop
}

func decodeALU(n uint8) Kind {
	switch n {
	case 0x0:
		return Move
	case 0x1:
		return Or
	case 0x2:
		return And
	case 0x3:
		return Xor
	case 0x4:
		return Add
	case 0x5:
		return Sub
	case 0x6:
		return Shr
	case 0x7:
		return SubN
	case 0xE:
		return Shl
	default:
		return Nop
	}
}

func decodeMisc(low uint8) Kind {
	switch low {
	case 0x07:
		return LoadFromDelayTimer
	case 0x0A:
		return WaitKeypress
	case 0x15:
		return LoadDelayTimer
	case 0x18:
		return LoadSoundTimer
	case 0x1E:
		return AddI
	case 0x29:
		return SetSpriteAddr
	case 0x33:
		return StoreBcd
	case 0x55:
		return StoreRegs
	case 0x65:
		return LoadRegs
	default:
		return Nop
	}
}
