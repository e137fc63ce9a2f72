// Package instruction contains the decoded CHIP-8 instruction type and the
// opcode decoder.
package instruction

// Kind identifies the instruction variant.
type Kind uint8

// Instruction kinds, one per CHIP-8 opcode form.
const (
	Nop                Kind = iota // unknown or unsupported opcode
	Clear                          // 00E0
	Return                         // 00EE
	Jump                           // 1NNN
	Call                           // 2NNN
	SkipEqIm                       // 3XKK
	SkipNeIm                       // 4XKK
	SkipEq                         // 5XY0
	LoadIm                         // 6XKK
	AddIm                          // 7XKK
	Move                           // 8XY0
	Or                             // 8XY1
	And                            // 8XY2
	Xor                            // 8XY3
	Add                            // 8XY4
	Sub                            // 8XY5
	Shr                            // 8XY6
	SubN                           // 8XY7
	Shl                            // 8XYE
	SkipNe                         // 9XY0
	LoadI                          // ANNN
	JumpOff                        // BNNN
	Rnd                            // CXKK
	Draw                           // DXYN
	SkipPressed                    // EX9E
	SkipNotPressed                 // EXA1
	LoadFromDelayTimer             // FX07
	WaitKeypress                   // FX0A
	LoadDelayTimer                 // FX15
	LoadSoundTimer                 // FX18
	AddI                           // FX1E
	SetSpriteAddr                  // FX29
	StoreBcd                       // FX33
	StoreRegs                      // FX55
	LoadRegs                       // FX65

	kindCount
)

var kindNames = [kindCount]string{
	Nop:                "Nop",
	Clear:              "Clear",
	Return:             "Return",
	Jump:               "Jump",
	Call:               "Call",
	SkipEqIm:           "SkipEqIm",
	SkipNeIm:           "SkipNeIm",
	SkipEq:             "SkipEq",
	LoadIm:             "LoadIm",
	AddIm:              "AddIm",
	Move:               "Move",
	Or:                 "Or",
	And:                "And",
	Xor:                "Xor",
	Add:                "Add",
	Sub:                "Sub",
	Shr:                "Shr",
	SubN:               "SubN",
	Shl:                "Shl",
	SkipNe:             "SkipNe",
	LoadI:              "LoadI",
	JumpOff:            "JumpOff",
	Rnd:                "Rnd",
	Draw:               "Draw",
	SkipPressed:        "SkipPressed",
	SkipNotPressed:     "SkipNotPressed",
	LoadFromDelayTimer: "LoadFromDelayTimer",
	WaitKeypress:       "WaitKeypress",
	LoadDelayTimer:     "LoadDelayTimer",
	LoadSoundTimer:     "LoadSoundTimer",
	AddI:               "AddI",
	SetSpriteAddr:      "SetSpriteAddr",
	StoreBcd:           "StoreBcd",
	StoreRegs:          "StoreRegs",
	LoadRegs:           "LoadRegs",
}

// Kinds returns all instruction kinds in opcode table order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := Nop; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func (k Kind) String() string {
	if k >= kindCount {
		return "Kind(?)"
	}
	return kindNames[k]
}

// Instruction is a decoded instruction with its operands extracted from the
// opcode nibbles. Only the operands used by the Kind are meaningful.
type Instruction struct {
	Kind Kind
	Raw  uint16 // opcode word the instruction was decoded from

	X   uint8  // register index from the second nibble
	Y   uint8  // register index from the third nibble
	N   uint8  // 4 bit line count from the fourth nibble
	KK  uint8  // 8 bit immediate from the low byte
	NNN uint16 // 12 bit address from the low three nibbles
}

// IsNop returns true if the opcode did not decode to a known instruction.
func (i Instruction) IsNop() bool {
	return i.Kind == Nop
}

// IsCall returns true if the instruction is a subroutine call.
func (i Instruction) IsCall() bool {
	return i.Kind == Call
}

// IsJump returns true if the instruction is an unconditional jump.
func (i Instruction) IsJump() bool {
	return i.Kind == Jump || i.Kind == JumpOff
}

// IsReturn returns true if the instruction returns from a subroutine.
func (i Instruction) IsReturn() bool {
	return i.Kind == Return
}

// IsSkip returns true if the instruction conditionally skips the next one.
func (i Instruction) IsSkip() bool {
	switch i.Kind {
	case SkipEqIm, SkipNeIm, SkipEq, SkipNe, SkipPressed, SkipNotPressed:
		return true
	default:
		return false
	}
}
