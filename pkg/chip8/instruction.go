package chip8

import "fmt"

// Opcode identifies one of the virtual machine's operations. The names are
// descriptive rather than historical; the encoding each one corresponds to
// is listed in Decode.
type Opcode uint8

const (
	OpClear Opcode = iota
	OpReturn
	OpJump
	OpCall
	OpSkipEq
	OpSkipNeq
	OpSkipEqReg
	OpSetImmediate
	OpAddImmediate
	OpCopy
	OpOr
	OpAnd
	OpXor
	OpAdd
	OpSubtract
	OpRightShift
	OpSetVxToVyMinusVx
	OpLeftShift
	OpSkipNeqReg
	OpSetIndex
	OpJumpPcOffset
	OpRandom
	OpDraw
	OpSkipKeyPressed
	OpSkipKeyNotPressed
	OpSetVxToDelay
	OpAwaitKey
	OpSetDelay
	OpSetSound
	OpAddToIndex
	OpIndexToFont
	OpBCDToIndex
	OpDumpRegisters
	OpLoadRegisters
)

var opcodeNames = [...]string{
	OpClear:             "Clear",
	OpReturn:            "Return",
	OpJump:              "Jump",
	OpCall:              "Call",
	OpSkipEq:            "SkipEq",
	OpSkipNeq:           "SkipNeq",
	OpSkipEqReg:         "SkipEqReg",
	OpSetImmediate:      "SetImmediate",
	OpAddImmediate:      "AddImmediate",
	OpCopy:              "Copy",
	OpOr:                "Or",
	OpAnd:               "And",
	OpXor:               "Xor",
	OpAdd:               "Add",
	OpSubtract:          "Subtract",
	OpRightShift:        "RightShift",
	OpSetVxToVyMinusVx:  "SetVxToVyMinusVx",
	OpLeftShift:         "LeftShift",
	OpSkipNeqReg:        "SkipNeqReg",
	OpSetIndex:          "SetIndex",
	OpJumpPcOffset:      "JumpPcOffset",
	OpRandom:            "Random",
	OpDraw:              "Draw",
	OpSkipKeyPressed:    "SkipKeyPressed",
	OpSkipKeyNotPressed: "SkipKeyNotPressed",
	OpSetVxToDelay:      "SetVxToDelay",
	OpAwaitKey:          "AwaitKey",
	OpSetDelay:          "SetDelay",
	OpSetSound:          "SetSound",
	OpAddToIndex:        "AddToIndex",
	OpIndexToFont:       "IndexToFont",
	OpBCDToIndex:        "BCDToIndex",
	OpDumpRegisters:     "DumpRegisters",
	OpLoadRegisters:     "LoadRegisters",
}

func (o Opcode) String() string {
	if int(o) < len(opcodeNames) {
		return opcodeNames[o]
	}
	return fmt.Sprintf("Opcode(%d)", uint8(o))
}

// Instruction is one decoded instruction word: an opcode tag plus the
// operand fields meaningful for that opcode. Fields outside the opcode's
// encoding are left zero. Instructions are ephemeral, produced by Decode
// and discarded after execution.
type Instruction struct {
	Op  Opcode
	X   uint8  // register selector, bits 11-8
	Y   uint8  // register selector, bits 7-4
	N   uint8  // 4-bit literal, bits 3-0
	NN  uint8  // 8-bit literal, bits 7-0
	NNN uint16 // 12-bit address literal, bits 11-0
}

func (in Instruction) String() string {
	return fmt.Sprintf("%s{x:%X y:%X n:%X nn:%02X nnn:%03X}",
		in.Op, in.X, in.Y, in.N, in.NN, in.NNN)
}

// Decode translates a 16-bit instruction word into an Instruction. It is
// pure and total: every word yields an Instruction, ErrProgramNotCompatible
// (a 0NNN native routine call), or an InvalidInstructionError. Dispatch is
// on the top nibble; the 0x0, 0x8, 0xE and 0xF families dispatch again on
// the low byte or low nibble.
func Decode(word uint16) (Instruction, error) {
	x := uint8(word >> 8 & 0xF)
	y := uint8(word >> 4 & 0xF)
	n := uint8(word & 0xF)
	nn := uint8(word & 0xFF)
	nnn := word & 0xFFF

	switch word >> 12 {
	case 0x0:
		switch word {
		case 0x00E0:
			return Instruction{Op: OpClear}, nil
		case 0x00EE:
			return Instruction{Op: OpReturn}, nil
		}
		return Instruction{}, ErrProgramNotCompatible
	case 0x1: // 1NNN
		return Instruction{Op: OpJump, NNN: nnn}, nil
	case 0x2: // 2NNN
		return Instruction{Op: OpCall, NNN: nnn}, nil
	case 0x3: // 3XNN
		return Instruction{Op: OpSkipEq, X: x, NN: nn}, nil
	case 0x4: // 4XNN
		return Instruction{Op: OpSkipNeq, X: x, NN: nn}, nil
	case 0x5: // 5XY0
		return Instruction{Op: OpSkipEqReg, X: x, Y: y}, nil
	case 0x6: // 6XNN
		return Instruction{Op: OpSetImmediate, X: x, NN: nn}, nil
	case 0x7: // 7XNN
		return Instruction{Op: OpAddImmediate, X: x, NN: nn}, nil
	case 0x8:
		switch n {
		case 0x0: // 8XY0
			return Instruction{Op: OpCopy, X: x, Y: y}, nil
		case 0x1: // 8XY1
			return Instruction{Op: OpOr, X: x, Y: y}, nil
		case 0x2: // 8XY2
			return Instruction{Op: OpAnd, X: x, Y: y}, nil
		case 0x3: // 8XY3
			return Instruction{Op: OpXor, X: x, Y: y}, nil
		case 0x4: // 8XY4
			return Instruction{Op: OpAdd, X: x, Y: y}, nil
		case 0x5: // 8XY5
			return Instruction{Op: OpSubtract, X: x, Y: y}, nil
		case 0x6: // 8XY6
			return Instruction{Op: OpRightShift, X: x}, nil
		case 0x7: // 8XY7
			return Instruction{Op: OpSetVxToVyMinusVx, X: x, Y: y}, nil
		case 0xE: // 8XYE
			return Instruction{Op: OpLeftShift, X: x}, nil
		}
	case 0x9: // 9XY0
		return Instruction{Op: OpSkipNeqReg, X: x, Y: y}, nil
	case 0xA: // ANNN
		return Instruction{Op: OpSetIndex, NNN: nnn}, nil
	case 0xB: // BNNN
		return Instruction{Op: OpJumpPcOffset, NNN: nnn}, nil
	case 0xC: // CXNN
		return Instruction{Op: OpRandom, X: x, NN: nn}, nil
	case 0xD: // DXYN
		return Instruction{Op: OpDraw, X: x, Y: y, N: n}, nil
	case 0xE:
		switch nn {
		case 0x9E: // EX9E
			return Instruction{Op: OpSkipKeyPressed, X: x}, nil
		case 0xA1: // EXA1
			return Instruction{Op: OpSkipKeyNotPressed, X: x}, nil
		}
	case 0xF:
		switch nn {
		case 0x07: // FX07
			return Instruction{Op: OpSetVxToDelay, X: x}, nil
		case 0x0A: // FX0A
			return Instruction{Op: OpAwaitKey, X: x}, nil
		case 0x15: // FX15
			return Instruction{Op: OpSetDelay, X: x}, nil
		case 0x18: // FX18
			return Instruction{Op: OpSetSound, X: x}, nil
		case 0x1E: // FX1E
			return Instruction{Op: OpAddToIndex, X: x}, nil
		case 0x29: // FX29
			return Instruction{Op: OpIndexToFont, X: x}, nil
		case 0x33: // FX33
			return Instruction{Op: OpBCDToIndex, X: x}, nil
		case 0x55: // FX55
			return Instruction{Op: OpDumpRegisters, X: x}, nil
		case 0x65: // FX65
			return Instruction{Op: OpLoadRegisters, X: x}, nil
		}
	}

	return Instruction{}, &InvalidInstructionError{Word: word}
}
