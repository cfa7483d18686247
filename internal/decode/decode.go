// Package decode defines the contract the control-flow follower uses to turn
// bytes into instructions. It is deliberately thin: the real decoding work
// happens in an external decoder (see internal/capdecode for the Capstone
// binding used in production, and internal/model's test files for a scripted
// double used in unit tests).
package decode

import "fmt"

// Opcode identifies the mnemonic class of a decoded instruction. Only the
// opcodes the follower branches on get their own constant; everything else
// decodes as OpOther and is treated as straight-line code.
type Opcode uint16

const (
	OpOther Opcode = iota
	OpB            // direct branch
	OpCBZ          // compare-and-branch-if-zero
	OpCBNZ         // compare-and-branch-if-nonzero
	OpBX           // branch/exchange, register
	OpPOP          // pop multiple registers
	OpBL           // branch and link (direct call)
	OpBLX          // branch and link/exchange, register
	OpTBB          // table branch byte
	OpLDR          // load register
)

// Cond is an ARM condition code. CondAL ("always") is the only one the
// follower treats specially (it turns a conditional branch into a dead end).
type Cond uint8

const CondAL Cond = 0xf

// Reg is a canonical ARM register id in the architectural numbering (r0-r12,
// sp=r13, lr=r14, pc=r15), not a backend decoder's internal enum. Decoder
// implementations translate whatever numbering their underlying decoder
// uses into this space, which is what lets the follower compare operands to
// RegPC without knowing anything about the decoder behind the interface.
type Reg int32

const (
	RegInvalid Reg = -1
	RegSP      Reg = 13
	RegLR      Reg = 14
	RegPC      Reg = 15
)

// DefaultRegName renders a canonical register id the way GNU assembler
// Thumb listings do. Decoder implementations may use this directly for
// RegName, since Thumb register naming is architectural, not decoder
// specific.
func DefaultRegName(r Reg) string {
	switch r {
	case RegSP:
		return "sp"
	case RegLR:
		return "lr"
	case RegPC:
		return "pc"
	}
	if r >= 0 && r <= 12 {
		return fmt.Sprintf("r%d", r)
	}
	return fmt.Sprintf("r%d", r)
}

// OperandKind distinguishes the three operand shapes the follower inspects.
type OperandKind uint8

const (
	OperandImm OperandKind = iota
	OperandReg
	OperandMem
)

// Operand is a single decoded operand. For OperandMem, Base/Disp describe a
// `[base, #disp]` addressing form; Index is set when the memory operand has
// a register index instead of (or in addition to) the PC-relative base the
// follower cares about.
type Operand struct {
	Kind  OperandKind
	Imm   int64
	Reg   Reg
	Base  Reg
	Index Reg
	Disp  int64
}

// Instruction is the decoded-instruction record the follower consumes. It
// mirrors the contract in spec.md §4.2: a stable numeric id, textual
// mnemonic/operands, byte size, structured operands, and a condition code.
type Instruction struct {
	ID       Opcode
	Mnemonic string
	OpStr    string
	Size     uint8
	Operands []Operand
	Cond     Cond
}

// Decoder wraps an external Thumb instruction decoder. DecodeOne decodes a
// single instruction starting at addr from the front of code; it returns
// ErrDecode when the bytes at addr do not form a valid Thumb instruction.
// Implementations must not consume input on failure.
type Decoder interface {
	DecodeOne(code []byte, addr uint64) (*Instruction, error)
	RegName(r Reg) string
}

// ErrDecode is returned by Decoder.DecodeOne when the bytes at the requested
// address do not decode. The follower treats this as terminal for the
// current path (spec.md §4.5).
var ErrDecode = fmt.Errorf("decode: invalid instruction")
