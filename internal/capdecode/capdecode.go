// Package capdecode adapts github.com/pokemium/gapstone (a Go binding for
// the Capstone disassembly engine) to the internal/decode.Decoder contract.
// It is the one genuinely Thumb-capable decoder in the example pack this
// system was grounded on; golang.org/x/arch only ships arm64/x86/ppc64
// decoders. Grounded on gbadis.Disassemble/analyzeCodeBlock in the teacher
// repository (akatsuki105-gbadisasm-go).
package capdecode

import (
	"fmt"

	g "github.com/pokemium/gapstone"

	"thumbdisasm/internal/decode"
)

// Decoder wraps a single gapstone engine instance configured for
// CS_ARCH_ARM/CS_MODE_THUMB with full operand detail enabled.
type Decoder struct {
	engine g.Engine
}

// New opens the underlying Capstone engine. An error here is a
// DecoderInitFailure (spec.md §7.1): the caller should treat the returned
// error as fatal to constructing an ImageModel rather than retrying.
func New() (*Decoder, error) {
	engine, err := g.New(g.CS_ARCH_ARM, g.CS_MODE_THUMB)
	if err != nil {
		return nil, fmt.Errorf("capdecode: open capstone: %w", err)
	}
	if err := engine.SetOption(g.CS_OPT_DETAIL, g.CS_OPT_ON); err != nil {
		engine.Close()
		return nil, fmt.Errorf("capdecode: enable detail mode: %w", err)
	}
	return &Decoder{engine: engine}, nil
}

// Close releases the Capstone handle. It must be called once the decoder is
// no longer needed (spec.md §5 "resources").
func (d *Decoder) Close() error {
	return d.engine.Close()
}

// DecodeOne decodes a single Thumb instruction at addr from the front of
// code.
func (d *Decoder) DecodeOne(code []byte, addr uint64) (*decode.Instruction, error) {
	insns, err := d.engine.Disasm(code, addr, 1)
	if err != nil || len(insns) == 0 {
		return nil, decode.ErrDecode
	}
	return d.toInstruction(&insns[0]), nil
}

// RegName renders a canonical register id. Thumb register naming is
// architectural, not Capstone specific, so this defers to
// decode.DefaultRegName rather than asking Capstone to format it.
func (d *Decoder) RegName(r decode.Reg) string {
	return decode.DefaultRegName(r)
}

func (d *Decoder) toInstruction(insn *g.Instruction) *decode.Instruction {
	out := &decode.Instruction{
		ID:       classify(insn),
		Mnemonic: insn.Mnemonic,
		OpStr:    insn.OpStr,
		Size:     uint8(insn.Size),
	}
	if insn.Arm != nil {
		out.Cond = decode.Cond(insn.Arm.CC)
		out.Operands = make([]decode.Operand, len(insn.Arm.Operands))
		for i, o := range insn.Arm.Operands {
			out.Operands[i] = d.toOperand(o)
		}
	}
	return out
}

func (d *Decoder) toOperand(o g.ArmOperand) decode.Operand {
	switch o.Type {
	case g.ARM_OP_IMM:
		return decode.Operand{Kind: decode.OperandImm, Imm: int64(o.Imm)}
	case g.ARM_OP_REG:
		return decode.Operand{Kind: decode.OperandReg, Reg: mapReg(o.Reg)}
	case g.ARM_OP_MEM:
		return decode.Operand{
			Kind:  decode.OperandMem,
			Base:  mapReg(o.Mem.Base),
			Index: mapReg(o.Mem.Index),
			Disp:  int64(o.Mem.Disp),
		}
	default:
		return decode.Operand{}
	}
}

func classify(insn *g.Instruction) decode.Opcode {
	switch insn.Id {
	case g.ARM_INS_B:
		return decode.OpB
	case g.ARM_INS_CBZ:
		return decode.OpCBZ
	case g.ARM_INS_CBNZ:
		return decode.OpCBNZ
	case g.ARM_INS_BX:
		return decode.OpBX
	case g.ARM_INS_POP:
		return decode.OpPOP
	case g.ARM_INS_BL:
		return decode.OpBL
	case g.ARM_INS_BLX:
		return decode.OpBLX
	case g.ARM_INS_TBB:
		return decode.OpTBB
	case g.ARM_INS_LDR:
		return decode.OpLDR
	default:
		return decode.OpOther
	}
}

// mapReg translates a Capstone ARM register id into the canonical
// architectural numbering internal/decode uses. Capstone aliases
// ARM_REG_R13/R14/R15 to ARM_REG_SP/LR/PC, so mapping both names to the same
// canonical id keeps the follower's RegPC comparisons correct regardless of
// which alias Capstone reports for a given operand.
func mapReg(r g.ArmReg) decode.Reg {
	switch r {
	case g.ARM_REG_INVALID:
		return decode.RegInvalid
	case g.ARM_REG_SP:
		return decode.RegSP
	case g.ARM_REG_LR:
		return decode.RegLR
	case g.ARM_REG_PC:
		return decode.RegPC
	}
	for i := g.ARM_REG_R0; i <= g.ARM_REG_R12; i++ {
		if r == i {
			return decode.Reg(r - g.ARM_REG_R0)
		}
	}
	return decode.RegInvalid
}
