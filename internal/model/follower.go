package model

import (
	"fmt"
	"math"

	"thumbdisasm/internal/decode"
)

// AddEntry seeds analysis at addr with an optional name and drives the
// recursive control-flow follower from there. It may be called repeatedly
// to feed additional entry points (spec.md §3.7). The returned count of
// newly decoded instructions is advisory, not contractual (spec.md §6.2).
func (m *ImageModel) AddEntry(addr uint64, name string) int {
	if m.decoder == nil {
		// DecoderInitFailure leaves the instance inert (spec.md §7.1): every
		// AddEntry after a failed/absent decoder is a logged no-op rather
		// than a nil-interface panic.
		m.log.Error("decoder unavailable, instance is inert", "addr", fmt.Sprintf("0x%08X", addr))
		return 0
	}
	if name == "" {
		name = "loc_" + hexLabel(addr)
	}
	return m.disassembleFrom(addr, NAMED, name)
}

// disassembleFrom is the recursive control-flow follower (spec.md §4.3),
// grounded statement-for-statement on ImageModel::disassembleAddress in
// original_source/imagemodel.cpp.
func (m *ImageModel) disassembleFrom(startAddr uint64, kind LabelKind, label string) int {
	// Label reconciliation: if this address is already covered, merge the
	// new classification into its label per the priority rule and stop —
	// this is both the recursion-termination mechanism and how a branch
	// landing inside an already-decoded block gets re-labelled.
	preOffset := startAddr - m.img.Base()
	if elem := m.refs.Get(preOffset); elem != nil {
		if changed, prev := elem.SetLabel(kind, label); changed {
			m.log.Warn("rename label", "from", prev, "to", label, "addr", fmt.Sprintf("0x%08X", startAddr))
		}
		return 0
	}

	if startAddr < m.img.Base() {
		m.log.Error("entry address below base", "addr", fmt.Sprintf("0x%08X", startAddr))
		return 0
	}
	offset := startAddr - m.img.Base()
	if offset >= m.img.Size() {
		m.log.Error("entry address out of bounds", "addr", fmt.Sprintf("0x%08X", startAddr))
		return 0
	}

	total := 0
	addr := startAddr

	// LDR tracking state: remembers, for the immediately previous
	// instruction only, the destination register/address/value of a
	// PC-relative LDR so a following BX/BLX can resolve an indirect branch
	// materialised by it (spec.md §4.3 "LDR tracking state").
	ldrReg := decode.RegInvalid
	var ldrOffset uint64
	var ldrData uint32

	for {
		offset = addr - m.img.Base()
		if m.refs.Contains(offset) {
			// Flow merged into an already-analysed region.
			break
		}

		insn, err := m.decoder.DecodeOne(m.img.Bytes(offset), addr)
		if err != nil {
			m.log.Error("decode error", "addr", fmt.Sprintf("0x%08X", addr), "err", err)
			break
		}

		elem := &RefElem{
			Type:  CODE,
			Size:  uint32(insn.Size),
			LType: LNONE,
			FType: FString,
			Str:   insn.Mnemonic + " " + insn.OpStr,
		}
		if addr == startAddr {
			elem.LType = kind
			elem.Label = label
		}
		m.refs.Add(offset, elem)
		total++

		nextAddr := addr + uint64(insn.Size)
		stop := false
		ldrSetThisIter := false

		switch insn.ID {
		case decode.OpB:
			assertOperand(len(insn.Operands) == 1 && insn.Operands[0].Kind == decode.OperandImm, "B: expected one IMM operand")
			target := uint64(insn.Operands[0].Imm)
			elem.FType = FTarget
			elem.Target = target
			elem.Str = insn.Mnemonic + " "
			total += m.disassembleFrom(target, JUMP, "jump_"+hexLabel(target))
			if insn.Cond == decode.CondAL {
				stop = true
			}

		case decode.OpCBZ, decode.OpCBNZ:
			regName := m.decoder.RegName(insn.Operands[0].Reg)
			target := uint64(insn.Operands[1].Imm)
			elem.FType = FTarget
			elem.Target = target
			elem.Str = insn.Mnemonic + " " + regName + ", "
			total += m.disassembleFrom(target, JUMP, "jump_"+hexLabel(target))
			// Conditional: does not stop the current path.

		case decode.OpBX:
			reg := insn.Operands[0].Reg
			if ldrReg != decode.RegInvalid && reg == ldrReg {
				target := uint64(ldrData) &^ 1 // clear Thumb bit
				elem.FType = FTarget
				elem.Target = target
				elem.Str += " /* "
				elem.Suffix = " */ "
				if pool := m.refs.Get(ldrOffset); pool != nil {
					pool.FType = FTarget
					pool.Str = ".word "
					pool.Target = target
				}
				total += m.disassembleFrom(target, JUMP, "jump_"+hexLabel(target))
				m.markThumbFunc(target)
			} else {
				m.log.Debug("branch register", "addr", fmt.Sprintf("0x%08X", addr))
			}
			stop = true

		case decode.OpPOP:
			for _, o := range insn.Operands {
				if o.Kind == decode.OperandReg && o.Reg == decode.RegPC {
					stop = true
				}
			}

		case decode.OpBL:
			assertOperand(len(insn.Operands) == 1 && insn.Operands[0].Kind == decode.OperandImm, "BL: expected one IMM operand")
			target := uint64(insn.Operands[0].Imm)
			elem.FType = FTarget
			elem.Target = target
			elem.Str = insn.Mnemonic + " "
			total += m.disassembleFrom(target, CALL, "call_"+hexLabel(target))

		case decode.OpBLX:
			reg := insn.Operands[0].Reg
			if ldrReg != decode.RegInvalid && reg == ldrReg {
				target := uint64(ldrData) - 1 // subtract Thumb tag
				elem.FType = FTarget
				elem.Target = target
				elem.Str += " /* "
				elem.Suffix = " */ "
				if pool := m.refs.Get(ldrOffset); pool != nil {
					pool.FType = FTarget
					pool.Str = ".word "
					pool.Target = target
				}
				total += m.disassembleFrom(target, CALL, "call_"+hexLabel(target))
				m.markThumbFunc(target)
			}
			// Does not stop the current path.

		case decode.OpTBB:
			if len(insn.Operands) == 1 &&
				insn.Operands[0].Kind == decode.OperandMem &&
				insn.Operands[0].Base == decode.RegPC {
				total += m.expandJumpTable(insn, addr)
			} else {
				m.log.Debug("non-PC-relative TBB, not expanding jump table", "addr", fmt.Sprintf("0x%08X", addr))
			}
			// Bytes after the table are not-yet-disassembled; they will be
			// rendered as raw or discovered via other paths.
			return total

		case decode.OpLDR:
			if len(insn.Operands) == 2 &&
				insn.Operands[1].Kind == decode.OperandMem &&
				insn.Operands[1].Base == decode.RegPC {
				pc := (addr + 4) &^ 3
				laddr := uint64(int64(pc) + insn.Operands[1].Disp)
				loff, err := m.img.Offset(laddr)
				if err != nil {
					m.log.Error("pool load out of range", "addr", fmt.Sprintf("0x%08X", laddr))
					break
				}
				word, err := m.img.WordAt(loff)
				if err != nil {
					m.log.Error("pool word read out of range", "addr", fmt.Sprintf("0x%08X", laddr))
					break
				}

				ldrOffset, ldrReg, ldrData = loff, insn.Operands[0].Reg, word
				ldrSetThisIter = true

				elem.FType = FTarget
				elem.Target = laddr
				elem.Str += " /* "
				elem.Suffix = " */ "

				if !m.refs.Contains(loff) {
					m.refs.Add(loff, &RefElem{
						Type:  DATA,
						Size:  4,
						LType: LNONE,
						FType: FString,
						Str:   fmt.Sprintf(".word 0x%X", word),
						Label: "data_" + hexLabel(laddr),
					})
				}
			}
		}

		if stop {
			break
		}
		if !ldrSetThisIter {
			ldrReg = decode.RegInvalid
		}
		addr = nextAddr
	}

	return total
}

// markThumbFunc sets FlagThumbFunc on the RefElem at target, once it has
// been created by the recursive disassembleFrom call above. spec.md §9
// resolves the original's ambiguous `refs[base-addr]` as `refs[addr-base]`:
// annotate the indirect jump/call's resolved target, not an underflowed
// offset.
func (m *ImageModel) markThumbFunc(target uint64) {
	off, err := m.img.Offset(target)
	if err != nil {
		return
	}
	if elem := m.refs.Get(off); elem != nil {
		elem.Flags |= FlagThumbFunc
	}
}

// expandJumpTable implements the TBB (table branch byte) case of spec.md
// §4.3: scan bytes immediately after the instruction as a table of
// half-word case offsets, using the table's own contents as the bound on
// its own length (documented in spec.md §9 as a heuristic — sound only when
// the first case target immediately follows the table with no padding).
func (m *ImageModel) expandJumpTable(insn *decode.Instruction, addr uint64) int {
	total := 0
	cases := 0
	tableStart := addr + uint64(insn.Size)
	min := uint64(math.MaxUint64)

	for i := uint64(0); ; i++ {
		pos := tableStart + i
		if pos >= min {
			break
		}
		ofs, err := m.img.Offset(pos)
		if err != nil {
			break
		}
		b, err := m.img.ByteAt(ofs)
		if err != nil {
			break
		}
		boff := tableStart + uint64(b)<<1
		if boff <= pos {
			break
		}
		if boff < min {
			min = boff
		}
		cases++
		total += m.disassembleFrom(boff, SWITCH, "switch_"+hexLabel(boff))
	}

	if cases == 0 {
		m.log.Warn("jump table scan terminated without finding any case", "addr", fmt.Sprintf("0x%08X", addr))
	}

	return total
}

func assertOperand(ok bool, msg string) {
	if !ok {
		panic("decoder contract violation: " + msg)
	}
}

func hexLabel(addr uint64) string {
	return fmt.Sprintf("%X", addr)
}
