package model

import "thumbdisasm/internal/decode"

// scriptedDecoder is the test double described in spec.md §9 ("abstract
// [the decoder] behind a trait/interface so alternative decoders, including
// a test double that yields scripted instructions, can be injected"). It
// answers DecodeOne by address lookup rather than actually decoding bytes,
// which lets follower/emitter tests pin down exact RefDB shapes without a
// cgo dependency on Capstone.
type scriptedDecoder struct {
	insns map[uint64]*decode.Instruction
}

func newScriptedDecoder(insns map[uint64]*decode.Instruction) *scriptedDecoder {
	return &scriptedDecoder{insns: insns}
}

func (d *scriptedDecoder) DecodeOne(_ []byte, addr uint64) (*decode.Instruction, error) {
	insn, ok := d.insns[addr]
	if !ok {
		return nil, decode.ErrDecode
	}
	return insn, nil
}

func (d *scriptedDecoder) RegName(r decode.Reg) string {
	return decode.DefaultRegName(r)
}

// recordingLogger captures log calls so tests can assert a rename (or other
// diagnostic) actually happened without depending on stderr formatting.
type recordingLogger struct {
	debug, warn, errs []string
}

func (l *recordingLogger) Debug(msg string, kv ...any) { l.debug = append(l.debug, msg) }
func (l *recordingLogger) Warn(msg string, kv ...any)  { l.warn = append(l.warn, msg) }
func (l *recordingLogger) Error(msg string, kv ...any) { l.errs = append(l.errs, msg) }
