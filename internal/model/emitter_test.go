package model

import (
	"errors"
	"strings"
	"testing"
)

func TestEmitPlainInstruction(t *testing.T) {
	img := NewImage([]byte{0x00, 0xBF}, 0x1000)
	refs := NewRefDB()
	refs.Add(0, &RefElem{
		Type: CODE, Size: 2, LType: NAMED, Label: "start",
		FType: FString, Str: "nop",
	})

	text, err := Emit(img, refs)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(text, "start:\n    nop\n") {
		t.Errorf("missing label+instruction line:\n%s", text)
	}
	if !strings.HasPrefix(text, header) {
		t.Errorf("missing header:\n%s", text)
	}
}

func TestEmitTargetResolution(t *testing.T) {
	img := NewImage(make([]byte, 4), 0x1000)
	refs := NewRefDB()
	refs.Add(0, &RefElem{
		Type: CODE, Size: 2, LType: NAMED, Label: "entry",
		FType: FTarget, Str: "b ", Target: 0x1002,
	})
	refs.Add(2, &RefElem{
		Type: CODE, Size: 2, LType: JUMP, Label: "jump_1002",
		FType: FString, Str: "nop",
	})

	text, err := Emit(img, refs)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(text, "b jump_1002") {
		t.Errorf("missing resolved target reference:\n%s", text)
	}
}

func TestEmitMissingTargetLabelFails(t *testing.T) {
	img := NewImage(make([]byte, 2), 0x1000)
	refs := NewRefDB()
	refs.Add(0, &RefElem{
		Type: CODE, Size: 2, FType: FTarget, Str: "b ", Target: 0x2000,
	})

	if _, err := Emit(img, refs); !errors.Is(err, ErrMissingTargetLabel) {
		t.Errorf("Emit err = %v, want ErrMissingTargetLabel", err)
	}
}

func TestEmitMissingTargetLabelWhenTargetUnlabelled(t *testing.T) {
	img := NewImage(make([]byte, 4), 0x1000)
	refs := NewRefDB()
	refs.Add(0, &RefElem{
		Type: CODE, Size: 2, FType: FTarget, Str: "b ", Target: 0x1002,
	})
	// Target offset exists but was never given a label (e.g. an instruction
	// in the middle of a decoded block).
	refs.Add(2, &RefElem{Type: CODE, Size: 2, FType: FString, Str: "nop"})

	if _, err := Emit(img, refs); !errors.Is(err, ErrMissingTargetLabel) {
		t.Errorf("Emit err = %v, want ErrMissingTargetLabel for unlabelled target", err)
	}
}

func TestEmitThumbFuncDirective(t *testing.T) {
	img := NewImage(make([]byte, 2), 0x1000)
	refs := NewRefDB()
	refs.Add(0, &RefElem{
		Type: CODE, Size: 2, LType: JUMP, Label: "jump_1000",
		FType: FString, Str: "nop", Flags: FlagThumbFunc,
	})

	text, err := Emit(img, refs)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(text, ".thumb_func\njump_1000:\n") {
		t.Errorf("missing .thumb_func directive before label:\n%s", text)
	}
}

func TestEmitGapBytesAndBlankLines(t *testing.T) {
	img := NewImage(make([]byte, 4), 0x1000)
	refs := NewRefDB()
	refs.Add(0, &RefElem{Type: CODE, Size: 1, FType: FString, Str: "nop"})
	// Offsets 1-2 are uncovered; offset 3 is a DATA region.
	refs.Add(3, &RefElem{Type: DATA, Size: 1, FType: FString, Str: ".byte 0xFF"})

	text, err := Emit(img, refs)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if strings.Count(text, ".byte 0x00") != 2 {
		t.Errorf("expected two gap .byte lines for the uncovered bytes:\n%s", text)
	}
	if !strings.Contains(text, "    nop\n\n.byte 0x00\n.byte 0x00\n\n    .byte 0xFF\n") {
		t.Errorf("expected blank lines between the CODE, gap and DATA regions:\n%s", text)
	}
}

func TestEmitNeverMutatesRefDB(t *testing.T) {
	img := NewImage(make([]byte, 2), 0x1000)
	refs := NewRefDB()
	elem := &RefElem{Type: CODE, Size: 2, LType: NAMED, Label: "x", FType: FString, Str: "nop"}
	refs.Add(0, elem)
	before := *elem

	if _, err := Emit(img, refs); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if *elem != before {
		t.Errorf("Emit mutated the RefElem: %+v != %+v", *elem, before)
	}
}
