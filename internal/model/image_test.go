package model

import (
	"errors"
	"testing"
)

func TestImageContainsAndOffset(t *testing.T) {
	img := NewImage(make([]byte, 0x10), 0x8000000)

	if !img.Contains(0x8000000) || !img.Contains(0x800000F) {
		t.Errorf("expected 0x8000000 and 0x800000F to be contained")
	}
	if img.Contains(0x8000010) {
		t.Errorf("0x8000010 (base+size) must not be contained")
	}
	if img.Contains(0x7FFFFFF) {
		t.Errorf("address below base must not be contained")
	}

	if _, err := img.Offset(0x8000010); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Offset(base+size) err = %v, want ErrOutOfRange", err)
	}
	off, err := img.Offset(0x8000004)
	if err != nil || off != 4 {
		t.Errorf("Offset(base+4) = %d/%v, want 4/nil", off, err)
	}
}

func TestImageByteAtBounds(t *testing.T) {
	img := NewImage([]byte{0xAA, 0xBB}, 0)

	b, err := img.ByteAt(1)
	if err != nil || b != 0xBB {
		t.Errorf("ByteAt(1) = 0x%X/%v, want 0xBB/nil", b, err)
	}
	if _, err := img.ByteAt(2); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("ByteAt(2) err = %v, want ErrOutOfRange", err)
	}
}

func TestImageWordAtLittleEndian(t *testing.T) {
	img := NewImage([]byte{0x01, 0x20, 0x00, 0x00, 0xFF}, 0)

	w, err := img.WordAt(0)
	if err != nil || w != 0x00002001 {
		t.Fatalf("WordAt(0) = 0x%08X/%v, want 0x00002001/nil", w, err)
	}
	if _, err := img.WordAt(2); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("WordAt(2) (runs past end) err = %v, want ErrOutOfRange", err)
	}
}

func TestImageBytesTruncates(t *testing.T) {
	img := NewImage([]byte{1, 2, 3}, 0)

	if got := img.Bytes(1); len(got) != 2 || got[0] != 2 {
		t.Errorf("Bytes(1) = %v, want [2 3]", got)
	}
	if got := img.Bytes(3); got != nil {
		t.Errorf("Bytes(size) = %v, want nil", got)
	}
}
