package model

import "fmt"

// Image is an immutable view of a loaded binary blob, addressed both by file
// offset and by the absolute address base+offset. It never clamps an
// out-of-range address; callers must check ErrOutOfRange themselves or via
// the Contains/ByteAt/WordAt accessors.
type Image struct {
	data []byte
	base uint64
}

// ErrOutOfRange is returned whenever an address or offset falls outside the
// loaded image.
var ErrOutOfRange = fmt.Errorf("image: address out of range")

// NewImage installs data as the image contents, loaded at address base.
func NewImage(data []byte, base uint64) *Image {
	return &Image{data: data, base: base}
}

// Base returns the load address of offset 0.
func (img *Image) Base() uint64 { return img.base }

// Size returns the number of bytes in the image.
func (img *Image) Size() uint64 { return uint64(len(img.data)) }

// Contains reports whether addr falls within [base, base+size).
func (img *Image) Contains(addr uint64) bool {
	if addr < img.base {
		return false
	}
	return addr-img.base < img.Size()
}

// Offset converts an absolute address to a file offset, failing if addr is
// out of range.
func (img *Image) Offset(addr uint64) (uint64, error) {
	if !img.Contains(addr) {
		return 0, fmt.Errorf("%w: 0x%08X", ErrOutOfRange, addr)
	}
	return addr - img.base, nil
}

// ByteAt reads a single byte at file offset ofs.
func (img *Image) ByteAt(ofs uint64) (byte, error) {
	if ofs >= img.Size() {
		return 0, fmt.Errorf("%w: offset 0x%X", ErrOutOfRange, ofs)
	}
	return img.data[ofs], nil
}

// WordAt reads a little-endian 32-bit word starting at file offset ofs. The
// read need not be 4-byte aligned.
func (img *Image) WordAt(ofs uint64) (uint32, error) {
	if ofs+4 > img.Size() {
		return 0, fmt.Errorf("%w: word at offset 0x%X", ErrOutOfRange, ofs)
	}
	b0 := uint32(img.data[ofs])
	b1 := uint32(img.data[ofs+1])
	b2 := uint32(img.data[ofs+2])
	b3 := uint32(img.data[ofs+3])
	return b3<<24 | b2<<16 | b1<<8 | b0, nil
}

// Bytes returns the raw slice starting at file offset ofs, truncated to the
// end of the image if it would otherwise run past it. It never panics.
func (img *Image) Bytes(ofs uint64) []byte {
	if ofs >= img.Size() {
		return nil
	}
	return img.data[ofs:]
}
