package model

import (
	"fmt"
	"strings"
)

// ErrMissingTargetLabel is returned by Emit when an FTarget reference points
// at an offset with no RefDB entry, or one with an empty label (spec.md §7,
// error kind 4). Emission aborts entirely when this happens: the listing
// would not be assembleable.
var ErrMissingTargetLabel = fmt.Errorf("emit: missing target label")

const header = ".syntax unified\n.cpu cortex-m3\n.text\n.thumb\n\n"

// Emit performs the deterministic linear sweep over the image described in
// spec.md §4.4, rendering each RefDB entry as an assembler line and
// uncovered bytes as `.byte` directives. It is a pure function of
// (img, refs) and never mutates either. Grounded statement-for-statement on
// ImageModel::makeCode in original_source/imagemodel.cpp.
func Emit(img *Image, refs *RefDB) (string, error) {
	var b strings.Builder
	b.WriteString(header)

	// Initialised to DATA so the first covered region does not receive a
	// separating blank line if it is itself DATA (spec.md §4.4).
	prev := DATA

	size := img.Size()
	for i := uint64(0); i < size; {
		elem := refs.Get(i)
		if elem == nil {
			if prev == CODE || prev == DATA {
				b.WriteString("\n")
			}
			raw, err := img.ByteAt(i)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&b, ".byte 0x%02X\n", raw)
			i++
			prev = RAW
			continue
		}

		if prev != elem.Type {
			b.WriteString("\n")
		}
		if elem.Flags&FlagThumbFunc != 0 {
			b.WriteString(".thumb_func\n")
		}
		if elem.HasLabel() {
			b.WriteString(elem.Label)
			b.WriteString(":\n")
		}

		text, err := renderText(elem, refs, img.Base())
		if err != nil {
			return "", err
		}
		b.WriteString("    ")
		b.WriteString(text)
		b.WriteString("\n")

		prev = elem.Type
		i += uint64(elem.Size)
	}

	return b.String(), nil
}

func renderText(elem *RefElem, refs *RefDB, base uint64) (string, error) {
	switch elem.FType {
	case FString:
		return elem.Str, nil
	case FTarget:
		target := refs.Get(elem.Target - base)
		if target == nil || !target.HasLabel() {
			return "", fmt.Errorf("%w: 0x%X", ErrMissingTargetLabel, elem.Target)
		}
		return elem.Str + target.Label + elem.Suffix, nil
	default:
		return elem.Str, nil
	}
}
