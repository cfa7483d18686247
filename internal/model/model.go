// Package model implements the image model described in spec.md: an
// immutable byte image, the offset-keyed reference database that records
// what every covered byte means, the recursive control-flow follower that
// populates it, and the deterministic emitter that renders it as GNU
// assembler source.
package model

import "thumbdisasm/internal/decode"

// ImageModel is the façade described in spec.md §3.7/§6.2. It owns the
// RefDB, the decoded image, and the decoder handle — the only mutable state
// in the system (spec.md §9 "Global mutable state: None beyond the
// ImageModel instance itself").
type ImageModel struct {
	decoder decode.Decoder
	img     *Image
	refs    *RefDB
	log     Logger
}

// New constructs an ImageModel around decoder. Pass a nil Logger to discard
// diagnostics.
func New(decoder decode.Decoder, log Logger) *ImageModel {
	if log == nil {
		log = nopLogger{}
	}
	return &ImageModel{decoder: decoder, refs: NewRefDB(), log: log}
}

// LoadImage installs data as the analysis target, loaded at address base.
// Once installed, base and the image contents do not change for the
// lifetime of the analysis pass (spec.md §3.6).
func (m *ImageModel) LoadImage(data []byte, base uint64) {
	m.img = NewImage(data, base)
}

// MakeCode renders the current RefDB as assembler text. It is read-only
// with respect to the RefDB (spec.md §3.7). On a MissingTargetLabel failure
// it logs the error and returns an empty string, matching the outward
// contract in spec.md §6.2 ("make_code() → assembler_text | empty_on_error");
// callers that need the error itself should call Emit directly.
func (m *ImageModel) MakeCode() string {
	text, err := Emit(m.img, m.refs)
	if err != nil {
		m.log.Error("emission failed", "err", err)
		return ""
	}
	return text
}

// RefDB exposes the underlying reference database, primarily for tests that
// assert on RefElem fields directly (spec.md §8 testable properties).
func (m *ImageModel) RefDB() *RefDB { return m.refs }

// Image exposes the underlying byte image.
func (m *ImageModel) Image() *Image { return m.img }
