package model

import "sort"

// LabelKind ranks the reason a byte received a label. Lower ordinal is
// higher priority: a later classification only ever replaces an existing
// label if its kind is less than or equal to the one already stored
// (spec.md §3.2). LNONE means "unlabelled".
type LabelKind uint8

const (
	NAMED LabelKind = iota
	CALL
	JUMP
	SWITCH
	LNONE
)

// RefKind is the kind of content a RefDB entry describes. RAW never appears
// on a stored RefElem — it exists so the emitter's region-kind tracker
// (spec.md §4.4 "prev") can represent "uncovered byte" with the same type it
// uses for CODE/DATA.
type RefKind uint8

const (
	// CODE is a decoded instruction.
	CODE RefKind = iota
	// DATA is a literal pool word (always 4 bytes).
	DATA
	// RAW is a byte not covered by RefDB, emitted as a single .byte.
	RAW
)

// FieldType selects how a RefElem's text is rendered.
type FieldType uint8

const (
	// FString renders Str verbatim.
	FString FieldType = iota
	// FTarget renders Str + label_of(Target) + Suffix, resolved at emit time.
	FTarget
)

// Flag bits for RefElem.Flags.
const (
	// FlagThumbFunc marks a symbol as a Thumb-mode function entry, causing
	// the emitter to print .thumb_func above its label.
	FlagThumbFunc uint8 = 1 << iota
)

// RefElem is the record RefDB stores for every covered byte range: either a
// decoded instruction or a literal pool word, its label (if any), and how to
// render its text.
type RefElem struct {
	Type  RefKind
	Size  uint32

	LType LabelKind
	Label string

	FType  FieldType
	Str    string
	Suffix string
	Target uint64

	Flags uint8
}

// HasLabel reports whether the element carries a non-empty label.
func (e *RefElem) HasLabel() bool { return e.Label != "" }

// RefDB is the offset-keyed database of classified image regions. Keys are
// file offsets; entries never overlap (spec.md §3.6) and, once installed,
// are never removed. After installation the follower changes only an
// entry's ltype/label (via SetLabel), its THUMBFUNC flag, and, for a literal
// pool word retargeted by BX/BLX handling, its rendering fields.
type RefDB struct {
	entries map[uint64]*RefElem
}

// NewRefDB returns an empty database.
func NewRefDB() *RefDB {
	return &RefDB{entries: make(map[uint64]*RefElem)}
}

// Contains reports whether offset already has an entry.
func (db *RefDB) Contains(offset uint64) bool {
	_, ok := db.entries[offset]
	return ok
}

// Get returns the entry at offset, or nil if there is none.
func (db *RefDB) Get(offset uint64) *RefElem {
	return db.entries[offset]
}

// Add inserts elem at offset. Calling Add on an already-occupied offset is a
// programming error — the follower avoids it via the "already disassembled"
// short-circuit (spec.md §4.1).
func (db *RefDB) Add(offset uint64, elem *RefElem) {
	if _, ok := db.entries[offset]; ok {
		panic("refdb: add into already-occupied offset")
	}
	db.entries[offset] = elem
}

// SetLabel applies the label-priority rule (spec.md §3.2) to e: the existing ltype/label are replaced iff kind <= the entry's
// current ltype (ties overwrite, new name wins). It reports whether the
// entry's label actually changed and, if so, the previous label string, so
// callers can log a rename the way the original implementation does.
func (e *RefElem) SetLabel(kind LabelKind, label string) (changed bool, previous string) {
	if kind > e.LType {
		return false, ""
	}
	previous = e.Label
	e.LType = kind
	e.Label = label
	return previous != label, previous
}

// Offsets returns every stored offset in ascending order, the order the
// emitter sweeps the image in.
func (db *RefDB) Offsets() []uint64 {
	offs := make([]uint64, 0, len(db.entries))
	for o := range db.entries {
		offs = append(offs, o)
	}
	sort.Slice(offs, func(i, j int) bool { return offs[i] < offs[j] })
	return offs
}
