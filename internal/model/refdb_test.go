package model

import "testing"

func TestSetLabelPriority(t *testing.T) {
	tests := []struct {
		name       string
		start      LabelKind
		apply      LabelKind
		wantChange bool
		wantKind   LabelKind
	}{
		{"more important replaces less important", JUMP, CALL, true, CALL},
		{"less important does not replace", CALL, JUMP, false, CALL},
		{"equal priority ties overwrite the name", CALL, CALL, true, CALL},
		{"NAMED always wins", SWITCH, NAMED, true, NAMED},
		{"nothing outranks NAMED", NAMED, SWITCH, false, NAMED},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := &RefElem{LType: tc.start, Label: "old"}
			changed, prev := e.SetLabel(tc.apply, "new")
			if changed != tc.wantChange {
				t.Errorf("changed = %v, want %v", changed, tc.wantChange)
			}
			if e.LType != tc.wantKind {
				t.Errorf("resulting LType = %v, want %v", e.LType, tc.wantKind)
			}
			if changed {
				if prev != "old" {
					t.Errorf("previous = %q, want %q", prev, "old")
				}
				if e.Label != "new" {
					t.Errorf("label = %q, want %q", e.Label, "new")
				}
			} else if e.Label != "old" {
				t.Errorf("label changed to %q despite changed=false", e.Label)
			}
		})
	}
}

func TestSetLabelSameNameReportsNoChange(t *testing.T) {
	e := &RefElem{LType: CALL, Label: "call_1000"}
	changed, _ := e.SetLabel(CALL, "call_1000")
	if changed {
		t.Errorf("re-applying the same kind/label should report changed=false")
	}
}

func TestRefDBAddPanicsOnDoubleInsert(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected Add into an occupied offset to panic")
		}
	}()
	db := NewRefDB()
	db.Add(4, &RefElem{Type: CODE})
	db.Add(4, &RefElem{Type: DATA})
}

func TestRefDBOffsetsSorted(t *testing.T) {
	db := NewRefDB()
	for _, o := range []uint64{40, 4, 400, 0} {
		db.Add(o, &RefElem{Type: CODE})
	}
	got := db.Offsets()
	want := []uint64{0, 4, 40, 400}
	if len(got) != len(want) {
		t.Fatalf("len(Offsets()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Offsets()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestRefDBContainsAndGet(t *testing.T) {
	db := NewRefDB()
	if db.Contains(0) || db.Get(0) != nil {
		t.Errorf("empty RefDB should report no entry at offset 0")
	}
	elem := &RefElem{Type: DATA, Size: 4}
	db.Add(0, elem)
	if !db.Contains(0) {
		t.Errorf("Contains(0) = false after Add")
	}
	if db.Get(0) != elem {
		t.Errorf("Get(0) did not return the inserted element")
	}
}

func TestHasLabel(t *testing.T) {
	if (&RefElem{}).HasLabel() {
		t.Errorf("zero-value RefElem should report HasLabel() = false")
	}
	if !(&RefElem{Label: "x"}).HasLabel() {
		t.Errorf("RefElem with a non-empty label should report HasLabel() = true")
	}
}
