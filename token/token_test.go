package token

import "testing"

func TestKindEqual(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Type
		equal bool
	}{
		{"numbers equal", Number{Value: 1.5}, Number{Value: 1.5}, true},
		{"numbers differ", Number{Value: 1.5}, Number{Value: 2}, false},
		{"money same currency", Money{Value: 10, Currency: "USD"}, Money{Value: 10, Currency: "USD"}, true},
		{"money different currency", Money{Value: 10, Currency: "USD"}, Money{Value: 10, Currency: "EUR"}, false},
		{"text same", Text{Value: "abc"}, Text{Value: "abc"}, true},
		{"different kinds", Number{Value: 1}, Text{Value: "1"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.equal {
				t.Errorf("Equal() = %v, want %v", got, tt.equal)
			}
		})
	}
}

func TestListCleanupDropsRemoved(t *testing.T) {
	a := &Info{Start: 5, End: 6, Type: Number{Value: 2}}
	b := &Info{Start: 0, End: 1, Type: Number{Value: 1}}
	removed := &Info{Start: 2, End: 3, Type: Number{Value: 9}}
	removed.Remove()

	list := List{a, removed, b}
	out := list.Cleanup()

	if len(out) != 2 {
		t.Fatalf("expected 2 surviving tokens, got %d", len(out))
	}
	if out[0] != b || out[1] != a {
		t.Errorf("expected cleanup to sort by Start, got %v then %v", out[0], out[1])
	}
}

func TestListOverlaps(t *testing.T) {
	list := List{{Start: 2, End: 5, Type: Number{Value: 1}}}
	if !list.Overlaps(4, 6) {
		t.Error("expected overlap for [4,6) against [2,5)")
	}
	if list.Overlaps(5, 7) {
		t.Error("did not expect overlap for [5,7) against [2,5)")
	}
}

func TestListActiveCount(t *testing.T) {
	removed := &Info{Type: Number{Value: 1}}
	removed.Remove()
	list := List{{Type: Number{Value: 1}}, removed, {Type: Number{Value: 2}}}
	if got := list.ActiveCount(); got != 2 {
		t.Errorf("ActiveCount() = %d, want 2", got)
	}
}

type fakeVarRef struct {
	idx  int
	name string
}

func (f fakeVarRef) VarIndex() int       { return f.idx }
func (f fakeVarRef) VarName() string     { return f.name }
func (f fakeVarRef) Bound() (Type, bool) { return Number{Value: 1}, true }

func TestVariableEqualByIndex(t *testing.T) {
	a := Variable{Ref: fakeVarRef{idx: 1, name: "x"}}
	b := Variable{Ref: fakeVarRef{idx: 1, name: "renamed"}}
	c := Variable{Ref: fakeVarRef{idx: 2, name: "x"}}

	if !a.Equal(b) {
		t.Error("expected variables with the same index to be equal regardless of name")
	}
	if a.Equal(c) {
		t.Error("did not expect variables with different indices to be equal")
	}
}
