// Package variable implements C7: the per-session variable store and
// the longest-match rewriter that substitutes known variable names with
// Variable tokens before rule matching runs.
//
// Grounded on original_source/libsmartcalc/src/token/variable_info.rs
// (index-stable VariableInfo; pattern stored as the defining TokenType
// run) and the teacher's session-scoped accumulator style in
// session.go.
package variable

import (
	"github.com/natcalc/natcalc/token"
)

// Info is one named variable: stable index, defining token pattern, and
// currently bound value (spec.md §3 VariableInfo).
type Info struct {
	Index  int
	Name   string
	Tokens []token.Type
	Data   token.Type
}

func (v *Info) VarIndex() int { return v.Index }
func (v *Info) VarName() string { return v.Name }
func (v *Info) Bound() (token.Type, bool) {
	if v.Data == nil {
		return nil, false
	}
	return v.Data, true
}

// Store holds every variable defined so far in a session, by stable
// index. Reassigning a name mutates the existing entry in place.
type Store struct {
	vars []*Info
}

// Define returns the existing variable with this name, or creates and
// appends a new one.
func (s *Store) Define(name string, tokens []token.Type) *Info {
	for _, v := range s.vars {
		if v.Name == name {
			v.Tokens = tokens
			return v
		}
	}
	v := &Info{Index: len(s.vars), Name: name, Tokens: tokens}
	s.vars = append(s.vars, v)
	return v
}

// Get returns a variable by index.
func (s *Store) Get(index int) (*Info, bool) {
	if index < 0 || index >= len(s.vars) {
		return nil, false
	}
	return s.vars[index], true
}

// All returns every defined variable, in definition order.
func (s *Store) All() []*Info { return s.vars }

// Rewrite finds the leftmost known-variable token-run at or after
// searchFrom (the longest one when several variables match at that
// position) and replaces it with a single Variable token whose
// span covers the whole run (spec.md §4.7). It repeats to fixpoint,
// returning the rewritten list.
func (s *Store) Rewrite(list token.List, searchFrom int) token.List {
	for {
		bestLen, bestPos, bestVar := 0, -1, (*Info)(nil)
		for pos := searchFrom; pos < len(list); pos++ {
			for _, v := range s.vars {
				if n := matchLen(list, pos, v.Tokens); n > 0 {
					if n > bestLen {
						bestLen, bestPos, bestVar = n, pos, v
					}
				}
			}
			if bestPos == pos {
				break // leftmost occurrence found at this position; ties broken by length above
			}
		}
		if bestPos < 0 {
			return list
		}
		list = spliceVariable(list, bestPos, bestLen, bestVar)
	}
}

// matchLen reports how many Active tokens starting at pos in list match
// pattern position-wise by TokenType semantic equality (or, for a
// Variable token already present, by its bound value).
func matchLen(list token.List, pos int, pattern []token.Type) int {
	li := pos
	for pi := 0; pi < len(pattern); pi++ {
		for li < len(list) && !list[li].Active() {
			li++
		}
		if li >= len(list) {
			return 0
		}
		if !tokenMatches(list[li].Type, pattern[pi]) {
			return 0
		}
		li++
	}
	return li - pos
}

func tokenMatches(actual, want token.Type) bool {
	if actual == nil || want == nil {
		return false
	}
	if vr, ok := actual.(token.Variable); ok && vr.Ref != nil {
		if bound, ok := vr.Ref.Bound(); ok {
			return bound.Equal(want)
		}
		return false
	}
	return actual.Equal(want)
}

func spliceVariable(list token.List, pos, n int, v *Info) token.List {
	start := list[pos].Start
	end := list[pos].End
	seen := 0
	original := ""
	for i := pos; i < len(list) && seen < n; i++ {
		if !list[i].Active() {
			continue
		}
		end = list[i].End
		original += list[i].Original
		list[i].Remove()
		seen++
	}
	replacement := &token.Info{
		Start:    start,
		End:      end,
		Type:     token.Variable{Ref: v},
		Original: original,
	}
	list = append(list, replacement)
	return list.Cleanup()
}
