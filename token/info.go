package token

import "sort"

// Status tracks whether a TokenInfo is still part of the live token
// stream or was consumed by a rule rewrite.
type Status int

const (
	StatusActive Status = iota
	StatusRemoved
)

// Info is a token in its textual context: the byte span it covers in the
// original line, its current (mutable) semantic type, and the original
// substring. Alias rewriting replaces Type in place; rule and variable
// rewriting mark the consumed tokens Removed, append a fresh Info and
// compact the list with Cleanup.
type Info struct {
	Start, End int // byte offsets into the source line
	Type       Type
	Original   string
	Status     Status
}

// Remove flips the token to Removed. Removed tokens are skipped by later
// matching passes but kept in the slice until cleanup.
func (i *Info) Remove() { i.Status = StatusRemoved }

// Active reports whether the token is still live.
func (i *Info) Active() bool { return i.Status == StatusActive }

// List is an ordered collection of token infos for one line.
type List []*Info

// Overlaps reports whether [start,end) collides with any Active token
// already in the list.
func (l List) Overlaps(start, end int) bool {
	for _, info := range l {
		if !info.Active() {
			continue
		}
		if info.Start < end && start < info.End {
			return true
		}
	}
	return false
}

// SortByStart sorts the list ascending by Start, the order every stage
// downstream of C4 assumes.
func (l List) SortByStart() {
	sort.Slice(l, func(i, j int) bool { return l[i].Start < l[j].Start })
}

// Cleanup removes Removed tokens and returns the sorted, compacted list.
// Every surviving Info is guaranteed Active with Type != nil afterwards.
func (l List) Cleanup() List {
	out := make(List, 0, len(l))
	for _, info := range l {
		if info.Active() && info.Type != nil {
			out = append(out, info)
		}
	}
	out.SortByStart()
	return out
}

// ActiveCount returns the number of Active tokens.
func (l List) ActiveCount() int {
	n := 0
	for _, info := range l {
		if info.Active() {
			n++
		}
	}
	return n
}

// Types extracts the TokenType sequence of the Active tokens, the form
// used to pattern-match a variable's defining tokens on later lines
// (spec.md §4.7) and to store VariableInfo.Tokens.
func (l List) Types() []Type {
	out := make([]Type, 0, len(l))
	for _, info := range l {
		if info.Active() {
			out = append(out, info.Type)
		}
	}
	return out
}
