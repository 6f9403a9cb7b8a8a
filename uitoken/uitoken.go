// Package uitoken implements the UI-token collection (spec.md C3): a
// byte-offset-to-character-offset map plus a collision-checked set of
// colored spans, emitted for external editor consumption.
//
// Grounded on the source the spec was distilled from
// (original_source/libsmartcalc/src/token/ui_token.rs) and, for the
// {start,end,kind} span shape itself, the token-role convention used by
// aretext's syntax/parser package in the retrieval pack.
package uitoken

import "sort"

// Kind is the color/role a span is tagged with for editor consumption,
// per spec.md §6.
type Kind int

const (
	Text Kind = iota
	Number
	Symbol1
	Symbol2
	DateTime
	Operator
	Comment
	VariableDefinition
	VariableUse
	Month
)

// Span is one non-overlapping colored region, in character coordinates.
type Span struct {
	Start, End int
	Kind       Kind
}

// Collection accumulates Spans for a single line, translating byte
// offsets (the unit regexes operate in) to character offsets (the unit
// editors want) and dropping any insertion that would collide with an
// existing span.
type Collection struct {
	spans     []Span
	charSizes []int // charSizes[byteOffset] = character index
}

// New builds a Collection for the given line text, precomputing the
// byte->char offset map.
func New(line string) *Collection {
	c := &Collection{charSizes: make([]int, 0, len(line))}
	charIdx := 0
	for _, r := range line {
		width := len(string(r))
		for b := 0; b < width; b++ {
			c.charSizes = append(c.charSizes, charIdx)
		}
		charIdx++
	}
	return c
}

func (c *Collection) charIndexOf(byteOffset int) int {
	if byteOffset < 0 {
		return 0
	}
	if byteOffset >= len(c.charSizes) {
		if len(c.charSizes) == 0 {
			return 0
		}
		return c.charSizes[len(c.charSizes)-1] + 1
	}
	return c.charSizes[byteOffset]
}

// collides reports whether [startChar,endChar) overlaps any existing
// span. Both the arguments and the stored spans are character offsets;
// the caller converts from byte offsets before calling.
func (c *Collection) collides(startChar, endChar int) bool {
	for _, s := range c.spans {
		if s.Start < endChar && startChar < s.End {
			return true
		}
	}
	return false
}

// Add registers a byte-offset span with the given Kind. The insertion is
// dropped, not an error, if it collides with an existing span (spec.md
// invariant: UI-token spans never overlap).
func (c *Collection) Add(byteStart, byteEnd int, kind Kind) {
	if byteStart >= byteEnd {
		return
	}
	startChar := c.charIndexOf(byteStart)
	endChar := c.charIndexOf(byteEnd)
	if c.collides(startChar, endChar) {
		return
	}
	c.spans = append(c.spans, Span{Start: startChar, End: endChar, Kind: kind})
}

// Update splices every span touching [byteStart,byteEnd) into a single
// span of the given Kind. Used when several lexical tokens coalesce into
// a variable-definition or rule-rewritten span.
func (c *Collection) Update(byteStart, byteEnd int, kind Kind) {
	startChar := c.charIndexOf(byteStart)
	endChar := c.charIndexOf(byteEnd)

	kept := c.spans[:0:0]
	for _, s := range c.spans {
		if s.Start < endChar && startChar < s.End {
			if s.Start < startChar {
				startChar = s.Start
			}
			if s.End > endChar {
				endChar = s.End
			}
			continue
		}
		kept = append(kept, s)
	}
	c.spans = append(kept, Span{Start: startChar, End: endChar, Kind: kind})
}

// Spans returns the accumulated spans sorted ascending by Start.
func (c *Collection) Spans() []Span {
	out := make([]Span, len(c.spans))
	copy(out, c.spans)
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}
