// Package lexer implements C4 (the ordered, overlapping regex tokenizer)
// and C5 (the per-language month pre-pass). It is deliberately free of any
// dependency on package config: Tables carries whatever compiled data a
// particular call needs, so config (which bootstraps rule templates by
// feeding their text back through this package, spec.md §4.1) can import
// lexer without a cycle.
package lexer

import "regexp"

// CurrencyMeta is the subset of a currency's metadata the money family
// needs to recognize and parse literals.
type CurrencyMeta struct {
	Code                        string
	Symbol                      string
	ThousandsSeparator          string
	DecimalSeparator            string
	DecimalDigits               int
	SymbolOnLeft                bool
	SpaceBetweenAmountAndSymbol bool
}

// Tables is the compiled, read-only data the regex tokenizer consults.
// Every field is optional: a nil/empty table falls back to the family's
// built-in default pattern.
type Tables struct {
	// Configured regexes per family (spec.md §6 "parse" config field).
	// When non-empty they replace the family's built-in pattern.
	Comment []*regexp.Regexp
	Number  []*regexp.Regexp
	Text    []*regexp.Regexp

	// Money recognizes "<symbol><amount>", "<amount><symbol>" and
	// "<amount> <code>", keyed by symbol and by ISO code.
	CurrenciesBySymbol map[string]CurrencyMeta
	CurrenciesByCode   map[string]CurrencyMeta

	// Timezone recognizes named zones (case-insensitive) plus the
	// GMT[+-H[:MM]] family.
	TimezoneOffsets map[string]int // name (upper) -> minutes east of UTC

	// Atom resolves "#name" placeholders used only inside alias targets.
	Atoms map[string]AtomValue

	// FieldEnabled turns on recognition of "{TYPE:name[:literal]}"
	// template holes; only set when tokenizing rule-template text.
	FieldEnabled bool

	// Months, for the C5 language tokenizer: name (lowercased) -> 1..12.
	LongMonths  map[string]int
	ShortMonths map[string]int

	ThousandsSeparator string
	DecimalSeparator   string
}

// AtomValue is a pre-resolved token produced for an "#name" atom.
type AtomValue struct {
	Kind  string // "number", "money", "percent", ...
	Num   float64
	Text  string
}
