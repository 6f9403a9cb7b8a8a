package lexer

import "regexp"

// Alternation exposes wordBoundaryAlternation (the longest-match-first
// word-boundary regex the timezone family uses) for callers outside the
// package. No package in this module calls it.
func Alternation(names []string) *regexp.Regexp {
	return wordBoundaryAlternation(names)
}
