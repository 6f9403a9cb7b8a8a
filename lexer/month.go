package lexer

import "github.com/natcalc/natcalc/token"

// TagMonths implements C5, the per-language month pre-pass: every Active
// Text token whose original substring (ASCII-lowercased) names a long or short
// month is retagged in place to a token.Month. It runs after C4 and
// before C6 (alias), consuming Text tokens a later alias/rule pass would
// otherwise have to recognize by literal string match (spec.md §4.5-ish
// "C5 Language Tokenizer" in the component ordering of §1).
func TagMonths(list token.List, long, short map[string]int) {
	for _, info := range list {
		if !info.Active() {
			continue
		}
		text, ok := info.Type.(token.Text)
		if !ok {
			continue
		}
		key := lowerASCII(text.Value)
		if n, ok := long[key]; ok {
			info.Type = token.Month{Month: n}
			continue
		}
		if n, ok := short[key]; ok {
			info.Type = token.Month{Month: n}
		}
	}
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
