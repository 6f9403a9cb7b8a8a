package lexer

import (
	"regexp"
	"strings"
)

// defaultPatterns returns the built-in regex used for a family when the
// caller's Tables did not supply one, compiled once per Tokenize call for
// the configured separators. The regex dialect assumed throughout is
// PCRE-like (named captures, \p{L}/\p{Currency_Symbol}, word boundaries)
// per spec.md §9 — Go's RE2 covers the subset actually used here (no
// look-behind is required anywhere).
func defaultPatterns(tabs *Tables) map[string]*regexp.Regexp {
	thousands := regexp.QuoteMeta(orDefault(tabs.ThousandsSeparator, "."))
	decimal := regexp.QuoteMeta(orDefault(tabs.DecimalSeparator, ","))

	numberBody := `[0-9][0-9` + thousands + `_]*(?:` + decimal + `[0-9]+)?[kMGTPZY]?`

	return map[string]*regexp.Regexp{
		"comment":  regexp.MustCompile(`(?://|#)[^\n]*$`),
		"field":    regexp.MustCompile(`\{[A-Za-z]+:[A-Za-z0-9_]+(?::[^}]*)?\}`),
		"atom":     regexp.MustCompile(`#[A-Za-z_][A-Za-z0-9_]*`),
		"percent":  regexp.MustCompile(`[+-]?(?:0[xXoObB][0-9a-fA-F]+|` + numberBody + `)\s*%`),
		"timezone": regexp.MustCompile(`(?i)\bGMT\s*([+-]?\s*[0-9]{1,2}(?::[0-9]{2})?)?\b`),
		"time":     regexp.MustCompile(`\b([01]?[0-9]|2[0-3]):([0-5][0-9])(?::([0-5][0-9]))?\s*([aApP][mM])?\b`),
		"number":   regexp.MustCompile(`0[xX][0-9a-fA-F]+|0[oO][0-7]+|0[bB][01]+|` + numberBody),
		"text":     regexp.MustCompile(`[\p{L}][\p{L}0-9_]*`),
		"operator": regexp.MustCompile(`[+\-*×/=()%^,]`),
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// wordBoundaryAlternation builds a single case-insensitive word-boundary
// regex matching any of names, longest first so multi-word aliases match
// before shorter prefixes.
func wordBoundaryAlternation(names []string) *regexp.Regexp {
	if len(names) == 0 {
		return nil
	}
	sorted := append([]string(nil), names...)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if len(sorted[j]) > len(sorted[i]) {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	quoted := make([]string, len(sorted))
	for i, n := range sorted {
		quoted[i] = regexp.QuoteMeta(n)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}
