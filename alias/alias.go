// Package alias implements C6: rewriting a token's original text against
// the global and per-language alias maps, resolving matched targets to
// atoms.
//
// Grounded on original_source/libsmartcalc/src/tokinizer/alias.rs (the
// lowercase-match-then-retokenize-as-atom design) and the teacher's
// alias/normalize use of golang.org/x/text for casefolding.
package alias

import (
	"strings"

	"github.com/natcalc/natcalc/lexer"
	"github.com/natcalc/natcalc/token"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lowerer = cases.Lower(language.Und)

// Resolver resolves one piece of alias target text into zero, one, or
// many atom tokens, via the same atom family the lexer uses.
type Resolver struct {
	Global   map[string]string
	Language map[string]string
	Tables   lexer.Tables // must carry Atoms for the target language
}

// Warning describes an ambiguous alias (more than one atom produced).
// It is returned to the caller rather than aborting the line; this
// package does not log it.
type Warning struct {
	Original string
	Target   string
}

func (w Warning) Error() string {
	return "ambiguous alias: " + w.Original + " -> " + w.Target
}

// Apply rewrites every Active token-info in place whose lowercased
// original text matches a known alias. The per-language map is consulted
// first, so a per-language alias takes priority over a global one with
// the same key.
// It returns any ambiguous-alias warnings encountered (non-fatal).
func (r Resolver) Apply(list token.List) []Warning {
	var warnings []Warning
	for _, info := range list {
		if !info.Active() {
			continue
		}
		key := normalize(info.Original)
		target, ok := r.Language[key]
		if !ok {
			target, ok = r.Global[key]
		}
		if !ok {
			continue
		}

		atoms, _, err := lexer.Tokenize(target, r.Tables)
		switch {
		case err != nil || len(atoms) == 0:
			info.Type = token.Text{Value: target}
		case len(atoms) == 1:
			info.Type = atoms[0].Type
		default:
			warnings = append(warnings, Warning{Original: info.Original, Target: target})
			info.Type = token.Text{Value: target}
		}
	}
	return warnings
}

// normalize NFC-normalizes s before casefolding, so accented month/alias
// text matches regardless of the input's Unicode normalization form, then
// lowercases and trims it. It computes the lookup key Apply uses for
// both alias maps.
func normalize(s string) string {
	return strings.TrimSpace(lowerer.String(norm.NFC.String(s)))
}
