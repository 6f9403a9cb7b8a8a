package lexer

import (
	"regexp"
	"strings"

	"github.com/natcalc/natcalc/token"
	"github.com/natcalc/natcalc/uitoken"
)

// scanAtom resolves "#name" placeholders against Tables.Atoms. Atoms are
// only meaningful inside alias expansion targets (spec.md §4.6); an
// unresolved name is left untokenized so LexFailure can catch a typo.
func scanAtom(line string, tabs *Tables, pattern *regexp.Regexp, try tryFunc) {
	if pattern == nil || len(tabs.Atoms) == 0 {
		return
	}
	for _, loc := range pattern.FindAllStringIndex(line, -1) {
		name := line[loc[0]+1 : loc[1]]
		atom, ok := tabs.Atoms[name]
		if !ok {
			continue
		}
		var typ token.Type
		switch atom.Kind {
		case "number":
			typ = token.Number{Value: atom.Num}
		case "percent":
			typ = token.Percent{Value: atom.Num}
		case "money":
			typ = token.Money{Value: atom.Num, Currency: atom.Text}
		default:
			typ = token.Text{Value: atom.Text}
		}
		try(loc[0], loc[1], typ, uitoken.Number)
	}
}

// scanPercentMatch registers a Percent token for one "<number>%"
// percent-family match, dropping the trailing '%' from the parsed span.
func scanPercentMatch(matched string, start, end int, thousands, decimal string, try tryFunc) {
	trimmed := strings.TrimRight(matched, " \t")
	pctIdx := strings.LastIndexByte(trimmed, '%')
	if pctIdx < 0 {
		return
	}
	numPart := strings.TrimSpace(trimmed[:pctIdx])
	v, _, ok := parseNumberLiteral(numPart, thousands, decimal)
	if !ok {
		return
	}
	try(start, end, token.Percent{Value: v}, uitoken.Number)
}

// scanWhitespace is a deliberate no-op: whitespace never becomes a
// token, and Tokenize's LexFailure coverage check already skips
// whitespace runes directly. The family still occupies its documented
// slot in familyOrder so the sequence reads the same as the spec.
func scanWhitespace(line string, try tryFunc) {}

// scanOperator registers single-character arithmetic/assignment/grouping
// operators.
func scanOperator(line string, pattern *regexp.Regexp, try tryFunc) {
	if pattern == nil {
		return
	}
	for _, loc := range pattern.FindAllStringIndex(line, -1) {
		r := []rune(line[loc[0]:loc[1]])[0]
		try(loc[0], loc[1], token.Operator{Char: r}, uitoken.Operator)
	}
}
