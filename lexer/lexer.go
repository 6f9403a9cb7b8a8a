package lexer

import (
	"fmt"
	"regexp"
	"unicode"

	"github.com/natcalc/natcalc/token"
	"github.com/natcalc/natcalc/uitoken"
)

// LexError is returned when no family matched a run of non-whitespace
// input (spec.md §7 LexFailure).
type LexError struct {
	Line   string
	Offset int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("no token family matched input at byte %d of %q", e.Offset, e.Line)
}

// familyOrder is the fixed processing order from spec.md §4.4. Order
// matters: earlier matches block later overlapping ones via collision
// detection.
var familyOrder = []string{
	"comment", "field", "money", "atom", "percent",
	"timezone", "time", "number", "text", "whitespace", "operator",
}

type tryFunc func(start, end int, typ token.Type, kind uitoken.Kind) bool

// Tokenize runs the full C4 regex-tokenizer family sequence over one
// line, returning the surviving (Active, sorted) token list and the
// UI-token spans collected along the way.
func Tokenize(line string, tabs Tables) (token.List, *uitoken.Collection, error) {
	defaults := defaultPatterns(&tabs)
	ui := uitoken.New(line)
	var infos token.List

	try := func(start, end int, typ token.Type, kind uitoken.Kind) bool {
		if start >= end || token.List(infos).Overlaps(start, end) {
			return false
		}
		infos = append(infos, &token.Info{Start: start, End: end, Type: typ, Original: line[start:end]})
		ui.Add(start, end, kind)
		return true
	}

	for _, fam := range familyOrder {
		switch fam {
		case "comment":
			runFamily(line, withDefault(tabs.Comment, defaults["comment"]), func(m string, s, e int) {
				try(s, e, token.Text{Value: m}, uitoken.Comment)
			})
		case "field":
			if tabs.FieldEnabled {
				scanFields(line, defaults["field"], try)
			}
		case "money":
			scanMoney(line, &tabs, try)
		case "atom":
			scanAtom(line, &tabs, defaults["atom"], try)
		case "percent":
			runFamily(line, []*regexp.Regexp{defaults["percent"]}, func(m string, s, e int) {
				scanPercentMatch(m, s, e, tabs.ThousandsSeparator, tabs.DecimalSeparator, try)
			})
		case "timezone":
			scanTimezone(line, &tabs, defaults["timezone"], try)
		case "time":
			scanTime(line, defaults["time"], try)
		case "number":
			runFamily(line, withDefault(tabs.Number, defaults["number"]), func(m string, s, e int) {
				scanNumberMatch(m, s, e, tabs.ThousandsSeparator, tabs.DecimalSeparator, try)
			})
		case "text":
			runFamily(line, withDefault(tabs.Text, defaults["text"]), func(m string, s, e int) {
				try(s, e, token.Text{Value: m}, uitoken.Text)
			})
		case "whitespace":
			scanWhitespace(line, try)
		case "operator":
			scanOperator(line, defaults["operator"], try)
		}
	}

	cleaned := token.List(infos).Cleanup()

	// LexFailure: every non-whitespace byte must be covered by some
	// token's span.
	covered := make([]bool, len(line))
	for _, info := range cleaned {
		for i := info.Start; i < info.End && i < len(line); i++ {
			covered[i] = true
		}
	}
	for i, r := range line {
		if unicode.IsSpace(r) {
			continue
		}
		if i < len(covered) && !covered[i] {
			return nil, ui, &LexError{Line: line, Offset: i}
		}
	}

	return cleaned, ui, nil
}

func withDefault(configured []*regexp.Regexp, def *regexp.Regexp) []*regexp.Regexp {
	if len(configured) > 0 {
		return configured
	}
	return []*regexp.Regexp{def}
}

// runFamily tries each pattern in order over the whole line, attempting
// registration for every non-overlapping match found.
func runFamily(line string, patterns []*regexp.Regexp, onMatch func(matched string, start, end int)) {
	for _, re := range patterns {
		if re == nil {
			continue
		}
		for _, loc := range re.FindAllStringIndex(line, -1) {
			onMatch(line[loc[0]:loc[1]], loc[0], loc[1])
		}
	}
}
