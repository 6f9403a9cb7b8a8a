// Package rules implements the template-matching engine shared by C8
// (the named internal/API rule library) and, via Engine, by package
// units for C9's dynamic-type templates (spec.md §4.9: "same matching
// engine as §4.8").
//
// Grounded on original_source/libsmartcalc/src/worker/rule.rs (the
// rule_index/start_index/target_index scanning state) and the teacher's
// classifier state-machine style (a left-to-right scan with an explicit
// reset-on-mismatch state), reshaped here as a straightforward
// earliest-start template search over the Active token run.
package rules

import (
	"strings"

	"github.com/natcalc/natcalc/token"
)

// Fn is a rule's rewrite function: given the captured field map, it
// returns either a new TokenType or an error (spec.md §7 RuleFailure,
// non-fatal — matching simply continues with the next rule).
type Fn func(fields map[string]*token.Info) (token.Type, error)

// Rule is one named rewrite: one or more alternative templates, all
// bound to the same function.
type Rule struct {
	Name      string
	Templates []token.List
	Apply     Fn
}

// Engine runs an ordered rule list to fixpoint against a token list.
type Engine struct {
	Rules []Rule
}

// RunToFixpoint repeatedly applies the first matching rule/template pair
// it finds, restarting from the top of the rule list after every
// rewrite, until no rule matches. It returns the rewritten list and the
// number of rewrites applied.
func (e Engine) RunToFixpoint(list token.List) (token.List, int) {
	applied := 0
	for {
		next, ok := e.runOnce(list)
		if !ok {
			return list, applied
		}
		list = next
		applied++
	}
}

func (e Engine) runOnce(list token.List) (token.List, bool) {
	for _, rule := range e.Rules {
		for _, tmpl := range rule.Templates {
			if len(tmpl) == 0 {
				continue
			}
			start, end, fields, ok := matchTemplate(list, tmpl)
			if !ok {
				continue
			}
			result, err := rule.Apply(fields)
			if err != nil || result == nil {
				continue // RuleFailure: skip, keep scanning
			}
			return splice(list, start, end, result), true
		}
	}
	return list, false
}

// activeIndices returns the positions, in list, of every Active token.
func activeIndices(list token.List) []int {
	out := make([]int, 0, len(list))
	for i, info := range list {
		if info.Active() {
			out = append(out, i)
		}
	}
	return out
}

// matchTemplate finds the earliest run of consecutive Active tokens
// that matches tmpl slot-by-slot, per spec.md §4.8: Variable tokens
// compare by bound value, Field slots match their declared variant (and
// optional literal/member constraint), everything else by TokenType
// equality.
func matchTemplate(list token.List, tmpl token.List) (startIdx, endIdx int, fields map[string]*token.Info, ok bool) {
	active := activeIndices(list)
	for start := 0; start+len(tmpl) <= len(active); start++ {
		captured := map[string]*token.Info{}
		matched := true
		for k, slot := range tmpl {
			info := list[active[start+k]]
			name, isMatch := matchSlot(info, slot)
			if !isMatch {
				matched = false
				break
			}
			if name != "" {
				captured[name] = info
			}
		}
		if matched {
			return active[start], active[start+len(tmpl)-1] + 1, captured, true
		}
	}
	return 0, 0, nil, false
}

// matchSlot compares one token-info against one template slot, returning
// the field name to capture under (empty if the slot isn't a Field).
func matchSlot(info *token.Info, slot token.Type) (string, bool) {
	field, isField := slot.(token.Field)
	if !isField {
		return "", tokenEqual(info.Type, slot)
	}

	actual := info.Type
	if vr, isVar := actual.(token.Variable); isVar && vr.Ref != nil {
		if bound, ok := vr.Ref.Bound(); ok {
			actual = bound
		}
	}

	switch field.FieldKind {
	case token.FieldGroup:
		text, ok := textOf(actual)
		if !ok || !containsFold(field.Members, text) {
			return "", false
		}
	case token.FieldTypeGroup:
		if !containsFold(field.Members, actual.Kind().String()) {
			return "", false
		}
	case token.FieldMemory:
		dt, ok := actual.(token.DynamicType)
		if !ok || dt.Group != "data" {
			return "", false
		}
	default:
		if actual.Kind() != fieldKindToKind(field.FieldKind) {
			return "", false
		}
		if field.Literal != "" {
			text, ok := textOf(actual)
			if !ok || !strings.EqualFold(strings.TrimSpace(text), strings.TrimSpace(field.Literal)) {
				return "", false
			}
		}
	}
	return field.Name, true
}

func fieldKindToKind(fk token.FieldKind) token.Kind {
	switch fk {
	case token.FieldText:
		return token.KindText
	case token.FieldDate:
		return token.KindDate
	case token.FieldTime:
		return token.KindTime
	case token.FieldDateTime:
		return token.KindDateTime
	case token.FieldNumber:
		return token.KindNumber
	case token.FieldMoney:
		return token.KindMoney
	case token.FieldPercent:
		return token.KindPercent
	case token.FieldMonth:
		return token.KindMonth
	case token.FieldDuration:
		return token.KindDuration
	case token.FieldTimezone:
		return token.KindTimezone
	case token.FieldDynamicType:
		return token.KindDynamicType
	default:
		return token.KindText
	}
}

func textOf(t token.Type) (string, bool) {
	switch v := t.(type) {
	case token.Text:
		return v.Value, true
	default:
		return "", false
	}
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}

// tokenEqual mirrors package variable's match semantics: a Variable
// token compares by its bound value.
func tokenEqual(actual, want token.Type) bool {
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

// splice marks list[start:end) Removed (start/end are direct indices
// into list, as returned by matchTemplate) and inserts a single fresh
// token-info of the given type spanning their combined byte range.
func splice(list token.List, start, end int, result token.Type) token.List {
	spanStart, spanEnd := -1, -1
	original := ""
	for i := start; i < end && i < len(list); i++ {
		info := list[i]
		if !info.Active() {
			continue
		}
		if spanStart < 0 {
			spanStart = info.Start
		}
		spanEnd = info.End
		original += info.Original
		info.Remove()
	}
	if spanStart < 0 {
		return list
	}
	list = append(list, &token.Info{Start: spanStart, End: spanEnd, Type: result, Original: original})
	return list.Cleanup()
}
