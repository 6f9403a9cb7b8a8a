// Package units implements C9: the dynamic-type tokenizer. It reuses
// package rules' matching engine, parameterised by the dynamic-type
// groups declared in configuration instead of the fixed internal rule
// library (spec.md §4.9).
//
// Grounded on original_source/libsmartcalc/src/types/dynamic_type.rs
// (the linear multiplier-chain conversion) and, for the built-in unit
// families, the martinlindhe/unit conversion tables used where a group
// name matches one of its recognized physical quantities.
package units

import (
	"fmt"
	"strings"

	"github.com/martinlindhe/unit"

	"github.com/natcalc/natcalc/config"
	"github.com/natcalc/natcalc/lexer"
	"github.com/natcalc/natcalc/rules"
	"github.com/natcalc/natcalc/token"
)

// Group is the compiled, ready-to-match form of one dynamic-type group:
// every item's accepted names plus the cumulative multiplier needed to
// convert its value to the group's base (index 0) unit.
type Group struct {
	Name  string
	Items []Item
}

// Item is one unit within a group.
type Item struct {
	Index      int
	Names      []string
	Format     string
	ToBaseMult float64 // multiply a value in this unit by this to get index-0 units
}

// Build compiles every dynamic-type group in cfg into matchable rules.
// Engine templates, and returns the groups themselves (needed by
// Convert).
func Build(cfg *config.Config) (rules.Engine, map[string]Group) {
	groups := make(map[string]Group, len(cfg.DynamicTypes)+1)
	for name, docItems := range cfg.DynamicTypes {
		items := make([]Item, len(docItems))
		cumulative := 1.0
		for i, di := range docItems {
			cumulative *= di.Multiplier
			items[i] = Item{Index: i, Names: di.Names, Format: di.Format, ToBaseMult: cumulative}
		}
		groups[name] = Group{Name: name, Items: items}
	}
	if _, hasLength := groups["length"]; !hasLength {
		groups["length"] = builtinLengthGroup()
	}

	eng := rules.Engine{}
	fieldTabs := lexer.Tables{FieldEnabled: true}
	for groupName, group := range groups {
		group := group
		for _, item := range group.Items {
			item := item
			for _, name := range item.Names {
				template := fmt.Sprintf("{NUMBER:value} {TEXT:unit:%s}", name)
				tokens, _, err := lexer.Tokenize(template, fieldTabs)
				if err != nil {
					continue
				}
				eng.Rules = append(eng.Rules, rules.Rule{
					Name:      "dynamic_type_convert:" + groupName + ":" + name,
					Templates: []token.List{tokens},
					Apply: func(fields map[string]*token.Info) (token.Type, error) {
						n, ok := fields["value"].Type.(token.Number)
						if !ok {
							return nil, fmt.Errorf("dynamic_type_convert: missing value")
						}
						return token.DynamicType{Value: n.Value, Group: groupName, Index: item.Index}, nil
					},
				})
			}
		}
	}
	return eng, groups
}

// Convert walks the multiplier chain between two indices of the same
// group (spec.md §4.9: "multiplying (down-conversion) or dividing
// (up-conversion) the accumulated factor"). Reversible to within
// floating-point error, per spec.md §8.
func Convert(groups map[string]Group, value float64, groupName string, fromIndex, toIndex int) (float64, error) {
	group, ok := groups[groupName]
	if !ok {
		return 0, fmt.Errorf("units: unknown group %q", groupName)
	}
	if fromIndex < 0 || fromIndex >= len(group.Items) || toIndex < 0 || toIndex >= len(group.Items) {
		return 0, fmt.Errorf("units: index out of range for group %q", groupName)
	}
	fromMult := group.Items[fromIndex].ToBaseMult
	toMult := group.Items[toIndex].ToBaseMult
	base := value * fromMult
	return base / toMult, nil
}

// Format renders a DynamicType value using its item's format template
// ("{}" is replaced by the formatted number).
func Format(groups map[string]Group, dt token.DynamicType, numberText string) string {
	group, ok := groups[dt.Group]
	if !ok || dt.Index < 0 || dt.Index >= len(group.Items) {
		return numberText
	}
	return strings.Replace(group.Items[dt.Index].Format, "{}", numberText, 1)
}

// builtinLengthGroup seeds a "length" dynamic-type group from
// martinlindhe/unit's length constants when configuration doesn't
// declare one of its own, so the built-in unit conversion library gets
// exercised even by a minimal configuration document.
func builtinLengthGroup() Group {
	meterBase := float64(unit.Meter)
	items := []struct {
		names []string
		base  unit.Length
	}{
		{[]string{"mm", "millimeter", "millimeters"}, unit.Millimeter},
		{[]string{"cm", "centimeter", "centimeters"}, unit.Centimeter},
		{[]string{"m", "meter", "meters"}, unit.Meter},
		{[]string{"km", "kilometer", "kilometers"}, unit.Kilometer},
		{[]string{"mi", "mile", "miles"}, unit.Mile},
	}
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = Item{Index: i, Names: it.names, Format: "{} " + it.names[0], ToBaseMult: float64(it.base) / meterBase}
	}
	return Group{Name: "length", Items: out}
}
