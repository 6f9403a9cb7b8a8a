// Package value implements C11's typed-item capability set: every
// interpreter result carries a concrete Value variant, and binary
// operator dispatch is resolved by trying the left operand's Calculate
// first, then the right's with onLeft=false (spec.md §4.11 "dispatch
// asymmetry").
//
// Grounded on original_source/libsmartcalc/src/types/*.rs (one file per
// TypedItem variant, each implementing the same method set) and the
// teacher's types.Type capability interface (String/Equal/TypeName),
// extended here with Calculate/Unary/Print for arithmetic dispatch.
package value

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/natcalc/natcalc/config"
	"github.com/natcalc/natcalc/format"
	"github.com/natcalc/natcalc/token"
	"github.com/natcalc/natcalc/units"
)

// Value is the capability set every TypedItem variant implements
// (spec.md §4.11).
type Value interface {
	TypeName() string
	AsToken() token.Type
	Number() float64
	Calculate(cfg *config.Config, onLeft bool, other Value, op rune) (Value, bool)
	Unary(op rune) Value
	Print(cfg *config.Config, lang *config.Language) string
	SameAs(other Value) bool
}

// FromToken lifts a lexical TokenType into its corresponding Value, the
// bridge the interpreter uses for AST Item nodes and variable binding.
func FromToken(t token.Type) (Value, bool) {
	switch v := t.(type) {
	case token.Number:
		return NumberValue{Decimal: decimal.NewFromFloat(v.Value), Kind: v.NumberKind}, true
	case token.Money:
		return MoneyValue{Decimal: decimal.NewFromFloat(v.Value), Currency: v.Currency}, true
	case token.Percent:
		return PercentValue{Decimal: decimal.NewFromFloat(v.Value)}, true
	case token.Time:
		return TimeValue{Instant: v.Instant, Offset: v.Offset}, true
	case token.Date:
		return DateValue{Instant: v.Instant, Offset: v.Offset}, true
	case token.DateTime:
		return DateTimeValue{Instant: v.Instant, Offset: v.Offset}, true
	case token.Duration:
		return DurationValue{Seconds: v.Seconds}, true
	case token.DynamicType:
		return DynamicValue{Amount: v.Value, Group: v.Group, Index: v.Index}, true
	default:
		return nil, false
	}
}

// guardDivision clamps ±Inf/NaN results to 0 (spec.md §7
// DivisionDegenerate).
func guardDivision(f float64) float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}

// ---- Number ----

type NumberValue struct {
	Decimal decimal.Decimal
	Kind    token.NumberKind
}

func (n NumberValue) TypeName() string  { return "Number" }
func (n NumberValue) Number() float64   { return n.floatValue() }
func (n NumberValue) floatValue() float64 {
	f, _ := n.Decimal.Float64()
	return f
}
func (n NumberValue) AsToken() token.Type {
	return token.Number{Value: n.floatValue(), NumberKind: n.Kind}
}
func (n NumberValue) SameAs(other Value) bool {
	o, ok := other.(NumberValue)
	return ok && o.Decimal.Equal(n.Decimal)
}
func (n NumberValue) Unary(op rune) Value {
	if op == '-' {
		return NumberValue{Decimal: n.Decimal.Neg(), Kind: n.Kind}
	}
	return n
}

func (n NumberValue) Calculate(cfg *config.Config, onLeft bool, other Value, op rune) (Value, bool) {
	switch o := other.(type) {
	case NumberValue:
		return n.arith(o, op), true
	case PercentValue:
		switch op {
		case '+':
			return NumberValue{Decimal: n.Decimal.Add(n.Decimal.Mul(o.Decimal).Div(decimal.NewFromInt(100)))}, true
		case '-':
			if !onLeft {
				return nil, false
			}
			return NumberValue{Decimal: n.Decimal.Sub(n.Decimal.Mul(o.Decimal).Div(decimal.NewFromInt(100)))}, true
		}
	}
	return nil, false
}

func (n NumberValue) arith(o NumberValue, op rune) Value {
	switch op {
	case '+':
		return NumberValue{Decimal: n.Decimal.Add(o.Decimal)}
	case '-':
		return NumberValue{Decimal: n.Decimal.Sub(o.Decimal)}
	case '*':
		return NumberValue{Decimal: n.Decimal.Mul(o.Decimal)}
	case '/':
		if o.Decimal.IsZero() {
			return NumberValue{Decimal: decimal.Zero}
		}
		f := guardDivision(n.floatValue() / o.floatValue())
		return NumberValue{Decimal: decimal.NewFromFloat(f)}
	case '%':
		if o.Decimal.IsZero() {
			return NumberValue{Decimal: decimal.Zero}
		}
		return NumberValue{Decimal: n.Decimal.Mod(o.Decimal)}
	}
	return n
}

func (n NumberValue) Print(cfg *config.Config, lang *config.Language) string {
	return format.Number(n.floatValue(), lang, n.Kind)
}

// ---- Money ----

type MoneyValue struct {
	Decimal  decimal.Decimal
	Currency string
}

func (m MoneyValue) TypeName() string { return "Money" }
func (m MoneyValue) Number() float64  { f, _ := m.Decimal.Float64(); return f }
func (m MoneyValue) AsToken() token.Type {
	return token.Money{Value: m.Number(), Currency: m.Currency}
}
func (m MoneyValue) SameAs(other Value) bool {
	o, ok := other.(MoneyValue)
	return ok && o.Currency == m.Currency && o.Decimal.Equal(m.Decimal)
}
func (m MoneyValue) Unary(op rune) Value {
	if op == '-' {
		return MoneyValue{Decimal: m.Decimal.Neg(), Currency: m.Currency}
	}
	return m
}

func (m MoneyValue) convertTo(cfg *config.Config, currency string) MoneyValue {
	if currency == m.Currency {
		return m
	}
	src, hasSrc := cfg.CurrencyRates[m.Currency]
	dst, hasDst := cfg.CurrencyRates[currency]
	if !hasSrc || !hasDst || src == 0 {
		return MoneyValue{Decimal: decimal.Zero, Currency: currency}
	}
	converted := m.Number() / src * dst
	return MoneyValue{Decimal: decimal.NewFromFloat(converted), Currency: currency}
}

func (m MoneyValue) Calculate(cfg *config.Config, onLeft bool, other Value, op rune) (Value, bool) {
	switch o := other.(type) {
	case MoneyValue:
		conv := o.convertTo(cfg, m.Currency)
		switch op {
		case '+':
			return MoneyValue{Decimal: m.Decimal.Add(conv.Decimal), Currency: m.Currency}, true
		case '-':
			if onLeft {
				return MoneyValue{Decimal: m.Decimal.Sub(conv.Decimal), Currency: m.Currency}, true
			}
			return MoneyValue{Decimal: conv.Decimal.Sub(m.Decimal), Currency: m.Currency}, true
		case '/':
			if conv.Decimal.IsZero() {
				return NumberValue{Decimal: decimal.Zero}, true
			}
			f := guardDivision(m.Number() / conv.Number())
			return NumberValue{Decimal: decimal.NewFromFloat(f)}, true
		}
		return nil, false
	case NumberValue:
		switch op {
		case '*':
			return MoneyValue{Decimal: m.Decimal.Mul(o.Decimal), Currency: m.Currency}, true
		case '/':
			if o.Decimal.IsZero() {
				return MoneyValue{Decimal: decimal.Zero, Currency: m.Currency}, true
			}
			return MoneyValue{Decimal: m.Decimal.Div(o.Decimal), Currency: m.Currency}, true
		case '+':
			return MoneyValue{Decimal: m.Decimal.Add(o.Decimal), Currency: m.Currency}, true
		case '-':
			if onLeft {
				return MoneyValue{Decimal: m.Decimal.Sub(o.Decimal), Currency: m.Currency}, true
			}
			return MoneyValue{Decimal: o.Decimal.Sub(m.Decimal), Currency: m.Currency}, true
		}
		return nil, false
	case PercentValue:
		if op == '+' {
			bump := m.Decimal.Mul(o.Decimal).Div(decimal.NewFromInt(100))
			return MoneyValue{Decimal: m.Decimal.Add(bump), Currency: m.Currency}, true
		}
		return nil, false
	}
	return nil, false
}

func (m MoneyValue) Print(cfg *config.Config, lang *config.Language) string {
	ci, ok := cfg.CurrenciesByCode[m.Currency]
	numberText := format.Decimal(m.Number(), lang.Format.ThousandsSeparator, lang.Format.DecimalSeparator,
		pick(ok, ci.DecimalDigits, lang.Format.DecimalDigits), lang.Format.RemoveFractIfZero)
	if !ok {
		return fmt.Sprintf("%s %s", numberText, m.Currency)
	}
	sep := ""
	if ci.SpaceBetweenAmountAndSymbol {
		sep = " "
	}
	if ci.SymbolOnLeft {
		return ci.Symbol + sep + numberText
	}
	return numberText + sep + ci.Symbol
}

func pick(use bool, a, b int) int {
	if use {
		return a
	}
	return b
}

// ---- Percent ----

type PercentValue struct{ Decimal decimal.Decimal }

func (p PercentValue) TypeName() string    { return "Percent" }
func (p PercentValue) Number() float64     { f, _ := p.Decimal.Float64(); return f }
func (p PercentValue) AsToken() token.Type { return token.Percent{Value: p.Number()} }
func (p PercentValue) SameAs(other Value) bool {
	o, ok := other.(PercentValue)
	return ok && o.Decimal.Equal(p.Decimal)
}
func (p PercentValue) Unary(op rune) Value {
	if op == '-' {
		return PercentValue{Decimal: p.Decimal.Neg()}
	}
	return p
}
func (p PercentValue) Calculate(cfg *config.Config, onLeft bool, other Value, op rune) (Value, bool) {
	return nil, false // all Percent binary semantics are driven from the other operand's side
}
func (p PercentValue) Print(cfg *config.Config, lang *config.Language) string {
	return format.DecimalDefault(p.Number(), lang) + "%"
}

// ---- Time / Date / DateTime ----

type TimeValue struct {
	Instant time.Time
	Offset  token.Offset
}

func (t TimeValue) TypeName() string    { return "Time" }
func (t TimeValue) Number() float64     { return float64(t.Instant.Unix()) }
func (t TimeValue) AsToken() token.Type { return token.Time{Instant: t.Instant, Offset: t.Offset} }
func (t TimeValue) SameAs(other Value) bool {
	o, ok := other.(TimeValue)
	return ok && o.Instant.Equal(t.Instant)
}
func (t TimeValue) Unary(op rune) Value { return t }
func (t TimeValue) Calculate(cfg *config.Config, onLeft bool, other Value, op rune) (Value, bool) {
	d, ok := other.(DurationValue)
	if !ok {
		return nil, false
	}
	switch op {
	case '+':
		return TimeValue{Instant: t.Instant.Add(time.Duration(d.Seconds) * time.Second), Offset: t.Offset}, true
	case '-':
		if !onLeft {
			return nil, false
		}
		return TimeValue{Instant: t.Instant.Add(-time.Duration(d.Seconds) * time.Second), Offset: t.Offset}, true
	}
	return nil, false
}
func (t TimeValue) Print(cfg *config.Config, lang *config.Language) string {
	s := t.Instant.Format("15:04:05")
	if t.Offset.Name != "" {
		return s + " " + t.Offset.Name
	}
	return s
}

type DateValue struct {
	Instant time.Time
	Offset  token.Offset
}

func (d DateValue) TypeName() string    { return "Date" }
func (d DateValue) Number() float64     { return float64(d.Instant.Unix()) }
func (d DateValue) AsToken() token.Type { return token.Date{Instant: d.Instant, Offset: d.Offset} }
func (d DateValue) SameAs(other Value) bool {
	o, ok := other.(DateValue)
	return ok && o.Instant.Equal(d.Instant)
}
func (d DateValue) Unary(op rune) Value { return d }
func (d DateValue) Calculate(cfg *config.Config, onLeft bool, other Value, op rune) (Value, bool) {
	dur, ok := other.(DurationValue)
	if !ok {
		return nil, false
	}
	sign := 1.0
	if op == '-' {
		if !onLeft {
			return nil, false
		}
		sign = -1
	} else if op != '+' {
		return nil, false
	}
	years, months, remSeconds := decomposeDuration(dur.Seconds * sign)
	instant := d.Instant.AddDate(years, months, 0)
	instant = instant.Add(time.Duration(remSeconds) * time.Second)
	return DateValue{Instant: instant, Offset: d.Offset}, true
}
func (d DateValue) Print(cfg *config.Config, lang *config.Language) string {
	return format.Date(d.Instant, lang, false)
}

// decomposeDuration splits a signed seconds span into whole years,
// whole months, and a remainder in seconds, so Date+Duration can add
// years then months before the remainder (spec.md §4.11).
func decomposeDuration(totalSeconds float64) (years, months int, remSeconds float64) {
	const yearSeconds = 31557600.0
	const monthSeconds = 2629800.0
	sign := 1.0
	if totalSeconds < 0 {
		sign = -1
		totalSeconds = -totalSeconds
	}
	years = int(totalSeconds / yearSeconds)
	totalSeconds -= float64(years) * yearSeconds
	months = int(totalSeconds / monthSeconds)
	totalSeconds -= float64(months) * monthSeconds
	return years * int(sign), months * int(sign), totalSeconds * sign
}

type DateTimeValue struct {
	Instant time.Time
	Offset  token.Offset
}

func (d DateTimeValue) TypeName() string { return "DateTime" }
func (d DateTimeValue) Number() float64  { return float64(d.Instant.Unix()) }
func (d DateTimeValue) AsToken() token.Type {
	return token.DateTime{Instant: d.Instant, Offset: d.Offset}
}
func (d DateTimeValue) SameAs(other Value) bool {
	o, ok := other.(DateTimeValue)
	return ok && o.Instant.Equal(d.Instant)
}
func (d DateTimeValue) Unary(op rune) Value { return d }
func (d DateTimeValue) Calculate(cfg *config.Config, onLeft bool, other Value, op rune) (Value, bool) {
	dur, ok := other.(DurationValue)
	if !ok {
		return nil, false
	}
	switch op {
	case '+':
		return DateTimeValue{Instant: d.Instant.Add(time.Duration(dur.Seconds) * time.Second), Offset: d.Offset}, true
	case '-':
		if !onLeft {
			return nil, false
		}
		return DateTimeValue{Instant: d.Instant.Add(-time.Duration(dur.Seconds) * time.Second), Offset: d.Offset}, true
	}
	return nil, false
}
func (d DateTimeValue) Print(cfg *config.Config, lang *config.Language) string {
	return format.Date(d.Instant, lang, true)
}

// ---- Duration ----

type DurationValue struct{ Seconds float64 }

func (d DurationValue) TypeName() string    { return "Duration" }
func (d DurationValue) Number() float64     { return d.Seconds }
func (d DurationValue) AsToken() token.Type { return token.Duration{Seconds: d.Seconds} }
func (d DurationValue) SameAs(other Value) bool {
	o, ok := other.(DurationValue)
	return ok && o.Seconds == d.Seconds
}
func (d DurationValue) Unary(op rune) Value {
	if op == '-' {
		return DurationValue{Seconds: -d.Seconds}
	}
	return d
}
func (d DurationValue) Calculate(cfg *config.Config, onLeft bool, other Value, op rune) (Value, bool) {
	o, ok := other.(DurationValue)
	if !ok {
		return nil, false
	}
	switch op {
	case '+':
		return DurationValue{Seconds: d.Seconds + o.Seconds}, true
	case '-':
		if onLeft {
			return DurationValue{Seconds: d.Seconds - o.Seconds}, true
		}
		return DurationValue{Seconds: o.Seconds - d.Seconds}, true
	}
	return nil, false
}
func (d DurationValue) Print(cfg *config.Config, lang *config.Language) string {
	return format.Duration(d.Seconds, lang)
}

// ---- DynamicType ----

type DynamicValue struct {
	Amount float64
	Group  string
	Index  int
}

func (d DynamicValue) TypeName() string { return "DynamicType" }
func (d DynamicValue) Number() float64  { return d.Amount }
func (d DynamicValue) AsToken() token.Type {
	return token.DynamicType{Value: d.Amount, Group: d.Group, Index: d.Index}
}
func (d DynamicValue) SameAs(other Value) bool {
	o, ok := other.(DynamicValue)
	return ok && o.Group == d.Group && o.Index == d.Index && o.Amount == d.Amount
}
func (d DynamicValue) Unary(op rune) Value {
	if op == '-' {
		return DynamicValue{Amount: -d.Amount, Group: d.Group, Index: d.Index}
	}
	return d
}

// Calculate requires a units.Group table to convert the right operand
// into the left operand's index before arithmetic; WithGroups binds it.
func (d DynamicValue) Calculate(cfg *config.Config, onLeft bool, other Value, op rune) (Value, bool) {
	return nil, false // see WithGroups.Calculate: plain DynamicValue has no group table
}

func (d DynamicValue) Print(cfg *config.Config, lang *config.Language) string {
	return format.DecimalDefault(d.Amount, lang)
}

// WithGroups adapts DynamicValue arithmetic to a concrete dynamic-type
// table, resolved once per interpreter (spec.md §4.11: "DynamicType,
// DynamicType: same-group arithmetic; target type = left").
type WithGroups struct {
	DynamicValue
	Groups map[string]units.Group
}

func (d WithGroups) Calculate(cfg *config.Config, onLeft bool, other Value, op rune) (Value, bool) {
	o, ok := other.(DynamicValue)
	if !ok {
		if owg, ok2 := other.(WithGroups); ok2 {
			o = owg.DynamicValue
		} else {
			return nil, false
		}
	}
	if o.Group != d.Group {
		return nil, false
	}
	converted, err := units.Convert(d.Groups, o.Amount, d.Group, o.Index, d.Index)
	if err != nil {
		return nil, false
	}
	var result float64
	switch op {
	case '+':
		result = d.Amount + converted
	case '-':
		if onLeft {
			result = d.Amount - converted
		} else {
			result = converted - d.Amount
		}
	case '*':
		result = d.Amount * converted
	case '/':
		if converted == 0 {
			result = 0
		} else {
			result = guardDivision(d.Amount / converted)
		}
	default:
		return nil, false
	}
	return WithGroups{DynamicValue: DynamicValue{Amount: result, Group: d.Group, Index: d.Index}, Groups: d.Groups}, true
}

func (d WithGroups) Print(cfg *config.Config, lang *config.Language) string {
	numberText := format.DecimalDefault(d.Amount, lang)
	return units.Format(d.Groups, token.DynamicType{Value: d.Amount, Group: d.Group, Index: d.Index}, numberText)
}
