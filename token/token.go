// Package token defines the atomic value vocabulary carried through the
// lexer, rule-matching, and parsing stages of the engine: TokenType (the
// sum of value kinds a token can carry) and TokenInfo (a token in its
// textual context).
package token

import (
	"fmt"
	"time"
)

// Kind identifies which variant a Type value holds.
type Kind int

const (
	KindNumber Kind = iota
	KindText
	KindTime
	KindDate
	KindDateTime
	KindDuration
	KindPercent
	KindMoney
	KindMonth
	KindTimezone
	KindDynamicType
	KindOperator
	KindField
	KindVariable
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "Number"
	case KindText:
		return "Text"
	case KindTime:
		return "Time"
	case KindDate:
		return "Date"
	case KindDateTime:
		return "DateTime"
	case KindDuration:
		return "Duration"
	case KindPercent:
		return "Percent"
	case KindMoney:
		return "Money"
	case KindMonth:
		return "Month"
	case KindTimezone:
		return "Timezone"
	case KindDynamicType:
		return "DynamicType"
	case KindOperator:
		return "Operator"
	case KindField:
		return "Field"
	case KindVariable:
		return "Variable"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// NumberKind distinguishes how a Number literal was written, which affects
// formatting (e.g. "100 to hex" re-tags a Number as NumberHex).
type NumberKind int

const (
	NumberDecimal NumberKind = iota
	NumberBinary
	NumberOctal
	NumberHex
	NumberRaw
)

// Offset carries a named UTC offset in minutes, attached to every
// Time/Date/DateTime value.
type Offset struct {
	Name    string
	Minutes int
}

// Type is the interface every concrete token value variant implements.
type Type interface {
	Kind() Kind
	// Equal reports semantic equality for variable-rewriting and rule
	// matching: Text compares by exact string, Number by exact value, etc.
	Equal(other Type) bool
	String() string
}

// Number is a numeric literal, e.g. "42", "0x1F", "3.5k".
type Number struct {
	Value float64
	NumberKind
}

func (Number) Kind() Kind { return KindNumber }
func (n Number) Equal(other Type) bool {
	o, ok := other.(Number)
	return ok && o.Value == n.Value
}
func (n Number) String() string { return fmt.Sprintf("Number(%v)", n.Value) }

// Text is free-standing text that did not match a more specific family.
type Text struct{ Value string }

func (Text) Kind() Kind { return KindText }
func (t Text) Equal(other Type) bool {
	o, ok := other.(Text)
	return ok && o.Value == t.Value
}
func (t Text) String() string { return fmt.Sprintf("Text(%q)", t.Value) }

// Time is a time-of-day value: Instant holds the wall-clock time in the
// zone named by Offset, so the UTC moment is Instant minus Offset.
type Time struct {
	Instant time.Time
	Offset  Offset
}

func (Time) Kind() Kind { return KindTime }
func (t Time) Equal(other Type) bool {
	o, ok := other.(Time)
	return ok && o.Instant.Equal(t.Instant)
}
func (t Time) String() string { return fmt.Sprintf("Time(%s)", t.Instant.Format("15:04:05")) }

// Date is a calendar date.
type Date struct {
	Instant time.Time
	Offset  Offset
}

func (Date) Kind() Kind { return KindDate }
func (d Date) Equal(other Type) bool {
	o, ok := other.(Date)
	return ok && o.Instant.Equal(d.Instant)
}
func (d Date) String() string { return fmt.Sprintf("Date(%s)", d.Instant.Format("2006-01-02")) }

// DateTime is a combined calendar date and time-of-day.
type DateTime struct {
	Instant time.Time
	Offset  Offset
}

func (DateTime) Kind() Kind { return KindDateTime }
func (d DateTime) Equal(other Type) bool {
	o, ok := other.(DateTime)
	return ok && o.Instant.Equal(d.Instant)
}
func (d DateTime) String() string {
	return fmt.Sprintf("DateTime(%s)", d.Instant.Format(time.RFC3339))
}

// Duration is a signed span of seconds.
type Duration struct{ Seconds float64 }

func (Duration) Kind() Kind { return KindDuration }
func (d Duration) Equal(other Type) bool {
	o, ok := other.(Duration)
	return ok && o.Seconds == d.Seconds
}
func (d Duration) String() string { return fmt.Sprintf("Duration(%vs)", d.Seconds) }

// Percent is a bare percentage literal, e.g. "20%".
type Percent struct{ Value float64 }

func (Percent) Kind() Kind { return KindPercent }
func (p Percent) Equal(other Type) bool {
	o, ok := other.(Percent)
	return ok && o.Value == p.Value
}
func (p Percent) String() string { return fmt.Sprintf("Percent(%v%%)", p.Value) }

// Money is a currency-tagged numeric amount.
type Money struct {
	Value    float64
	Currency string // ISO code, e.g. "USD"
}

func (Money) Kind() Kind { return KindMoney }
func (m Money) Equal(other Type) bool {
	o, ok := other.(Money)
	return ok && o.Value == m.Value && o.Currency == m.Currency
}
func (m Money) String() string { return fmt.Sprintf("Money(%v %s)", m.Value, m.Currency) }

// Month is a 1..12 month-name token recognized by the language tokenizer.
type Month struct{ Month int }

func (Month) Kind() Kind { return KindMonth }
func (m Month) Equal(other Type) bool {
	o, ok := other.(Month)
	return ok && o.Month == m.Month
}
func (m Month) String() string { return fmt.Sprintf("Month(%d)", m.Month) }

// Timezone is a named zone offset, e.g. "EST" or "GMT+2".
type Timezone struct {
	Name    string
	Minutes int
}

func (Timezone) Kind() Kind { return KindTimezone }
func (t Timezone) Equal(other Type) bool {
	o, ok := other.(Timezone)
	return ok && o.Minutes == t.Minutes
}
func (t Timezone) String() string { return fmt.Sprintf("Timezone(%s,%d)", t.Name, t.Minutes) }

// DynamicType is a value expressed in a user- or config-declared unit
// group, e.g. "5 GB" (group "data", index of "GB").
type DynamicType struct {
	Value float64
	Group string
	Index int
}

func (DynamicType) Kind() Kind { return KindDynamicType }
func (d DynamicType) Equal(other Type) bool {
	o, ok := other.(DynamicType)
	return ok && o.Group == d.Group && o.Index == d.Index && o.Value == d.Value
}
func (d DynamicType) String() string {
	return fmt.Sprintf("DynamicType(%v %s#%d)", d.Value, d.Group, d.Index)
}

// Operator is a single-character arithmetic/assignment operator.
type Operator struct{ Char rune }

func (Operator) Kind() Kind { return KindOperator }
func (o Operator) Equal(other Type) bool {
	t, ok := other.(Operator)
	return ok && t.Char == o.Char
}
func (o Operator) String() string { return fmt.Sprintf("Operator(%c)", o.Char) }

// FieldKind enumerates the TokenType variants a rule-template Field hole
// can be constrained to.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldDate
	FieldTime
	FieldDateTime
	FieldNumber
	FieldMoney
	FieldPercent
	FieldMonth
	FieldMemory
	FieldDuration
	FieldTimezone
	FieldDynamicType
	FieldGroup     // one of a fixed member-list of literal texts
	FieldTypeGroup // one of a fixed member-list of Kinds
)

// Field is a template hole: "{TYPE:name[:literal]}". It only ever appears
// inside rule templates, never in a tokenized input line.
type Field struct {
	FieldKind FieldKind
	Name      string
	Literal   string   // optional exact-text constraint
	Members   []string // for FieldGroup/FieldTypeGroup
}

func (Field) Kind() Kind { return KindField }
func (f Field) Equal(other Type) bool {
	o, ok := other.(Field)
	return ok && o.FieldKind == f.FieldKind && o.Name == f.Name
}
func (f Field) String() string { return fmt.Sprintf("Field(%d:%s)", f.FieldKind, f.Name) }

// VarRef lets the token package refer to a variable binding without
// importing the variable package (which itself depends on token),
// avoiding an import cycle.
type VarRef interface {
	VarIndex() int
	VarName() string
	// Bound returns the TokenType form of the variable's current value,
	// used by variable-compare in rule matching (spec.md §4.8).
	Bound() (Type, bool)
}

// Variable is a reference to a previously-defined named variable.
type Variable struct{ Ref VarRef }

func (Variable) Kind() Kind { return KindVariable }
func (v Variable) Equal(other Type) bool {
	o, ok := other.(Variable)
	return ok && o.Ref != nil && v.Ref != nil && o.Ref.VarIndex() == v.Ref.VarIndex()
}
func (v Variable) String() string {
	if v.Ref == nil {
		return "Variable(?)"
	}
	return fmt.Sprintf("Variable(%s)", v.Ref.VarName())
}
