package interpreter

import (
	"testing"

	"github.com/natcalc/natcalc/ast"
	"github.com/natcalc/natcalc/config"
	"github.com/natcalc/natcalc/token"
	"github.com/natcalc/natcalc/units"
	"github.com/natcalc/natcalc/value"
	"github.com/natcalc/natcalc/variable"
)

func newInterp() *Interpreter {
	_, groups := units.Build(&config.Config{})
	return New(&config.Config{}, &config.Language{}, &variable.Store{}, groups)
}

func TestEvalItemLiftsToken(t *testing.T) {
	ip := newInterp()
	v, err := ip.Eval(ast.Item{Value: token.Number{Value: 5}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, ok := v.(value.NumberValue)
	if !ok || n.Number() != 5 {
		t.Errorf("got %v, want NumberValue(5)", v)
	}
}

func TestEvalBinaryAddition(t *testing.T) {
	ip := newInterp()
	node := ast.Binary{
		Left:  ast.Item{Value: token.Number{Value: 2}},
		Right: ast.Item{Value: token.Number{Value: 3}},
		Op:    '+',
	}
	v, err := ip.Eval(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Number() != 5 {
		t.Errorf("got %v, want 5", v.Number())
	}
}

func TestEvalBinaryDispatchesRightWhenLeftDeclines(t *testing.T) {
	// Percent declines every binary operation itself; with Percent on the
	// left and Number on the right, Eval must retry via the right operand,
	// and Number handles '+' with a Percent on either side (spec.md
	// "dispatch asymmetry").
	ip := newInterp()
	node := ast.Binary{
		Left:  ast.Item{Value: token.Percent{Value: 10}},
		Right: ast.Item{Value: token.Number{Value: 200}},
		Op:    '+',
	}
	v, err := ip.Eval(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Number() != 220 {
		t.Errorf("got %v, want 220", v.Number())
	}
}

func TestEvalBinaryUnsupportedOperandsErrors(t *testing.T) {
	ip := newInterp()
	node := ast.Binary{
		Left:  ast.Item{Value: token.Percent{Value: 10}},
		Right: ast.Item{Value: token.Percent{Value: 20}},
		Op:    '+',
	}
	if _, err := ip.Eval(node); err == nil {
		t.Error("expected an error when neither operand's Calculate accepts the operator")
	}
}

func TestEvalPrefixUnary(t *testing.T) {
	ip := newInterp()
	node := ast.PrefixUnary{Op: '-', Child: ast.Item{Value: token.Number{Value: 7}}}
	v, err := ip.Eval(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Number() != -7 {
		t.Errorf("got %v, want -7", v.Number())
	}
}

func TestEvalAssignmentBindsVariable(t *testing.T) {
	vars := &variable.Store{}
	info := vars.Define("x", []token.Type{token.Number{Value: 1}})
	_, groups := units.Build(&config.Config{})
	ip := New(&config.Config{}, &config.Language{}, vars, groups)

	node := ast.Assignment{VarIndex: info.Index, Expression: ast.Item{Value: token.Number{Value: 42}}}
	v, err := ip.Eval(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Number() != 42 {
		t.Errorf("got %v, want 42", v.Number())
	}
	bound, ok := info.Bound()
	if !ok || bound.(token.Number).Value != 42 {
		t.Errorf("expected the variable to now be bound to Number(42), got %v, %v", bound, ok)
	}
}

func TestEvalVariableRefReadsBoundValue(t *testing.T) {
	vars := &variable.Store{}
	info := vars.Define("x", nil)
	info.Data = token.Number{Value: 9}
	_, groups := units.Build(&config.Config{})
	ip := New(&config.Config{}, &config.Language{}, vars, groups)

	v, err := ip.Eval(ast.VariableRef{Ref: info})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Number() != 9 {
		t.Errorf("got %v, want 9", v.Number())
	}
}

func TestEvalVariableRefUnboundErrors(t *testing.T) {
	vars := &variable.Store{}
	info := vars.Define("x", nil)
	_, groups := units.Build(&config.Config{})
	ip := New(&config.Config{}, &config.Language{}, vars, groups)

	if _, err := ip.Eval(ast.VariableRef{Ref: info}); err == nil {
		t.Error("expected an error for reading an unbound variable")
	}
}

func TestEvalSymbolErrors(t *testing.T) {
	ip := newInterp()
	if _, err := ip.Eval(ast.Symbol{Text: "huh"}); err == nil {
		t.Error("expected an error evaluating a bare Symbol")
	}
}

func TestEvalDynamicTypeUsesGroupsForConversion(t *testing.T) {
	cfg := &config.Config{DynamicTypes: map[string][]config.DynamicItem{
		"data": {
			{Names: []string{"b"}, Format: "{} B", Multiplier: 1},
			{Names: []string{"kb"}, Format: "{} KB", Multiplier: 1024},
		},
	}}
	_, groups := units.Build(cfg)
	ip := New(cfg, &config.Language{}, &variable.Store{}, groups)

	node := ast.Binary{
		Left:  ast.Item{Value: token.DynamicType{Value: 1, Group: "data", Index: 1}},
		Right: ast.Item{Value: token.DynamicType{Value: 512, Group: "data", Index: 0}},
		Op:    '+',
	}
	v, err := ip.Eval(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Number() != 1.5 {
		t.Errorf("got %v, want 1.5 (1 KB + 512 B)", v.Number())
	}
}
