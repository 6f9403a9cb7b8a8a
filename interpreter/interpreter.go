// Package interpreter implements C11: walking the Ast built by package
// parser into a typed result, dispatching binary operators through
// package value's Calculate capability with the spec's left-then-right
// asymmetry (spec.md §4.11).
//
// Grounded on original_source/libsmartcalc/src/worker/*.rs (the
// calculate-dispatch tree walk) and the teacher's evaluator.go visitor
// shape, rebuilt here around package value's TypedItem-equivalent
// interface instead of the teacher's numeric-only Decimal result.
package interpreter

import (
	"fmt"

	"github.com/natcalc/natcalc/ast"
	"github.com/natcalc/natcalc/config"
	"github.com/natcalc/natcalc/token"
	"github.com/natcalc/natcalc/units"
	"github.com/natcalc/natcalc/value"
	"github.com/natcalc/natcalc/variable"
)

// Error is a SyntaxError raised when neither operand's Calculate
// accepts an operator, or a bare Symbol/unbound Variable is evaluated.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

// Interpreter evaluates one session's Ast nodes against its config,
// language, variable store, and compiled dynamic-type groups.
type Interpreter struct {
	Cfg    *config.Config
	Lang   *config.Language
	Vars   *variable.Store
	Groups map[string]units.Group
}

// New builds an Interpreter for one session.
func New(cfg *config.Config, lang *config.Language, vars *variable.Store, groups map[string]units.Group) *Interpreter {
	return &Interpreter{Cfg: cfg, Lang: lang, Vars: vars, Groups: groups}
}

// Eval walks node and returns the resulting typed value.
func (ip *Interpreter) Eval(node ast.Node) (value.Value, error) {
	switch n := node.(type) {
	case ast.Item:
		return ip.liftToken(n.Value)

	case ast.Binary:
		left, err := ip.Eval(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := ip.Eval(n.Right)
		if err != nil {
			return nil, err
		}
		if result, ok := left.Calculate(ip.Cfg, true, right, n.Op); ok {
			return result, nil
		}
		if result, ok := right.Calculate(ip.Cfg, false, left, n.Op); ok {
			return result, nil
		}
		return nil, &Error{Message: fmt.Sprintf("cannot apply %q to %s and %s", string(n.Op), left.TypeName(), right.TypeName())}

	case ast.PrefixUnary:
		child, err := ip.Eval(n.Child)
		if err != nil {
			return nil, err
		}
		return child.Unary(n.Op), nil

	case ast.Assignment:
		result, err := ip.Eval(n.Expression)
		if err != nil {
			return nil, err
		}
		if v, ok := ip.Vars.Get(n.VarIndex); ok {
			v.Data = result.AsToken()
		}
		return result, nil

	case ast.VariableRef:
		if n.Ref == nil {
			return nil, &Error{Message: "reference to undefined variable"}
		}
		bound, ok := n.Ref.Bound()
		if !ok {
			return nil, &Error{Message: fmt.Sprintf("variable %q has no value yet", n.Ref.VarName())}
		}
		return ip.liftToken(bound)

	case ast.Symbol:
		return nil, &Error{Message: fmt.Sprintf("unrecognized input %q", n.Text)}

	default:
		return nil, &Error{Message: "empty expression"}
	}
}

// liftToken bridges a lexical TokenType into its Value, resolving
// DynamicType against the interpreter's compiled group table so
// DynamicType-DynamicType arithmetic has something to convert through.
func (ip *Interpreter) liftToken(t token.Type) (value.Value, error) {
	if dt, ok := t.(token.DynamicType); ok {
		return value.WithGroups{
			DynamicValue: value.DynamicValue{Amount: dt.Value, Group: dt.Group, Index: dt.Index},
			Groups:       ip.Groups,
		}, nil
	}
	v, ok := value.FromToken(t)
	if !ok {
		return nil, &Error{Message: fmt.Sprintf("no typed value for token kind %s", t.Kind())}
	}
	return v, nil
}
