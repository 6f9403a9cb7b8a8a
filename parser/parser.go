// Package parser implements C10: the recursive-descent syntax parser
// that turns a cleaned token.List into an ast.Node (spec.md §4.10).
//
// Grounded on the teacher's spec/parser/ hand-rolled descent (program →
// expression → term → factor) and the operator precedence table in
// spec.md §4.10; rebuilt here over token.List instead of a byte/rune
// scanner since tokenization already happened in earlier stages.
package parser

import (
	"fmt"

	"github.com/natcalc/natcalc/ast"
	"github.com/natcalc/natcalc/token"
	"github.com/natcalc/natcalc/variable"
)

// Error reports a parse failure with its line/column context, mirroring
// the teacher's positional error style.
type Error struct {
	Message string
	Line    int
	Column  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (line %d, column %d)", e.Message, e.Line, e.Column)
}

type parser struct {
	tokens []*token.Info
	pos    int
	line   int
	vars   *variable.Store
}

// Parse builds the Ast for one line's cleaned token list. line is the
// 1-based source line number, carried into any returned Error. vars is
// the session's variable store: an assignment's left-hand-side name is
// defined (or its existing index reused) against it during parsing, per
// spec.md §4.10.
func Parse(list token.List, line int, vars *variable.Store) (ast.Node, error) {
	p := &parser{tokens: []*token.Info(list), line: line, vars: vars}
	if eqPos, ok := p.findAssignmentSplit(); ok {
		return p.parseAssignment(eqPos)
	}
	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		if !p.trailingConnectorsOnly() {
			return nil, p.errorf("unexpected token after expression")
		}
		p.pos = len(p.tokens)
	}
	return node, nil
}

// findAssignmentSplit reports the index of a top-level '=' operator, if
// the line contains one: program := assignment | expression, and
// assignment only applies "if and only if '=' present" (spec.md §4.10).
func (p *parser) findAssignmentSplit() (int, bool) {
	for i, info := range p.tokens {
		if op, ok := info.Type.(token.Operator); ok && op.Char == '=' {
			return i, true
		}
	}
	return 0, false
}

// parseAssignment treats every token before '=' as the variable's name
// (rendered from its original text) and parses the remainder as the
// expression to bind.
func (p *parser) parseAssignment(eqPos int) (ast.Node, error) {
	if eqPos == 0 {
		return nil, p.errorf("assignment is missing a variable name")
	}
	name := ""
	pattern := make([]token.Type, 0, eqPos)
	for _, info := range p.tokens[:eqPos] {
		name += info.Original
		pattern = append(pattern, info.Type)
	}
	p.pos = eqPos + 1
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		if !p.trailingConnectorsOnly() {
			return nil, p.errorf("unexpected token after assignment expression")
		}
		p.pos = len(p.tokens)
	}
	v := p.vars.Define(name, pattern)
	return ast.Assignment{VarIndex: v.Index, Expression: expr}, nil
}

func (p *parser) parseExpression() (ast.Node, error) {
	return p.parseAddSub()
}

// add_sub := mod ( ('+'|'-') mod )*
func (p *parser) parseAddSub() (ast.Node, error) {
	left, err := p.parseMod()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.peekOperator('+', '-')
		if !ok {
			return left, nil
		}
		p.advance()
		right, err := p.parseMod()
		if err != nil {
			return nil, err
		}
		left = ast.Binary{Left: left, Right: right, Op: op}
	}
}

// mod := mul_div ( '%' mul_div )*
func (p *parser) parseMod() (ast.Node, error) {
	left, err := p.parseMulDiv()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.peekOperator('%')
		if !ok {
			return left, nil
		}
		p.advance()
		right, err := p.parseMulDiv()
		if err != nil {
			return nil, err
		}
		left = ast.Binary{Left: left, Right: right, Op: op}
	}
}

// mul_div := unary ( ('*'|'/') unary )*
func (p *parser) parseMulDiv() (ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.peekOperator('*', '/')
		if !ok {
			return left, nil
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = ast.Binary{Left: left, Right: right, Op: op}
	}
}

// unary := ('+'|'-') unary | primary
func (p *parser) parseUnary() (ast.Node, error) {
	if op, ok := p.peekOperator('+', '-'); ok {
		p.advance()
		child, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.PrefixUnary{Op: op, Child: child}, nil
	}
	return p.parsePrimary()
}

// primary := '(' expression ')' | Number | Time | Date | DateTime |
// Duration | Percent | Money | Month | DynamicType | Variable | Symbol
func (p *parser) parsePrimary() (ast.Node, error) {
	if p.atEnd() {
		return nil, p.errorf("unexpected end of expression")
	}
	info := p.tokens[p.pos]
	if op, ok := info.Type.(token.Operator); ok && op.Char == '(' {
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		closeOp, ok := p.peekOperator(')')
		if !ok {
			return nil, p.errorf("missing closing parenthesis")
		}
		_ = closeOp
		p.advance()
		return inner, nil
	}

	switch t := info.Type.(type) {
	case token.Text:
		p.advance()
		return ast.Symbol{Text: t.Value}, nil
	case token.Variable:
		p.advance()
		return ast.VariableRef{Ref: t.Ref}, nil
	case token.Operator:
		return nil, p.errorf(fmt.Sprintf("unexpected operator %q", string(t.Char)))
	default:
		p.advance()
		return ast.Item{Value: t}, nil
	}
}

func (p *parser) peekOperator(chars ...rune) (rune, bool) {
	if p.atEnd() {
		return 0, false
	}
	op, ok := p.tokens[p.pos].Type.(token.Operator)
	if !ok {
		return 0, false
	}
	for _, c := range chars {
		if op.Char == c {
			return c, true
		}
	}
	return 0, false
}

// trailingConnectorsOnly reports whether every remaining token is a bare
// Text token: surviving Text is either kept as a Symbol when it's the
// whole expression, or dropped as an extraneous connector when it trails
// a fully-parsed expression (spec.md §4.10), e.g. "of work" left over
// after a rate expression resolves to Money.
func (p *parser) trailingConnectorsOnly() bool {
	for i := p.pos; i < len(p.tokens); i++ {
		if _, ok := p.tokens[i].Type.(token.Text); !ok {
			return false
		}
	}
	return true
}

func (p *parser) advance() { p.pos++ }

func (p *parser) atEnd() bool { return p.pos >= len(p.tokens) }

func (p *parser) errorf(msg string) error {
	col := 0
	if p.pos < len(p.tokens) {
		col = p.tokens[p.pos].Start
	} else if len(p.tokens) > 0 {
		col = p.tokens[len(p.tokens)-1].End
	}
	return &Error{Message: msg, Line: p.line, Column: col}
}
