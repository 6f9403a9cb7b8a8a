// Package ast defines the expression tree C10 builds and C11 walks:
// assignment, variable reference, unary/binary arithmetic, bare symbols,
// and literal items (spec.md §3 Ast).
//
// Grounded on the teacher's ast/nodes.go node-interface shape, rebuilt
// here around the spec's sum-of-six-variants grammar rather than the
// teacher's document-AST.
package ast

import "github.com/natcalc/natcalc/token"

// Node is the sealed interface every Ast variant implements.
type Node interface {
	astNode()
}

// Item wraps a literal TokenType value that survived straight through to
// the parser (numbers, dates, money, ...).
type Item struct {
	Value token.Type
}

func (Item) astNode() {}

// Binary is a left-associative binary operation.
type Binary struct {
	Left, Right Node
	Op          rune
}

func (Binary) astNode() {}

// PrefixUnary is a right-associative prefix unary operation.
type PrefixUnary struct {
	Op    rune
	Child Node
}

func (PrefixUnary) astNode() {}

// Assignment binds the result of Expression to a variable, by stable
// index into the session's variable store.
type Assignment struct {
	VarIndex   int
	Expression Node
}

func (Assignment) astNode() {}

// Symbol is bare text that survived rule matching without becoming a
// variable reference or template connector (spec.md §4.10).
type Symbol struct {
	Text string
}

func (Symbol) astNode() {}

// VariableRef refers to a previously-defined variable by its stable
// session index.
type VariableRef struct {
	Ref token.VarRef
}

func (VariableRef) astNode() {}
