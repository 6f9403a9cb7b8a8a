package parser

import (
	"testing"

	"github.com/natcalc/natcalc/ast"
	"github.com/natcalc/natcalc/lexer"
	"github.com/natcalc/natcalc/token"
	"github.com/natcalc/natcalc/variable"
)

func parse(t *testing.T, line string) ast.Node {
	t.Helper()
	tokens, _, err := lexer.Tokenize(line, lexer.Tables{})
	if err != nil {
		t.Fatalf("tokenizing %q: %v", line, err)
	}
	node, err := Parse(tokens, 1, &variable.Store{})
	if err != nil {
		t.Fatalf("parsing %q: %v", line, err)
	}
	return node
}

func TestParseSimpleBinary(t *testing.T) {
	node := parse(t, "1 + 2")
	bin, ok := node.(ast.Binary)
	if !ok {
		t.Fatalf("got %T, want ast.Binary", node)
	}
	if bin.Op != '+' {
		t.Errorf("Op = %q, want '+'", bin.Op)
	}
	left, ok := bin.Left.(ast.Item)
	if !ok || left.Value.(token.Number).Value != 1 {
		t.Errorf("Left = %v, want Item(Number(1))", bin.Left)
	}
}

func TestParseMultiplicationBindsTighterThanAddition(t *testing.T) {
	// 1 + 2 * 3  =>  Binary(+, 1, Binary(*, 2, 3))
	node := parse(t, "1 + 2 * 3")
	bin, ok := node.(ast.Binary)
	if !ok || bin.Op != '+' {
		t.Fatalf("got %v, want a top-level '+' binary", node)
	}
	right, ok := bin.Right.(ast.Binary)
	if !ok || right.Op != '*' {
		t.Fatalf("Right = %v, want a nested '*' binary", bin.Right)
	}
}

func TestParseLeftAssociativity(t *testing.T) {
	// 10 - 2 - 3 => Binary(-, Binary(-, 10, 2), 3)
	node := parse(t, "10 - 2 - 3")
	outer, ok := node.(ast.Binary)
	if !ok || outer.Op != '-' {
		t.Fatalf("got %v, want a top-level '-' binary", node)
	}
	inner, ok := outer.Left.(ast.Binary)
	if !ok || inner.Op != '-' {
		t.Fatalf("Left = %v, want a nested '-' binary", outer.Left)
	}
	if _, ok := outer.Right.(ast.Item); !ok {
		t.Errorf("Right = %v, want a literal Item", outer.Right)
	}
}

func TestParsePrefixUnaryIsRightAssociative(t *testing.T) {
	node := parse(t, "--5")
	outer, ok := node.(ast.PrefixUnary)
	if !ok || outer.Op != '-' {
		t.Fatalf("got %v, want a PrefixUnary('-')", node)
	}
	if _, ok := outer.Child.(ast.PrefixUnary); !ok {
		t.Errorf("Child = %v, want a nested PrefixUnary", outer.Child)
	}
}

func TestParseParentheses(t *testing.T) {
	node := parse(t, "(1 + 2) * 3")
	bin, ok := node.(ast.Binary)
	if !ok || bin.Op != '*' {
		t.Fatalf("got %v, want a top-level '*' binary", node)
	}
	if _, ok := bin.Left.(ast.Binary); !ok {
		t.Errorf("Left = %v, want the parenthesized '+' binary", bin.Left)
	}
}

func TestParseAssignmentDefinesVariable(t *testing.T) {
	store := &variable.Store{}
	tokens, _, err := lexer.Tokenize("x = 5 + 1", lexer.Tables{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	node, err := Parse(tokens, 1, store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assign, ok := node.(ast.Assignment)
	if !ok {
		t.Fatalf("got %T, want ast.Assignment", node)
	}
	v, ok := store.Get(assign.VarIndex)
	if !ok || v.Name != "x" {
		t.Errorf("defined variable = %+v, want name \"x\"", v)
	}
}

func TestParseAssignmentReusesIndexOnRedefinition(t *testing.T) {
	store := &variable.Store{}
	first, _, err := lexer.Tokenize("x = 1", lexer.Tables{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	firstNode, err := Parse(first, 1, store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, _, err := lexer.Tokenize("x = 2", lexer.Tables{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	secondNode, err := Parse(second, 2, store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if firstNode.(ast.Assignment).VarIndex != secondNode.(ast.Assignment).VarIndex {
		t.Error("expected redefining \"x\" to reuse the same variable index")
	}
	if len(store.All()) != 1 {
		t.Errorf("expected exactly 1 defined variable, got %d", len(store.All()))
	}
}

func TestParseUnexpectedTrailingTokenErrors(t *testing.T) {
	tokens, _, err := lexer.Tokenize("1 + 2 3", lexer.Tables{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Parse(tokens, 1, &variable.Store{}); err == nil {
		t.Error("expected a parse error for a trailing token after a complete expression")
	}
}

func TestParseMissingClosingParenErrors(t *testing.T) {
	tokens, _, err := lexer.Tokenize("(1 + 2", lexer.Tables{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = Parse(tokens, 1, &variable.Store{})
	if err == nil {
		t.Fatal("expected a parse error for an unclosed parenthesis")
	}
	perr, ok := err.(*Error)
	if !ok {
		t.Fatalf("got %T, want *parser.Error", err)
	}
	if perr.Line != 1 {
		t.Errorf("Line = %d, want 1", perr.Line)
	}
}
