package rules

import (
	"testing"

	"github.com/natcalc/natcalc/lexer"
	"github.com/natcalc/natcalc/token"
)

func compileTemplate(t *testing.T, template string) token.List {
	t.Helper()
	tokens, _, err := lexer.Tokenize(template, lexer.Tables{FieldEnabled: true})
	if err != nil {
		t.Fatalf("compiling template %q: %v", template, err)
	}
	return tokens
}

func TestRunToFixpointAppliesRule(t *testing.T) {
	tmpl := compileTemplate(t, "{PERCENT:percent} on {NUMBER:number}")
	eng := Engine{Rules: []Rule{{
		Name:      "percent_on",
		Templates: []token.List{tmpl},
		Apply: func(fields map[string]*token.Info) (token.Type, error) {
			pct := fields["percent"].Type.(token.Percent)
			n := fields["number"].Type.(token.Number)
			return token.Number{Value: n.Value + n.Value*pct.Value/100}, nil
		},
	}}}

	input, _, err := lexer.Tokenize("10% on 200", lexer.Tables{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, applied := eng.RunToFixpoint(input)
	if applied != 1 {
		t.Fatalf("expected 1 rewrite, got %d", applied)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 surviving token, got %d: %v", len(out), out)
	}
	num, ok := out[0].Type.(token.Number)
	if !ok || num.Value != 220 {
		t.Errorf("got %v, want Number(220)", out[0].Type)
	}
}

func TestRunToFixpointNoMatchLeavesListAlone(t *testing.T) {
	tmpl := compileTemplate(t, "{PERCENT:percent} on {NUMBER:number}")
	eng := Engine{Rules: []Rule{{Name: "percent_on", Templates: []token.List{tmpl}, Apply: func(map[string]*token.Info) (token.Type, error) {
		t.Fatal("Apply should not be called when the template never matches")
		return nil, nil
	}}}}

	input, _, err := lexer.Tokenize("1 + 2", lexer.Tables{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, applied := eng.RunToFixpoint(input)
	if applied != 0 {
		t.Errorf("expected 0 rewrites, got %d", applied)
	}
	if len(out) != len(input) {
		t.Errorf("expected list untouched, got %d tokens, want %d", len(out), len(input))
	}
}

func TestRunToFixpointChainsMultipleRewrites(t *testing.T) {
	doubleTmpl := compileTemplate(t, "double {NUMBER:number}")
	halveTmpl := compileTemplate(t, "half {NUMBER:number}")
	eng := Engine{Rules: []Rule{
		{Name: "double", Templates: []token.List{doubleTmpl}, Apply: func(fields map[string]*token.Info) (token.Type, error) {
			n := fields["number"].Type.(token.Number)
			return token.Number{Value: n.Value * 2}, nil
		}},
		{Name: "half", Templates: []token.List{halveTmpl}, Apply: func(fields map[string]*token.Info) (token.Type, error) {
			n := fields["number"].Type.(token.Number)
			return token.Number{Value: n.Value / 2}, nil
		}},
	}}

	input, _, err := lexer.Tokenize("double half 10", lexer.Tables{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, applied := eng.RunToFixpoint(input)
	if applied != 2 {
		t.Fatalf("expected 2 rewrites (half then double), got %d", applied)
	}
	if len(out) != 1 || out[0].Type.(token.Number).Value != 10 {
		t.Errorf("got %v, want a single Number(10)", out)
	}
}

func TestRunToFixpointSkipsRuleFailureAndContinues(t *testing.T) {
	failTmpl := compileTemplate(t, "{NUMBER:number}")
	okTmpl := compileTemplate(t, "{NUMBER:number} ok")
	eng := Engine{Rules: []Rule{
		{Name: "fails", Templates: []token.List{failTmpl}, Apply: func(map[string]*token.Info) (token.Type, error) {
			return nil, nil // RuleFailure via nil result: matching just continues
		}},
		{Name: "succeeds", Templates: []token.List{okTmpl}, Apply: func(fields map[string]*token.Info) (token.Type, error) {
			n := fields["number"].Type.(token.Number)
			return token.Number{Value: n.Value + 1}, nil
		}},
	}}

	input, _, err := lexer.Tokenize("5 ok", lexer.Tables{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, applied := eng.RunToFixpoint(input)
	if applied != 1 {
		t.Fatalf("expected 1 rewrite, got %d", applied)
	}
	if out[0].Type.(token.Number).Value != 6 {
		t.Errorf("got %v, want Number(6)", out[0].Type)
	}
}
